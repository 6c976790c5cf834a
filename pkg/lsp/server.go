package lsp

import (
	"context"
	"encoding/json"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"src.tyed.sh/pkg/codec"
	"src.tyed.sh/pkg/compute"
	"src.tyed.sh/pkg/diag"
	"src.tyed.sh/pkg/edit"
	"src.tyed.sh/pkg/logutil"
	"src.tyed.sh/pkg/path"
	"src.tyed.sh/pkg/ui"
)

var logger = logutil.GetLogger("[lsp] ")

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

// defaultURI identifies the source in diagnostics until a client loads one
// with its own URI.
const defaultURI lsp.DocumentURI = "tyed:source"

type server struct {
	editor *edit.Editor
	uri    lsp.DocumentURI
}

func newServer(cfg edit.Config) *server {
	return &server{edit.NewEditor(cfg), defaultURI}
}

func handler(s *server) jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"initialize":               s.initialize,
		"shutdown":                 noop,
		"exit":                     s.exit,
		"tyed/keyDown":             s.keyDown,
		"tyed/setCursor":           s.setCursor,
		"tyed/load":                s.load,
		"tyed/export":              s.export,
		"tyed/view":                s.view,
		"workspace/executeCommand": s.executeCommand,

		// Required by the protocol.
		"initialized": noop,
		// Called by clients even when server doesn't advertise support:
		// https://microsoft.github.io/language-server-protocol/specification#workspace_didChangeWatchedFiles
		"workspace/didChangeWatchedFiles": noop,
	})
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func noop(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, nil
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			return nil, errMethodNotFound
		}
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		return fn(ctx, conn, params)
	})
}

// Parameters and results of the tyed/ methods.

// KeyDownParams is the parameter of tyed/keyDown. Key uses the syntax of
// ui.ParseKey, like "Ctrl-Shift-z".
type KeyDownParams struct {
	Key string `json:"key"`
}

// KeyDownResult is the result of tyed/keyDown. Operation is the name of the
// applied operation, or empty if the key edited text or did nothing.
type KeyDownResult struct {
	Operation string `json:"operation"`
}

// SetCursorParams is the parameter of tyed/setCursor.
type SetCursorParams struct {
	Path []string `json:"path"`
}

// LoadParams is the parameter of tyed/load. Format defaults to JSON.
type LoadParams struct {
	URI     lsp.DocumentURI `json:"uri,omitempty"`
	Format  string          `json:"format,omitempty"`
	Content string          `json:"content"`
}

// ExportParams is the parameter of tyed/export. Format defaults to JSON.
type ExportParams struct {
	Format string `json:"format,omitempty"`
}

// ExportResult is the result of tyed/export.
type ExportResult struct {
	Content string `json:"content"`
}

// Handler implementations. These are all called synchronously.

func (s *server) initialize(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			ExecuteCommandProvider: &lsp.ExecuteCommandOptions{
				Commands: edit.OperationNames(),
			},
		},
	}, nil
}

func (s *server) exit(_ context.Context, conn jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, conn.Close()
}

func (s *server) keyDown(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params KeyDownParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	k, err := ui.ParseKey(params.Key)
	if err != nil {
		return nil, invalidParams(err)
	}
	name := s.editor.Handle(k)
	s.publishDiagnostics(ctx, conn)
	return KeyDownResult{name}, nil
}

func (s *server) setCursor(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params SetCursorParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	if err := s.editor.SetCursor(path.Path(params.Path)); err != nil {
		return nil, invalidParams(err)
	}
	return nil, nil
}

func (s *server) load(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params LoadParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	f, err := parseFormat(params.Format)
	if err != nil {
		return nil, invalidParams(err)
	}
	scope, err := codec.Unmarshal([]byte(params.Content), f)
	if err != nil {
		return nil, invalidParams(err)
	}
	if params.URI != "" {
		s.uri = params.URI
	}
	s.editor.Load(scope)
	s.publishDiagnostics(ctx, conn)
	return nil, nil
}

func (s *server) export(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params ExportParams
	if len(rawParams) > 0 && json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	f, err := parseFormat(params.Format)
	if err != nil {
		return nil, invalidParams(err)
	}
	data, err := codec.Marshal(s.editor.Source(), f)
	if err != nil {
		return nil, err
	}
	return ExportResult{string(data)}, nil
}

func (s *server) view(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return s.editor.View()
}

func (s *server) executeCommand(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.ExecuteCommandParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	applied, err := s.editor.Run(params.Command)
	if err != nil {
		return nil, invalidParams(err)
	}
	if applied {
		s.publishDiagnostics(ctx, conn)
	}
	return applied, nil
}

func (s *server) publishDiagnostics(ctx context.Context, conn jsonrpc2.JSONRPC2) {
	err := conn.Notify(ctx, "textDocument/publishDiagnostics",
		lsp.PublishDiagnosticsParams{URI: s.uri, Diagnostics: diagnostics(s.editor)})
	if err != nil {
		logger.Println("publish diagnostics:", err)
	}
}

func diagnostics(ed *edit.Editor) []lsp.Diagnostic {
	errs := compute.Check(compute.Prepare(ed.Source()))
	diags := make([]lsp.Diagnostic, len(errs))
	for i, err := range errs {
		diags[i] = lspDiagnostic(err)
	}
	return diags
}

// Terms have no text positions, so the range is always empty; the path of the
// offending node is part of the message.
func lspDiagnostic(err *diag.Error) lsp.Diagnostic {
	return lsp.Diagnostic{
		Severity: lsp.Error,
		Code:     err.Type,
		Source:   "tyed",
		Message:  err.Error(),
	}
}

func parseFormat(s string) (codec.Format, error) {
	if s == "" {
		return codec.JSON, nil
	}
	return codec.ParseFormat(s)
}

func invalidParams(err error) *jsonrpc2.Error {
	return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
}
