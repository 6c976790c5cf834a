// Package lsp implements the editor protocol server of tyed. It speaks
// JSON-RPC 2.0 with the framing of the Language Server Protocol, so editors
// that host language servers can drive a structural editing session.
package lsp

import (
	"context"
	"fmt"
	"os"

	"github.com/sourcegraph/jsonrpc2"

	"src.tyed.sh/pkg/edit"
	"src.tyed.sh/pkg/prog"
)

// Program is the protocol server subprogram.
type Program struct {
	run    bool
	keymap string
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.run, "lsp", false, "run the editor protocol server on stdio")
	fs.StringVar(&p.keymap, "keymap", "", "a YAML file with key bindings for -lsp")
}

func (p *Program) Run(fds [3]*os.File, _ []string) error {
	if !p.run {
		return prog.ErrNextProgram
	}
	cfg := edit.Config{}
	if p.keymap != "" {
		b, err := loadKeymap(p.keymap)
		if err != nil {
			return fmt.Errorf("cannot load keymap: %w", err)
		}
		cfg.Bindings = b
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := newServer(cfg)
	conn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(transport{fds[0], fds[1]}, jsonrpc2.VSCodeObjectCodec{}),
		handler(s))
	<-conn.DisconnectNotify()
	return nil
}

func loadKeymap(name string) (edit.Bindings, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return edit.LoadKeymap(f)
}

type transport struct{ in, out *os.File }

func (c transport) Read(p []byte) (int, error)  { return c.in.Read(p) }
func (c transport) Write(p []byte) (int, error) { return c.out.Write(p) }

func (c transport) Close() error {
	if err := c.in.Close(); err != nil {
		c.out.Close()
		return err
	}
	return c.out.Close()
}
