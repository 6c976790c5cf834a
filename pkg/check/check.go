// Package check implements the batch subprogram of tyed. It reads a source
// file, type-checks it and reports diagnostics. It can also print the normal
// forms of all entries, or convert the file to another format.
package check

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"

	"src.tyed.sh/pkg/codec"
	"src.tyed.sh/pkg/compute"
	"src.tyed.sh/pkg/diag"
	"src.tyed.sh/pkg/logutil"
	"src.tyed.sh/pkg/prog"
	"src.tyed.sh/pkg/term"
)

var logger = logutil.GetLogger("[check] ")

// Program is the batch subprogram. It runs when a file argument is given.
type Program struct {
	normalize bool
	export    string
	clipboard bool

	json   *bool
	format *codec.Format
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.normalize, "normalize", false,
		"print the normal form of the type and value of every entry")
	fs.StringVar(&p.export, "export", "",
		"convert the file to the given format, json or yaml, instead of checking it")
	fs.BoolVar(&p.clipboard, "clipboard", false,
		"write the output of -export to the system clipboard")
	p.json = fs.JSON()
	p.format = fs.Format()
}

func (p *Program) Run(fds [3]*os.File, args []string) error {
	switch len(args) {
	case 0:
		return prog.BadUsage("no input file")
	case 1:
	default:
		return prog.BadUsage("too many arguments")
	}
	if p.clipboard && p.export == "" {
		return prog.BadUsage("-clipboard requires -export")
	}

	scope, err := p.read(fds[0], args[0])
	if err != nil {
		return err
	}

	if p.export != "" {
		return p.exportTo(fds[1], scope)
	}

	program := compute.Prepare(scope)
	if p.normalize {
		printNormal(fds[1], program)
	}
	errs := compute.Check(program)
	logger.Printf("%s: %d diagnostics", args[0], len(errs))
	if *p.json {
		fmt.Fprintln(fds[1], mustToJSON(diagnosticsJSON(errs)))
	} else {
		showDiagnostics(fds[2], errs)
	}
	if len(errs) > 0 {
		return prog.Exit(1)
	}
	return nil
}

// read decodes the named file, or stdin if the name is "-".
func (p *Program) read(stdin io.Reader, name string) (term.Scope, error) {
	var data []byte
	var err error
	if name == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return term.Scope{}, err
	}
	f := *p.format
	if f == "" {
		f = codec.FormatOf(name)
	}
	scope, err := codec.Unmarshal(data, f)
	if err != nil {
		return term.Scope{}, fmt.Errorf("cannot decode %s: %w", name, err)
	}
	return scope, nil
}

func (p *Program) exportTo(w io.Writer, scope term.Scope) error {
	f, err := codec.ParseFormat(p.export)
	if err != nil {
		return prog.BadUsage(err.Error())
	}
	data, err := codec.Marshal(scope, f)
	if err != nil {
		return err
	}
	if p.clipboard {
		return clipboard.WriteAll(string(data))
	}
	_, err = w.Write(data)
	return err
}

func printNormal(w io.Writer, p *compute.Program) {
	ev := compute.NewEvaler(p)
	for _, e := range p.Entries() {
		fmt.Fprintf(w, "%s : %s = %s\n", e.Name, ev.Normal(e.Type), ev.Normal(e.Value))
	}
}

// showDiagnostics writes diagnostics to w, with colors only if w is a
// terminal.
func showDiagnostics(w *os.File, errs []*diag.Error) {
	color := isatty.IsTerminal(w.Fd()) || isatty.IsCygwinTerminal(w.Fd())
	for _, err := range errs {
		if color {
			diag.ShowError(w, err)
		} else {
			fmt.Fprintln(w, err.Error())
		}
	}
}

type diagnosticJSON struct {
	Type     string   `json:"type"`
	Message  string   `json:"message"`
	Path     []string `json:"path"`
	Expected string   `json:"expected,omitempty"`
	Detected string   `json:"detected,omitempty"`
}

func diagnosticsJSON(errs []*diag.Error) []diagnosticJSON {
	out := make([]diagnosticJSON, len(errs))
	for i, err := range errs {
		out[i] = diagnosticJSON{
			Type: err.Type, Message: err.Message, Path: err.Path}
		if err.Expected != nil {
			out[i].Expected = err.Expected.String()
		}
		if err.Detected != nil {
			out[i].Detected = err.Detected.String()
		}
	}
	return out
}

func mustToJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
