// Tyed is a structural editor for a small dependently typed calculus. It
// runs as an editor protocol server for a graphical front end, or checks,
// normalizes and converts source files in batch.
package main

import (
	"os"

	"src.tyed.sh/pkg/buildinfo"
	"src.tyed.sh/pkg/check"
	"src.tyed.sh/pkg/lsp"
	"src.tyed.sh/pkg/prog"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(&buildinfo.Program{}, &lsp.Program{}, &check.Program{})))
}
