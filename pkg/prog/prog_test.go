package prog_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"src.tyed.sh/pkg/codec"
	"src.tyed.sh/pkg/logutil"
	. "src.tyed.sh/pkg/prog"
	"src.tyed.sh/pkg/prog/progtest"
)

var (
	Test     = progtest.Test
	ThatTyed = progtest.ThatTyed
)

func TestCommonFlagHandling(t *testing.T) {
	dir := t.TempDir()
	cpuprof := filepath.Join(dir, "cpuprof")

	Test(t, testProgram{},
		ThatTyed("-bad-flag").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -bad-flag\nUsage:"),
		// -h is treated as a bad flag
		ThatTyed("-h").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -h\nUsage:"),

		ThatTyed("-help").
			WritesStdoutContaining("Usage: tyed [flags] [file]"),

		ThatTyed("-cpuprofile", cpuprof).DoesNothing(),
		ThatTyed("-cpuprofile", "/a/bad/path").
			WritesStderrContaining("Warning: cannot create CPU profile:"),
	)

	// Check for the effect of -cpuprofile. There isn't much to test beyond a
	// sanity check that the profile file now exists.
	_, err := os.Stat(cpuprof)
	if err != nil {
		t.Errorf("CPU profile file does not exist: %v", err)
	}
}

func TestLogFlag(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "log")
	Test(t, logProgram{},
		ThatTyed("-log", logFile).DoesNothing(),
	)
	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello from the log") {
		t.Errorf("log file contains %q, want the logged message", data)
	}
}

func TestSharedFlags(t *testing.T) {
	Test(t, Composite(&flagProgram{}, &flagProgram{}),
		ThatTyed("-json", "-format", "yml").WritesStdout("true yaml\n"),
		ThatTyed().WritesStdout("false \n"),
		ThatTyed("-format", "toml").
			ExitsWith(2).
			WritesStderrContaining(`invalid value "toml" for flag -format`),
	)
}

func TestNoSuitableSubprogram(t *testing.T) {
	Test(t, testProgram{notSuitable: true},
		ThatTyed().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite(t *testing.T) {
	Test(t,
		Composite(testProgram{notSuitable: true}, testProgram{writeOut: "program 2"}),
		ThatTyed().WritesStdout("program 2"),
	)
}

func TestComposite_NoSuitableSubprogram(t *testing.T) {
	Test(t,
		Composite(testProgram{notSuitable: true}, testProgram{notSuitable: true}),
		ThatTyed().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite_PreferEarlierSubprogram(t *testing.T) {
	Test(t,
		Composite(
			testProgram{writeOut: "program 1"}, testProgram{writeOut: "program 2"}),
		ThatTyed().WritesStdout("program 1"),
	)
}

func TestBadUsageError(t *testing.T) {
	Test(t,
		testProgram{returnErr: BadUsage("lorem ipsum")},
		ThatTyed().ExitsWith(2).WritesStderrContaining("lorem ipsum\nUsage:"),
	)
}

func TestExitError(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(3)},
		ThatTyed().ExitsWith(3),
	)
}

func TestExitError_0(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(0)},
		ThatTyed().ExitsWith(0),
	)
}

type testProgram struct {
	notSuitable bool
	writeOut    string
	returnErr   error
}

func (p testProgram) RegisterFlags(f *FlagSet) {}

func (p testProgram) Run(fds [3]*os.File, args []string) error {
	if p.notSuitable {
		return ErrNextProgram
	}
	fds[1].WriteString(p.writeOut)
	return p.returnErr
}

type logProgram struct{}

func (logProgram) RegisterFlags(f *FlagSet) {}

func (logProgram) Run(fds [3]*os.File, args []string) error {
	logutil.GetLogger("[test] ").Println("hello from the log")
	return nil
}

// flagProgram prints the shared flags. Two of them in a Composite only
// print once, since the first one always runs.
type flagProgram struct {
	json   *bool
	format *codec.Format
}

func (p *flagProgram) RegisterFlags(f *FlagSet) {
	p.json = f.JSON()
	p.format = f.Format()
}

func (p *flagProgram) Run(fds [3]*os.File, args []string) error {
	fmt.Fprintln(fds[1], *p.json, *p.format)
	return nil
}
