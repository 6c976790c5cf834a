package prog

import (
	"flag"

	"src.tyed.sh/pkg/codec"
)

// FlagSet wraps a [flag.FlagSet]. It also provides flags shared by several
// subprograms, which are registered once no matter how many subprograms ask
// for them.
type FlagSet struct {
	*flag.FlagSet
	json   *bool
	format *codec.Format
}

// JSON returns a pointer to the value of the -json flag.
func (fs *FlagSet) JSON() *bool {
	if fs.json == nil {
		var json bool
		fs.BoolVar(&json, "json", false,
			"show the output from -buildinfo, -version or the checker in JSON")
		fs.json = &json
	}
	return fs.json
}

// Format returns a pointer to the value of the -format flag. It defaults to
// guessing the format from the file name.
func (fs *FlagSet) Format() *codec.Format {
	if fs.format == nil {
		var f codec.Format
		fs.Var(formatValue{&f}, "format",
			"format of the input file, json or yaml; guessed from the file name by default")
		fs.format = &f
	}
	return fs.format
}

type formatValue struct{ f *codec.Format }

func (v formatValue) String() string {
	if v.f == nil {
		return ""
	}
	return string(*v.f)
}

func (v formatValue) Set(s string) error {
	f, err := codec.ParseFormat(s)
	if err != nil {
		return err
	}
	*v.f = f
	return nil
}
