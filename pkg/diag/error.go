// Package diag contains the structured type errors reported by the compute
// kernel, and helpers for showing them.
package diag

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"src.tyed.sh/pkg/path"
	"src.tyed.sh/pkg/term"
)

// Types of errors.
const (
	Unresolved         = "unresolved"
	NotAFunction       = "not a function"
	DomainMismatch     = "domain mismatch"
	NotAType           = "not a type"
	DefinitionMismatch = "definition mismatch"
	ValueMismatch      = "value mismatch"
	CyclicDefinition   = "cyclic definition"
	ReductionLimit     = "reduction limit"
)

// Error is a type error attached to a node of the source.
type Error struct {
	Type    string
	Message string
	// Path of the offending node. It is nil when the node was synthesized
	// and has no position in the source.
	Path path.Path
	// Expected and Detected are set for mismatches.
	Expected term.Term
	Detected term.Term
}

// Error returns a plain text representation of the error.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Type)
	if e.Path != nil {
		fmt.Fprintf(&sb, " at %s", e.Path)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if e.Expected != nil && e.Detected != nil {
		fmt.Fprintf(&sb, " (expected %s, detected %s)", e.Expected, e.Detected)
	}
	return sb.String()
}

// Variables controlling the style of the message.
var (
	messageStart = "\033[31;1m"
	messageEnd   = "\033[m"
)

// Show shows the error.
func (e *Error) Show(indent string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s%s%s", title(e.Type), messageStart, e.Message, messageEnd)
	if e.Path != nil {
		fmt.Fprintf(&sb, "\n%s  at %s", indent, e.Path)
	}
	if e.Expected != nil && e.Detected != nil {
		fmt.Fprintf(&sb, "\n%s  expected: %s", indent, e.Expected)
		fmt.Fprintf(&sb, "\n%s  detected: %s", indent, e.Detected)
	}
	return sb.String()
}

// Equal reports whether two errors describe the same problem at the same
// node.
func (e *Error) Equal(other *Error) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.Type == other.Type && e.Message == other.Message &&
		e.Path.Equals(other.Path) && (e.Path == nil) == (other.Path == nil) &&
		termEqual(e.Expected, other.Expected) && termEqual(e.Detected, other.Detected)
}

func termEqual(a, b term.Term) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return term.Equal(a, b)
}

func title(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToTitle(r)) + s[n:]
}
