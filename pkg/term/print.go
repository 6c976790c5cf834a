package term

import (
	"strconv"
	"strings"
)

func (t Type) String() string { return "type" + strconv.Itoa(t.Universe) }

func (t Reference) String() string {
	if t.Identifier == "" {
		return "_"
	}
	return t.Identifier
}

func (t Application) String() string {
	var sb strings.Builder
	if isBinder(t.Left) {
		writeParen(&sb, t.Left)
	} else {
		sb.WriteString(t.Left.String())
	}
	sb.WriteByte(' ')
	if isAtom(t.Right) {
		sb.WriteString(t.Right.String())
	} else {
		writeParen(&sb, t.Right)
	}
	return sb.String()
}

func (t Pi) String() string {
	var sb strings.Builder
	if t.Head == "" {
		if isBinder(t.From) {
			writeParen(&sb, t.From)
		} else {
			sb.WriteString(t.From.String())
		}
	} else {
		writeBinding(&sb, t.Head, t.From)
	}
	sb.WriteString(" -> ")
	sb.WriteString(t.To.String())
	return sb.String()
}

func (t Lambda) String() string {
	var sb strings.Builder
	writeBinding(&sb, t.Head, t.From)
	sb.WriteString(" => ")
	sb.WriteString(t.Body.String())
	return sb.String()
}

func (t Let) String() string {
	var sb strings.Builder
	sb.WriteString("let ")
	sb.WriteString(Reference{t.Head}.String())
	if !IsEmpty(t.From) {
		sb.WriteString(" : ")
		sb.WriteString(t.From.String())
	}
	sb.WriteString(" = ")
	sb.WriteString(t.Left.String())
	sb.WriteString("; ")
	sb.WriteString(t.Right.String())
	return sb.String()
}

func writeBinding(sb *strings.Builder, head string, from Term) {
	sb.WriteByte('(')
	sb.WriteString(Reference{head}.String())
	sb.WriteString(" : ")
	sb.WriteString(from.String())
	sb.WriteByte(')')
}

func writeParen(sb *strings.Builder, t Term) {
	sb.WriteByte('(')
	sb.WriteString(t.String())
	sb.WriteByte(')')
}

func isAtom(t Term) bool {
	switch t.(type) {
	case Type, Reference:
		return true
	}
	return false
}

func isBinder(t Term) bool {
	_, ok := Head(t)
	return ok
}
