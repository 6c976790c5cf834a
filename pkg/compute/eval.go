package compute

import (
	"fmt"
	"strconv"

	"src.tyed.sh/pkg/diag"
	"src.tyed.sh/pkg/logutil"
	"src.tyed.sh/pkg/path"
)

var logger = logutil.GetLogger("[compute] ")

// DefaultFuel is the number of reduction steps an Evaler performs before it
// gives up.
const DefaultFuel = 10000

// Evaler evaluates and type-checks terms of a program. It keeps the state of
// one pass: the fresh-symbol counter, the remaining fuel and the collected
// diagnostics. An Evaler must not be used concurrently.
type Evaler struct {
	program  *Program
	limit    int
	fuel     int
	fresh    int
	visiting map[string]bool
	diags    []*diag.Error
}

// NewEvaler creates an Evaler for the given program.
func NewEvaler(p *Program) *Evaler {
	return &Evaler{program: p, limit: DefaultFuel, fuel: DefaultFuel,
		visiting: make(map[string]bool)}
}

// SetFuel sets the number of reduction steps allowed. Check allows that many
// steps for every entry.
func (e *Evaler) SetFuel(n int) { e.limit, e.fuel = n, n }

// Program returns the program the Evaler works on.
func (e *Evaler) Program() *Program { return e.program }

// Diagnostics returns the diagnostics collected so far, in the order they
// were found.
func (e *Evaler) Diagnostics() []*diag.Error {
	return append([]*diag.Error(nil), e.diags...)
}

func (e *Evaler) report(err *diag.Error) {
	for _, d := range e.diags {
		if d.Equal(err) {
			return
		}
	}
	e.diags = append(e.diags, err)
}

func (e *Evaler) step(t Term) bool {
	if e.fuel <= 0 {
		return false
	}
	e.fuel--
	if e.fuel == 0 {
		logger.Printf("reduction limit reached at %s", t)
		e.report(&diag.Error{
			Type:    diag.ReductionLimit,
			Message: "too many reduction steps; the definition may not terminate",
			Path:    t.Info().Path,
		})
		return false
	}
	return true
}

// freshSymbol returns a name that cannot be typed by a user and has not been
// returned before by this Evaler.
func (e *Evaler) freshSymbol() string {
	e.fresh++
	return "\x00" + strconv.Itoa(e.fresh)
}

// Value computes the weak-head form of t. Applications of lambdas and lets
// are reduced, and free references to entries with a value are unfolded.
// Nothing under a binder is reduced.
func (e *Evaler) Value(t Term) Term {
	switch t := t.(type) {
	case Free:
		entry, ok := e.program.Entry(t.Identifier)
		if !ok || IsEmpty(entry.Value) || !e.step(t) {
			return t
		}
		return e.Value(entry.Value)
	case Application:
		left := e.Value(t.Left)
		if l, ok := left.(Lambda); ok && e.step(t) {
			return e.Value(Replace(l.Head, t.Right, l.Body))
		}
		return Application{synthesized(t.Meta), left, t.Right}
	case Let:
		if !e.step(t) {
			return t
		}
		return e.Value(Replace(t.Head, t.Left, t.Right))
	}
	return t
}

// Normal computes the normal form of t, reducing under binders.
func (e *Evaler) Normal(t Term) Term {
	switch v := e.Value(t).(type) {
	case Application:
		return Application{synthesized(v.Meta), e.Normal(v.Left), e.Normal(v.Right)}
	case Pi:
		from := e.Normal(v.From)
		head, to := e.normalUnder(v.Head, from, v.To)
		return Pi{synthesized(v.Meta), head, from, to}
	case Lambda:
		from := e.Normal(v.From)
		head, body := e.normalUnder(v.Head, from, v.Body)
		return Lambda{synthesized(v.Meta), head, from, body}
	case Let:
		// Only reached when out of fuel.
		return v
	default:
		return v
	}
}

// normalUnder normalizes the scope of a binder. Bound occurrences of the head
// are renamed to a fresh symbol while normalizing, so that no substitution
// performed inside can capture them. The head is primed when the normal form
// refers to another term of the same name.
func (e *Evaler) normalUnder(head string, from, body Term) (string, Term) {
	if head == "" {
		return head, e.Normal(body)
	}
	fresh := e.freshSymbol()
	opened := Replace(head, Reference{Meta{}, fresh, from}, body)
	normal := e.Normal(opened)
	if free := freeNames(normal); free[head] {
		head = primed(head, free, names(normal))
	}
	return head, Replace(fresh, Reference{Meta{}, head, from}, normal)
}

// Convertible reports whether a and b have α-equivalent normal forms.
func (e *Evaler) Convertible(a, b Term) bool {
	return Equal(e.Normal(a), e.Normal(b))
}

// TypeOf infers the type of t. It returns false when the type cannot be
// determined; the reason, if any, is recorded as a diagnostic. Type errors
// inside t are recorded without stopping inference of the surrounding term.
func (e *Evaler) TypeOf(t Term) (Term, bool) {
	switch t := t.(type) {
	case Type:
		return Type{synthesized(t.Meta), t.Universe + 1}, true
	case Free:
		return e.typeOfFree(t)
	case Reference:
		if t.Type == nil || IsEmpty(t.Type) {
			return nil, false
		}
		return t.Type, true
	case Application:
		return e.typeOfApplication(t)
	case Pi:
		u1, ok1 := e.sort(t.From)
		u2, ok2 := e.sort(t.To)
		if !ok1 || !ok2 {
			return nil, false
		}
		return Type{synthesized(t.Meta), max(u1, u2)}, true
	case Lambda:
		if !IsEmpty(t.From) {
			e.sort(t.From)
		}
		bodyType, ok := e.TypeOf(t.Body)
		if !ok {
			return nil, false
		}
		return Pi{synthesized(t.Meta), t.Head, t.From, bodyType}, true
	case Let:
		return e.typeOfLet(t)
	}
	return nil, false
}

func (e *Evaler) typeOfFree(t Free) (Term, bool) {
	if t.Identifier == "" {
		return nil, false
	}
	entry, ok := e.program.Entry(t.Identifier)
	if !ok {
		e.report(&diag.Error{
			Type:    diag.Unresolved,
			Message: fmt.Sprintf("%s is not defined", t.Identifier),
			Path:    t.Path,
		})
		return nil, false
	}
	if !IsEmpty(entry.Type) {
		return entry.Type, true
	}
	if IsEmpty(entry.Value) {
		e.report(&diag.Error{
			Type:    diag.Unresolved,
			Message: fmt.Sprintf("%s has neither a type nor a value", t.Identifier),
			Path:    t.Path,
		})
		return nil, false
	}
	if e.visiting[t.Identifier] {
		e.report(&diag.Error{
			Type:    diag.CyclicDefinition,
			Message: fmt.Sprintf("the type of %s depends on itself", t.Identifier),
			Path:    t.Path,
		})
		return nil, false
	}
	e.visiting[t.Identifier] = true
	defer delete(e.visiting, t.Identifier)
	return e.TypeOf(entry.Value)
}

func (e *Evaler) typeOfApplication(t Application) (Term, bool) {
	leftType, ok := e.TypeOf(t.Left)
	if !ok {
		e.TypeOf(t.Right)
		return nil, false
	}
	pi, ok := e.Value(leftType).(Pi)
	if !ok {
		e.report(&diag.Error{
			Type:     diag.NotAFunction,
			Message:  fmt.Sprintf("%s is applied but is not a function", t.Left),
			Path:     t.Left.Info().Path,
			Detected: Unprepare(leftType),
		})
		e.TypeOf(t.Right)
		return nil, false
	}
	rightType, ok := e.TypeOf(t.Right)
	if ok && !IsEmpty(pi.From) && !e.Convertible(pi.From, rightType) {
		e.report(&diag.Error{
			Type:     diag.DomainMismatch,
			Message:  fmt.Sprintf("%s has the wrong type for the argument", t.Right),
			Path:     t.Right.Info().Path,
			Expected: Unprepare(pi.From),
			Detected: Unprepare(rightType),
		})
	}
	return Replace(pi.Head, t.Right, pi.To), true
}

func (e *Evaler) typeOfLet(t Let) (Term, bool) {
	if IsEmpty(t.From) {
		e.TypeOf(t.Left)
		return e.TypeOf(Replace(t.Head, t.Left, t.Right))
	}
	e.sort(t.From)
	leftType, ok := e.TypeOf(t.Left)
	if ok && !e.Convertible(t.From, leftType) {
		e.report(&diag.Error{
			Type:     diag.DefinitionMismatch,
			Message:  fmt.Sprintf("%s does not have the declared type", t.Left),
			Path:     t.Left.Info().Path,
			Expected: Unprepare(t.From),
			Detected: Unprepare(leftType),
		})
	}
	rightType, ok := e.TypeOf(t.Right)
	if !ok {
		return nil, false
	}
	return Replace(t.Head, t.Left, rightType), true
}

// sort returns the universe that the type t lives in, reporting t if it is
// not a type.
func (e *Evaler) sort(t Term) (int, bool) {
	tt, ok := e.TypeOf(t)
	if !ok {
		return 0, false
	}
	u, ok := e.Value(tt).(Type)
	if !ok {
		e.report(&diag.Error{
			Type:     diag.NotAType,
			Message:  fmt.Sprintf("%s is used as a type", t),
			Path:     t.Info().Path,
			Detected: Unprepare(tt),
		})
		return 0, false
	}
	return u.Universe, true
}

// Check type-checks every entry of the program and returns all diagnostics.
// A declared type must be a type, and a value must have a type convertible to
// the declared one.
func (e *Evaler) Check() []*diag.Error {
	for _, entry := range e.program.entries {
		e.fuel = e.limit
		clear(e.visiting)
		if !IsEmpty(entry.Type) {
			e.sort(entry.Type)
		}
		if IsEmpty(entry.Value) {
			continue
		}
		valueType, ok := e.TypeOf(entry.Value)
		if ok && !IsEmpty(entry.Type) && !e.Convertible(entry.Type, valueType) {
			e.report(&diag.Error{
				Type:     diag.ValueMismatch,
				Message:  fmt.Sprintf("the value of %s does not have its declared type", entry.Name),
				Path:     path.Path{entry.Name, path.ValueSlot},
				Expected: Unprepare(entry.Type),
				Detected: Unprepare(valueType),
			})
		}
	}
	return e.Diagnostics()
}

// Check prepares and type-checks a program.
func Check(p *Program) []*diag.Error {
	return NewEvaler(p).Check()
}
