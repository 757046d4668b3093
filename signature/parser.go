package signature

import (
	"clasm/errors"
)

const baseTypeLetters = "VZBCSIFJD"

func isBaseType(c byte) bool {
	for i := 0; i < len(baseTypeLetters); i++ {
		if baseTypeLetters[i] == c {
			return true
		}
	}
	return false
}

// reader walks a signature string left to right; pos is the parser's only
// state outside the emitted event stream.
type reader struct {
	s   string
	v   Visitor
	pos int
}

func (r *reader) done() bool { return r.pos >= len(r.s) }

func (r *reader) peek() (byte, bool) {
	if r.done() {
		return 0, false
	}
	return r.s[r.pos], true
}

func (r *reader) fail(format string, args ...any) error {
	return errors.Newf(errors.BadSignature, format, args...)
}

// AcceptSignature parses a class or method signature string and drives
// v with the resulting event stream. It fails with
// BAD_SIGNATURE on malformed input; no partial event stream is ever
// emitted once an error is detected (the whole string is inspected for
// well-formedness as it is walked, never after the fact).
func AcceptSignature(s string, v Visitor) error {
	r := &reader{s: s, v: v}
	if err := r.acceptFormalTypeParametersIfPresent(); err != nil {
		return err
	}
	if c, ok := r.peek(); ok && c == '(' {
		if err := r.acceptMethodRest(); err != nil {
			return err
		}
	} else {
		if err := r.acceptClassRest(); err != nil {
			return err
		}
	}
	if !r.done() {
		return r.fail("trailing characters in signature %q at offset %d", s, r.pos)
	}
	return nil
}

// AcceptType parses a single TypeSig ("Type" production) and drives v
// with its event stream.
func AcceptType(s string, v Visitor) error {
	r := &reader{s: s, v: v}
	if err := r.acceptType(); err != nil {
		return err
	}
	if !r.done() {
		return r.fail("trailing characters in type signature %q at offset %d", s, r.pos)
	}
	return nil
}

func (r *reader) acceptFormalTypeParametersIfPresent() error {
	c, ok := r.peek()
	if !ok || c != '<' {
		return nil
	}
	r.pos++ // '<'
	sawOne := false
	for {
		c, ok := r.peek()
		if !ok {
			return r.fail("unterminated formal type parameters in %q", r.s)
		}
		if c == '>' {
			break
		}
		start := r.pos
		for !r.done() && r.s[r.pos] != ':' {
			r.pos++
		}
		if r.done() {
			return r.fail("formal type parameter missing ':' in %q", r.s)
		}
		name := r.s[start:r.pos]
		if name == "" {
			return r.fail("empty formal type parameter name in %q", r.s)
		}
		r.v.FormalTypeParameter(name)
		r.pos++ // ':'

		if c, ok := r.peek(); ok && (c == 'L' || c == '[' || c == 'T') {
			r.v.ClassBound()
			if err := r.acceptType(); err != nil {
				return err
			}
		}
		for {
			c, ok := r.peek()
			if !ok || c != ':' {
				break
			}
			r.pos++ // ':'
			r.v.InterfaceBound()
			if err := r.acceptType(); err != nil {
				return err
			}
		}
		sawOne = true
	}
	if !sawOne {
		return r.fail("formal type parameters clause has no entries in %q", r.s)
	}
	r.pos++ // '>'
	return nil
}

func (r *reader) acceptClassRest() error {
	r.v.Superclass()
	if err := r.acceptRefType(); err != nil {
		return err
	}
	for !r.done() {
		r.v.Interface()
		if err := r.acceptRefType(); err != nil {
			return err
		}
	}
	return nil
}

func (r *reader) acceptMethodRest() error {
	r.pos++ // '('
	for {
		c, ok := r.peek()
		if !ok {
			return r.fail("unterminated method signature parameters in %q", r.s)
		}
		if c == ')' {
			break
		}
		r.v.Parameter()
		if err := r.acceptType(); err != nil {
			return err
		}
	}
	r.pos++ // ')'
	r.v.Return()
	if err := r.acceptType(); err != nil {
		return err
	}
	for {
		c, ok := r.peek()
		if !ok || c != '^' {
			break
		}
		r.pos++ // '^'
		r.v.Exception()
		if err := r.acceptRefType(); err != nil {
			return err
		}
	}
	return nil
}

// acceptRefType parses a reference type signature (ClassType, TypeVar, or
// ArrayType) — the subset of TypeSig legal as a bound, superclass,
// interface, or throws entry.
func (r *reader) acceptRefType() error {
	c, ok := r.peek()
	if !ok {
		return r.fail("expected reference type signature, got end of %q", r.s)
	}
	switch c {
	case 'L':
		return r.acceptClassType()
	case 'T':
		return r.acceptTypeVariable()
	case '[':
		return r.acceptArrayType()
	default:
		return r.fail("expected reference type signature at offset %d in %q", r.pos, r.s)
	}
}

func (r *reader) acceptType() error {
	c, ok := r.peek()
	if !ok {
		return r.fail("expected type signature, got end of %q", r.s)
	}
	switch {
	case isBaseType(c):
		r.pos++
		r.v.BaseType(c)
		return nil
	case c == '[':
		return r.acceptArrayType()
	case c == 'T':
		return r.acceptTypeVariable()
	case c == 'L':
		return r.acceptClassType()
	default:
		return r.fail("unexpected character %q at offset %d in %q", string(c), r.pos, r.s)
	}
}

func (r *reader) acceptArrayType() error {
	r.pos++ // '['
	r.v.ArrayType()
	return r.acceptType()
}

func (r *reader) acceptTypeVariable() error {
	r.pos++ // 'T'
	start := r.pos
	for !r.done() && r.s[r.pos] != ';' {
		r.pos++
	}
	if r.done() {
		return r.fail("unterminated type variable in %q", r.s)
	}
	name := r.s[start:r.pos]
	if name == "" {
		return r.fail("empty type variable name in %q", r.s)
	}
	r.pos++ // ';'
	r.v.TypeVariable(name)
	return nil
}

func (r *reader) acceptClassType() error {
	r.pos++ // 'L'
	start := r.pos
	for !r.done() && r.s[r.pos] != '<' && r.s[r.pos] != '.' && r.s[r.pos] != ';' {
		r.pos++
	}
	if r.done() {
		return r.fail("unterminated class type in %q", r.s)
	}
	name := r.s[start:r.pos]
	r.v.ClassType(name)

	if err := r.acceptTypeArgumentsIfPresent(); err != nil {
		return err
	}

	for {
		c, ok := r.peek()
		if !ok {
			return r.fail("unterminated class type in %q", r.s)
		}
		if c != '.' {
			break
		}
		r.pos++ // '.'
		start := r.pos
		for !r.done() && r.s[r.pos] != '<' && r.s[r.pos] != '.' && r.s[r.pos] != ';' {
			r.pos++
		}
		if r.done() {
			return r.fail("unterminated inner class type in %q", r.s)
		}
		inner := r.s[start:r.pos]
		r.v.InnerClassType(inner)
		if err := r.acceptTypeArgumentsIfPresent(); err != nil {
			return err
		}
	}

	c, ok := r.peek()
	if !ok || c != ';' {
		return r.fail("expected ';' to close class type in %q at offset %d", r.s, r.pos)
	}
	r.pos++ // ';'
	r.v.End()
	return nil
}

func (r *reader) acceptTypeArgumentsIfPresent() error {
	c, ok := r.peek()
	if !ok || c != '<' {
		return nil
	}
	r.pos++ // '<'
	sawOne := false
	for {
		c, ok := r.peek()
		if !ok {
			return r.fail("unterminated type arguments in %q", r.s)
		}
		if c == '>' {
			break
		}
		switch c {
		case '*':
			r.pos++
			r.v.TypeArgument()
		case '+', '-':
			r.pos++
			r.v.TypeArgumentBound(c)
			if err := r.acceptType(); err != nil {
				return err
			}
		default:
			r.v.TypeArgumentBound('=')
			if err := r.acceptType(); err != nil {
				return err
			}
		}
		sawOne = true
	}
	if !sawOne {
		return r.fail("type arguments clause has no entries in %q", r.s)
	}
	r.pos++ // '>'
	return nil
}
