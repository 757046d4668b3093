package signature

import "strings"

// Writer is a Visitor that rebuilds the textual signature form from the
// event stream it is driven with. Feeding a Writer the events produced by
// AcceptSignature(s, w) for any legal s reproduces s exactly.
//
// Writer's only state, besides the growing buffer, are two flags and a
// bitstack: hasFormals/hasParameters track whether the '<...>' formals
// clause and the '(...)' parameter list have
// been opened yet, and bitstack balances nested class-type type-argument
// brackets without a recursive-descent call stack of its own — each
// ClassType push multiplies the stack by two (pushing a 0 bit), the first
// type argument inside flips that bit on and writes '<', and End/
// InnerClassType pop it, writing '>' only if the popped bit was set.
type Writer struct {
	sb            strings.Builder
	hasFormals    bool
	hasParameters bool
	bitstack      uint64
}

var _ Visitor = (*Writer)(nil)

// NewWriter returns a Writer ready to be driven by a signature event
// stream (typically signature.AcceptSignature or signature.AcceptType).
func NewWriter() *Writer {
	return &Writer{}
}

// String returns the signature text reconstructed so far.
func (w *Writer) String() string {
	return w.sb.String()
}

func (w *Writer) closeFormalsIfOpen() {
	if w.hasFormals {
		w.sb.WriteByte('>')
		w.hasFormals = false
	}
}

func (w *Writer) FormalTypeParameter(name string) {
	if !w.hasFormals {
		w.sb.WriteByte('<')
		w.hasFormals = true
	}
	w.sb.WriteString(name)
	w.sb.WriteByte(':')
}

func (w *Writer) ClassBound() {
	// The separating ':' was already written by FormalTypeParameter; the
	// bound's own type events follow immediately.
}

func (w *Writer) InterfaceBound() {
	w.sb.WriteByte(':')
}

func (w *Writer) Superclass() {
	w.closeFormalsIfOpen()
}

func (w *Writer) Interface() {
	w.closeFormalsIfOpen()
}

func (w *Writer) Parameter() {
	w.closeFormalsIfOpen()
	if !w.hasParameters {
		w.sb.WriteByte('(')
		w.hasParameters = true
	}
}

func (w *Writer) Return() {
	w.closeFormalsIfOpen()
	if w.hasParameters {
		w.sb.WriteByte(')')
		w.hasParameters = false
	} else {
		w.sb.WriteString("()")
	}
}

func (w *Writer) Exception() {
	w.sb.WriteByte('^')
}

func (w *Writer) BaseType(c byte) {
	w.sb.WriteByte(c)
}

func (w *Writer) TypeVariable(name string) {
	w.sb.WriteByte('T')
	w.sb.WriteString(name)
	w.sb.WriteByte(';')
}

func (w *Writer) ArrayType() {
	w.sb.WriteByte('[')
}

func (w *Writer) ClassType(internalName string) {
	w.sb.WriteByte('L')
	w.sb.WriteString(internalName)
	w.bitstack <<= 1
}

func (w *Writer) InnerClassType(name string) {
	if w.bitstack&1 != 0 {
		w.sb.WriteByte('>')
	}
	w.bitstack >>= 1
	w.sb.WriteByte('.')
	w.sb.WriteString(name)
	w.bitstack <<= 1
}

func (w *Writer) openTypeArgumentsIfNeeded() {
	if w.bitstack&1 == 0 {
		w.bitstack |= 1
		w.sb.WriteByte('<')
	}
}

func (w *Writer) TypeArgument() {
	w.openTypeArgumentsIfNeeded()
	w.sb.WriteByte('*')
}

func (w *Writer) TypeArgumentBound(wildcard byte) {
	w.openTypeArgumentsIfNeeded()
	if wildcard == '+' || wildcard == '-' {
		w.sb.WriteByte(wildcard)
	}
}

func (w *Writer) End() {
	if w.bitstack&1 != 0 {
		w.sb.WriteByte('>')
	}
	w.bitstack >>= 1
	w.sb.WriteByte(';')
}
