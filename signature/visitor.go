// Package signature implements the generic-signature grammar of JVMS
// §4.7.9.1: a parser that tokenizes a signature string and drives an
// event-style Visitor, and a writer that implements the same Visitor
// contract to rebuild the textual form. This is the same Accept/Visit
// double-dispatch idiom a compiler pass uses to walk an expression tree
// (an expr.Accept(c) visitor), generalized here from an AST to a
// signature grammar string.
package signature

// Visitor receives the event stream a signature parse produces. Every
// class-type chain opened by ClassType/InnerClassType is eventually closed
// by a matching End.
type Visitor interface {
	// FormalTypeParameter is called once per '<Id:...>' entry in a
	// TypeParams clause, before any bound is visited.
	FormalTypeParameter(name string)

	// ClassBound/InterfaceBound mark that the next type event stream
	// describes the class bound or an interface bound of the formal type
	// parameter most recently announced by FormalTypeParameter.
	ClassBound()
	InterfaceBound()

	// Superclass/Interface mark the next type event stream as a class
	// signature's superclass or one of its interfaces.
	Superclass()
	Interface()

	// Parameter/Return/Exception mark the next type event stream as a
	// method signature's parameter type, return type, or a throws clause
	// entry.
	Parameter()
	Return()
	Exception()

	// BaseType is a primitive type letter (one of VZBCSIFJD).
	BaseType(c byte)

	// TypeVariable is a 'T<name>;' reference.
	TypeVariable(name string)

	// ArrayType announces a '[' ArrayType; the element TypeSig follows as
	// the next event(s).
	ArrayType()

	// ClassType opens an 'L<name>' class type; TypeArgument/
	// TypeArgumentBound events for its type arguments (if any) follow,
	// then either InnerClassType (for a '.'-separated inner class) or End
	// (closing this class type).
	ClassType(internalName string)

	// InnerClassType opens a '.'-separated inner class segment of an
	// already-open ClassType.
	InnerClassType(name string)

	// TypeArgument is an unbounded '*' type argument.
	TypeArgument()

	// TypeArgumentBound is a '+' (extends), '-' (super), or '=' (exact)
	// bounded type argument; the bound's TypeSig follows as the next
	// event(s).
	TypeArgumentBound(wildcard byte)

	// End closes the class type most recently opened by ClassType or
	// InnerClassType.
	End()
}

// BaseVisitor is a no-op Visitor embeddable by callers who only care about
// a handful of events, the same default-no-op-methods shape used for the
// class/method visitor, generalized here to the signature visitor.
type BaseVisitor struct{}

func (BaseVisitor) FormalTypeParameter(name string)   {}
func (BaseVisitor) ClassBound()                       {}
func (BaseVisitor) InterfaceBound()                   {}
func (BaseVisitor) Superclass()                       {}
func (BaseVisitor) Interface()                        {}
func (BaseVisitor) Parameter()                        {}
func (BaseVisitor) Return()                           {}
func (BaseVisitor) Exception()                        {}
func (BaseVisitor) BaseType(c byte)                   {}
func (BaseVisitor) TypeVariable(name string)          {}
func (BaseVisitor) ArrayType()                        {}
func (BaseVisitor) ClassType(internalName string)     {}
func (BaseVisitor) InnerClassType(name string)        {}
func (BaseVisitor) TypeArgument()                     {}
func (BaseVisitor) TypeArgumentBound(wildcard byte)   {}
func (BaseVisitor) End()                              {}

var _ Visitor = BaseVisitor{}
