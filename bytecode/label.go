package bytecode

// Label is an identity-only marker used as an instruction target. It is
// owned by exactly one method body; try/catch blocks, jump instructions,
// the local-variable table, and line-number entries all share references
// to the same Label values rather than copying them. Labels are never
// mutated; InstructionList.ResetLabels only invalidates the list's index
// cache.
//
// A Label carries no resolved state of its own between analyses: the
// index it resolves to during analysis lives on the LabelInsn pseudo-node
// the label marks in the instruction list, not on the Label itself. This
// keeps Label a pure identity token, safe to hand out to as many
// collaborators as need to reference the same target.
type Label struct {
	// name is optional, for debug output only; labels are compared by
	// identity (pointer equality), never by name.
	name string
}

// NewLabel returns a fresh, unresolved Label.
func NewLabel() *Label { return &Label{} }

// NewNamedLabel returns a fresh Label carrying a debug name.
func NewNamedLabel(name string) *Label { return &Label{name: name} }

func (l *Label) String() string {
	if l == nil {
		return "<nil label>"
	}
	if l.name != "" {
		return l.name
	}
	return "L?"
}
