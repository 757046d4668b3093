package bytecode

// Kind discriminates the instruction-node variant families. Go has no
// sum types; this is the tag of a sum type emulated as a tagged-variant
// family, with per-variant fields carried on the concrete type.
type Kind int

const (
	KindSimple Kind = iota
	KindInt
	KindVar
	KindType
	KindField
	KindMethod
	KindInvokeDynamic
	KindJump
	KindLabel
	KindLineNumber
	KindIinc
	KindLdc
	KindTableSwitch
	KindLookupSwitch
	KindMultiANewArray
	KindFrame
)

// node is the uniform linked-list header shared by every instruction-node
// variant: back/forward links plus an index scratch field. It is never
// used on its own; every variant type embeds it by value and so promotes
// its (unexported, package-sealed) methods, making Insn a closed
// interface satisfiable only within this package.
type node struct {
	prev, next Insn
	owner      *InstructionList
	idx        int
}

func (n *node) linkPrev() Insn                { return n.prev }
func (n *node) linkNext() Insn                { return n.next }
func (n *node) setLinks(prev, next Insn)      { n.prev, n.next = prev, next }
func (n *node) ownerList() *InstructionList   { return n.owner }
func (n *node) setOwner(l *InstructionList)   { n.owner = l }
func (n *node) cachedIndex() int              { return n.idx }
func (n *node) setCachedIndex(i int)          { n.idx = i }

// Insn is any node in an InstructionList: a real instruction or a
// pseudo-instruction (label, line number, stack-map frame). The linkage
// methods are unexported so that only types declared in this package can
// implement Insn — the Go equivalent of a closed/sealed interface.
type Insn interface {
	Kind() Kind

	linkPrev() Insn
	linkNext() Insn
	setLinks(prev, next Insn)
	ownerList() *InstructionList
	setOwner(l *InstructionList)
	cachedIndex() int
	setCachedIndex(i int)
}

// Prev and Next expose the public, read-only view of an instruction's
// list neighbors (nil at the ends of the list).
func Prev(i Insn) Insn { return i.linkPrev() }
func Next(i Insn) Insn { return i.linkNext() }

// SimpleInsn is a zero-operand instruction (e.g. IADD, DUP, RETURN).
type SimpleInsn struct {
	node
	Op Opcode
}

func NewSimpleInsn(op Opcode) *SimpleInsn { return &SimpleInsn{Op: op} }
func (i *SimpleInsn) Kind() Kind          { return KindSimple }

// IntInsn carries a single integer operand: BIPUSH/SIPUSH's immediate
// value, or NEWARRAY's array-type code.
type IntInsn struct {
	node
	Op      Opcode
	Operand int
}

func NewIntInsn(op Opcode, operand int) *IntInsn { return &IntInsn{Op: op, Operand: operand} }
func (i *IntInsn) Kind() Kind                    { return KindInt }

// VarInsn addresses a local variable slot: *LOAD/*STORE, or RET.
type VarInsn struct {
	node
	Op  Opcode
	Var int
}

func NewVarInsn(op Opcode, v int) *VarInsn { return &VarInsn{Op: op, Var: v} }
func (i *VarInsn) Kind() Kind              { return KindVar }

// TypeInsn carries a class/array/interface internal name: NEW, ANEWARRAY,
// CHECKCAST, INSTANCEOF.
type TypeInsn struct {
	node
	Op           Opcode
	InternalName string
}

func NewTypeInsn(op Opcode, internalName string) *TypeInsn {
	return &TypeInsn{Op: op, InternalName: internalName}
}
func (i *TypeInsn) Kind() Kind { return KindType }

// FieldInsn is GETFIELD/PUTFIELD/GETSTATIC/PUTSTATIC.
type FieldInsn struct {
	node
	Op         Opcode
	Owner      string
	Name       string
	Descriptor string
}

func NewFieldInsn(op Opcode, owner, name, descriptor string) *FieldInsn {
	return &FieldInsn{Op: op, Owner: owner, Name: name, Descriptor: descriptor}
}
func (i *FieldInsn) Kind() Kind { return KindField }

// MethodInsn is INVOKEVIRTUAL/INVOKESPECIAL/INVOKESTATIC/INVOKEINTERFACE.
type MethodInsn struct {
	node
	Op         Opcode
	Owner      string
	Name       string
	Descriptor string
	Itf        bool
}

func NewMethodInsn(op Opcode, owner, name, descriptor string, itf bool) *MethodInsn {
	return &MethodInsn{Op: op, Owner: owner, Name: name, Descriptor: descriptor, Itf: itf}
}
func (i *MethodInsn) Kind() Kind { return KindMethod }

// Handle is a method-handle constant (JVMS §4.4.8), used as the bootstrap
// method reference of an InvokeDynamicInsn.
type Handle struct {
	Tag        int
	Owner      string
	Name       string
	Descriptor string
	Itf        bool
}

// InvokeDynamicInsn is INVOKEDYNAMIC.
type InvokeDynamicInsn struct {
	node
	Name           string
	Descriptor     string
	BootstrapMethod Handle
	BootstrapArgs  []any
}

func NewInvokeDynamicInsn(name, descriptor string, bsm Handle, args []any) *InvokeDynamicInsn {
	return &InvokeDynamicInsn{Name: name, Descriptor: descriptor, BootstrapMethod: bsm, BootstrapArgs: args}
}
func (i *InvokeDynamicInsn) Kind() Kind { return KindInvokeDynamic }

// JumpInsn is any instruction with a single label operand: GOTO, JSR, the
// IF* family, and IFNULL/IFNONNULL.
type JumpInsn struct {
	node
	Op     Opcode
	Target *Label
}

func NewJumpInsn(op Opcode, target *Label) *JumpInsn { return &JumpInsn{Op: op, Target: target} }
func (i *JumpInsn) Kind() Kind                       { return KindJump }

// LabelInsn is the pseudo-node a Label resolves to a position in the
// instruction list; it marks the index a jump/switch/try-catch/
// local-variable/line-number reference to this Label resolves to.
type LabelInsn struct {
	node
	Label *Label
}

func NewLabelInsn(l *Label) *LabelInsn { return &LabelInsn{Label: l} }
func (i *LabelInsn) Kind() Kind        { return KindLabel }

// LineNumberInsn is a pseudo-node recording that the instructions from its
// position up to the next LineNumberInsn originate from source Line,
// starting at Start.
type LineNumberInsn struct {
	node
	Line  int
	Start *Label
}

func NewLineNumberInsn(line int, start *Label) *LineNumberInsn {
	return &LineNumberInsn{Line: line, Start: start}
}
func (i *LineNumberInsn) Kind() Kind { return KindLineNumber }

// IincInsn is IINC.
type IincInsn struct {
	node
	Var  int
	Incr int
}

func NewIincInsn(v, incr int) *IincInsn { return &IincInsn{Var: v, Incr: incr} }
func (i *IincInsn) Kind() Kind          { return KindIinc }

// LdcInsn is LDC/LDC_W/LDC2_W, carrying a typed constant: int32, int64,
// float32, float64, string, or a descriptor.Type (for a class literal).
type LdcInsn struct {
	node
	Value any
}

func NewLdcInsn(value any) *LdcInsn { return &LdcInsn{Value: value} }
func (i *LdcInsn) Kind() Kind       { return KindLdc }

// TableSwitchInsn is TABLESWITCH.
type TableSwitchInsn struct {
	node
	Min     int
	Max     int
	Default *Label
	Labels  []*Label // one per key in [Min, Max]
}

func NewTableSwitchInsn(min, max int, dflt *Label, labels []*Label) *TableSwitchInsn {
	return &TableSwitchInsn{Min: min, Max: max, Default: dflt, Labels: append([]*Label(nil), labels...)}
}
func (i *TableSwitchInsn) Kind() Kind { return KindTableSwitch }

// LookupSwitchInsn is LOOKUPSWITCH.
type LookupSwitchInsn struct {
	node
	Default *Label
	Keys    []int
	Labels  []*Label // Labels[i] corresponds to Keys[i]
}

func NewLookupSwitchInsn(dflt *Label, keys []int, labels []*Label) *LookupSwitchInsn {
	return &LookupSwitchInsn{Default: dflt, Keys: append([]int(nil), keys...), Labels: append([]*Label(nil), labels...)}
}
func (i *LookupSwitchInsn) Kind() Kind { return KindLookupSwitch }

// MultiANewArrayInsn is MULTIANEWARRAY.
type MultiANewArrayInsn struct {
	node
	Descriptor string
	Dimensions int
}

func NewMultiANewArrayInsn(descriptor string, dims int) *MultiANewArrayInsn {
	return &MultiANewArrayInsn{Descriptor: descriptor, Dimensions: dims}
}
func (i *MultiANewArrayInsn) Kind() Kind { return KindMultiANewArray }

// FrameInsn is a stack-map frame pseudo-node, visited once per
// StackMapTable entry. Locals and Stack entries are verification-type
// values: descriptor.Type for a
// concrete type, or one of the sentinel markers defined by the class-file
// format for TOP/UNINITIALIZED_THIS/etc., left untyped (any) here since
// their concrete representation is an external reader/writer concern.
type FrameInsn struct {
	node
	Type   FrameType
	Locals []any
	Stack  []any
}

func NewFrameInsn(t FrameType, locals, stack []any) *FrameInsn {
	return &FrameInsn{Type: t, Locals: locals, Stack: stack}
}
func (i *FrameInsn) Kind() Kind { return KindFrame }
