package classfile

import "clasm/bytecode"

// TryCatchBlock is a (start, end, handler, type?) record: any exception
// assignable to catchType raised in [start, end) transfers control to
// handler with a single-element operand stack. catchType == "" means
// catch-all (finally/synchronized blocks compile this way).
type TryCatchBlock struct {
	Start, End, Handler *bytecode.Label
	CatchType            string
}

// LocalVariableEntry is one row of a method's LocalVariableTable
// attribute: the name/descriptor/signature binding for local slot Index,
// valid over [Start, End).
type LocalVariableEntry struct {
	Name, Descriptor, Signature string
	Start, End                  *bytecode.Label
	Index                       int
}

// MethodNode is a method body container: it holds the instruction
// list plus everything else attached to a Code attribute, and it
// implements MethodVisitor so an external reader can build one by
// visiting it directly — the same external-visitor-builds-a-tree shape
// the signature parser drives a Writer with, just against a richer event
// set.
type MethodNode struct {
	Access     int
	Name       string
	Descriptor string
	Signature  string
	Exceptions []string

	Instructions   *bytecode.InstructionList
	TryCatchBlocks []TryCatchBlock
	LocalVariables []LocalVariableEntry
	MaxStack       int
	MaxLocals      int
}

var _ MethodVisitor = (*MethodNode)(nil)

// NewMethodNode returns an empty method body ready to be driven by a
// MethodVisitor event stream.
func NewMethodNode(access int, name, descriptor, signature string, exceptions []string) *MethodNode {
	return &MethodNode{
		Access:       access,
		Name:         name,
		Descriptor:   descriptor,
		Signature:    signature,
		Exceptions:   append([]string(nil), exceptions...),
		Instructions: bytecode.NewInstructionList(),
	}
}

func (m *MethodNode) VisitCode() {}

func (m *MethodNode) VisitFrame(frameType bytecode.FrameType, locals []any, stack []any) {
	m.Instructions.PushBack(bytecode.NewFrameInsn(frameType, locals, stack))
}

func (m *MethodNode) VisitInsn(op bytecode.Opcode) {
	m.Instructions.PushBack(bytecode.NewSimpleInsn(op))
}

func (m *MethodNode) VisitIntInsn(op bytecode.Opcode, operand int) {
	m.Instructions.PushBack(bytecode.NewIntInsn(op, operand))
}

func (m *MethodNode) VisitVarInsn(op bytecode.Opcode, v int) {
	m.Instructions.PushBack(bytecode.NewVarInsn(op, v))
}

func (m *MethodNode) VisitTypeInsn(op bytecode.Opcode, internalName string) {
	m.Instructions.PushBack(bytecode.NewTypeInsn(op, internalName))
}

func (m *MethodNode) VisitFieldInsn(op bytecode.Opcode, owner, name, descriptor string) {
	m.Instructions.PushBack(bytecode.NewFieldInsn(op, owner, name, descriptor))
}

func (m *MethodNode) VisitMethodInsn(op bytecode.Opcode, owner, name, descriptor string, itf bool) {
	m.Instructions.PushBack(bytecode.NewMethodInsn(op, owner, name, descriptor, itf))
}

func (m *MethodNode) VisitInvokeDynamicInsn(name, descriptor string, bsm bytecode.Handle, args []any) {
	m.Instructions.PushBack(bytecode.NewInvokeDynamicInsn(name, descriptor, bsm, args))
}

func (m *MethodNode) VisitJumpInsn(op bytecode.Opcode, target *bytecode.Label) {
	m.Instructions.PushBack(bytecode.NewJumpInsn(op, target))
}

func (m *MethodNode) VisitLabel(l *bytecode.Label) {
	m.Instructions.PushBack(bytecode.NewLabelInsn(l))
}

func (m *MethodNode) VisitLdcInsn(value any) {
	m.Instructions.PushBack(bytecode.NewLdcInsn(value))
}

func (m *MethodNode) VisitIincInsn(v, incr int) {
	m.Instructions.PushBack(bytecode.NewIincInsn(v, incr))
}

func (m *MethodNode) VisitTableSwitchInsn(min, max int, dflt *bytecode.Label, labels []*bytecode.Label) {
	m.Instructions.PushBack(bytecode.NewTableSwitchInsn(min, max, dflt, labels))
}

func (m *MethodNode) VisitLookupSwitchInsn(dflt *bytecode.Label, keys []int, labels []*bytecode.Label) {
	m.Instructions.PushBack(bytecode.NewLookupSwitchInsn(dflt, keys, labels))
}

func (m *MethodNode) VisitMultiANewArrayInsn(descriptor string, dims int) {
	m.Instructions.PushBack(bytecode.NewMultiANewArrayInsn(descriptor, dims))
}

func (m *MethodNode) VisitTryCatchBlock(start, end, handler *bytecode.Label, catchType string) {
	m.TryCatchBlocks = append(m.TryCatchBlocks, TryCatchBlock{
		Start: start, End: end, Handler: handler, CatchType: catchType,
	})
}

func (m *MethodNode) VisitLocalVariable(name, descriptor, signature string, start, end *bytecode.Label, index int) {
	m.LocalVariables = append(m.LocalVariables, LocalVariableEntry{
		Name: name, Descriptor: descriptor, Signature: signature,
		Start: start, End: end, Index: index,
	})
}

func (m *MethodNode) VisitLineNumber(line int, start *bytecode.Label) {
	m.Instructions.PushBack(bytecode.NewLineNumberInsn(line, start))
}

func (m *MethodNode) VisitMaxs(maxStack, maxLocals int) {
	m.MaxStack, m.MaxLocals = maxStack, maxLocals
}

func (m *MethodNode) VisitEnd() {}

// IsAbstractOrNative reports whether this method carries no Code
// attribute to analyze (access flags 0x0400 ABSTRACT or 0x0100 NATIVE),
// matching the analyzer's skip-and-return-empty rule for such methods.
func (m *MethodNode) IsAbstractOrNative() bool {
	const accAbstract, accNative = 0x0400, 0x0100
	return m.Access&accAbstract != 0 || m.Access&accNative != 0
}

// Accept drives v with this method's full event history, reconstructing
// the sequence a reader would have produced — used by a class-file
// writer (external) or by anything else that wants to observe the tree
// through the same visitor contract it was populated with.
func (m *MethodNode) Accept(v MethodVisitor) {
	v.VisitCode()
	m.Instructions.Accept(func(n bytecode.Insn) { acceptInsn(n, v) })
	for _, tcb := range m.TryCatchBlocks {
		v.VisitTryCatchBlock(tcb.Start, tcb.End, tcb.Handler, tcb.CatchType)
	}
	for _, lv := range m.LocalVariables {
		v.VisitLocalVariable(lv.Name, lv.Descriptor, lv.Signature, lv.Start, lv.End, lv.Index)
	}
	v.VisitMaxs(m.MaxStack, m.MaxLocals)
	v.VisitEnd()
}

func acceptInsn(n bytecode.Insn, v MethodVisitor) {
	switch insn := n.(type) {
	case *bytecode.SimpleInsn:
		v.VisitInsn(insn.Op)
	case *bytecode.IntInsn:
		v.VisitIntInsn(insn.Op, insn.Operand)
	case *bytecode.VarInsn:
		v.VisitVarInsn(insn.Op, insn.Var)
	case *bytecode.TypeInsn:
		v.VisitTypeInsn(insn.Op, insn.InternalName)
	case *bytecode.FieldInsn:
		v.VisitFieldInsn(insn.Op, insn.Owner, insn.Name, insn.Descriptor)
	case *bytecode.MethodInsn:
		v.VisitMethodInsn(insn.Op, insn.Owner, insn.Name, insn.Descriptor, insn.Itf)
	case *bytecode.InvokeDynamicInsn:
		v.VisitInvokeDynamicInsn(insn.Name, insn.Descriptor, insn.BootstrapMethod, insn.BootstrapArgs)
	case *bytecode.JumpInsn:
		v.VisitJumpInsn(insn.Op, insn.Target)
	case *bytecode.LabelInsn:
		v.VisitLabel(insn.Label)
	case *bytecode.LineNumberInsn:
		v.VisitLineNumber(insn.Line, insn.Start)
	case *bytecode.IincInsn:
		v.VisitIincInsn(insn.Var, insn.Incr)
	case *bytecode.LdcInsn:
		v.VisitLdcInsn(insn.Value)
	case *bytecode.TableSwitchInsn:
		v.VisitTableSwitchInsn(insn.Min, insn.Max, insn.Default, insn.Labels)
	case *bytecode.LookupSwitchInsn:
		v.VisitLookupSwitchInsn(insn.Default, insn.Keys, insn.Labels)
	case *bytecode.MultiANewArrayInsn:
		v.VisitMultiANewArrayInsn(insn.Descriptor, insn.Dimensions)
	case *bytecode.FrameInsn:
		v.VisitFrame(insn.Type, insn.Locals, insn.Stack)
	}
}
