// Package classfile holds the tree-model consumer/producer contract
// external class-file readers and writers drive and are driven by: a
// method's body (instructions, try/catch blocks, local-variable table,
// line numbers, frames) and the class that contains it. The wire codec
// itself — constant-pool encoding, attribute serialization — is an
// external collaborator; this package only holds the tree the codec
// builds and walks.
package classfile

import "clasm/bytecode"

// ClassVisitor is driven by a class-file reader, one call per class-file
// structure, in the order a reader naturally encounters them.
// Embedding BaseClassVisitor gives every method a no-op default so a
// caller only needs to override the handful it cares about.
type ClassVisitor interface {
	Visit(version, access int, name, signature, superName string, interfaces []string)
	VisitSource(source, debug string)
	VisitModule(name string, access int, version string)
	VisitOuterClass(owner, name, descriptor string)
	VisitNestHost(nestHost string)
	VisitNestMember(nestMember string)
	VisitInnerClass(name, outerName, innerName string, access int)
	VisitField(access int, name, descriptor, signature string, value any) FieldVisitor
	VisitMethod(access int, name, descriptor, signature string, exceptions []string) MethodVisitor
	VisitEnd()
}

// BaseClassVisitor implements ClassVisitor with no-op methods.
type BaseClassVisitor struct{}

func (BaseClassVisitor) Visit(version, access int, name, signature, superName string, interfaces []string) {
}
func (BaseClassVisitor) VisitSource(source, debug string)                 {}
func (BaseClassVisitor) VisitModule(name string, access int, version string) {}
func (BaseClassVisitor) VisitOuterClass(owner, name, descriptor string)   {}
func (BaseClassVisitor) VisitNestHost(nestHost string)                   {}
func (BaseClassVisitor) VisitNestMember(nestMember string)                {}
func (BaseClassVisitor) VisitInnerClass(name, outerName, innerName string, access int) {}
func (BaseClassVisitor) VisitField(access int, name, descriptor, signature string, value any) FieldVisitor {
	return nil
}
func (BaseClassVisitor) VisitMethod(access int, name, descriptor, signature string, exceptions []string) MethodVisitor {
	return nil
}
func (BaseClassVisitor) VisitEnd() {}

var _ ClassVisitor = BaseClassVisitor{}

// FieldVisitor is driven once per field; it carries no bytecode of its
// own, so its contract is thin compared to MethodVisitor.
type FieldVisitor interface {
	VisitEnd()
}

// BaseFieldVisitor implements FieldVisitor with a no-op VisitEnd.
type BaseFieldVisitor struct{}

func (BaseFieldVisitor) VisitEnd() {}

var _ FieldVisitor = BaseFieldVisitor{}

// MethodVisitor is driven by a class-file reader with one call per
// instruction or method-level attribute, in code order. Every insn
// argument matches JVMS semantics for the corresponding instruction.
type MethodVisitor interface {
	VisitCode()
	VisitFrame(frameType bytecode.FrameType, locals []any, stack []any)
	VisitInsn(op bytecode.Opcode)
	VisitIntInsn(op bytecode.Opcode, operand int)
	VisitVarInsn(op bytecode.Opcode, v int)
	VisitTypeInsn(op bytecode.Opcode, internalName string)
	VisitFieldInsn(op bytecode.Opcode, owner, name, descriptor string)
	VisitMethodInsn(op bytecode.Opcode, owner, name, descriptor string, itf bool)
	VisitInvokeDynamicInsn(name, descriptor string, bsm bytecode.Handle, args []any)
	VisitJumpInsn(op bytecode.Opcode, target *bytecode.Label)
	VisitLabel(l *bytecode.Label)
	VisitLdcInsn(value any)
	VisitIincInsn(v, incr int)
	VisitTableSwitchInsn(min, max int, dflt *bytecode.Label, labels []*bytecode.Label)
	VisitLookupSwitchInsn(dflt *bytecode.Label, keys []int, labels []*bytecode.Label)
	VisitMultiANewArrayInsn(descriptor string, dims int)
	VisitTryCatchBlock(start, end, handler *bytecode.Label, catchType string)
	VisitLocalVariable(name, descriptor, signature string, start, end *bytecode.Label, index int)
	VisitLineNumber(line int, start *bytecode.Label)
	VisitMaxs(maxStack, maxLocals int)
	VisitEnd()
}

// BaseMethodVisitor implements MethodVisitor with no-op methods.
type BaseMethodVisitor struct{}

func (BaseMethodVisitor) VisitCode()                                                     {}
func (BaseMethodVisitor) VisitFrame(frameType bytecode.FrameType, locals []any, stack []any) {}
func (BaseMethodVisitor) VisitInsn(op bytecode.Opcode)                                   {}
func (BaseMethodVisitor) VisitIntInsn(op bytecode.Opcode, operand int)                   {}
func (BaseMethodVisitor) VisitVarInsn(op bytecode.Opcode, v int)                         {}
func (BaseMethodVisitor) VisitTypeInsn(op bytecode.Opcode, internalName string)          {}
func (BaseMethodVisitor) VisitFieldInsn(op bytecode.Opcode, owner, name, descriptor string) {}
func (BaseMethodVisitor) VisitMethodInsn(op bytecode.Opcode, owner, name, descriptor string, itf bool) {
}
func (BaseMethodVisitor) VisitInvokeDynamicInsn(name, descriptor string, bsm bytecode.Handle, args []any) {
}
func (BaseMethodVisitor) VisitJumpInsn(op bytecode.Opcode, target *bytecode.Label) {}
func (BaseMethodVisitor) VisitLabel(l *bytecode.Label)                             {}
func (BaseMethodVisitor) VisitLdcInsn(value any)                                   {}
func (BaseMethodVisitor) VisitIincInsn(v, incr int)                                {}
func (BaseMethodVisitor) VisitTableSwitchInsn(min, max int, dflt *bytecode.Label, labels []*bytecode.Label) {
}
func (BaseMethodVisitor) VisitLookupSwitchInsn(dflt *bytecode.Label, keys []int, labels []*bytecode.Label) {
}
func (BaseMethodVisitor) VisitMultiANewArrayInsn(descriptor string, dims int) {}
func (BaseMethodVisitor) VisitTryCatchBlock(start, end, handler *bytecode.Label, catchType string) {
}
func (BaseMethodVisitor) VisitLocalVariable(name, descriptor, signature string, start, end *bytecode.Label, index int) {
}
func (BaseMethodVisitor) VisitLineNumber(line int, start *bytecode.Label) {}
func (BaseMethodVisitor) VisitMaxs(maxStack, maxLocals int)              {}
func (BaseMethodVisitor) VisitEnd()                                      {}

var _ MethodVisitor = BaseMethodVisitor{}
