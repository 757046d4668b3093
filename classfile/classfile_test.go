package classfile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clasm/bytecode"
	"clasm/classfile"
)

func TestMethodNodeRecordsInstructionsInOrder(t *testing.T) {
	m := classfile.NewMethodNode(0, "add", "(II)I", "", nil)
	m.VisitCode()
	m.VisitVarInsn(bytecode.ILOAD, 0)
	m.VisitVarInsn(bytecode.ILOAD, 1)
	m.VisitInsn(bytecode.IADD)
	m.VisitInsn(bytecode.IRETURN)
	m.VisitMaxs(2, 2)
	m.VisitEnd()

	require.Equal(t, 4, m.Instructions.Len())
	ops := m.Instructions.ToArray()
	assert.Equal(t, bytecode.KindVar, ops[0].Kind())
	assert.Equal(t, bytecode.KindSimple, ops[2].Kind())
	assert.Equal(t, 2, m.MaxStack)
	assert.Equal(t, 2, m.MaxLocals)
}

func TestMethodNodeTryCatchAndLocalVariable(t *testing.T) {
	m := classfile.NewMethodNode(0, "risky", "()V", "", []string{"java/io/IOException"})
	start := bytecode.NewNamedLabel("start")
	end := bytecode.NewNamedLabel("end")
	handler := bytecode.NewNamedLabel("handler")

	m.VisitTryCatchBlock(start, end, handler, "java/lang/Exception")
	m.VisitLocalVariable("x", "I", "", start, end, 1)

	require.Len(t, m.TryCatchBlocks, 1)
	assert.Same(t, handler, m.TryCatchBlocks[0].Handler)
	require.Len(t, m.LocalVariables, 1)
	assert.Equal(t, "x", m.LocalVariables[0].Name)
	assert.Equal(t, []string{"java/io/IOException"}, m.Exceptions)
}

// recordingMethodVisitor mirrors the recordingVisitor in signature_test.go:
// it records the event tags produced by MethodNode.Accept to assert
// round-trip fidelity through the visitor contract.
type recordingMethodVisitor struct {
	classfile.BaseMethodVisitor
	events []string
}

func (r *recordingMethodVisitor) VisitInsn(op bytecode.Opcode) {
	r.events = append(r.events, "insn")
}
func (r *recordingMethodVisitor) VisitVarInsn(op bytecode.Opcode, v int) {
	r.events = append(r.events, "var")
}
func (r *recordingMethodVisitor) VisitMaxs(maxStack, maxLocals int) {
	r.events = append(r.events, "maxs")
}
func (r *recordingMethodVisitor) VisitEnd() {
	r.events = append(r.events, "end")
}

func TestMethodNodeAcceptReplaysEvents(t *testing.T) {
	m := classfile.NewMethodNode(0, "noop", "()V", "", nil)
	m.VisitCode()
	m.VisitVarInsn(bytecode.ALOAD, 0)
	m.VisitInsn(bytecode.RETURN)
	m.VisitMaxs(1, 1)
	m.VisitEnd()

	rec := &recordingMethodVisitor{}
	m.Accept(rec)
	assert.Equal(t, []string{"var", "insn", "maxs", "end"}, rec.events)
}

func TestClassNodeBuildsFieldsAndMethods(t *testing.T) {
	c := classfile.NewClassNode()
	c.Visit(61, 0x21, "com/example/Foo", "", "java/lang/Object", nil)
	fv := c.VisitField(0x2, "count", "I", "", nil)
	require.NotNil(t, fv)
	fv.VisitEnd()

	mv := c.VisitMethod(0x1, "<init>", "()V", "", nil)
	require.NotNil(t, mv)
	mv.VisitCode()
	mv.VisitVarInsn(bytecode.ALOAD, 0)
	mv.VisitMethodInsn(bytecode.INVOKESPECIAL, "java/lang/Object", "<init>", "()V", false)
	mv.VisitInsn(bytecode.RETURN)
	mv.VisitMaxs(1, 1)
	mv.VisitEnd()
	c.VisitEnd()

	require.Len(t, c.Fields, 1)
	assert.Equal(t, "count", c.Fields[0].Name)
	require.Len(t, c.Methods, 1)
	assert.Equal(t, 3, c.Methods[0].Instructions.Len())
}
