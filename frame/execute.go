package frame

import (
	"clasm/bytecode"
	"clasm/descriptor"
	clasmerrors "clasm/errors"
	"clasm/interpreter"
)

// Execute simulates insn's stack and local effects on f. Pseudo-
// instructions (label, line number, frame) and GOTO have no frame
// effect; every other opcode family dispatches to the matching
// Interpreter operation as described by the opcode groupings below.
func (f *Frame) Execute(insn bytecode.Insn, interp interpreter.Interpreter) error {
	switch n := insn.(type) {
	case *bytecode.LabelInsn, *bytecode.LineNumberInsn, *bytecode.FrameInsn:
		return nil
	case *bytecode.SimpleInsn:
		return f.executeSimple(n, interp)
	case *bytecode.IntInsn:
		return f.executeInt(n, interp)
	case *bytecode.VarInsn:
		return f.executeVar(n, interp)
	case *bytecode.IincInsn:
		return nil // abstract value of the local is unaffected by an increment
	case *bytecode.LdcInsn:
		return f.executeConstantProducing(n, interp)
	case *bytecode.TypeInsn:
		return f.executeType(n, interp)
	case *bytecode.FieldInsn:
		return f.executeField(n, interp)
	case *bytecode.MethodInsn:
		return f.executeMethod(n, interp)
	case *bytecode.InvokeDynamicInsn:
		return f.executeInvokeDynamic(n, interp)
	case *bytecode.JumpInsn:
		return f.executeJump(n, interp)
	case *bytecode.TableSwitchInsn:
		return f.popDiscard(interp, n)
	case *bytecode.LookupSwitchInsn:
		return f.popDiscard(interp, n)
	case *bytecode.MultiANewArrayInsn:
		return f.executeMultiANewArray(n, interp)
	}
	return clasmerrors.Newf(clasmerrors.UnsupportedFeature, "unrecognized instruction node %T", insn)
}

func (f *Frame) popDiscard(interp interpreter.Interpreter, insn bytecode.Insn) error {
	v, err := f.pop()
	if err != nil {
		return err
	}
	_, err = interp.UnaryOperation(insn, v)
	return err
}

func (f *Frame) executeConstantProducing(insn bytecode.Insn, interp interpreter.Interpreter) error {
	v, err := interp.NewOperation(insn)
	if err != nil {
		return err
	}
	return f.push(v)
}

func (f *Frame) executeInt(insn *bytecode.IntInsn, interp interpreter.Interpreter) error {
	switch insn.Op {
	case bytecode.BIPUSH, bytecode.SIPUSH:
		return f.executeConstantProducing(insn, interp)
	case bytecode.NEWARRAY:
		return f.unary(insn, interp)
	}
	return clasmerrors.Newf(clasmerrors.UnsupportedFeature, "unrecognized int opcode %v", insn.Op)
}

func (f *Frame) executeSimple(insn *bytecode.SimpleInsn, interp interpreter.Interpreter) error {
	switch insn.Op {
	case bytecode.NOP:
		return nil
	case bytecode.ACONST_NULL, bytecode.ICONST_M1, bytecode.ICONST_0, bytecode.ICONST_1,
		bytecode.ICONST_2, bytecode.ICONST_3, bytecode.ICONST_4, bytecode.ICONST_5,
		bytecode.LCONST_0, bytecode.LCONST_1, bytecode.FCONST_0, bytecode.FCONST_1,
		bytecode.FCONST_2, bytecode.DCONST_0, bytecode.DCONST_1:
		return f.executeConstantProducing(insn, interp)
	case bytecode.IALOAD, bytecode.LALOAD, bytecode.FALOAD, bytecode.DALOAD, bytecode.AALOAD,
		bytecode.BALOAD, bytecode.CALOAD, bytecode.SALOAD:
		return f.binary(insn, interp)
	case bytecode.IASTORE, bytecode.LASTORE, bytecode.FASTORE, bytecode.DASTORE, bytecode.AASTORE,
		bytecode.BASTORE, bytecode.CASTORE, bytecode.SASTORE:
		return f.ternaryNoPush(insn, interp)
	case bytecode.POP:
		return f.executePop()
	case bytecode.POP2:
		return f.executePop2()
	case bytecode.DUP, bytecode.DUP_X1, bytecode.DUP_X2, bytecode.DUP2, bytecode.DUP2_X1, bytecode.DUP2_X2, bytecode.SWAP:
		return f.executeStackOp(insn.Op)
	case bytecode.IADD, bytecode.LADD, bytecode.FADD, bytecode.DADD,
		bytecode.ISUB, bytecode.LSUB, bytecode.FSUB, bytecode.DSUB,
		bytecode.IMUL, bytecode.LMUL, bytecode.FMUL, bytecode.DMUL,
		bytecode.IDIV, bytecode.LDIV, bytecode.FDIV, bytecode.DDIV,
		bytecode.IREM, bytecode.LREM, bytecode.FREM, bytecode.DREM,
		bytecode.ISHL, bytecode.LSHL, bytecode.ISHR, bytecode.LSHR, bytecode.IUSHR, bytecode.LUSHR,
		bytecode.IAND, bytecode.LAND, bytecode.IOR, bytecode.LOR, bytecode.IXOR, bytecode.LXOR,
		bytecode.LCMP, bytecode.FCMPL, bytecode.FCMPG, bytecode.DCMPL, bytecode.DCMPG:
		return f.binary(insn, interp)
	case bytecode.INEG, bytecode.LNEG, bytecode.FNEG, bytecode.DNEG,
		bytecode.I2L, bytecode.I2F, bytecode.I2D, bytecode.L2I, bytecode.L2F, bytecode.L2D,
		bytecode.F2I, bytecode.F2L, bytecode.F2D, bytecode.D2I, bytecode.D2L, bytecode.D2F,
		bytecode.I2B, bytecode.I2C, bytecode.I2S, bytecode.ARRAYLENGTH:
		return f.unary(insn, interp)
	case bytecode.IFEQ, bytecode.IFNE, bytecode.IFLT, bytecode.IFGE, bytecode.IFGT, bytecode.IFLE:
		return f.popDiscard(interp, insn)
	case bytecode.IF_ICMPEQ, bytecode.IF_ICMPNE, bytecode.IF_ICMPLT, bytecode.IF_ICMPGE,
		bytecode.IF_ICMPGT, bytecode.IF_ICMPLE, bytecode.IF_ACMPEQ, bytecode.IF_ACMPNE:
		return f.binaryNoPush(insn, interp)
	case bytecode.IRETURN, bytecode.LRETURN, bytecode.FRETURN, bytecode.DRETURN, bytecode.ARETURN:
		return f.executeReturn(insn, interp)
	case bytecode.RETURN:
		return nil
	case bytecode.ATHROW:
		return f.popDiscard(interp, insn)
	case bytecode.MONITORENTER, bytecode.MONITOREXIT:
		return f.popDiscard(interp, insn)
	}
	return clasmerrors.Newf(clasmerrors.UnsupportedFeature, "unrecognized simple opcode %v", insn.Op)
}

func (f *Frame) binary(insn bytecode.Insn, interp interpreter.Interpreter) error {
	v2, err := f.pop()
	if err != nil {
		return err
	}
	v1, err := f.pop()
	if err != nil {
		return err
	}
	result, err := interp.BinaryOperation(insn, v1, v2)
	if err != nil {
		return err
	}
	return f.push(result)
}

func (f *Frame) binaryNoPush(insn bytecode.Insn, interp interpreter.Interpreter) error {
	v2, err := f.pop()
	if err != nil {
		return err
	}
	v1, err := f.pop()
	if err != nil {
		return err
	}
	_, err = interp.BinaryOperation(insn, v1, v2)
	return err
}

func (f *Frame) unary(insn bytecode.Insn, interp interpreter.Interpreter) error {
	v, err := f.pop()
	if err != nil {
		return err
	}
	result, err := interp.UnaryOperation(insn, v)
	if err != nil {
		return err
	}
	return f.push(result)
}

func (f *Frame) ternaryNoPush(insn bytecode.Insn, interp interpreter.Interpreter) error {
	v3, err := f.pop()
	if err != nil {
		return err
	}
	v2, err := f.pop()
	if err != nil {
		return err
	}
	v1, err := f.pop()
	if err != nil {
		return err
	}
	_, err = interp.TernaryOperation(insn, v1, v2, v3)
	return err
}

func (f *Frame) executePop() error {
	size, err := f.topSize()
	if err != nil {
		return err
	}
	if size != 1 {
		return clasmerrors.New(clasmerrors.IllegalStack, "POP requires a size-1 value on top of the stack")
	}
	_, err = f.pop()
	return err
}

func (f *Frame) executePop2() error {
	size, err := f.topSize()
	if err != nil {
		return err
	}
	if size == 2 {
		_, err = f.pop()
		return err
	}
	if _, err := f.pop(); err != nil {
		return err
	}
	size2, err := f.topSize()
	if err != nil {
		return clasmerrors.New(clasmerrors.IllegalStack, "POP2 requires two size-1 values or one size-2 value")
	}
	if size2 != 1 {
		return clasmerrors.New(clasmerrors.IllegalStack, "POP2 requires two size-1 values or one size-2 value")
	}
	_, err = f.pop()
	return err
}

// executeStackOp implements DUP/DUP_X1/DUP_X2/DUP2/DUP2_X1/DUP2_X2/SWAP
// by operating directly on the underlying word array, since these
// opcodes shuffle existing values rather than deriving a new one through
// the interpreter.
func (f *Frame) executeStackOp(op bytecode.Opcode) error {
	raw := func(n int) ([]interpreter.Value, error) {
		if f.stackHeight < n {
			return nil, clasmerrors.New(clasmerrors.IllegalStack, "operand stack underflow")
		}
		out := make([]interpreter.Value, n)
		copy(out, f.stack[f.stackHeight-n:f.stackHeight])
		return out, nil
	}
	insertAt := func(pos int, vs []interpreter.Value) {
		tail := append([]interpreter.Value(nil), f.stack[pos:f.stackHeight]...)
		copy(f.stack[pos:], vs)
		copy(f.stack[pos+len(vs):], tail)
		f.stackHeight += len(vs)
	}

	switch op {
	case bytecode.SWAP:
		w, err := raw(2)
		if err != nil {
			return err
		}
		if isFiller(w[0]) || isFiller(w[1]) {
			return clasmerrors.New(clasmerrors.IllegalStack, "SWAP requires two size-1 values")
		}
		f.stack[f.stackHeight-2], f.stack[f.stackHeight-1] = w[1], w[0]
		return nil
	case bytecode.DUP:
		w, err := raw(1)
		if err != nil {
			return err
		}
		if isFiller(w[0]) {
			return clasmerrors.New(clasmerrors.IllegalStack, "DUP requires a size-1 value")
		}
		insertAt(f.stackHeight, w)
		return nil
	case bytecode.DUP_X1:
		w, err := raw(2)
		if err != nil {
			return err
		}
		if isFiller(w[0]) || isFiller(w[1]) {
			return clasmerrors.New(clasmerrors.IllegalStack, "DUP_X1 requires two size-1 values")
		}
		f.stackHeight -= 2
		insertAt(f.stackHeight, []interpreter.Value{w[1], w[0], w[1]})
		return nil
	case bytecode.DUP_X2:
		w, err := raw(3)
		if err != nil {
			return err
		}
		if isFiller(w[0]) || isFiller(w[2]) {
			return clasmerrors.New(clasmerrors.IllegalStack, "DUP_X2 requires size-1 top over two size-1 (or one size-2 and one size-1)")
		}
		f.stackHeight -= 3
		insertAt(f.stackHeight, []interpreter.Value{w[2], w[0], w[1], w[2]})
		return nil
	case bytecode.DUP2:
		w, err := raw(2)
		if err != nil {
			return err
		}
		insertAt(f.stackHeight, w)
		return nil
	case bytecode.DUP2_X1:
		w, err := raw(3)
		if err != nil {
			return err
		}
		if isFiller(w[0]) {
			return clasmerrors.New(clasmerrors.IllegalStack, "DUP2_X1 requires a size-1 value beneath the duplicated pair")
		}
		f.stackHeight -= 3
		insertAt(f.stackHeight, []interpreter.Value{w[1], w[2], w[0], w[1], w[2]})
		return nil
	case bytecode.DUP2_X2:
		w, err := raw(4)
		if err != nil {
			return err
		}
		f.stackHeight -= 4
		insertAt(f.stackHeight, []interpreter.Value{w[2], w[3], w[0], w[1], w[2], w[3]})
		return nil
	}
	return clasmerrors.Newf(clasmerrors.UnsupportedFeature, "unrecognized stack opcode %v", op)
}

func (f *Frame) executeVar(insn *bytecode.VarInsn, interp interpreter.Interpreter) error {
	switch insn.Op {
	case bytecode.ILOAD, bytecode.LLOAD, bytecode.FLOAD, bytecode.DLOAD, bytecode.ALOAD:
		local, err := f.GetLocal(insn.Var)
		if err != nil {
			return err
		}
		v, err := interp.CopyOperation(insn, local)
		if err != nil {
			return err
		}
		return f.push(v)
	case bytecode.ISTORE, bytecode.LSTORE, bytecode.FSTORE, bytecode.DSTORE, bytecode.ASTORE:
		popped, err := f.pop()
		if err != nil {
			return err
		}
		v, err := interp.CopyOperation(insn, popped)
		if err != nil {
			return err
		}
		return f.SetLocal(insn.Var, v)
	case bytecode.RET:
		return nil
	}
	return clasmerrors.Newf(clasmerrors.UnsupportedFeature, "unrecognized var opcode %v", insn.Op)
}

func (f *Frame) executeType(insn *bytecode.TypeInsn, interp interpreter.Interpreter) error {
	switch insn.Op {
	case bytecode.NEW:
		return f.executeConstantProducing(insn, interp)
	case bytecode.ANEWARRAY, bytecode.CHECKCAST, bytecode.INSTANCEOF:
		return f.unary(insn, interp)
	}
	return clasmerrors.Newf(clasmerrors.UnsupportedFeature, "unrecognized type opcode %v", insn.Op)
}

func (f *Frame) executeField(insn *bytecode.FieldInsn, interp interpreter.Interpreter) error {
	switch insn.Op {
	case bytecode.GETSTATIC:
		return f.executeConstantProducing(insn, interp)
	case bytecode.PUTSTATIC:
		_, err := f.pop()
		if err != nil {
			return err
		}
		return nil
	case bytecode.GETFIELD:
		return f.unary(insn, interp)
	case bytecode.PUTFIELD:
		return f.binaryNoPush(insn, interp)
	}
	return clasmerrors.Newf(clasmerrors.UnsupportedFeature, "unrecognized field opcode %v", insn.Op)
}

func (f *Frame) executeMethod(insn *bytecode.MethodInsn, interp interpreter.Interpreter) error {
	desc, err := descriptor.ParseMethod(insn.Descriptor)
	if err != nil {
		return err
	}
	params := desc.ParameterTypes()
	nArgs := len(params)
	if insn.Op != bytecode.INVOKESTATIC {
		nArgs++
	}
	args := make([]interpreter.Value, nArgs)
	for i := nArgs - 1; i >= 0; i-- {
		v, err := f.pop()
		if err != nil {
			return err
		}
		args[i] = v
	}
	result, err := interp.NaryOperation(insn, args)
	if err != nil {
		return err
	}
	if desc.ReturnType().Sort() == descriptor.Void {
		return nil
	}
	return f.push(result)
}

func (f *Frame) executeInvokeDynamic(insn *bytecode.InvokeDynamicInsn, interp interpreter.Interpreter) error {
	desc, err := descriptor.ParseMethod(insn.Descriptor)
	if err != nil {
		return err
	}
	params := desc.ParameterTypes()
	args := make([]interpreter.Value, len(params))
	for i := len(params) - 1; i >= 0; i-- {
		v, err := f.pop()
		if err != nil {
			return err
		}
		args[i] = v
	}
	result, err := interp.NaryOperation(insn, args)
	if err != nil {
		return err
	}
	if desc.ReturnType().Sort() == descriptor.Void {
		return nil
	}
	return f.push(result)
}

func (f *Frame) executeJump(insn *bytecode.JumpInsn, interp interpreter.Interpreter) error {
	switch insn.Op {
	case bytecode.GOTO:
		return nil
	case bytecode.JSR:
		return f.executeConstantProducing(insn, interp)
	case bytecode.IFEQ, bytecode.IFNE, bytecode.IFLT, bytecode.IFGE, bytecode.IFGT, bytecode.IFLE,
		bytecode.IFNULL, bytecode.IFNONNULL:
		return f.popDiscard(interp, insn)
	case bytecode.IF_ICMPEQ, bytecode.IF_ICMPNE, bytecode.IF_ICMPLT, bytecode.IF_ICMPGE,
		bytecode.IF_ICMPGT, bytecode.IF_ICMPLE, bytecode.IF_ACMPEQ, bytecode.IF_ACMPNE:
		return f.binaryNoPush(insn, interp)
	}
	return clasmerrors.Newf(clasmerrors.UnsupportedFeature, "unrecognized jump opcode %v", insn.Op)
}

func (f *Frame) executeReturn(insn bytecode.Insn, interp interpreter.Interpreter) error {
	v, err := f.pop()
	if err != nil {
		return err
	}
	result, err := interp.UnaryOperation(insn, v)
	if err != nil {
		return err
	}
	return interp.ReturnOperation(insn, result, f.returnValue)
}

func (f *Frame) executeMultiANewArray(insn *bytecode.MultiANewArrayInsn, interp interpreter.Interpreter) error {
	args := make([]interpreter.Value, insn.Dimensions)
	for i := insn.Dimensions - 1; i >= 0; i-- {
		v, err := f.pop()
		if err != nil {
			return err
		}
		args[i] = v
	}
	result, err := interp.NaryOperation(insn, args)
	if err != nil {
		return err
	}
	return f.push(result)
}
