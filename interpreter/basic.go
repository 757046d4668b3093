package interpreter

import (
	"clasm/bytecode"
	"clasm/descriptor"
	clasmerrors "clasm/errors"
)

// Sort is the category tag of a BasicValue: one of UNINITIALIZED, INT,
// FLOAT, LONG, DOUBLE, REFERENCE, or RETURN_ADDRESS.
type Sort int

const (
	SortUninitialized Sort = iota
	SortInt
	SortFloat
	SortLong
	SortDouble
	SortReference
	SortReturnAddress
)

// BasicValue is the seven-type abstraction: every basic value is one of
// the interned singletons below, so equality and identity coincide and
// Merge can compare results by == .
type BasicValue struct {
	sort Sort
}

func (v *BasicValue) SizeInWords() int {
	if v.sort == SortLong || v.sort == SortDouble {
		return 2
	}
	return 1
}

func (v *BasicValue) Sort() Sort { return v.sort }

var (
	Uninitialized  Value = &BasicValue{SortUninitialized}
	Int            Value = &BasicValue{SortInt}
	Float          Value = &BasicValue{SortFloat}
	Long           Value = &BasicValue{SortLong}
	Double         Value = &BasicValue{SortDouble}
	Reference      Value = &BasicValue{SortReference}
	ReturnAddress  Value = &BasicValue{SortReturnAddress}
)

func sortOfDescriptor(d string) (Value, error) {
	t, err := descriptor.Parse(d)
	if err != nil {
		return nil, err
	}
	return basicValueOfType(t), nil
}

func basicValueOfType(t descriptor.Type) Value {
	switch t.Sort() {
	case descriptor.Void:
		return Uninitialized
	case descriptor.Boolean, descriptor.Byte, descriptor.Char, descriptor.Short, descriptor.Int:
		return Int
	case descriptor.Float:
		return Float
	case descriptor.Long:
		return Long
	case descriptor.Double:
		return Double
	default:
		return Reference
	}
}

// BasicInterpreter implements Interpreter over the seven-type lattice.
// Its Merge never produces anything but one of the two
// inputs or Uninitialized: the lattice has height 2 (Uninitialized sits
// below everything; any mismatch between two non-uninitialized values
// has no common refinement and collapses straight to the bottom-most
// "don't know" marker), so the analyzer's fixpoint always terminates.
type BasicInterpreter struct{}

var _ Interpreter = BasicInterpreter{}

func (BasicInterpreter) NewValue(typ *TypeHint) Value {
	if typ == nil {
		return Uninitialized
	}
	v, err := sortOfDescriptor(typ.Descriptor)
	if err != nil {
		return Uninitialized
	}
	return v
}

func (BasicInterpreter) NewOperation(insn bytecode.Insn) (Value, error) {
	switch n := insn.(type) {
	case *bytecode.SimpleInsn:
		switch n.Op {
		case bytecode.ACONST_NULL:
			return Reference, nil
		case bytecode.ICONST_M1, bytecode.ICONST_0, bytecode.ICONST_1, bytecode.ICONST_2,
			bytecode.ICONST_3, bytecode.ICONST_4, bytecode.ICONST_5:
			return Int, nil
		case bytecode.LCONST_0, bytecode.LCONST_1:
			return Long, nil
		case bytecode.FCONST_0, bytecode.FCONST_1, bytecode.FCONST_2:
			return Float, nil
		case bytecode.DCONST_0, bytecode.DCONST_1:
			return Double, nil
		}
	case *bytecode.IntInsn:
		return Int, nil // BIPUSH/SIPUSH
	case *bytecode.LdcInsn:
		switch n.Value.(type) {
		case int32, int:
			return Int, nil
		case int64:
			return Long, nil
		case float32:
			return Float, nil
		case float64:
			return Double, nil
		case string:
			return Reference, nil
		case descriptor.Type:
			return Reference, nil
		default:
			return nil, clasmerrors.Newf(clasmerrors.UnsupportedFeature, "unsupported LDC operand type %T", n.Value)
		}
	case *bytecode.FieldInsn: // GETSTATIC
		return sortOfDescriptor(n.Descriptor)
	case *bytecode.TypeInsn: // NEW
		return Reference, nil
	case *bytecode.JumpInsn: // JSR
		return ReturnAddress, nil
	}
	return nil, clasmerrors.Newf(clasmerrors.IllegalStack, "instruction does not produce a value: %T", insn)
}

func (BasicInterpreter) CopyOperation(insn bytecode.Insn, v Value) (Value, error) {
	return v, nil
}

func (BasicInterpreter) UnaryOperation(insn bytecode.Insn, v Value) (Value, error) {
	switch n := insn.(type) {
	case *bytecode.SimpleInsn:
		switch n.Op {
		case bytecode.INEG, bytecode.L2I, bytecode.F2I, bytecode.D2I, bytecode.I2B, bytecode.I2C, bytecode.I2S,
			bytecode.ARRAYLENGTH:
			return Int, nil
		case bytecode.LNEG, bytecode.I2L, bytecode.F2L, bytecode.D2L:
			return Long, nil
		case bytecode.FNEG, bytecode.I2F, bytecode.L2F, bytecode.D2F:
			return Float, nil
		case bytecode.DNEG, bytecode.I2D, bytecode.L2D, bytecode.F2D:
			return Double, nil
		case bytecode.IFEQ, bytecode.IFNE, bytecode.IFLT, bytecode.IFGE, bytecode.IFGT, bytecode.IFLE,
			bytecode.ATHROW, bytecode.MONITORENTER, bytecode.MONITOREXIT:
			return Uninitialized, nil
		}
	case *bytecode.IntInsn: // NEWARRAY
		return Reference, nil
	case *bytecode.TypeInsn:
		switch n.Op {
		case bytecode.ANEWARRAY:
			return Reference, nil
		case bytecode.CHECKCAST:
			return Reference, nil
		case bytecode.INSTANCEOF:
			return Int, nil
		}
	case *bytecode.FieldInsn: // GETFIELD
		return sortOfDescriptor(n.Descriptor)
	case *bytecode.JumpInsn: // IFNULL/IFNONNULL and the IFxx family
		return Uninitialized, nil
	case *bytecode.TableSwitchInsn, *bytecode.LookupSwitchInsn:
		return Uninitialized, nil
	}
	return Uninitialized, nil
}

func (BasicInterpreter) BinaryOperation(insn bytecode.Insn, v1, v2 Value) (Value, error) {
	switch n := insn.(type) {
	case *bytecode.SimpleInsn:
		switch n.Op {
		case bytecode.IADD, bytecode.ISUB, bytecode.IMUL, bytecode.IDIV, bytecode.IREM,
			bytecode.ISHL, bytecode.ISHR, bytecode.IUSHR, bytecode.IAND, bytecode.IOR, bytecode.IXOR,
			bytecode.LCMP, bytecode.FCMPL, bytecode.FCMPG, bytecode.DCMPL, bytecode.DCMPG,
			bytecode.IALOAD, bytecode.BALOAD, bytecode.CALOAD, bytecode.SALOAD:
			return Int, nil
		case bytecode.LADD, bytecode.LSUB, bytecode.LMUL, bytecode.LDIV, bytecode.LREM,
			bytecode.LSHL, bytecode.LSHR, bytecode.LUSHR, bytecode.LAND, bytecode.LOR, bytecode.LXOR,
			bytecode.LALOAD:
			return Long, nil
		case bytecode.FADD, bytecode.FSUB, bytecode.FMUL, bytecode.FDIV, bytecode.FREM, bytecode.FALOAD:
			return Float, nil
		case bytecode.DADD, bytecode.DSUB, bytecode.DMUL, bytecode.DDIV, bytecode.DREM, bytecode.DALOAD:
			return Double, nil
		case bytecode.AALOAD:
			return Reference, nil
		case bytecode.IF_ICMPEQ, bytecode.IF_ICMPNE, bytecode.IF_ICMPLT, bytecode.IF_ICMPGE,
			bytecode.IF_ICMPGT, bytecode.IF_ICMPLE, bytecode.IF_ACMPEQ, bytecode.IF_ACMPNE:
			return Uninitialized, nil
		}
	case *bytecode.FieldInsn: // PUTFIELD
		return Uninitialized, nil
	case *bytecode.JumpInsn: // IF_ICMPxx/IF_ACMPxx reached via JumpInsn nodes
		return Uninitialized, nil
	}
	return Uninitialized, nil
}

func (BasicInterpreter) TernaryOperation(insn bytecode.Insn, v1, v2, v3 Value) (Value, error) {
	return Uninitialized, nil
}

func (BasicInterpreter) NaryOperation(insn bytecode.Insn, values []Value) (Value, error) {
	switch n := insn.(type) {
	case *bytecode.MethodInsn:
		return sortOfDescriptor(returnDescriptor(n.Descriptor))
	case *bytecode.InvokeDynamicInsn:
		return sortOfDescriptor(returnDescriptor(n.Descriptor))
	case *bytecode.MultiANewArrayInsn:
		return Reference, nil
	}
	return Uninitialized, nil
}

func returnDescriptor(methodDescriptor string) string {
	d, err := descriptor.ParseMethod(methodDescriptor)
	if err != nil {
		return "V"
	}
	return d.ReturnType().DescriptorString()
}

func (BasicInterpreter) ReturnOperation(insn bytecode.Insn, v Value, expected Value) error {
	return nil
}

func (BasicInterpreter) NewExceptionValue(catchType string) Value {
	return Reference
}

func (BasicInterpreter) Merge(v1, v2 Value) (Value, error) {
	if v1 == v2 {
		return v1, nil
	}
	return Uninitialized, nil
}
