package interpreter

import (
	"golang.org/x/exp/slices"

	"clasm/bytecode"
	"clasm/descriptor"
	clasmerrors "clasm/errors"
)

// BasicVerifier extends BasicInterpreter with operand-shape checking for
// numeric opcodes: UnaryOperation checks the operand of every int, long,
// float and double negation or conversion, and BinaryOperation checks
// both operands of the int arithmetic, shift and bitwise opcodes and of
// the long arithmetic and bitwise opcodes, failing with VERIFICATION
// (expected shape, actual value) on a mismatch. All other operations go
// to BasicInterpreter unchecked. IsSubtypeOf is equality by default.
type BasicVerifier struct {
	Basic BasicInterpreter
	// IsSubtypeOf reports whether actual may be used where expected is
	// required. The zero value is nil, in which case NewBasicVerifier's
	// default (equality) applies.
	IsSubtypeOf func(actual, expected Value) bool
}

var _ Interpreter = (*BasicVerifier)(nil)

// NewBasicVerifier returns a BasicVerifier using trivial (equality)
// subtyping.
func NewBasicVerifier() *BasicVerifier {
	return &BasicVerifier{IsSubtypeOf: func(actual, expected Value) bool { return actual == expected }}
}

func (bv *BasicVerifier) expect(insn bytecode.Insn, actual, expected Value) error {
	isSubtype := bv.IsSubtypeOf
	if isSubtype == nil {
		isSubtype = func(actual, expected Value) bool { return actual == expected }
	}
	if isSubtype(actual, expected) {
		return nil
	}
	return clasmerrors.Newf(clasmerrors.Verification, "operand shape mismatch on instruction").
		WithExpectedActual(shapeName(expected), shapeName(actual))
}

func shapeName(v Value) string {
	bv, ok := v.(*BasicValue)
	if !ok {
		return "unknown"
	}
	switch bv.sort {
	case SortUninitialized:
		return "UNINITIALIZED"
	case SortInt:
		return "INT"
	case SortFloat:
		return "FLOAT"
	case SortLong:
		return "LONG"
	case SortDouble:
		return "DOUBLE"
	case SortReference:
		return "REFERENCE"
	case SortReturnAddress:
		return "RETURN_ADDRESS"
	}
	return "unknown"
}

func (bv *BasicVerifier) NewValue(typ *TypeHint) Value { return bv.Basic.NewValue(typ) }
func (bv *BasicVerifier) NewOperation(insn bytecode.Insn) (Value, error) {
	return bv.Basic.NewOperation(insn)
}
func (bv *BasicVerifier) CopyOperation(insn bytecode.Insn, v Value) (Value, error) {
	return bv.Basic.CopyOperation(insn, v)
}

func (bv *BasicVerifier) UnaryOperation(insn bytecode.Insn, v Value) (Value, error) {
	if si, ok := insn.(*bytecode.SimpleInsn); ok {
		switch si.Op {
		case bytecode.INEG, bytecode.I2L, bytecode.I2F, bytecode.I2D, bytecode.I2B, bytecode.I2C, bytecode.I2S:
			if err := bv.expect(insn, v, Int); err != nil {
				return nil, err
			}
		case bytecode.LNEG, bytecode.L2I, bytecode.L2F, bytecode.L2D:
			if err := bv.expect(insn, v, Long); err != nil {
				return nil, err
			}
		case bytecode.FNEG, bytecode.F2I, bytecode.F2L, bytecode.F2D:
			if err := bv.expect(insn, v, Float); err != nil {
				return nil, err
			}
		case bytecode.DNEG, bytecode.D2I, bytecode.D2L, bytecode.D2F:
			if err := bv.expect(insn, v, Double); err != nil {
				return nil, err
			}
		}
	}
	return bv.Basic.UnaryOperation(insn, v)
}

func (bv *BasicVerifier) BinaryOperation(insn bytecode.Insn, v1, v2 Value) (Value, error) {
	if si, ok := insn.(*bytecode.SimpleInsn); ok {
		switch si.Op {
		case bytecode.IADD, bytecode.ISUB, bytecode.IMUL, bytecode.IDIV, bytecode.IREM,
			bytecode.ISHL, bytecode.ISHR, bytecode.IUSHR, bytecode.IAND, bytecode.IOR, bytecode.IXOR:
			if err := bv.expect(insn, v1, Int); err != nil {
				return nil, err
			}
			if err := bv.expect(insn, v2, Int); err != nil {
				return nil, err
			}
		case bytecode.LADD, bytecode.LSUB, bytecode.LMUL, bytecode.LDIV, bytecode.LREM,
			bytecode.LAND, bytecode.LOR, bytecode.LXOR:
			if err := bv.expect(insn, v1, Long); err != nil {
				return nil, err
			}
			if err := bv.expect(insn, v2, Long); err != nil {
				return nil, err
			}
		}
	}
	return bv.Basic.BinaryOperation(insn, v1, v2)
}

func (bv *BasicVerifier) TernaryOperation(insn bytecode.Insn, v1, v2, v3 Value) (Value, error) {
	return bv.Basic.TernaryOperation(insn, v1, v2, v3)
}
func (bv *BasicVerifier) NaryOperation(insn bytecode.Insn, values []Value) (Value, error) {
	return bv.Basic.NaryOperation(insn, values)
}
func (bv *BasicVerifier) ReturnOperation(insn bytecode.Insn, v Value, expected Value) error {
	return bv.Basic.ReturnOperation(insn, v, expected)
}
func (bv *BasicVerifier) NewExceptionValue(catchType string) Value {
	return bv.Basic.NewExceptionValue(catchType)
}
func (bv *BasicVerifier) Merge(v1, v2 Value) (Value, error) { return bv.Basic.Merge(v1, v2) }

// TypeOracle answers the class-hierarchy questions SimpleVerifier needs,
// keeping class loading out of the analyzer: loading is the oracle's
// business, the analyzer stays pure.
type TypeOracle interface {
	IsInterface(internalName string) bool
	SuperOf(internalName string) (string, bool)
	IsAssignableFrom(target, source string) bool
}

// TypedValue is SimpleVerifier's value domain: an exact descriptor.Type,
// a return-address marker (for JSR results), or the uninitialized
// placeholder.
type TypedValue struct {
	desc          descriptor.Type
	uninitialized bool
	returnAddress bool
}

func NewTypedValue(desc descriptor.Type) *TypedValue { return &TypedValue{desc: desc} }

func (v *TypedValue) SizeInWords() int {
	if v.uninitialized || v.returnAddress {
		return 1
	}
	return v.desc.SizeInWords()
}

func (v *TypedValue) Descriptor() descriptor.Type { return v.desc }
func (v *TypedValue) IsUninitialized() bool        { return v.uninitialized }

var (
	typedUninitialized = &TypedValue{uninitialized: true}
	typedReturnAddress = &TypedValue{returnAddress: true}
)

func typedObject(name string) *TypedValue { return NewTypedValue(descriptor.NewObject(name)) }

// SimpleVerifier implements Interpreter over exact class/array types:
// an oracle-backed subtype query and a Merge that walks superclasses
// until a common ancestor is found. Its
// instruction dispatch mirrors BasicInterpreter's opcode grouping but
// produces exact descriptor.Type values instead of the seven-type
// abstraction. Operand categories are checked only for INEG, LNEG, L2I,
// the I2x conversions, the int arithmetic, shift and bitwise opcodes and
// the long arithmetic and bitwise opcodes, failing with VERIFICATION on a
// mismatch; the oracle is not consulted when checking operands.
type SimpleVerifier struct {
	Oracle TypeOracle
}

var _ Interpreter = (*SimpleVerifier)(nil)

func NewSimpleVerifier(oracle TypeOracle) *SimpleVerifier {
	return &SimpleVerifier{Oracle: oracle}
}

func (sv *SimpleVerifier) NewValue(typ *TypeHint) Value {
	if typ == nil {
		return typedUninitialized
	}
	t, err := descriptor.Parse(typ.Descriptor)
	if err != nil {
		return typedUninitialized
	}
	if t.Sort() == descriptor.Void {
		return typedUninitialized
	}
	return NewTypedValue(t)
}

func (sv *SimpleVerifier) NewExceptionValue(catchType string) Value {
	if catchType == "" {
		catchType = "java/lang/Throwable"
	}
	return typedObject(catchType)
}

func typedPrimitive(sort descriptor.Sort) *TypedValue {
	return NewTypedValue(descriptor.NewPrimitive(sort))
}

func (sv *SimpleVerifier) expectCategory(insn bytecode.Insn, v Value, want descriptor.Sort) (*TypedValue, error) {
	tv, ok := v.(*TypedValue)
	if !ok || tv.uninitialized || tv.returnAddress || tv.desc.Sort() != want {
		actual := "unknown"
		if ok {
			actual = shapeOfTyped(tv)
		}
		return nil, clasmerrors.Newf(clasmerrors.Verification, "operand shape mismatch").
			WithExpectedActual(want.String(), actual)
	}
	return tv, nil
}

func shapeOfTyped(v *TypedValue) string {
	if v.uninitialized {
		return "UNINITIALIZED"
	}
	if v.returnAddress {
		return "RETURN_ADDRESS"
	}
	return v.desc.DescriptorString()
}

func (sv *SimpleVerifier) NewOperation(insn bytecode.Insn) (Value, error) {
	switch n := insn.(type) {
	case *bytecode.SimpleInsn:
		switch n.Op {
		case bytecode.ACONST_NULL:
			return typedObject("java/lang/Object"), nil
		case bytecode.ICONST_M1, bytecode.ICONST_0, bytecode.ICONST_1, bytecode.ICONST_2,
			bytecode.ICONST_3, bytecode.ICONST_4, bytecode.ICONST_5:
			return typedPrimitive(descriptor.Int), nil
		case bytecode.LCONST_0, bytecode.LCONST_1:
			return typedPrimitive(descriptor.Long), nil
		case bytecode.FCONST_0, bytecode.FCONST_1, bytecode.FCONST_2:
			return typedPrimitive(descriptor.Float), nil
		case bytecode.DCONST_0, bytecode.DCONST_1:
			return typedPrimitive(descriptor.Double), nil
		}
	case *bytecode.IntInsn:
		return typedPrimitive(descriptor.Int), nil
	case *bytecode.LdcInsn:
		switch val := n.Value.(type) {
		case int32, int:
			return typedPrimitive(descriptor.Int), nil
		case int64:
			return typedPrimitive(descriptor.Long), nil
		case float32:
			return typedPrimitive(descriptor.Float), nil
		case float64:
			return typedPrimitive(descriptor.Double), nil
		case string:
			return typedObject("java/lang/String"), nil
		case descriptor.Type:
			return typedObject("java/lang/Class"), nil
		default:
			return nil, clasmerrors.Newf(clasmerrors.UnsupportedFeature, "unsupported LDC operand type %T", val)
		}
	case *bytecode.FieldInsn:
		t, err := descriptor.Parse(n.Descriptor)
		if err != nil {
			return nil, err
		}
		return NewTypedValue(t), nil
	case *bytecode.TypeInsn:
		return typedObject(n.InternalName), nil
	case *bytecode.JumpInsn:
		return typedReturnAddress, nil
	}
	return nil, clasmerrors.Newf(clasmerrors.IllegalStack, "instruction does not produce a value: %T", insn)
}

func (sv *SimpleVerifier) CopyOperation(insn bytecode.Insn, v Value) (Value, error) {
	return v, nil
}

func (sv *SimpleVerifier) UnaryOperation(insn bytecode.Insn, v Value) (Value, error) {
	switch n := insn.(type) {
	case *bytecode.SimpleInsn:
		switch n.Op {
		case bytecode.INEG, bytecode.I2B, bytecode.I2C, bytecode.I2S:
			if _, err := sv.expectCategory(insn, v, descriptor.Int); err != nil {
				return nil, err
			}
			return typedPrimitive(descriptor.Int), nil
		case bytecode.I2L:
			if _, err := sv.expectCategory(insn, v, descriptor.Int); err != nil {
				return nil, err
			}
			return typedPrimitive(descriptor.Long), nil
		case bytecode.I2F:
			if _, err := sv.expectCategory(insn, v, descriptor.Int); err != nil {
				return nil, err
			}
			return typedPrimitive(descriptor.Float), nil
		case bytecode.I2D:
			if _, err := sv.expectCategory(insn, v, descriptor.Int); err != nil {
				return nil, err
			}
			return typedPrimitive(descriptor.Double), nil
		case bytecode.LNEG, bytecode.L2I:
			if _, err := sv.expectCategory(insn, v, descriptor.Long); err != nil {
				return nil, err
			}
			if n.Op == bytecode.L2I {
				return typedPrimitive(descriptor.Int), nil
			}
			return typedPrimitive(descriptor.Long), nil
		case bytecode.L2F:
			return typedPrimitive(descriptor.Float), nil
		case bytecode.L2D:
			return typedPrimitive(descriptor.Double), nil
		case bytecode.FNEG, bytecode.F2I, bytecode.F2L, bytecode.F2D:
			switch n.Op {
			case bytecode.F2I:
				return typedPrimitive(descriptor.Int), nil
			case bytecode.F2L:
				return typedPrimitive(descriptor.Long), nil
			case bytecode.F2D:
				return typedPrimitive(descriptor.Double), nil
			}
			return typedPrimitive(descriptor.Float), nil
		case bytecode.DNEG, bytecode.D2I, bytecode.D2L, bytecode.D2F:
			switch n.Op {
			case bytecode.D2I:
				return typedPrimitive(descriptor.Int), nil
			case bytecode.D2L:
				return typedPrimitive(descriptor.Long), nil
			case bytecode.D2F:
				return typedPrimitive(descriptor.Float), nil
			}
			return typedPrimitive(descriptor.Double), nil
		case bytecode.ARRAYLENGTH:
			return typedPrimitive(descriptor.Int), nil
		case bytecode.IFEQ, bytecode.IFNE, bytecode.IFLT, bytecode.IFGE, bytecode.IFGT, bytecode.IFLE,
			bytecode.ATHROW, bytecode.MONITORENTER, bytecode.MONITOREXIT:
			return typedUninitialized, nil
		}
	case *bytecode.IntInsn:
		t, err := descriptor.Parse(arrayTypeName(n.Operand))
		if err != nil {
			return nil, err
		}
		return NewTypedValue(t), nil
	case *bytecode.TypeInsn:
		elem := "L" + n.InternalName + ";"
		if len(n.InternalName) > 0 && n.InternalName[0] == '[' {
			elem = n.InternalName
		}
		switch n.Op {
		case bytecode.ANEWARRAY, bytecode.CHECKCAST:
			if n.Op == bytecode.ANEWARRAY {
				elem = "[" + elem
			}
			t, err := descriptor.Parse(elem)
			if err != nil {
				return nil, err
			}
			return NewTypedValue(t), nil
		case bytecode.INSTANCEOF:
			return typedPrimitive(descriptor.Int), nil
		}
	case *bytecode.FieldInsn:
		t, err := descriptor.Parse(n.Descriptor)
		if err != nil {
			return nil, err
		}
		return NewTypedValue(t), nil
	case *bytecode.JumpInsn:
		return typedUninitialized, nil
	case *bytecode.TableSwitchInsn, *bytecode.LookupSwitchInsn:
		return typedUninitialized, nil
	}
	return typedUninitialized, nil
}

func arrayTypeName(atype int) string {
	names := map[int]string{
		bytecode.T_BOOLEAN: "[Z", bytecode.T_CHAR: "[C", bytecode.T_FLOAT: "[F", bytecode.T_DOUBLE: "[D",
		bytecode.T_BYTE: "[B", bytecode.T_SHORT: "[S", bytecode.T_INT: "[I", bytecode.T_LONG: "[J",
	}
	if n, ok := names[atype]; ok {
		return n
	}
	return "[Ljava/lang/Object;"
}

func (sv *SimpleVerifier) BinaryOperation(insn bytecode.Insn, v1, v2 Value) (Value, error) {
	if n, ok := insn.(*bytecode.SimpleInsn); ok {
		switch n.Op {
		case bytecode.IADD, bytecode.ISUB, bytecode.IMUL, bytecode.IDIV, bytecode.IREM,
			bytecode.ISHL, bytecode.ISHR, bytecode.IUSHR, bytecode.IAND, bytecode.IOR, bytecode.IXOR:
			return typedPrimitive(descriptor.Int), sv.bothCategory(insn, v1, v2, descriptor.Int)
		case bytecode.LADD, bytecode.LSUB, bytecode.LMUL, bytecode.LDIV, bytecode.LREM,
			bytecode.LAND, bytecode.LOR, bytecode.LXOR:
			return typedPrimitive(descriptor.Long), sv.bothCategory(insn, v1, v2, descriptor.Long)
		case bytecode.FADD, bytecode.FSUB, bytecode.FMUL, bytecode.FDIV, bytecode.FREM:
			return typedPrimitive(descriptor.Float), nil
		case bytecode.DADD, bytecode.DSUB, bytecode.DMUL, bytecode.DDIV, bytecode.DREM:
			return typedPrimitive(descriptor.Double), nil
		case bytecode.LCMP, bytecode.FCMPL, bytecode.FCMPG, bytecode.DCMPL, bytecode.DCMPG:
			return typedPrimitive(descriptor.Int), nil
		case bytecode.IALOAD, bytecode.BALOAD, bytecode.CALOAD, bytecode.SALOAD:
			return typedPrimitive(descriptor.Int), nil
		case bytecode.LALOAD:
			return typedPrimitive(descriptor.Long), nil
		case bytecode.FALOAD:
			return typedPrimitive(descriptor.Float), nil
		case bytecode.DALOAD:
			return typedPrimitive(descriptor.Double), nil
		case bytecode.AALOAD:
			if tv, ok := v1.(*TypedValue); ok && !tv.uninitialized && tv.desc.Sort() == descriptor.Array {
				return NewTypedValue(elementOrObject(tv.desc)), nil
			}
			return typedObject("java/lang/Object"), nil
		case bytecode.IF_ICMPEQ, bytecode.IF_ICMPNE, bytecode.IF_ICMPLT, bytecode.IF_ICMPGE,
			bytecode.IF_ICMPGT, bytecode.IF_ICMPLE, bytecode.IF_ACMPEQ, bytecode.IF_ACMPNE:
			return typedUninitialized, nil
		}
	}
	if _, ok := insn.(*bytecode.FieldInsn); ok { // PUTFIELD
		return typedUninitialized, nil
	}
	if _, ok := insn.(*bytecode.JumpInsn); ok {
		return typedUninitialized, nil
	}
	return typedUninitialized, nil
}

func (sv *SimpleVerifier) bothCategory(insn bytecode.Insn, v1, v2 Value, want descriptor.Sort) error {
	if _, err := sv.expectCategory(insn, v1, want); err != nil {
		return err
	}
	if _, err := sv.expectCategory(insn, v2, want); err != nil {
		return err
	}
	return nil
}

func (sv *SimpleVerifier) TernaryOperation(insn bytecode.Insn, v1, v2, v3 Value) (Value, error) {
	return typedUninitialized, nil
}

func (sv *SimpleVerifier) NaryOperation(insn bytecode.Insn, values []Value) (Value, error) {
	switch n := insn.(type) {
	case *bytecode.MethodInsn:
		d, err := descriptor.ParseMethod(n.Descriptor)
		if err != nil {
			return nil, err
		}
		if d.ReturnType().Sort() == descriptor.Void {
			return typedUninitialized, nil
		}
		return NewTypedValue(d.ReturnType()), nil
	case *bytecode.InvokeDynamicInsn:
		d, err := descriptor.ParseMethod(n.Descriptor)
		if err != nil {
			return nil, err
		}
		if d.ReturnType().Sort() == descriptor.Void {
			return typedUninitialized, nil
		}
		return NewTypedValue(d.ReturnType()), nil
	case *bytecode.MultiANewArrayInsn:
		t, err := descriptor.Parse(n.Descriptor)
		if err != nil {
			return nil, err
		}
		return NewTypedValue(t), nil
	}
	return typedUninitialized, nil
}

func (sv *SimpleVerifier) ReturnOperation(insn bytecode.Insn, v Value, expected Value) error {
	return nil
}

// IsSubtypeOfTyped reports whether actual may be used where expected is
// required, via the oracle for reference types and equality otherwise.
func (sv *SimpleVerifier) IsSubtypeOfTyped(actual, expected *TypedValue) bool {
	if actual.uninitialized || expected.uninitialized {
		return actual.uninitialized == expected.uninitialized
	}
	if actual.desc.Sort() != descriptor.Object && actual.desc.Sort() != descriptor.Array {
		return actual.desc.DescriptorString() == expected.desc.DescriptorString()
	}
	if expected.desc.Sort() != descriptor.Object && expected.desc.Sort() != descriptor.Array {
		return false
	}
	if actual.desc.DescriptorString() == expected.desc.DescriptorString() {
		return true
	}
	if actual.desc.Sort() == descriptor.Object && expected.desc.Sort() == descriptor.Object {
		return sv.Oracle.IsAssignableFrom(expected.desc.InternalName(), actual.desc.InternalName())
	}
	return false
}

// Merge joins two typed values by walking superclasses until a common
// ancestor is found; arrays of equal dimensions with class element types
// merge their element types componentwise, and dimension mismatches (or
// equal-dimension arrays whose element types are not both classes)
// degrade straight to Object. When the join names the same type as v1,
// v1 itself is returned.
func (sv *SimpleVerifier) Merge(v1, v2 Value) (Value, error) {
	a, aok := v1.(*TypedValue)
	b, bok := v2.(*TypedValue)
	if !aok || !bok {
		return typedUninitialized, nil
	}
	if a.uninitialized || b.uninitialized {
		if a.uninitialized && b.uninitialized {
			return a, nil
		}
		return typedUninitialized, nil
	}
	if a.desc.DescriptorString() == b.desc.DescriptorString() {
		return a, nil
	}
	if a.desc.Sort() != descriptor.Object && a.desc.Sort() != descriptor.Array {
		return typedUninitialized, nil
	}
	if b.desc.Sort() != descriptor.Object && b.desc.Sort() != descriptor.Array {
		return typedUninitialized, nil
	}
	if a.desc.Sort() == descriptor.Array && b.desc.Sort() == descriptor.Array {
		ea, eb := a.desc.ElementType(), b.desc.ElementType()
		if a.desc.Dimensions() == b.desc.Dimensions() && ea.Sort() == descriptor.Object && eb.Sort() == descriptor.Object {
			merged, err := sv.mergeClasses(ea.InternalName(), eb.InternalName())
			if err != nil {
				return nil, err
			}
			mv := merged.(*TypedValue)
			return sameAs(a, NewTypedValue(descriptor.NewArray(mv.desc, a.desc.Dimensions()))), nil
		}
		return NewTypedValue(descriptor.NewObject("java/lang/Object")), nil
	}
	if a.desc.Sort() == descriptor.Array || b.desc.Sort() == descriptor.Array {
		return sameAs(a, NewTypedValue(descriptor.NewObject("java/lang/Object"))), nil
	}
	merged, err := sv.mergeClasses(a.desc.InternalName(), b.desc.InternalName())
	if err != nil {
		return nil, err
	}
	return sameAs(a, merged.(*TypedValue)), nil
}

// sameAs returns a when m names the same type, so Merge hands back its
// first argument whenever the join does not move it.
func sameAs(a, m *TypedValue) *TypedValue {
	if a.desc.DescriptorString() == m.desc.DescriptorString() {
		return a
	}
	return m
}

func elementOrObject(arr descriptor.Type) descriptor.Type {
	if arr.Dimensions() > 1 {
		return descriptor.NewArray(arr.ElementType(), arr.Dimensions()-1)
	}
	return arr.ElementType()
}

func (sv *SimpleVerifier) mergeClasses(name1, name2 string) (Value, error) {
	if sv.Oracle.IsAssignableFrom(name1, name2) {
		return NewTypedValue(descriptor.NewObject(name1)), nil
	}
	if sv.Oracle.IsAssignableFrom(name2, name1) {
		return NewTypedValue(descriptor.NewObject(name2)), nil
	}
	if sv.Oracle.IsInterface(name1) || sv.Oracle.IsInterface(name2) {
		return NewTypedValue(descriptor.NewObject("java/lang/Object")), nil
	}

	// ancestors holds name1's superclass chain, kept sorted so membership
	// is a binary search rather than a linear scan while walking name2's
	// chain looking for the first common ancestor.
	var ancestors []string
	insert := func(name string) {
		if i, found := slices.BinarySearch(ancestors, name); !found {
			ancestors = slices.Insert(ancestors, i, name)
		}
	}
	insert(name1)
	for cur := name1; ; {
		super, ok := sv.Oracle.SuperOf(cur)
		if !ok {
			break
		}
		insert(super)
		cur = super
	}
	for cur := name2; ; {
		if _, found := slices.BinarySearch(ancestors, cur); found {
			return NewTypedValue(descriptor.NewObject(cur)), nil
		}
		super, ok := sv.Oracle.SuperOf(cur)
		if !ok {
			break
		}
		cur = super
	}
	return NewTypedValue(descriptor.NewObject("java/lang/Object")), nil
}
