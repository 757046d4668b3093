package interpreter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clasm/bytecode"
	"clasm/descriptor"
	clasmerrors "clasm/errors"
	"clasm/interpreter"
)

func typeObject(internalName string) descriptor.Type {
	return descriptor.NewObject(internalName)
}

func arrayOf(internalName string, dims int) descriptor.Type {
	return descriptor.NewArray(descriptor.NewObject(internalName), dims)
}

func TestBasicInterpreterNewOperationConstants(t *testing.T) {
	bi := interpreter.BasicInterpreter{}

	v, err := bi.NewOperation(bytecode.NewSimpleInsn(bytecode.ICONST_1))
	require.NoError(t, err)
	assert.Same(t, interpreter.Int, v)

	v, err = bi.NewOperation(bytecode.NewSimpleInsn(bytecode.LCONST_0))
	require.NoError(t, err)
	assert.Same(t, interpreter.Long, v)

	v, err = bi.NewOperation(bytecode.NewSimpleInsn(bytecode.ACONST_NULL))
	require.NoError(t, err)
	assert.Same(t, interpreter.Reference, v)
}

func TestBasicInterpreterLdcUnsupportedOperandFails(t *testing.T) {
	bi := interpreter.BasicInterpreter{}
	_, err := bi.NewOperation(bytecode.NewLdcInsn(struct{}{}))
	require.Error(t, err)
	assert.Equal(t, clasmerrors.UnsupportedFeature, err.(*clasmerrors.ClasmError).Kind)
}

func TestBasicInterpreterMergeSameReturnsSameNoChange(t *testing.T) {
	bi := interpreter.BasicInterpreter{}
	merged, err := bi.Merge(interpreter.Int, interpreter.Int)
	require.NoError(t, err)
	assert.Same(t, interpreter.Int, merged)
}

func TestBasicInterpreterMergeDifferentCollapsesToUninitialized(t *testing.T) {
	bi := interpreter.BasicInterpreter{}
	merged, err := bi.Merge(interpreter.Int, interpreter.Reference)
	require.NoError(t, err)
	assert.Same(t, interpreter.Uninitialized, merged)
}

func TestBasicVerifierRejectsWrongOperandShape(t *testing.T) {
	bv := interpreter.NewBasicVerifier()
	_, err := bv.UnaryOperation(bytecode.NewSimpleInsn(bytecode.INEG), interpreter.Reference)
	require.Error(t, err)
	ce := err.(*clasmerrors.ClasmError)
	assert.Equal(t, clasmerrors.Verification, ce.Kind)
	require.NotNil(t, ce.ExpectedActual)
	assert.Equal(t, "INT", ce.ExpectedActual.Expected)
	assert.Equal(t, "REFERENCE", ce.ExpectedActual.Actual)
}

func TestBasicVerifierAcceptsCorrectOperandShape(t *testing.T) {
	bv := interpreter.NewBasicVerifier()
	v, err := bv.UnaryOperation(bytecode.NewSimpleInsn(bytecode.INEG), interpreter.Int)
	require.NoError(t, err)
	assert.Same(t, interpreter.Int, v)
}

// fakeOracle is a small, self-contained class hierarchy used to drive
// SimpleVerifier's merge logic:
//
//	java/lang/Object
//	  java/lang/Number
//	    java/lang/Integer
//	  java/lang/String
type fakeOracle struct{}

func (fakeOracle) IsInterface(internalName string) bool { return false }

func (fakeOracle) SuperOf(internalName string) (string, bool) {
	switch internalName {
	case "java/lang/Integer":
		return "java/lang/Number", true
	case "java/lang/Number", "java/lang/String":
		return "java/lang/Object", true
	case "java/lang/Object":
		return "", false
	}
	return "java/lang/Object", true
}

func (fakeOracle) IsAssignableFrom(target, source string) bool {
	if target == source {
		return true
	}
	for cur, ok := source, true; ok; {
		if cur == target {
			return true
		}
		cur, ok = (fakeOracle{}).SuperOf(cur)
	}
	return false
}

func TestSimpleVerifierMergeWalksCommonSuperclass(t *testing.T) {
	sv := interpreter.NewSimpleVerifier(fakeOracle{})

	a := interpreter.NewTypedValue(typeObject("java/lang/Integer"))
	b := interpreter.NewTypedValue(typeObject("java/lang/String"))

	merged, err := sv.Merge(a, b)
	require.NoError(t, err)
	mv := merged.(*interpreter.TypedValue)
	assert.Equal(t, "java/lang/Object", mv.Descriptor().InternalName())
}

// TestSimpleVerifierMergeArrayDimensionMismatchDegradesToObject checks
// that merging String[][] and String[] degrades straight to Object
// rather than attempting an element-wise merge.
func TestSimpleVerifierMergeArrayDimensionMismatchDegradesToObject(t *testing.T) {
	sv := interpreter.NewSimpleVerifier(fakeOracle{})

	stringArr2D := interpreter.NewTypedValue(arrayOf("java/lang/String", 2))
	stringArr1D := interpreter.NewTypedValue(arrayOf("java/lang/String", 1))

	merged, err := sv.Merge(stringArr2D, stringArr1D)
	require.NoError(t, err)
	mv := merged.(*interpreter.TypedValue)
	assert.Equal(t, "Ljava/lang/Object;", mv.Descriptor().DescriptorString())
}

func TestSimpleVerifierMergeEqualArrayDimensionsMergesElements(t *testing.T) {
	sv := interpreter.NewSimpleVerifier(fakeOracle{})

	stringArr := interpreter.NewTypedValue(arrayOf("java/lang/String", 1))
	integerArr := interpreter.NewTypedValue(arrayOf("java/lang/Integer", 1))

	merged, err := sv.Merge(stringArr, integerArr)
	require.NoError(t, err)
	mv := merged.(*interpreter.TypedValue)
	assert.Equal(t, "[Ljava/lang/Object;", mv.Descriptor().DescriptorString())
}

func TestSourceInterpreterMergeUnionsProducers(t *testing.T) {
	si := interpreter.SourceInterpreter{}
	n1 := bytecode.NewSimpleInsn(bytecode.ICONST_0)
	n2 := bytecode.NewSimpleInsn(bytecode.ICONST_1)

	v1, err := si.NewOperation(n1)
	require.NoError(t, err)
	v2, err := si.NewOperation(n2)
	require.NoError(t, err)

	merged, err := si.Merge(v1, v2)
	require.NoError(t, err)
	sv := merged.(*interpreter.SourceValue)
	assert.ElementsMatch(t, []bytecode.Insn{n1, n2}, sv.Insns())
}

func TestSourceInterpreterMergeIsIdempotentWhenAlreadySuperset(t *testing.T) {
	si := interpreter.SourceInterpreter{}
	n1 := bytecode.NewSimpleInsn(bytecode.ICONST_0)

	v1, err := si.NewOperation(n1)
	require.NoError(t, err)

	merged, err := si.Merge(v1, v1)
	require.NoError(t, err)
	assert.Same(t, v1, merged)
}
