package descriptor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clasm/descriptor"
)

func TestParseRoundTrip(t *testing.T) {
	cases := []string{
		"I", "V", "Z", "[I", "[[Ljava/lang/Object;", "Ljava/lang/String;",
	}
	for _, d := range cases {
		d := d
		t.Run(d, func(t *testing.T) {
			ty, err := descriptor.Parse(d)
			require.NoError(t, err)
			assert.Equal(t, d, ty.DescriptorString())
		})
	}
}

func TestParseMethodRoundTrip(t *testing.T) {
	d := "([I)Ljava/lang/Object;"
	ty, err := descriptor.ParseMethod(d)
	require.NoError(t, err)
	assert.Equal(t, descriptor.Method, ty.Sort())
	assert.Equal(t, d, ty.DescriptorString())

	params := ty.ParameterTypes()
	require.Len(t, params, 1)
	assert.Equal(t, descriptor.Array, params[0].Sort())
	assert.Equal(t, 1, params[0].Dimensions())
	assert.Equal(t, descriptor.Int, params[0].ElementType().Sort())

	assert.Equal(t, descriptor.Object, ty.ReturnType().Sort())
	assert.Equal(t, "java/lang/Object", ty.ReturnType().InternalName())
}

func TestSizeInWords(t *testing.T) {
	assert.Equal(t, 2, descriptor.NewPrimitive(descriptor.Long).SizeInWords())
	assert.Equal(t, 2, descriptor.NewPrimitive(descriptor.Double).SizeInWords())
	assert.Equal(t, 0, descriptor.NewPrimitive(descriptor.Void).SizeInWords())
	assert.Equal(t, 1, descriptor.NewPrimitive(descriptor.Int).SizeInWords())
	assert.Equal(t, 1, descriptor.NewObject("java/lang/Object").SizeInWords())
}

func TestArgumentsAndReturnSizes(t *testing.T) {
	ty, err := descriptor.ParseMethod("(IJLjava/lang/String;)D")
	require.NoError(t, err)
	argWords, returnWords := ty.ArgumentsAndReturnSizes()
	assert.Equal(t, 4, argWords) // int(1) + long(2) + String(1)
	assert.Equal(t, 2, returnWords)
}

func TestParseErrors(t *testing.T) {
	bad := []string{"", "Q", "[", "Ljava/lang/Object", "Iextra"}
	for _, d := range bad {
		_, err := descriptor.Parse(d)
		assert.Error(t, err, d)
	}
}
