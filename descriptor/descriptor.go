// Package descriptor models JVM field and method descriptors (JVMS
// §4.3.2-4.3.3): the compact type encoding used wherever the class file
// format needs a type without the generics signature grammar carries.
package descriptor

import (
	"strconv"
	"strings"

	"clasm/errors"
)

// Sort tags the shape of a Type.
type Sort int

const (
	Void Sort = iota
	Boolean
	Byte
	Char
	Short
	Int
	Float
	Long
	Double
	Object
	Array
	Method
)

func (s Sort) String() string {
	switch s {
	case Void:
		return "void"
	case Boolean:
		return "boolean"
	case Byte:
		return "byte"
	case Char:
		return "char"
	case Short:
		return "short"
	case Int:
		return "int"
	case Float:
		return "float"
	case Long:
		return "long"
	case Double:
		return "double"
	case Object:
		return "object"
	case Array:
		return "array"
	case Method:
		return "method"
	default:
		return "unknown"
	}
}

// Type is an immutable JVM type descriptor value.
type Type struct {
	sort Sort

	// elem is the element type for Array, and has dimensions equal to the
	// number of consecutive '[' characters consumed.
	elem       *Type
	dimensions int

	// internalName is the slash-separated class name for Object (e.g.
	// "java/lang/String").
	internalName string

	// For Method: the parameter types in order and the return type.
	params     []Type
	returnType *Type
}

var primitiveSorts = map[byte]Sort{
	'V': Void,
	'Z': Boolean,
	'B': Byte,
	'C': Char,
	'S': Short,
	'I': Int,
	'F': Float,
	'J': Long,
	'D': Double,
}

var sortToChar = map[Sort]byte{
	Void:    'V',
	Boolean: 'Z',
	Byte:    'B',
	Char:    'C',
	Short:   'S',
	Int:     'I',
	Float:   'F',
	Long:    'J',
	Double:  'D',
}

// NewPrimitive builds a primitive Type (anything but Object/Array/Method).
func NewPrimitive(sort Sort) Type {
	return Type{sort: sort}
}

// NewObject builds an Object Type from an internal name such as
// "java/lang/Object".
func NewObject(internalName string) Type {
	return Type{sort: Object, internalName: internalName}
}

// NewArray builds an Array Type with the given element type and
// dimensions (dimensions >= 1).
func NewArray(elem Type, dimensions int) Type {
	return Type{sort: Array, elem: &elem, dimensions: dimensions}
}

// NewMethod builds a Method Type from its parameter types and return type.
func NewMethod(params []Type, ret Type) Type {
	return Type{sort: Method, params: append([]Type(nil), params...), returnType: &ret}
}

func (t Type) Sort() Sort { return t.sort }

// ElementType returns the innermost (non-array) element type of an Array
// type; it panics if t is not an Array, since that is a programming error
// (the caller should check Sort() first).
func (t Type) ElementType() Type {
	if t.sort != Array {
		panic("descriptor: ElementType called on non-array type")
	}
	return *t.elem
}

// Dimensions returns the array dimension count; 0 for non-arrays.
func (t Type) Dimensions() int {
	if t.sort != Array {
		return 0
	}
	return t.dimensions
}

// InternalName returns the slash-separated class name for an Object type.
func (t Type) InternalName() string {
	return t.internalName
}

// ParameterTypes returns a Method type's parameter types, in order.
func (t Type) ParameterTypes() []Type {
	return append([]Type(nil), t.params...)
}

// ReturnType returns a Method type's return type.
func (t Type) ReturnType() Type {
	if t.returnType == nil {
		return Type{sort: Void}
	}
	return *t.returnType
}

// SizeInWords is 2 for long/double, 0 for void, 1 otherwise.
func (t Type) SizeInWords() int {
	switch t.sort {
	case Long, Double:
		return 2
	case Void:
		return 0
	default:
		return 1
	}
}

// ArgumentsAndReturnSizes returns the combined word-size of a method's
// parameters (as popped in descriptor order, receiver not included) and
// the word-size of its return value. This is the bookkeeping the analyzer
// needs when popping call-argument slots, supplemented from the
// ASM-style packed "argument and return sizes" helper but returned as
// two separate ints rather than one packed integer, which is more
// idiomatic Go than bit-packing two small numbers together.
func (t Type) ArgumentsAndReturnSizes() (argWords, returnWords int) {
	if t.sort != Method {
		panic("descriptor: ArgumentsAndReturnSizes called on non-method type")
	}
	for _, p := range t.params {
		argWords += p.SizeInWords()
	}
	returnWords = t.ReturnType().SizeInWords()
	return argWords, returnWords
}

// DescriptorString renders t back to its textual descriptor form. For a
// Type obtained via Parse this is always the input string unmodified
// (a round trip); for a Type built programmatically it is whatever a
// reader would have produced.
func (t Type) DescriptorString() string {
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t Type) write(sb *strings.Builder) {
	switch t.sort {
	case Object:
		sb.WriteByte('L')
		sb.WriteString(t.internalName)
		sb.WriteByte(';')
	case Array:
		for i := 0; i < t.dimensions; i++ {
			sb.WriteByte('[')
		}
		t.elem.write(sb)
	case Method:
		sb.WriteByte('(')
		for _, p := range t.params {
			p.write(sb)
		}
		sb.WriteByte(')')
		t.ReturnType().write(sb)
	default:
		if c, ok := sortToChar[t.sort]; ok {
			sb.WriteByte(c)
		}
	}
}

// Parse parses a field descriptor (e.g. "[I" or "Ljava/lang/Object;") or a
// single base-type letter. It fails with BAD_DESCRIPTOR on malformed
// input, and requires the whole string to be consumed.
func Parse(d string) (Type, error) {
	t, rest, err := parseOne(d)
	if err != nil {
		return Type{}, err
	}
	if rest != len(d) {
		return Type{}, errors.Newf(errors.BadDescriptor, "trailing characters in descriptor %q", d)
	}
	return t, nil
}

// ParseMethod parses a full method descriptor such as
// "([I)Ljava/lang/Object;".
func ParseMethod(d string) (Type, error) {
	if len(d) == 0 || d[0] != '(' {
		return Type{}, errors.Newf(errors.BadDescriptor, "method descriptor must start with '(': %q", d)
	}
	pos := 1
	var params []Type
	for pos < len(d) && d[pos] != ')' {
		t, next, err := parseOne(d[pos:])
		if err != nil {
			return Type{}, err
		}
		params = append(params, t)
		pos += next
	}
	if pos >= len(d) {
		return Type{}, errors.Newf(errors.BadDescriptor, "unterminated method descriptor %q", d)
	}
	pos++ // skip ')'
	ret, next, err := parseOne(d[pos:])
	if err != nil {
		return Type{}, err
	}
	pos += next
	if pos != len(d) {
		return Type{}, errors.Newf(errors.BadDescriptor, "trailing characters in method descriptor %q", d)
	}
	return NewMethod(params, ret), nil
}

// parseOne parses a single type starting at d[0] and returns how many
// bytes of d it consumed.
func parseOne(d string) (Type, int, error) {
	if len(d) == 0 {
		return Type{}, 0, errors.New(errors.BadDescriptor, "empty descriptor")
	}
	switch c := d[0]; {
	case c == '[':
		dims := 0
		pos := 0
		for pos < len(d) && d[pos] == '[' {
			dims++
			pos++
		}
		if pos >= len(d) {
			return Type{}, 0, errors.Newf(errors.BadDescriptor, "unterminated array descriptor %q", d)
		}
		elem, next, err := parseOne(d[pos:])
		if err != nil {
			return Type{}, 0, err
		}
		return NewArray(elem, dims), pos + next, nil
	case c == 'L':
		end := strings.IndexByte(d, ';')
		if end < 0 {
			return Type{}, 0, errors.Newf(errors.BadDescriptor, "unterminated class descriptor %q", d)
		}
		return NewObject(d[1:end]), end + 1, nil
	default:
		sort, ok := primitiveSorts[c]
		if !ok {
			return Type{}, 0, errors.Newf(errors.BadDescriptor, "unexpected character %q in descriptor %q", strconv.QuoteRune(rune(c)), d)
		}
		return NewPrimitive(sort), 1, nil
	}
}
