package signature_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clasm/signature"
)

// recordingVisitor captures every event it receives, in order, as a
// human-readable tag, so tests can assert on the exact signature event
// ordering a parse produces.
type recordingVisitor struct {
	signature.BaseVisitor
	events []string
}

func (r *recordingVisitor) FormalTypeParameter(name string) {
	r.events = append(r.events, "formal:"+name)
}
func (r *recordingVisitor) ClassBound()     { r.events = append(r.events, "classBound") }
func (r *recordingVisitor) InterfaceBound() { r.events = append(r.events, "interfaceBound") }
func (r *recordingVisitor) Superclass()     { r.events = append(r.events, "superclass") }
func (r *recordingVisitor) Interface()      { r.events = append(r.events, "interface") }
func (r *recordingVisitor) Parameter()      { r.events = append(r.events, "parameter") }
func (r *recordingVisitor) Return()         { r.events = append(r.events, "return") }
func (r *recordingVisitor) Exception()      { r.events = append(r.events, "exception") }
func (r *recordingVisitor) BaseType(c byte) { r.events = append(r.events, "base:"+string(c)) }
func (r *recordingVisitor) TypeVariable(name string) {
	r.events = append(r.events, "typevar:"+name)
}
func (r *recordingVisitor) ArrayType() { r.events = append(r.events, "array") }
func (r *recordingVisitor) ClassType(name string) {
	r.events = append(r.events, "class:"+name)
}
func (r *recordingVisitor) InnerClassType(name string) {
	r.events = append(r.events, "inner:"+name)
}
func (r *recordingVisitor) TypeArgument() { r.events = append(r.events, "typearg:*") }
func (r *recordingVisitor) TypeArgumentBound(w byte) {
	r.events = append(r.events, "typearg:"+string(w))
}
func (r *recordingVisitor) End() { r.events = append(r.events, "end") }

func TestAcceptSignatureClassForm(t *testing.T) {
	s := "<T:Ljava/lang/Object;:Ljava/lang/Comparable<TT;>;>Ljava/util/List<TT;>;"
	rec := &recordingVisitor{}
	require.NoError(t, signature.AcceptSignature(s, rec))

	expected := []string{
		"formal:T",
		"classBound", "class:java/lang/Object", "end",
		"interfaceBound", "class:java/lang/Comparable", "typearg:=", "typevar:T", "end",
		"superclass", "class:java/util/List", "typearg:=", "typevar:T", "end",
	}
	assert.Equal(t, expected, rec.events)
}

func TestRoundTrip(t *testing.T) {
	cases := []string{
		"<T:Ljava/lang/Object;:Ljava/lang/Comparable<TT;>;>Ljava/util/List<TT;>;",
		"Ljava/lang/Object;",
		"(I[Ljava/lang/String;)V",
		"<T:Ljava/lang/Object;>(TT;)TT;^Ljava/lang/Exception;",
		"Ljava/util/Map<+Ljava/lang/Number;-Ljava/lang/Integer;*>;",
		"[[I",
		"Ljava/util/List<Ljava/lang/String;>.Entry<TV;>;",
	}
	for _, s := range cases {
		s := s
		t.Run(s, func(t *testing.T) {
			w := signature.NewWriter()
			require.NoError(t, signature.AcceptSignature(s, w))
			assert.Equal(t, s, w.String())
		})
	}
}

func TestAcceptTypeRoundTrip(t *testing.T) {
	s := "[Ljava/lang/String;"
	w := signature.NewWriter()
	require.NoError(t, signature.AcceptType(s, w))
	assert.Equal(t, s, w.String())
}

func TestMalformedSignatureFails(t *testing.T) {
	bad := []string{
		"",
		"Ljava/lang/Object",      // missing ';'
		"<T:Ljava/lang/Object;",  // missing '>' and a RefSig after
		"(I",                     // unterminated params
		"Q",                      // unknown base type
	}
	for _, s := range bad {
		w := signature.NewWriter()
		err := signature.AcceptSignature(s, w)
		assert.Error(t, err, s)
	}
}

func TestNoFormalsNoParameters(t *testing.T) {
	s := "()V"
	rec := &recordingVisitor{}
	require.NoError(t, signature.AcceptSignature(s, rec))
	assert.Equal(t, []string{"return", "base:V"}, rec.events)

	w := signature.NewWriter()
	require.NoError(t, signature.AcceptSignature(s, w))
	assert.Equal(t, s, w.String())
}
