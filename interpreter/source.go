package interpreter

import (
	"clasm/bytecode"
	"clasm/descriptor"
)

// SourceValue is a definition-set value: its size comes from the producing
// instruction's descriptor, and it carries every instruction that may have
// produced it; merging unions the sets and keeps the smaller reported size.
// Instructions are tracked by identity (bytecode.Insn is a pointer type),
// so SourceInterpreter answers "which instructions could have left this
// value here" rather than "what kind of value is it" — useful for reaching
// definitions and dead-store analyses layered on top of the analyzer.
type SourceValue struct {
	size  int
	insns map[bytecode.Insn]bool
}

// NewSourceValue returns a value of the given word size produced by insns.
// A nil or empty insns set models a value with no recorded producer (a
// fresh empty local, for instance).
func NewSourceValue(size int, insns ...bytecode.Insn) *SourceValue {
	set := make(map[bytecode.Insn]bool, len(insns))
	for _, n := range insns {
		if n != nil {
			set[n] = true
		}
	}
	return &SourceValue{size: size, insns: set}
}

func (v *SourceValue) SizeInWords() int { return v.size }

// Insns returns the set of instructions that may have produced v, in no
// particular order.
func (v *SourceValue) Insns() []bytecode.Insn {
	out := make([]bytecode.Insn, 0, len(v.insns))
	for n := range v.insns {
		out = append(out, n)
	}
	return out
}

func (v *SourceValue) contains(n bytecode.Insn) bool { return v.insns[n] }

// SourceInterpreter implements Interpreter over SourceValue: every
// value-producing operation returns a fresh SourceValue attributing itself
// as sole producer, sized from the instruction's own descriptor operand
// where one is available and otherwise from the opcode or from the
// operand it copies.
type SourceInterpreter struct{}

var _ Interpreter = SourceInterpreter{}

func (SourceInterpreter) NewValue(typ *TypeHint) Value {
	if typ == nil {
		return NewSourceValue(1)
	}
	t, err := descriptor.Parse(typ.Descriptor)
	if err != nil || t.Sort() == descriptor.Void {
		return NewSourceValue(1)
	}
	return NewSourceValue(t.SizeInWords())
}

func (SourceInterpreter) NewOperation(insn bytecode.Insn) (Value, error) {
	size := 1
	switch n := insn.(type) {
	case *bytecode.SimpleInsn:
		switch n.Op {
		case bytecode.LCONST_0, bytecode.LCONST_1:
			size = 2
		case bytecode.DCONST_0, bytecode.DCONST_1:
			size = 2
		}
	case *bytecode.LdcInsn:
		switch n.Value.(type) {
		case int64, float64:
			size = 2
		}
	case *bytecode.FieldInsn:
		if t, err := descriptor.Parse(n.Descriptor); err == nil {
			size = t.SizeInWords()
		}
	}
	return NewSourceValue(size, insn), nil
}

func (SourceInterpreter) CopyOperation(insn bytecode.Insn, v Value) (Value, error) {
	sv, _ := v.(*SourceValue)
	size := 1
	if sv != nil {
		size = sv.size
	}
	return NewSourceValue(size, insn), nil
}

func (SourceInterpreter) UnaryOperation(insn bytecode.Insn, v Value) (Value, error) {
	size := sizeAfterUnary(insn)
	return NewSourceValue(size, insn), nil
}

func sizeAfterUnary(insn bytecode.Insn) int {
	if n, ok := insn.(*bytecode.SimpleInsn); ok {
		switch n.Op {
		case bytecode.I2L, bytecode.F2L, bytecode.D2L, bytecode.LNEG, bytecode.I2D, bytecode.F2D, bytecode.L2D, bytecode.DNEG:
			return 2
		}
	}
	if n, ok := insn.(*bytecode.FieldInsn); ok {
		if t, err := descriptor.Parse(n.Descriptor); err == nil {
			return t.SizeInWords()
		}
	}
	return 1
}

func (SourceInterpreter) BinaryOperation(insn bytecode.Insn, v1, v2 Value) (Value, error) {
	size := 1
	if n, ok := insn.(*bytecode.SimpleInsn); ok {
		switch n.Op {
		case bytecode.LADD, bytecode.LSUB, bytecode.LMUL, bytecode.LDIV, bytecode.LREM,
			bytecode.LSHL, bytecode.LSHR, bytecode.LUSHR, bytecode.LAND, bytecode.LOR, bytecode.LXOR,
			bytecode.LALOAD:
			size = 2
		case bytecode.DADD, bytecode.DSUB, bytecode.DMUL, bytecode.DDIV, bytecode.DREM, bytecode.DALOAD:
			size = 2
		}
	}
	return NewSourceValue(size, insn), nil
}

func (SourceInterpreter) TernaryOperation(insn bytecode.Insn, v1, v2, v3 Value) (Value, error) {
	return NewSourceValue(1, insn), nil
}

func (SourceInterpreter) NaryOperation(insn bytecode.Insn, values []Value) (Value, error) {
	size := 1
	switch n := insn.(type) {
	case *bytecode.MethodInsn:
		if d, err := descriptor.ParseMethod(n.Descriptor); err == nil {
			size = d.ReturnType().SizeInWords()
			if size == 0 {
				size = 1
			}
		}
	case *bytecode.InvokeDynamicInsn:
		if d, err := descriptor.ParseMethod(n.Descriptor); err == nil {
			size = d.ReturnType().SizeInWords()
			if size == 0 {
				size = 1
			}
		}
	}
	return NewSourceValue(size, insn), nil
}

func (SourceInterpreter) ReturnOperation(insn bytecode.Insn, v Value, expected Value) error {
	return nil
}

func (SourceInterpreter) NewExceptionValue(catchType string) Value {
	return NewSourceValue(1)
}

// Merge unions the two producer sets and keeps the smaller reported size;
// a genuine size mismatch between live control-flow paths is a bug an
// interpreter higher up the stack (the verifier) is responsible for
// catching, not this one.
func (SourceInterpreter) Merge(v1, v2 Value) (Value, error) {
	a, aok := v1.(*SourceValue)
	b, bok := v2.(*SourceValue)
	if !aok || !bok {
		return v1, nil
	}
	if supersetOf(a, b) {
		return a, nil
	}
	size := a.size
	if b.size < size {
		size = b.size
	}
	merged := NewSourceValue(size)
	for n := range a.insns {
		merged.insns[n] = true
	}
	for n := range b.insns {
		merged.insns[n] = true
	}
	if setsEqual(merged.insns, a.insns) && size == a.size {
		return a, nil
	}
	return merged, nil
}

func supersetOf(a, b *SourceValue) bool {
	if a.size != b.size {
		return false
	}
	for n := range b.insns {
		if !a.contains(n) {
			return false
		}
	}
	return true
}

func setsEqual(a, b map[bytecode.Insn]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for n := range a {
		if !b[n] {
			return false
		}
	}
	return true
}
