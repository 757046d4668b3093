// Package frame implements the fixed-capacity locals-plus-operand-stack
// abstract machine that the analyzer steps one instruction at a time.
// It follows the same explicit-capacity, checked-push/pop shape as a
// bytecode VM's operand stack manager, but carries abstract
// interpreter.Value slots instead of concrete runtime values, and adds
// a locals half a stack-only VM never needed.
package frame

import (
	clasmerrors "clasm/errors"
	"clasm/interpreter"
)

// topFiller occupies the continuation slot of a size-2 value, in both
// locals and the stack — never passed to an Interpreter, only ever
// compared against by identity within this package.
type topFiller struct{}

func (topFiller) SizeInWords() int { return 1 }

var filler interpreter.Value = topFiller{}

func isFiller(v interpreter.Value) bool {
	_, ok := v.(topFiller)
	return ok
}

// Frame is one instruction's abstract execution state: numLocals local
// slots plus an operand stack of at most maxStack words.
type Frame struct {
	locals      []interpreter.Value
	stack       []interpreter.Value
	stackHeight int
	returnValue interpreter.Value
	interp      interpreter.Interpreter
}

// New returns a frame with numLocals local slots (all empty) and room
// for maxStack words of operand stack. Empty slots are filled with
// interp's own uninitialized value rather than the size-2 continuation
// sentinel, so SetLocal can tell "never written" apart from "holds the
// high half of a size-2 local" when deciding what to invalidate.
func New(numLocals, maxStack int, interp interpreter.Interpreter) *Frame {
	locals := make([]interpreter.Value, numLocals)
	empty := interp.NewValue(nil)
	for i := range locals {
		locals[i] = empty
	}
	return &Frame{
		locals: locals,
		stack:  make([]interpreter.Value, maxStack),
		interp: interp,
	}
}

// NumLocals returns the frame's fixed local-slot capacity.
func (f *Frame) NumLocals() int { return len(f.locals) }

// MaxStack returns the frame's fixed operand-stack capacity, in words.
func (f *Frame) MaxStack() int { return len(f.stack) }

// StackHeight returns the current operand-stack depth, in words.
func (f *Frame) StackHeight() int { return f.stackHeight }

// ReturnValue returns the frame's return-type placeholder value, set via
// SetReturnValue when the frame is constructed for a specific method.
func (f *Frame) ReturnValue() interpreter.Value { return f.returnValue }

// SetReturnValue sets the placeholder value used to type-check return
// instructions.
func (f *Frame) SetReturnValue(v interpreter.Value) { f.returnValue = v }

// Init copies every slot, the stack height, and the return value from
// other. other must have the same capacities as f.
func (f *Frame) Init(other *Frame) error {
	if len(f.locals) != len(other.locals) || len(f.stack) != len(other.stack) {
		return clasmerrors.New(clasmerrors.IncompatibleFrames, "frame capacities differ")
	}
	copy(f.locals, other.locals)
	copy(f.stack, other.stack)
	f.stackHeight = other.stackHeight
	f.returnValue = other.returnValue
	return nil
}

// Clone returns an independent copy of f with the same capacities and
// content.
func (f *Frame) Clone() *Frame {
	c := New(len(f.locals), len(f.stack), f.interp)
	_ = c.Init(f)
	return c
}

// GetLocal returns the value at local slot i.
func (f *Frame) GetLocal(i int) (interpreter.Value, error) {
	if i < 0 || i >= len(f.locals) {
		return nil, clasmerrors.Newf(clasmerrors.IllegalStack, "local index %d out of range [0,%d)", i, len(f.locals))
	}
	return f.locals[i], nil
}

// SetLocal writes v to local slot i, applying the size-2 overwrite rule
// in both directions: writing a size-2 value reserves slot i+1 as its
// continuation filler; writing over either half of an existing size-2
// value invalidates the other half.
func (f *Frame) SetLocal(i int, v interpreter.Value) error {
	if i < 0 || i >= len(f.locals) {
		return clasmerrors.Newf(clasmerrors.IllegalStack, "local index %d out of range [0,%d)", i, len(f.locals))
	}
	if isFiller(f.locals[i]) && i > 0 {
		f.locals[i-1] = f.interp.NewValue(nil)
	}
	if f.locals[i] != nil && !isFiller(f.locals[i]) && f.locals[i].SizeInWords() == 2 && i+1 < len(f.locals) {
		f.locals[i+1] = f.interp.NewValue(nil)
	}
	f.locals[i] = v
	if v.SizeInWords() == 2 {
		if i+1 >= len(f.locals) {
			return clasmerrors.Newf(clasmerrors.IllegalStack, "size-2 local at %d has no continuation slot", i)
		}
		f.locals[i+1] = filler
	}
	return nil
}

// push checks capacity and appends v, occupying two stack words (with a
// filler continuation) when v is size-2.
func (f *Frame) push(v interpreter.Value) error {
	size := v.SizeInWords()
	if f.stackHeight+size > len(f.stack) {
		return clasmerrors.Newf(clasmerrors.IllegalStack, "operand stack overflow (height %d, capacity %d)", f.stackHeight, len(f.stack))
	}
	f.stack[f.stackHeight] = v
	f.stackHeight++
	if size == 2 {
		f.stack[f.stackHeight] = filler
		f.stackHeight++
	}
	return nil
}

// pop removes and returns the top operand-stack value, consuming one or
// two words depending on its category.
func (f *Frame) pop() (interpreter.Value, error) {
	if f.stackHeight == 0 {
		return nil, clasmerrors.New(clasmerrors.IllegalStack, "operand stack underflow")
	}
	top := f.stackHeight - 1
	if isFiller(f.stack[top]) {
		if top == 0 {
			return nil, clasmerrors.New(clasmerrors.IllegalStack, "operand stack underflow beneath size-2 filler")
		}
		v := f.stack[top-1]
		f.stackHeight -= 2
		return v, nil
	}
	v := f.stack[top]
	f.stackHeight--
	return v, nil
}

// topSize reports whether the top operand-stack value occupies one or
// two words, used by POP/POP2 and the DUP family to check preconditions.
func (f *Frame) topSize() (int, error) {
	if f.stackHeight == 0 {
		return 0, clasmerrors.New(clasmerrors.IllegalStack, "operand stack underflow")
	}
	if isFiller(f.stack[f.stackHeight-1]) {
		return 2, nil
	}
	return 1, nil
}

// ClearStack empties the operand stack without touching locals, used to
// build the frame a handler sees on entry.
func (f *Frame) ClearStack() {
	f.stackHeight = 0
}

// Push and Pop expose the stack primitives for callers outside this
// package that build initial or synthetic frames (e.g. the analyzer's
// handler frames).
func (f *Frame) Push(v interpreter.Value) error  { return f.push(v) }
func (f *Frame) Pop() (interpreter.Value, error) { return f.pop() }
