package frame

import (
	clasmerrors "clasm/errors"
	"clasm/interpreter"
)

// Merge joins other into f, pointwise, via interp's lattice. It requires
// equal stack heights (mismatched heights mean the two control-flow
// paths disagree on how many values are live, an INCOMPATIBLE_FRAMES
// error) and reports whether f changed.
func (f *Frame) Merge(other *Frame, interp interpreter.Interpreter) (bool, error) {
	if f.stackHeight != other.stackHeight {
		return false, clasmerrors.Newf(clasmerrors.IncompatibleFrames,
			"stack heights differ: %d vs %d", f.stackHeight, other.stackHeight)
	}
	changed := false

	for i := range f.locals {
		c, err := mergeSlot(&f.locals[i], other.locals[i], interp)
		if err != nil {
			return false, err
		}
		changed = changed || c
	}
	for i := 0; i < f.stackHeight; i++ {
		c, err := mergeSlot(&f.stack[i], other.stack[i], interp)
		if err != nil {
			return false, err
		}
		changed = changed || c
	}
	return changed, nil
}

// mergeSlot merges b into *slot, treating the filler sentinel as
// transparent: a filler only merges with another filler (consistent
// size-2 continuation), never with a real value from this package's
// perspective, since the governing size-2 value at the preceding slot
// already determines sizing.
func mergeSlot(slot *interpreter.Value, b interpreter.Value, interp interpreter.Interpreter) (bool, error) {
	a := *slot
	if isFiller(a) || isFiller(b) {
		if isFiller(a) != isFiller(b) {
			return false, clasmerrors.New(clasmerrors.IncompatibleFrames, "merging frames with mismatched size-2 slot alignment")
		}
		return false, nil
	}
	merged, err := interp.Merge(a, b)
	if err != nil {
		return false, err
	}
	if merged == a {
		return false, nil
	}
	*slot = merged
	return true, nil
}

// MergeAfterRet merges f (the subroutine's exit frame) back into the
// frame at the instruction after a JSR: only locals the subroutine
// never touched are taken from frameBeforeJSR; the stack is
// never merged (the caller's own stack is untouched by the subroutine
// call). usedByLocal reports whether the subroutine recorded slot i as
// read or written.
func (f *Frame) MergeAfterRet(frameBeforeJSR *Frame, usedByLocal func(i int) bool, interp interpreter.Interpreter) (bool, error) {
	changed := false
	for i := range f.locals {
		if usedByLocal(i) {
			continue
		}
		if v := frameBeforeJSR.locals[i]; f.locals[i] != v {
			f.locals[i] = v
			changed = true
		}
	}
	return changed, nil
}
