package analyzer

import (
	"clasm/bytecode"
	"clasm/classfile"
	clasmerrors "clasm/errors"
	"clasm/frame"
	"clasm/interpreter"
	"clasm/subroutine"
)

// walker holds the worklist fixpoint's mutable state for one Analyze call.
type walker struct {
	insns      []bytecode.Insn
	indexOf    map[bytecode.Insn]int
	labelIndex map[*bytecode.Label]int
	handlers   [][]classfile.TryCatchBlock

	frames     []*frame.Frame
	subs       []*subroutine.Subroutine
	worklist   []int
	inWorklist []bool
	interp     interpreter.Interpreter
}

func (w *walker) push(i int) {
	if !w.inWorklist[i] {
		w.inWorklist[i] = true
		w.worklist = append(w.worklist, i)
	}
}

func (w *walker) pop() int {
	last := len(w.worklist) - 1
	i := w.worklist[last]
	w.worklist = w.worklist[:last]
	w.inWorklist[i] = false
	return i
}

// step processes one worklist entry: execute i's instruction effect on a
// copy of frames[i], then propagate the result to every successor (fall
// through, jump targets, switch targets, RET callers, exception
// handlers).
func (w *walker) step(i int) error {
	current := w.frames[i].Clone()
	preExecution := w.frames[i]

	var curSub *subroutine.Subroutine
	if w.subs[i] != nil {
		curSub = w.subs[i].Clone()
	}

	insn := w.insns[i]

	if err := current.Execute(insn, w.interp); err != nil {
		return err
	}

	if curSub != nil {
		recordLocalAccess(insn, curSub)
	}

	if err := w.propagateSuccessors(i, insn, current, curSub); err != nil {
		return err
	}
	if err := w.propagateHandlers(i, preExecution); err != nil {
		return err
	}
	return nil
}

func recordLocalAccess(insn bytecode.Insn, sub *subroutine.Subroutine) {
	switch n := insn.(type) {
	case *bytecode.VarInsn:
		if n.Op == bytecode.RET {
			return
		}
		sub.MarkLocalUsed(n.Var)
		if isWideVar(n.Op) {
			sub.MarkLocalUsed(n.Var + 1)
		}
	case *bytecode.IincInsn:
		sub.MarkLocalUsed(n.Var)
	}
}

func isWideVar(op bytecode.Opcode) bool {
	switch op {
	case bytecode.LLOAD, bytecode.DLOAD, bytecode.LSTORE, bytecode.DSTORE:
		return true
	}
	return false
}

func (w *walker) propagateSuccessors(i int, insn bytecode.Insn, current *frame.Frame, curSub *subroutine.Subroutine) error {
	n := len(w.insns)

	switch t := insn.(type) {
	case *bytecode.JumpInsn:
		switch t.Op {
		case bytecode.JSR:
			targetIdx, ok := w.labelIndex[t.Target]
			if !ok {
				return clasmerrors.New(clasmerrors.AnalysisFailed, "JSR target label not found")
			}
			fresh := subroutine.New(t.Target, current.NumLocals())
			fresh.Callers[t] = struct{}{}
			return w.mergeInto(targetIdx, current, fresh)
		case bytecode.GOTO:
			targetIdx, ok := w.labelIndex[t.Target]
			if !ok {
				return clasmerrors.New(clasmerrors.AnalysisFailed, "jump target label not found")
			}
			return w.mergeInto(targetIdx, current, curSub)
		default:
			targetIdx, ok := w.labelIndex[t.Target]
			if !ok {
				return clasmerrors.New(clasmerrors.AnalysisFailed, "jump target label not found")
			}
			if err := w.mergeInto(targetIdx, current, curSub); err != nil {
				return err
			}
			return w.fallThrough(i, n, current, curSub)
		}
	case *bytecode.TableSwitchInsn:
		return w.propagateSwitch(t.Default, t.Labels, current, curSub)
	case *bytecode.LookupSwitchInsn:
		return w.propagateSwitch(t.Default, t.Labels, current, curSub)
	case *bytecode.VarInsn:
		if t.Op == bytecode.RET {
			return w.propagateRet(curSub, current)
		}
	case *bytecode.SimpleInsn:
		if isNoFallthroughSimple(t.Op) {
			return nil
		}
	}
	return w.fallThrough(i, n, current, curSub)
}

func (w *walker) fallThrough(i, n int, current *frame.Frame, curSub *subroutine.Subroutine) error {
	if i+1 >= n {
		return clasmerrors.New(clasmerrors.FallOffEnd, "control falls off the end of the method")
	}
	return w.mergeInto(i+1, current, curSub)
}

func (w *walker) propagateSwitch(deflt *bytecode.Label, labels []*bytecode.Label, current *frame.Frame, curSub *subroutine.Subroutine) error {
	di, ok := w.labelIndex[deflt]
	if !ok {
		return clasmerrors.New(clasmerrors.AnalysisFailed, "switch default label not found")
	}
	if err := w.mergeInto(di, current, curSub); err != nil {
		return err
	}
	for _, l := range labels {
		li, ok := w.labelIndex[l]
		if !ok {
			return clasmerrors.New(clasmerrors.AnalysisFailed, "switch case label not found")
		}
		if err := w.mergeInto(li, current, curSub); err != nil {
			return err
		}
	}
	return nil
}

// propagateRet handles a RET: for each caller of the current subroutine
// with a recorded pre-JSR frame, merge the subroutine's exit state back
// into the instruction after that caller.
func (w *walker) propagateRet(curSub *subroutine.Subroutine, current *frame.Frame) error {
	if curSub == nil {
		return nil
	}
	for caller := range curSub.Callers {
		callerIdx, ok := w.indexOf[caller]
		if !ok {
			continue
		}
		frameBeforeJSR := w.frames[callerIdx]
		if frameBeforeJSR == nil {
			continue
		}
		merged := current.Clone()
		if _, err := merged.MergeAfterRet(frameBeforeJSR, curSub.LocalUsed, w.interp); err != nil {
			return err
		}
		after := callerIdx + 1
		if after >= len(w.insns) {
			return clasmerrors.New(clasmerrors.FallOffEnd, "RET returns past the end of the method")
		}
		if err := w.mergeInto(after, merged, w.subs[callerIdx]); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) propagateHandlers(i int, preExecution *frame.Frame) error {
	for _, tcb := range w.handlers[i] {
		handlerIdx, ok := w.labelIndex[tcb.Handler]
		if !ok {
			return clasmerrors.New(clasmerrors.AnalysisFailed, "handler label not found")
		}
		h := preExecution.Clone()
		h.ClearStack()
		excValue := w.interp.NewExceptionValue(tcb.CatchType)
		if err := h.Push(excValue); err != nil {
			return err
		}
		if err := w.mergeInto(handlerIdx, h, w.subs[i]); err != nil {
			return err
		}
	}
	return nil
}

// mergeInto merges f and sub into whatever is currently recorded at
// index j, pushing j back onto the worklist if the merge changed
// anything.
func (w *walker) mergeInto(j int, f *frame.Frame, sub *subroutine.Subroutine) error {
	changed := false

	if w.frames[j] == nil {
		w.frames[j] = f.Clone()
		changed = true
	} else {
		c, err := w.frames[j].Merge(f, w.interp)
		if err != nil {
			return err
		}
		changed = changed || c
	}

	if sub != nil {
		if w.subs[j] == nil {
			w.subs[j] = sub.Clone()
			changed = true
		} else if w.subs[j].Merge(sub) {
			changed = true
		}
	}

	if changed {
		w.push(j)
	}
	return nil
}
