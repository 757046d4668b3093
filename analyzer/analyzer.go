// Package analyzer drives the worklist fixpoint that computes a per-
// instruction abstract frame for a method body. It is the one component
// that ties the instruction list, the frame machine, an interpreter, and
// subroutine tracking together.
package analyzer

import (
	"github.com/google/uuid"

	"clasm/bytecode"
	"clasm/classfile"
	"clasm/descriptor"
	clasmerrors "clasm/errors"
	"clasm/frame"
	"clasm/interpreter"
	"clasm/subroutine"
)

const accStatic = 0x0008

// Logger is the optional diagnostics sink an embedder may supply; its
// zero value (nil) means analysis runs silently. It is satisfied trivially
// by the standard library's *log.Logger.
type Logger interface {
	Printf(format string, args ...any)
}

// Analyzer computes per-instruction frames for methods belonging to one
// owner class. It carries no per-call state beyond its Logger, so one
// Analyzer is safely reused (not shared concurrently) across many
// Analyze calls.
type Analyzer struct {
	Interp interpreter.Interpreter
	Logger Logger
}

// New returns an Analyzer driven by interp, with diagnostics disabled.
func New(interp interpreter.Interpreter) *Analyzer {
	return &Analyzer{Interp: interp}
}

// Analyze computes frames[i] for every instruction of method, as seen by
// ownerInternalName. Abstract or native methods yield a nil slice.
// Every error surfaces wrapped as ANALYSIS_FAILED with the offending
// instruction index. Each call also gets a correlation ID; it appears
// only in the Logger's lines, not in the returned error.
func (a *Analyzer) Analyze(ownerInternalName string, method *classfile.MethodNode) ([]*frame.Frame, error) {
	runID := uuid.New()
	if method.IsAbstractOrNative() {
		return nil, nil
	}

	insns := method.Instructions.ToArray()
	n := len(insns)
	if n == 0 {
		return nil, nil
	}

	indexOf := make(map[bytecode.Insn]int, n)
	labelIndex := make(map[*bytecode.Label]int)
	for i, insn := range insns {
		indexOf[insn] = i
		if l, ok := insn.(*bytecode.LabelInsn); ok {
			labelIndex[l.Label] = i
		}
	}

	handlers, err := buildHandlerLists(method.TryCatchBlocks, labelIndex, n)
	if err != nil {
		return nil, a.fail(runID, 0, err)
	}

	subs := make([]*subroutine.Subroutine, n)
	if err := discoverSubroutines(insns, labelIndex, handlers, subs, method.MaxLocals); err != nil {
		return nil, a.fail(runID, 0, err)
	}

	initial, err := initialFrame(ownerInternalName, method, a.Interp)
	if err != nil {
		return nil, a.fail(runID, 0, err)
	}

	w := &walker{
		insns:      insns,
		indexOf:    indexOf,
		labelIndex: labelIndex,
		handlers:   handlers,
		frames:     make([]*frame.Frame, n),
		subs:       subs,
		inWorklist: make([]bool, n),
		interp:     a.Interp,
	}

	if err := w.mergeInto(0, initial, subs[0]); err != nil {
		return nil, a.fail(runID, 0, err)
	}
	w.push(0)

	for len(w.worklist) > 0 {
		i := w.pop()
		if err := w.step(i); err != nil {
			return nil, a.fail(runID, i, err)
		}
	}

	if a.Logger != nil {
		a.Logger.Printf("clasm analyzer %s: %s instructions, %s reachable",
			runID, formatCount(n), formatCount(countReachable(w.frames)))
	}

	return w.frames, nil
}

func (a *Analyzer) fail(runID uuid.UUID, insnIndex int, cause error) error {
	if ce, ok := cause.(*clasmerrors.ClasmError); ok && ce.Kind == clasmerrors.AnalysisFailed {
		if ce.InsnIndex < 0 {
			return ce.AtInsn(insnIndex)
		}
		return ce
	}
	wrapped := clasmerrors.AnalysisFailure(insnIndex, cause)
	if a.Logger != nil {
		a.Logger.Printf("clasm analyzer %s: failed at instruction %d: %v", runID, insnIndex, wrapped)
	}
	return wrapped
}

func countReachable(frames []*frame.Frame) int {
	n := 0
	for _, f := range frames {
		if f != nil {
			n++
		}
	}
	return n
}

// buildHandlerLists expands each try/catch block into a per-instruction
// list of the handlers covering it, so propagateHandlers can look up
// coverage for a given index in O(1).
func buildHandlerLists(blocks []classfile.TryCatchBlock, labelIndex map[*bytecode.Label]int, n int) ([][]classfile.TryCatchBlock, error) {
	handlers := make([][]classfile.TryCatchBlock, n)
	for _, tcb := range blocks {
		start, ok := labelIndex[tcb.Start]
		if !ok {
			return nil, clasmerrors.New(clasmerrors.AnalysisFailed, "try/catch block start label not found in instruction list")
		}
		end, ok := labelIndex[tcb.End]
		if !ok {
			return nil, clasmerrors.New(clasmerrors.AnalysisFailed, "try/catch block end label not found in instruction list")
		}
		for j := start; j < end; j++ {
			handlers[j] = append(handlers[j], tcb)
		}
	}
	return handlers, nil
}

// initialFrame builds the frame seen at instruction 0: receiver and
// parameters loaded into locals per the method descriptor, empty stack.
func initialFrame(owner string, method *classfile.MethodNode, interp interpreter.Interpreter) (*frame.Frame, error) {
	desc, err := descriptor.ParseMethod(method.Descriptor)
	if err != nil {
		return nil, err
	}
	f := frame.New(method.MaxLocals, method.MaxStack, interp)

	slot := 0
	if method.Access&accStatic == 0 {
		v := interp.NewValue(&interpreter.TypeHint{Descriptor: "L" + owner + ";"})
		if err := f.SetLocal(slot, v); err != nil {
			return nil, err
		}
		slot++
	}
	for _, p := range desc.ParameterTypes() {
		v := interp.NewValue(&interpreter.TypeHint{Descriptor: p.DescriptorString()})
		if err := f.SetLocal(slot, v); err != nil {
			return nil, err
		}
		slot += p.SizeInWords()
	}

	ret := desc.ReturnType()
	if ret.Sort() != descriptor.Void {
		f.SetReturnValue(interp.NewValue(&interpreter.TypeHint{Descriptor: ret.DescriptorString()}))
	}
	return f, nil
}
