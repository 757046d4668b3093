package analyzer

import (
	"clasm/bytecode"
	"clasm/classfile"
	clasmerrors "clasm/errors"
	"clasm/subroutine"
)

// discoverSubroutines assigns each instruction to the subroutine that
// owns it ahead of the main fixpoint walk: a CFG walk from index 0
// under a sentinel "main" subroutine, queuing JSR targets for a second
// pass so each gets its own fresh Subroutine. subs is populated in place;
// any instruction left holding the sentinel at the end is normalized back
// to nil, since the sentinel only exists to distinguish "not yet visited"
// from "visited, not in a real subroutine" during the walk itself.
func discoverSubroutines(insns []bytecode.Insn, labelIndex map[*bytecode.Label]int, handlers [][]classfile.TryCatchBlock, subs []*subroutine.Subroutine, numLocals int) error {
	n := len(insns)
	var jsrQueue []*bytecode.JumpInsn

	walk := func(start int, sub *subroutine.Subroutine) error {
		stack := []int{start}
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if i >= n {
				return clasmerrors.New(clasmerrors.FallOffEnd, "control falls off the end of the method")
			}
			if subs[i] != nil {
				continue
			}
			subs[i] = sub.Clone()

			fallsThrough := true
			switch t := insns[i].(type) {
			case *bytecode.JumpInsn:
				if t.Op == bytecode.JSR {
					jsrQueue = append(jsrQueue, t)
					stack = append(stack, i+1)
				} else {
					if isConditionalJump(t.Op) {
						stack = append(stack, i+1)
					}
					targetIdx, ok := labelIndex[t.Target]
					if !ok {
						return clasmerrors.New(clasmerrors.AnalysisFailed, "jump target label not found in instruction list")
					}
					stack = append(stack, targetIdx)
				}
				fallsThrough = false
			case *bytecode.TableSwitchInsn:
				di, ok := labelIndex[t.Default]
				if !ok {
					return clasmerrors.New(clasmerrors.AnalysisFailed, "switch default label not found in instruction list")
				}
				stack = append(stack, di)
				for _, l := range t.Labels {
					li, ok := labelIndex[l]
					if !ok {
						return clasmerrors.New(clasmerrors.AnalysisFailed, "switch case label not found in instruction list")
					}
					stack = append(stack, li)
				}
				fallsThrough = false
			case *bytecode.LookupSwitchInsn:
				di, ok := labelIndex[t.Default]
				if !ok {
					return clasmerrors.New(clasmerrors.AnalysisFailed, "switch default label not found in instruction list")
				}
				stack = append(stack, di)
				for _, l := range t.Labels {
					li, ok := labelIndex[l]
					if !ok {
						return clasmerrors.New(clasmerrors.AnalysisFailed, "switch case label not found in instruction list")
					}
					stack = append(stack, li)
				}
				fallsThrough = false
			case *bytecode.SimpleInsn:
				if isNoFallthroughSimple(t.Op) {
					fallsThrough = false
				}
			case *bytecode.VarInsn:
				if t.Op == bytecode.RET {
					fallsThrough = false
				}
			}

			for _, h := range handlers[i] {
				hi, ok := labelIndex[h.Handler]
				if !ok {
					return clasmerrors.New(clasmerrors.AnalysisFailed, "handler label not found in instruction list")
				}
				stack = append(stack, hi)
			}
			if fallsThrough {
				stack = append(stack, i+1)
			}
		}
		return nil
	}

	main := subroutine.New(nil, numLocals)
	if err := walk(0, main); err != nil {
		return err
	}

	rooted := make(map[*bytecode.Label]*subroutine.Subroutine)
	for _, jsr := range jsrQueue {
		if sub, ok := rooted[jsr.Target]; ok {
			sub.Callers[jsr] = struct{}{}
			continue
		}
		targetIdx, ok := labelIndex[jsr.Target]
		if !ok {
			return clasmerrors.New(clasmerrors.AnalysisFailed, "JSR target label not found in instruction list")
		}
		fresh := subroutine.New(jsr.Target, numLocals)
		fresh.Callers[jsr] = struct{}{}
		rooted[jsr.Target] = fresh
		if err := walk(targetIdx, fresh); err != nil {
			return err
		}
	}

	for i, s := range subs {
		if s != nil && s.Start == nil {
			subs[i] = nil
		}
	}
	return nil
}

func isConditionalJump(op bytecode.Opcode) bool {
	switch op {
	case bytecode.IFEQ, bytecode.IFNE, bytecode.IFLT, bytecode.IFGE, bytecode.IFGT, bytecode.IFLE,
		bytecode.IF_ICMPEQ, bytecode.IF_ICMPNE, bytecode.IF_ICMPLT, bytecode.IF_ICMPGE,
		bytecode.IF_ICMPGT, bytecode.IF_ICMPLE, bytecode.IF_ACMPEQ, bytecode.IF_ACMPNE,
		bytecode.IFNULL, bytecode.IFNONNULL:
		return true
	}
	return false
}

func isNoFallthroughSimple(op bytecode.Opcode) bool {
	switch op {
	case bytecode.IRETURN, bytecode.LRETURN, bytecode.FRETURN, bytecode.DRETURN, bytecode.ARETURN,
		bytecode.RETURN, bytecode.ATHROW:
		return true
	}
	return false
}
