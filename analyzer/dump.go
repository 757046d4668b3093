package analyzer

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"clasm/bytecode"
	"clasm/frame"
)

// formatCount renders n with thousands separators for log lines; analyzer
// runs over generated or decompiled methods occasionally reach instruction
// counts large enough that a bare integer is hard to scan.
func formatCount(n int) string {
	return humanize.Comma(int64(n))
}

// Dump writes a Textifier-style listing of insns alongside the frame
// Analyze computed for each one: one line per instruction, its index, its
// Go node type, and the locals/stack word counts of the frame reaching it (or
// "unreachable" when frames[i] is nil). It is a debugging aid, not part of
// any analysis path.
func Dump(w io.Writer, insns []bytecode.Insn, frames []*frame.Frame) error {
	for i, insn := range insns {
		state := "unreachable"
		if i < len(frames) && frames[i] != nil {
			f := frames[i]
			state = fmt.Sprintf("locals=%d stack=%d/%d", f.NumLocals(), f.StackHeight(), f.MaxStack())
		}
		if _, err := fmt.Fprintf(w, "%4d: %-24T %s\n", i, insn, state); err != nil {
			return err
		}
	}
	return nil
}
