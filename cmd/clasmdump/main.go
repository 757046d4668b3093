// cmd/clasmdump builds a small method body by hand and prints the frames
// the analyzer computes for it. There is no .class file reader in this
// module (out of scope), so this is a smoke test of the analyzer/frame/
// interpreter pipeline, not a general-purpose tool.
package main

import (
	"fmt"
	"log"
	"os"

	"clasm/analyzer"
	"clasm/bytecode"
	"clasm/classfile"
	"clasm/interpreter"
)

func main() {
	kind := "sum"
	if len(os.Args) > 1 {
		kind = os.Args[1]
	}

	method, owner, err := sampleMethod(kind)
	if err != nil {
		log.Fatalf("clasmdump: %v", err)
	}

	a := analyzer.New(interpreter.BasicInterpreter{})
	a.Logger = log.Default()

	frames, err := a.Analyze(owner, method)
	if err != nil {
		log.Fatalf("clasmdump: analysis failed: %v", err)
	}

	if err := analyzer.Dump(os.Stdout, method.Instructions.ToArray(), frames); err != nil {
		log.Fatalf("clasmdump: %v", err)
	}
}

// sampleMethod returns one of a small set of hand-built method bodies
// exercising the analyzer's control-flow handling: "sum" is a loop that
// branches back with IFNE, "dead" has unreachable code after a return, "jsr" uses a
// finally-style subroutine.
func sampleMethod(kind string) (*classfile.MethodNode, string, error) {
	const owner = "com/example/Sample"
	const accStatic = 0x0008

	switch kind {
	case "sum":
		m := classfile.NewMethodNode(accStatic, "sum", "(I)I", "", nil)
		m.MaxStack, m.MaxLocals = 2, 2
		start := bytecode.NewLabel()
		m.Instructions.PushBack(bytecode.NewSimpleInsn(bytecode.ICONST_0))
		m.Instructions.PushBack(bytecode.NewVarInsn(bytecode.ISTORE, 1))
		m.Instructions.PushBack(bytecode.NewLabelInsn(start))
		m.Instructions.PushBack(bytecode.NewVarInsn(bytecode.ILOAD, 1))
		m.Instructions.PushBack(bytecode.NewVarInsn(bytecode.ILOAD, 0))
		m.Instructions.PushBack(bytecode.NewSimpleInsn(bytecode.IADD))
		m.Instructions.PushBack(bytecode.NewVarInsn(bytecode.ISTORE, 1))
		m.Instructions.PushBack(bytecode.NewVarInsn(bytecode.ILOAD, 1))
		m.Instructions.PushBack(bytecode.NewJumpInsn(bytecode.IFNE, start))
		m.Instructions.PushBack(bytecode.NewVarInsn(bytecode.ILOAD, 1))
		m.Instructions.PushBack(bytecode.NewSimpleInsn(bytecode.IRETURN))
		return m, owner, nil

	case "dead":
		m := classfile.NewMethodNode(accStatic, "dead", "()I", "", nil)
		m.MaxStack, m.MaxLocals = 1, 0
		m.Instructions.PushBack(bytecode.NewSimpleInsn(bytecode.ICONST_0))
		m.Instructions.PushBack(bytecode.NewSimpleInsn(bytecode.IRETURN))
		m.Instructions.PushBack(bytecode.NewSimpleInsn(bytecode.ICONST_1))
		m.Instructions.PushBack(bytecode.NewSimpleInsn(bytecode.IRETURN))
		return m, owner, nil

	case "jsr":
		m := classfile.NewMethodNode(accStatic, "withFinally", "()V", "", nil)
		m.MaxStack, m.MaxLocals = 1, 2
		l0 := bytecode.NewLabel()
		m.Instructions.PushBack(bytecode.NewJumpInsn(bytecode.JSR, l0))
		m.Instructions.PushBack(bytecode.NewSimpleInsn(bytecode.RETURN))
		m.Instructions.PushBack(bytecode.NewLabelInsn(l0))
		m.Instructions.PushBack(bytecode.NewVarInsn(bytecode.ASTORE, 1))
		m.Instructions.PushBack(bytecode.NewVarInsn(bytecode.RET, 1))
		return m, owner, nil
	}

	return nil, "", fmt.Errorf("unknown sample kind %q (want sum, dead, or jsr)", kind)
}
