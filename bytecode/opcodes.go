// Package bytecode models a method's code as a mutable, indexable doubly
// linked list of instruction nodes, the in-memory representation the
// analyzer walks. The opcode enum below and the instruction-list
// container that follows it in list.go are split the way an opcode table
// and a growable instruction chunk are usually kept apart, generalized
// here from a flat growable byte array to a doubly linked node list so
// structural edits are O(1) instead of O(n) array shifts.
package bytecode

// Opcode is a JVM instruction opcode (JVMS §6.5), or one of the negative
// pseudo-opcodes used for label/line-number/stack-map-frame nodes that
// carry no runtime opcode of their own.
type Opcode int

const (
	NOP             Opcode = 0
	ACONST_NULL     Opcode = 1
	ICONST_M1       Opcode = 2
	ICONST_0        Opcode = 3
	ICONST_1        Opcode = 4
	ICONST_2        Opcode = 5
	ICONST_3        Opcode = 6
	ICONST_4        Opcode = 7
	ICONST_5        Opcode = 8
	LCONST_0        Opcode = 9
	LCONST_1        Opcode = 10
	FCONST_0        Opcode = 11
	FCONST_1        Opcode = 12
	FCONST_2        Opcode = 13
	DCONST_0        Opcode = 14
	DCONST_1        Opcode = 15
	BIPUSH          Opcode = 16
	SIPUSH          Opcode = 17
	LDC             Opcode = 18
	LDC_W           Opcode = 19
	LDC2_W          Opcode = 20
	ILOAD           Opcode = 21
	LLOAD           Opcode = 22
	FLOAD           Opcode = 23
	DLOAD           Opcode = 24
	ALOAD           Opcode = 25
	IALOAD          Opcode = 46
	LALOAD          Opcode = 47
	FALOAD          Opcode = 48
	DALOAD          Opcode = 49
	AALOAD          Opcode = 50
	BALOAD          Opcode = 51
	CALOAD          Opcode = 52
	SALOAD          Opcode = 53
	ISTORE          Opcode = 54
	LSTORE          Opcode = 55
	FSTORE          Opcode = 56
	DSTORE          Opcode = 57
	ASTORE          Opcode = 58
	IASTORE         Opcode = 79
	LASTORE         Opcode = 80
	FASTORE         Opcode = 81
	DASTORE         Opcode = 82
	AASTORE         Opcode = 83
	BASTORE         Opcode = 84
	CASTORE         Opcode = 85
	SASTORE         Opcode = 86
	POP             Opcode = 87
	POP2            Opcode = 88
	DUP             Opcode = 89
	DUP_X1          Opcode = 90
	DUP_X2          Opcode = 91
	DUP2            Opcode = 92
	DUP2_X1         Opcode = 93
	DUP2_X2         Opcode = 94
	SWAP            Opcode = 95
	IADD            Opcode = 96
	LADD            Opcode = 97
	FADD            Opcode = 98
	DADD            Opcode = 99
	ISUB            Opcode = 100
	LSUB            Opcode = 101
	FSUB            Opcode = 102
	DSUB            Opcode = 103
	IMUL            Opcode = 104
	LMUL            Opcode = 105
	FMUL            Opcode = 106
	DMUL            Opcode = 107
	IDIV            Opcode = 108
	LDIV            Opcode = 109
	FDIV            Opcode = 110
	DDIV            Opcode = 111
	IREM            Opcode = 112
	LREM            Opcode = 113
	FREM            Opcode = 114
	DREM            Opcode = 115
	INEG            Opcode = 116
	LNEG            Opcode = 117
	FNEG            Opcode = 118
	DNEG            Opcode = 119
	ISHL            Opcode = 120
	LSHL            Opcode = 121
	ISHR            Opcode = 122
	LSHR            Opcode = 123
	IUSHR           Opcode = 124
	LUSHR           Opcode = 125
	IAND            Opcode = 126
	LAND            Opcode = 127
	IOR             Opcode = 128
	LOR             Opcode = 129
	IXOR            Opcode = 130
	LXOR            Opcode = 131
	IINC            Opcode = 132
	I2L             Opcode = 133
	I2F             Opcode = 134
	I2D             Opcode = 135
	L2I             Opcode = 136
	L2F             Opcode = 137
	L2D             Opcode = 138
	F2I             Opcode = 139
	F2L             Opcode = 140
	F2D             Opcode = 141
	D2I             Opcode = 142
	D2L             Opcode = 143
	D2F             Opcode = 144
	I2B             Opcode = 145
	I2C             Opcode = 146
	I2S             Opcode = 147
	LCMP            Opcode = 148
	FCMPL           Opcode = 149
	FCMPG           Opcode = 150
	DCMPL           Opcode = 151
	DCMPG           Opcode = 152
	IFEQ            Opcode = 153
	IFNE            Opcode = 154
	IFLT            Opcode = 155
	IFGE            Opcode = 156
	IFGT            Opcode = 157
	IFLE            Opcode = 158
	IF_ICMPEQ       Opcode = 159
	IF_ICMPNE       Opcode = 160
	IF_ICMPLT       Opcode = 161
	IF_ICMPGE       Opcode = 162
	IF_ICMPGT       Opcode = 163
	IF_ICMPLE       Opcode = 164
	IF_ACMPEQ       Opcode = 165
	IF_ACMPNE       Opcode = 166
	GOTO            Opcode = 167
	JSR             Opcode = 168
	RET             Opcode = 169
	TABLESWITCH     Opcode = 170
	LOOKUPSWITCH    Opcode = 171
	IRETURN         Opcode = 172
	LRETURN         Opcode = 173
	FRETURN         Opcode = 174
	DRETURN         Opcode = 175
	ARETURN         Opcode = 176
	RETURN          Opcode = 177
	GETSTATIC       Opcode = 178
	PUTSTATIC       Opcode = 179
	GETFIELD        Opcode = 180
	PUTFIELD        Opcode = 181
	INVOKEVIRTUAL   Opcode = 182
	INVOKESPECIAL   Opcode = 183
	INVOKESTATIC    Opcode = 184
	INVOKEINTERFACE Opcode = 185
	INVOKEDYNAMIC   Opcode = 186
	NEW             Opcode = 187
	NEWARRAY        Opcode = 188
	ANEWARRAY       Opcode = 189
	ARRAYLENGTH     Opcode = 190
	ATHROW          Opcode = 191
	CHECKCAST       Opcode = 192
	INSTANCEOF      Opcode = 193
	MONITORENTER    Opcode = 194
	MONITOREXIT     Opcode = 195
	MULTIANEWARRAY  Opcode = 197
	IFNULL          Opcode = 198
	IFNONNULL       Opcode = 199
	GOTO_W          Opcode = 200
	JSR_W           Opcode = 201

	// Pseudo-opcodes: these instructions carry no runtime opcode. They
	// exist only in the in-memory instruction list, never in a compiled
	// Code attribute.
	pseudoBase  Opcode = -1
	opLabel     Opcode = pseudoBase - 0
	opLineNum   Opcode = pseudoBase - 1
	opFrame     Opcode = pseudoBase - 2
)

// NewArray type codes for the NEWARRAY instruction (JVMS §6.5.newarray).
const (
	T_BOOLEAN = 4
	T_CHAR    = 5
	T_FLOAT   = 6
	T_DOUBLE  = 7
	T_BYTE    = 8
	T_SHORT   = 9
	T_INT     = 10
	T_LONG    = 11
)

// FrameType distinguishes the six StackMapTable frame kinds (JVMS §4.7.4).
type FrameType int

const (
	FrameNew   FrameType = iota // an expanded (uncompressed) frame
	FrameFull
	FrameAppend
	FrameChop
	FrameSame
	FrameSame1
)
