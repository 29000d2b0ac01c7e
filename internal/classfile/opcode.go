package classfile

import "fmt"

// Opcode is a JVM instruction opcode.
type Opcode uint8

// Opcodes emitted or inspected by this module. The full mnemonic table is
// opcodeNames.
const (
	Nop             Opcode = 0x00
	AconstNull      Opcode = 0x01
	IconstM1        Opcode = 0x02
	Iconst0         Opcode = 0x03
	Lconst0         Opcode = 0x09
	Fconst0         Opcode = 0x0b
	Dconst0         Opcode = 0x0e
	Bipush          Opcode = 0x10
	Sipush          Opcode = 0x11
	Ldc             Opcode = 0x12
	LdcW            Opcode = 0x13
	Ldc2W           Opcode = 0x14
	Aload           Opcode = 0x19
	Aload0          Opcode = 0x2a
	Astore          Opcode = 0x3a
	Astore0         Opcode = 0x4b
	Pop             Opcode = 0x57
	Dup             Opcode = 0x59
	Ifeq            Opcode = 0x99
	Goto            Opcode = 0xa7
	Jsr             Opcode = 0xa8
	Tableswitch     Opcode = 0xaa
	Lookupswitch    Opcode = 0xab
	Areturn         Opcode = 0xb0
	Return          Opcode = 0xb1
	Getstatic       Opcode = 0xb2
	Putstatic       Opcode = 0xb3
	Getfield        Opcode = 0xb4
	Putfield        Opcode = 0xb5
	Invokevirtual   Opcode = 0xb6
	Invokespecial   Opcode = 0xb7
	Invokestatic    Opcode = 0xb8
	Invokeinterface Opcode = 0xb9
	Invokedynamic   Opcode = 0xba
	New             Opcode = 0xbb
	Anewarray       Opcode = 0xbd
	Checkcast       Opcode = 0xc0
	Wide            Opcode = 0xc4
	Ifnull          Opcode = 0xc6
	Ifnonnull       Opcode = 0xc7
	GotoW           Opcode = 0xc8
	JsrW            Opcode = 0xc9
)

var opcodeNames = [...]string{
	"nop", "aconst_null", "iconst_m1", "iconst_0", "iconst_1", "iconst_2", "iconst_3", "iconst_4",
	"iconst_5", "lconst_0", "lconst_1", "fconst_0", "fconst_1", "fconst_2", "dconst_0", "dconst_1",
	"bipush", "sipush", "ldc", "ldc_w", "ldc2_w", "iload", "lload", "fload",
	"dload", "aload", "iload_0", "iload_1", "iload_2", "iload_3", "lload_0", "lload_1",
	"lload_2", "lload_3", "fload_0", "fload_1", "fload_2", "fload_3", "dload_0", "dload_1",
	"dload_2", "dload_3", "aload_0", "aload_1", "aload_2", "aload_3", "iaload", "laload",
	"faload", "daload", "aaload", "baload", "caload", "saload", "istore", "lstore",
	"fstore", "dstore", "astore", "istore_0", "istore_1", "istore_2", "istore_3", "lstore_0",
	"lstore_1", "lstore_2", "lstore_3", "fstore_0", "fstore_1", "fstore_2", "fstore_3", "dstore_0",
	"dstore_1", "dstore_2", "dstore_3", "astore_0", "astore_1", "astore_2", "astore_3", "iastore",
	"lastore", "fastore", "dastore", "aastore", "bastore", "castore", "sastore", "pop",
	"pop2", "dup", "dup_x1", "dup_x2", "dup2", "dup2_x1", "dup2_x2", "swap",
	"iadd", "ladd", "fadd", "dadd", "isub", "lsub", "fsub", "dsub",
	"imul", "lmul", "fmul", "dmul", "idiv", "ldiv", "fdiv", "ddiv",
	"irem", "lrem", "frem", "drem", "ineg", "lneg", "fneg", "dneg",
	"ishl", "lshl", "ishr", "lshr", "iushr", "lushr", "iand", "land",
	"ior", "lor", "ixor", "lxor", "iinc", "i2l", "i2f", "i2d",
	"l2i", "l2f", "l2d", "f2i", "f2l", "f2d", "d2i", "d2l",
	"d2f", "i2b", "i2c", "i2s", "lcmp", "fcmpl", "fcmpg", "dcmpl",
	"dcmpg", "ifeq", "ifne", "iflt", "ifge", "ifgt", "ifle", "if_icmpeq",
	"if_icmpne", "if_icmplt", "if_icmpge", "if_icmpgt", "if_icmple", "if_acmpeq", "if_acmpne", "goto",
	"jsr", "ret", "tableswitch", "lookupswitch", "ireturn", "lreturn", "freturn", "dreturn",
	"areturn", "return", "getstatic", "putstatic", "getfield", "putfield", "invokevirtual", "invokespecial",
	"invokestatic", "invokeinterface", "invokedynamic", "new", "newarray", "anewarray", "arraylength", "athrow",
	"checkcast", "instanceof", "monitorenter", "monitorexit", "wide", "multianewarray", "ifnull", "ifnonnull",
	"goto_w", "jsr_w", "breakpoint",
}

func (op Opcode) String() string {
	switch {
	case int(op) < len(opcodeNames):
		return opcodeNames[op]
	case op == 0xfe:
		return "impdep1"
	case op == 0xff:
		return "impdep2"
	default:
		return fmt.Sprintf("opcode(0x%02x)", uint8(op))
	}
}

// fixedLength returns the encoded size of op including the opcode byte, 0 for
// variable-length instructions and -1 for undefined opcodes.
func fixedLength(op Opcode) int {
	switch {
	case op == Tableswitch || op == Lookupswitch || op == Wide:
		return 0
	case op == Bipush, op == Ldc, op >= 0x15 && op <= 0x19, op >= 0x36 && op <= 0x3a, op == 0xa9, op == 0xbc:
		return 2
	case op == Sipush, op == LdcW, op == Ldc2W, op == 0x84, op >= Ifeq && op <= Jsr,
		op >= Getstatic && op <= Invokestatic, op == New, op == Anewarray, op == Checkcast, op == 0xc1,
		op == Ifnull, op == Ifnonnull:
		return 3
	case op == 0xc5:
		return 4
	case op == Invokeinterface, op == Invokedynamic, op == GotoW, op == JsrW:
		return 5
	case int(op) < len(opcodeNames), op == 0xfe, op == 0xff:
		return 1
	default:
		return -1
	}
}

// IsBranch reports whether op carries a relative branch offset operand.
func (op Opcode) IsBranch() bool {
	return op >= Ifeq && op <= Jsr || op == Ifnull || op == Ifnonnull || op == GotoW || op == JsrW
}

// IsInvoke reports whether op is one of the method invocation instructions.
func (op Opcode) IsInvoke() bool {
	return op >= Invokevirtual && op <= Invokedynamic
}
