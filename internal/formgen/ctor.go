package formgen

import (
	"fmt"

	"github.com/untillpro/goutils/logger"

	"github.com/grindlemire/go-formc/internal/classfile"
)

// ctorState is the state of the constructor rewrite automaton.
type ctorState int

const (
	stateScanning ctorState = iota
	stateSelfDelegated
	stateDone
)

func (s ctorState) String() string {
	switch s {
	case stateScanning:
		return "scanning"
	case stateSelfDelegated:
		return "self-delegated"
	case stateDone:
		return "done"
	default:
		return fmt.Sprintf("ctorState(%d)", int(s))
	}
}

// ctorScan is the outcome of running the automaton over one constructor.
type ctorScan struct {
	state ctorState
	// next is the index of the instruction following the superclass
	// constructor call when state is stateDone.
	next int
}

// scanConstructor walks the instructions of a constructor body. Every `new`
// opens a pending allocation that the next <init> call closes; only an
// <init> call with no pending allocation is a delegation marker.
func scanConstructor(pool *classfile.Pool, code []byte, insns []classfile.Instruction, this, super string) (ctorScan, error) {
	state := stateScanning
	pending := 0
	for i, in := range insns {
		switch in.Op {
		case classfile.New:
			pending++
		case classfile.Invokespecial:
			ref, err := pool.MemberRef(in.Index(code))
			if err != nil {
				return ctorScan{}, err
			}
			if ref.Name != classfile.ConstructorName {
				continue
			}
			if pending > 0 {
				pending--
				continue
			}
			switch {
			case ref.Owner == this:
				state = stateSelfDelegated
				return ctorScan{state: state}, nil
			case ref.Owner == super && state == stateScanning:
				state = stateDone
				return ctorScan{state: state, next: i + 1}, nil
			}
		}
	}
	return ctorScan{state: state}, nil
}

// callsSetup reports whether insns[i:] starts with `aload_0; invokespecial
// this.setup()V`.
func callsSetup(pool *classfile.Pool, code []byte, insns []classfile.Instruction, i int, this, setup string) bool {
	if i+1 >= len(insns) || insns[i].Op != classfile.Aload0 || insns[i+1].Op != classfile.Invokespecial {
		return false
	}
	ref, err := pool.MemberRef(insns[i+1].Index(code))
	return err == nil && ref.Owner == this && ref.Name == setup && ref.Descriptor == "()V"
}

// patchConstructors makes every constructor that calls the superclass
// constructor directly call the setup method right after it. Constructors
// that delegate to another constructor of the same class are left alone.
func patchConstructors(cls *boundClass, setup string) error {
	pool := cls.file.Pool
	ref := pool.AddMethodref(cls.name, setup, "()V")
	snippet := []byte{byte(classfile.Aload0), byte(classfile.Invokespecial), byte(ref >> 8), byte(ref)}

	resolved := 0
	for _, m := range cls.file.Methods {
		name, desc, err := cls.file.MemberInfo(m)
		if err != nil {
			return classError(cls.dotted, err)
		}
		if name != classfile.ConstructorName {
			continue
		}
		code, err := cls.file.Code(m)
		if err != nil {
			return classError(cls.dotted, err)
		}
		if code == nil {
			continue
		}
		insns, err := classfile.Decode(code.Code)
		if err != nil {
			return classError(cls.dotted, err)
		}
		scan, err := scanConstructor(pool, code.Code, insns, cls.name, cls.super)
		if err != nil {
			return classError(cls.dotted, err)
		}
		if logger.IsVerbose() {
			logger.Verbose(fmt.Sprintf("%s.<init>%s: %s", cls.dotted, desc, scan.state))
		}
		if scan.state == stateScanning {
			continue
		}
		resolved++
		if scan.state != stateDone || callsSetup(pool, code.Code, insns, scan.next, cls.name, setup) {
			continue
		}

		pos := len(code.Code)
		if scan.next < len(insns) {
			pos = insns[scan.next].Offset
		}
		if err := code.InsertAt(pool, pos, snippet); err != nil {
			return classError(cls.dotted, err)
		}
		if code.MaxStack < 1 {
			code.MaxStack = 1
		}
		if err := cls.file.SetCode(m, code); err != nil {
			return classError(cls.dotted, err)
		}
	}
	if resolved == 0 {
		return newError(KindMalformedClass, cls.dotted, "no constructor calls %s.<init> or delegates to one that does", classfile.DottedName(cls.super))
	}
	return nil
}
