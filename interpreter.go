// Copyright 2015 Google Inc. All rights reserved
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package shell

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/serena-os/serenash/internal/shlog"
)

// commandSearchPath is where an unqualified external command word is
// resolved, per spec.md §6 "External Interfaces".
const commandSearchPath = "/System/Commands/"

// Options controls one Execute call (spec.md 4.L "execute(script,
// options)").
type Options struct {
	// Interactive, when set, prints and pops the top-of-stack value
	// after every statement (unless Void or Never); otherwise only the
	// final statement's value survives to the caller.
	Interactive bool
	// PushScope, when set, wraps the script in its own scope. The `load`
	// builtin sets it for a loaded sub-script; the REPL loop, `-c` and
	// script-path runs leave it unset, so their declarations land in
	// the current scope.
	PushScope bool
}

// Interpreter is the top-level owner of every piece of per-session
// state that outlives a single Script: the operand stack, the run
// stack (scoped variables), the name table (builtin dispatch), the
// environment cache, and the argument vector scratch space, plus the
// cd stack. Exactly one Interpreter exists per shell process. Each
// Script carries its own Arena and StringPool (one parse-execute
// cycle's worth of AST storage); Execute resets the Script's own arena
// on return rather than a shared one, so a `load`-ed sub-script's
// Execute call can never invalidate an outer script still being
// walked.
//
// Grounded on the teacher's Evaluator (eval.go) fused with Executor
// (exec.go) and eval_command.go's command-line evaluation step, per
// spec.md §4.L's single-Interpreter design (Make keeps evaluation and
// recipe execution in separate types because recipes run in a
// completely fresh subshell; Serena Shell's Command dispatch is just
// another evaluation rule, so the two collapse into one type here).
type Interpreter struct {
	Ops   *OperandStack
	Vars  *RunStack
	Names *NameTable
	Env   *EnvironCache
	Argv  *ArgumentVector

	CDStack []string
	// History is the REPL's submitted-line history, appended to by the
	// line reader as each line is accepted; the `history` builtin reads
	// it back.
	History []string

	LoopNesting int
	Interactive bool

	Stdout io.Writer
	Stderr io.Writer
}

// NewInterpreter creates an Interpreter with fresh stacks/tables/cache
// and seeds the root scope from the host environment: every KEY=VALUE
// in os.Environ() becomes a Public Mutable variable in scope "global"
// (spec.md §6).
func NewInterpreter() *Interpreter {
	i := &Interpreter{
		Ops:    NewOperandStack(),
		Vars:   NewRunStack(),
		Names:  NewNameTable(),
		Env:    NewEnvironCache(),
		Argv:   NewArgumentVector(),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	for _, kv := range os.Environ() {
		if eq := strings.IndexByte(kv, '='); eq >= 0 {
			key, val := kv[:eq], kv[eq+1:]
			_ = i.Vars.DeclareVariable(ModMutable|ModPublic, "global", key, NewString(val))
		}
	}
	return i
}

// Execute runs script to completion: evaluates every top-level
// statement, optionally echoing results in interactive mode. On return,
// whether it succeeded or not, it pops the scope it pushed (if any),
// drains the operand stack (which is then empty, whatever it held
// before the call), releases the script's pool and resets its arena
// (spec.md 4.L steps 1-4).
func (i *Interpreter) Execute(script *Script, opts Options) (result Value, err error) {
	if opts.PushScope {
		i.Vars.PushScope()
	}
	defer func() {
		if opts.PushScope {
			if popErr := i.Vars.PopScope(); popErr != nil && err == nil {
				err = popErr
			}
		}
		i.Ops.PopAll()
		script.Pool.Release()
		script.Arena.Reset()
	}()

	stmts := script.Stmts.Stmts()
	var last Value
	for _, stmt := range stmts {
		last.Release()
		last = NewVoid()
		if evalErr := i.evalStmt(stmt); evalErr != nil {
			return Value{}, evalErr
		}
		v, popErr := i.Ops.Pop()
		if popErr != nil {
			return Value{}, popErr
		}
		if opts.Interactive {
			if v.Type() != Void && v.Type() != Never {
				fmt.Fprintln(i.Stdout, v.ToString())
			}
			v.Release()
			last = NewVoid()
		} else {
			last = v
		}
	}
	return last, nil
}

// evalStmt evaluates one top-level or block-level statement, leaving
// nothing extra on the operand stack (it either pushes exactly one
// value, per the Construct table, or propagates an error/signal).
func (i *Interpreter) evalStmt(s *Stmt) error {
	switch s.Kind {
	case StmtNull:
		i.Ops.PushVoid()
		return nil

	case StmtArithmetic:
		return i.evalArith(s.Expr)

	case StmtAssignment:
		return i.evalAssignment(s)

	case StmtVarDecl:
		return i.evalVarDecl(s)

	case StmtContinue:
		if i.LoopNesting == 0 {
			return newError(KindNotLoop, s.Pos, "continue used outside a loop")
		}
		return continueSignal{}

	case StmtBreak:
		if i.LoopNesting == 0 {
			return newError(KindNotLoop, s.Pos, "break used outside a loop")
		}
		var v Value
		if s.Expr != nil {
			if err := i.evalArith(s.Expr); err != nil {
				return err
			}
			popped, err := i.Ops.Pop()
			if err != nil {
				return err
			}
			v = popped
		} else {
			v = NewVoid()
		}
		return breakSignal{value: v}

	default:
		return newError(KindSyntax, s.Pos, "unknown statement kind")
	}
}

func (i *Interpreter) evalAssignment(s *Stmt) error {
	if s.LValue.Kind != ArithVarRef {
		return newError(KindNotLValue, s.Pos, "assignment target is not a variable")
	}
	if err := i.evalArith(s.RValue); err != nil {
		return err
	}
	v, err := i.Ops.Pop()
	if err != nil {
		return err
	}
	if err := i.Vars.SetVariable(s.LValue.VRef.Scope, s.LValue.VRef.Name, v); err != nil {
		return err
	}
	i.Ops.PushVoid()
	return nil
}

func (i *Interpreter) evalVarDecl(s *Stmt) error {
	if err := i.evalArith(s.DeclExpr); err != nil {
		return err
	}
	v, err := i.Ops.Pop()
	if err != nil {
		return err
	}
	if err := i.Vars.DeclareVariable(s.Modifiers, s.Decl.Scope, s.Decl.Name, v.unique()); err != nil {
		return err
	}
	i.Ops.PushVoid()
	return nil
}

// evalArith evaluates one arithmetic-expression node, pushing exactly
// one Value on the operand stack per the Construct table in spec.md
// §4.L, or returning an error (including break/continue signals, which
// evalWhile intercepts).
func (i *Interpreter) evalArith(a *Arith) error {
	switch a.Kind {
	case ArithLiteral:
		i.Ops.Push(a.Literal.Copy())
		return nil

	case ArithCompoundString:
		v, err := i.evalCompoundString(a.Compound)
		if err != nil {
			return err
		}
		i.Ops.Push(v)
		return nil

	case ArithVarRef:
		v, err := i.Vars.GetVariable(a.VRef.Scope, a.VRef.Name)
		if err != nil {
			return err
		}
		i.Ops.Push(v)
		return nil

	case ArithCommand:
		return i.evalCommand(a)

	case ArithUnary:
		return i.evalUnary(a)

	case ArithBinary:
		return i.evalBinary(a)

	case ArithIf:
		return i.evalIf(a)

	case ArithWhile:
		return i.evalWhile(a)

	default:
		return newError(KindSyntax, a.Pos, "unknown arithmetic node kind")
	}
}

func (i *Interpreter) evalUnary(a *Arith) error {
	if a.UKind == UnaryParenthesized {
		return i.evalArith(a.Unary)
	}
	if a.UKind == UnaryPositive {
		return i.evalArith(a.Unary) // identity
	}
	if err := i.evalArith(a.Unary); err != nil {
		return err
	}
	v, err := i.Ops.Pop()
	if err != nil {
		return err
	}
	var op UnaryOp
	if a.UKind == UnaryNegative {
		op = OpNegative
	} else {
		op = OpNot
	}
	result, err := v.UnaryOp(op)
	if err != nil {
		v.Release()
		return err
	}
	i.Ops.Push(result)
	return nil
}

func binKindToOp(k BinKind) (BinaryOp, bool) {
	switch k {
	case BinEquals:
		return OpEquals, true
	case BinNotEquals:
		return OpNotEquals, true
	case BinLess:
		return OpLess, true
	case BinLessEquals:
		return OpLessEquals, true
	case BinGreater:
		return OpGreater, true
	case BinGreaterEquals:
		return OpGreaterEquals, true
	case BinAddition:
		return OpAdd, true
	case BinSubtraction:
		return OpSub, true
	case BinMultiplication:
		return OpMul, true
	case BinDivision:
		return OpDiv, true
	case BinModulo:
		return OpMod, true
	}
	return 0, false
}

func (i *Interpreter) evalBinary(a *Arith) error {
	switch a.BKind {
	case BinDisjunction:
		return i.evalShortCircuit(a, true)
	case BinConjunction:
		return i.evalShortCircuit(a, false)
	case BinPipeline:
		return newError(KindNotImplemented, a.Pos, "pipeline is not implemented")
	}

	op, ok := binKindToOp(a.BKind)
	if !ok {
		return newError(KindSyntax, a.Pos, "unknown binary operator")
	}
	if err := i.evalArith(a.LHS); err != nil {
		return err
	}
	if err := i.evalArith(a.RHS); err != nil {
		return err
	}
	rhs, err := i.Ops.Pop()
	if err != nil {
		return err
	}
	lhs, err := i.Ops.Pop()
	if err != nil {
		rhs.Release()
		return err
	}
	result, err := BinaryOpFn(lhs, rhs, op)
	if err != nil {
		if e, ok := err.(*Error); ok {
			e.Pos = a.Pos
			return e
		}
		return wrapError(KindTypeMismatch, a.Pos, err)
	}
	i.Ops.Push(result)
	return nil
}

// evalShortCircuit implements `||` (wantTrue=true) and `&&`
// (wantTrue=false): evaluate lhs; if it already decides the result,
// drop rhs unevaluated and leave lhs's value; otherwise evaluate rhs
// and replace (spec.md 4.L: "Disjunction ... if true, drop rhs...").
func (i *Interpreter) evalShortCircuit(a *Arith, wantTrue bool) error {
	if err := i.evalArith(a.LHS); err != nil {
		return err
	}
	lhs, err := i.Ops.Pop()
	if err != nil {
		return err
	}
	if lhs.Type() != Bool {
		lhs.Release()
		return newError(KindTypeMismatch, a.Pos, "operand is not a bool")
	}
	if lhs.BoolVal() == wantTrue {
		i.Ops.Push(lhs)
		return nil
	}
	lhs.Release()
	if err := i.evalArith(a.RHS); err != nil {
		return err
	}
	rhs, err := i.Ops.Pop()
	if err != nil {
		return err
	}
	if rhs.Type() != Bool {
		rhs.Release()
		return newError(KindTypeMismatch, a.Pos, "operand is not a bool")
	}
	i.Ops.Push(rhs)
	return nil
}

func (i *Interpreter) evalIf(a *Arith) error {
	if err := i.evalArith(a.Cond); err != nil {
		return err
	}
	cond, err := i.Ops.Pop()
	if err != nil {
		return err
	}
	if cond.Type() != Bool {
		cond.Release()
		return newError(KindTypeMismatch, a.Pos, "if condition is not a bool")
	}
	taken := cond.BoolVal()
	cond.Release()

	if taken {
		return i.evalBlock(a.Then)
	}
	if a.Else != nil {
		return i.evalBlock(a.Else)
	}
	i.Ops.PushVoid()
	return nil
}

func (i *Interpreter) evalWhile(a *Arith) error {
	i.LoopNesting++
	defer func() { i.LoopNesting-- }()

	last := NewVoid()
	for {
		if err := i.evalArith(a.Cond); err != nil {
			last.Release()
			return err
		}
		cond, err := i.Ops.Pop()
		if err != nil {
			last.Release()
			return err
		}
		if cond.Type() != Bool {
			cond.Release()
			last.Release()
			return newError(KindTypeMismatch, a.Pos, "while condition is not a bool")
		}
		if !cond.BoolVal() {
			cond.Release()
			i.Ops.Push(last)
			return nil
		}
		cond.Release()

		err = i.evalBlock(a.Then)
		if err == nil {
			last.Release()
			v, popErr := i.Ops.Pop()
			if popErr != nil {
				return popErr
			}
			last = v
			continue
		}
		switch sig := err.(type) {
		case continueSignal:
			continue
		case breakSignal:
			last.Release()
			i.Ops.Push(sig.value)
			return nil
		default:
			last.Release()
			return err
		}
	}
}

// evalBlock evaluates a Block's statements in a fresh scope, leaving
// the last statement's value (or Void for an empty block) on the
// operand stack.
func (i *Interpreter) evalBlock(b *Block) error {
	i.Vars.PushScope()
	defer i.Vars.PopScope()

	stmts := b.Stmts.Stmts()
	if len(stmts) == 0 {
		i.Ops.PushVoid()
		return nil
	}
	for idx, stmt := range stmts {
		if idx > 0 {
			v, err := i.Ops.Pop()
			if err != nil {
				return err
			}
			v.Release()
		}
		if err := i.evalStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

// evalCompoundString evaluates every segment left to right, pushing
// each onto the operand stack, then collapses the run into one owned
// String via ArrayToString (spec.md 4.L: "evaluate each segment
// left-to-right, then ValueArray_ToString concatenates the top n stack
// entries into one String").
func (i *Interpreter) evalCompoundString(cs *CompoundString) (Value, error) {
	segs := cs.Segments()
	for _, seg := range segs {
		switch seg.Kind {
		case SegStringLiteral, SegEscapeSequence:
			i.Ops.Push(NewString(seg.Text))
		case SegVarRef:
			v, err := i.Vars.GetVariable(seg.VRef.Scope, seg.VRef.Name)
			if err != nil {
				return Value{}, err
			}
			i.Ops.Push(v)
		case SegArithmeticExpression:
			if err := i.evalArith(seg.Expr); err != nil {
				return Value{}, err
			}
		}
	}
	vs, err := i.Ops.PopSome(len(segs))
	if err != nil {
		return Value{}, err
	}
	return ArrayToString(vs), nil
}

// evalCommand serializes a Command's atoms into argv, then dispatches
// to a builtin (via the Name Table) or an external process (spec.md
// 4.L "Command dispatch").
func (i *Interpreter) evalCommand(a *Arith) error {
	atoms := a.Command.Atoms()
	i.Argv.Open()
	for idx, atom := range atoms {
		if idx > 0 && atom.HasLeadingWhitespace {
			i.Argv.EndOfArg()
		}
		if err := i.serializeAtom(atom); err != nil {
			return err
		}
	}
	argv := i.Argv.Close()
	if len(argv) == 0 {
		return newError(KindSyntax, a.Pos, "empty command")
	}

	forcedExternal := false
	if len(atoms) > 0 {
		switch atoms[0].Kind {
		case AtomBacktickString, AtomDoubleBacktickString:
			forcedExternal = true
		}
	}

	envp := i.Env.GetEnvironment(i.Vars)

	if !forcedExternal {
		if cb, ok := i.Names.GetName(argv[0]); ok {
			shlog.V(1).Infof("dispatch builtin %s %v", argv[0], argv[1:])
			_, err := cb(i, argv)
			if err != nil {
				return err
			}
			return nil
		}
	}
	return i.spawnExternal(a.Pos, argv, envp)
}

func (i *Interpreter) spawnExternal(pos Pos, argv []string, envp []string) error {
	name := argv[0]
	if !strings.Contains(name, "/") {
		name = commandSearchPath + name
	}
	shlog.V(1).Infof("spawn external %s %v", name, argv[1:])

	cmd := exec.Command(name, argv[1:]...)
	cmd.Env = envp
	cmd.Stdin = os.Stdin
	cmd.Stdout = i.Stdout
	cmd.Stderr = i.Stderr

	err := cmd.Run()
	switch {
	case err == nil:
		i.Ops.PushVoid()
		return nil
	case os.IsNotExist(err):
		return &Error{Kind: KindNoCmd, Pos: pos, Command: argv[0], msg: "unknown command."}
	default:
		if _, ok := err.(*exec.ExitError); ok {
			fmt.Fprintf(i.Stderr, "%s: %v\n", argv[0], err)
			i.Ops.PushVoid()
			return nil
		}
		return wrapError(KindHost, pos, err)
	}
}

// serializeAtom appends one atom's string form into the currently-open
// Argument Vector slot.
func (i *Interpreter) serializeAtom(a *Atom) error {
	switch a.Kind {
	case AtomCharacter, AtomUnquotedString, AtomSingleQuotedString,
		AtomBacktickString, AtomEscapedCharacter, AtomOperator:
		i.Argv.AppendString(a.Text)
		return nil

	case AtomInteger:
		i.Argv.AppendString(NewInteger(a.Int).ToString())
		return nil

	case AtomVariableReference:
		v, err := i.Vars.GetVariable(a.VarRef.Scope, a.VarRef.Name)
		if err != nil {
			return err
		}
		if v.Type() == Never {
			v.Release()
			return newError(KindNoVal, Pos{}, "cannot serialize a never-value into a command argument")
		}
		i.Argv.AppendString(v.ToString())
		v.Release()
		return nil

	case AtomDoubleQuotedString, AtomDoubleBacktickString:
		v, err := i.evalCompoundString(a.Compound)
		if err != nil {
			return err
		}
		i.Argv.AppendString(v.ToString())
		v.Release()
		return nil

	case AtomArithmeticExpression:
		if err := i.evalArith(a.Expr); err != nil {
			return err
		}
		v, err := i.Ops.Pop()
		if err != nil {
			return err
		}
		if v.Type() == Never {
			v.Release()
			return newError(KindNoVal, Pos{}, "cannot serialize a never-value into a command argument")
		}
		i.Argv.AppendString(v.ToString())
		v.Release()
		return nil

	default:
		return newError(KindSyntax, Pos{}, "unknown atom kind")
	}
}

// PushCD pushes the current working directory onto the cd stack and
// changes into dir (the implementation behind the `pushcd` builtin).
func (i *Interpreter) PushCD(dir string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return wrapError(KindHost, Pos{}, err)
	}
	if err := os.Chdir(dir); err != nil {
		return wrapError(KindHost, Pos{}, err)
	}
	i.CDStack = append(i.CDStack, cwd)
	return nil
}

// PopCD pops the most recently pushed directory and changes back into
// it (the implementation behind the `popcd` builtin). Fails with
// Underflow if the cd stack is empty.
func (i *Interpreter) PopCD() error {
	n := len(i.CDStack)
	if n == 0 {
		return newError(KindUnderflow, Pos{}, "cd stack is empty")
	}
	dir := i.CDStack[n-1]
	i.CDStack = i.CDStack[:n-1]
	if err := os.Chdir(dir); err != nil {
		return wrapError(KindHost, Pos{}, err)
	}
	return nil
}
