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

// This file holds the AST node types: atoms, compound strings,
// arithmetic expressions, statements, blocks and scripts. Every node is
// allocated through an Arena (via allocT) so that a Script's whole graph
// is released together on Reset.
//
// Grounded on the teacher's ast.go (one Go type per AST variant, e.g.
// AssignAST/RuleAST, each with an `eval(*Evaluator)` method) generalized
// from Make's assignment/rule grammar to the arithmetic-expression and
// statement grammar of Commands/shell/Parser.c; the linked-list-with-
// tail-pointer shape for expression lists mirrors the node-list append
// pattern in the teacher's depgraph.go.

// AtomKind discriminates the smallest lexeme fragment a word is built
// from.
type AtomKind int

const (
	AtomCharacter AtomKind = iota
	AtomUnquotedString
	AtomSingleQuotedString
	AtomDoubleQuotedString
	AtomDoubleBacktickString
	AtomBacktickString
	AtomEscapedCharacter
	AtomInteger
	AtomVariableReference
	AtomArithmeticExpression
	AtomOperator
)

// Atom is the smallest fragment of a word (spec.md 4.D / GLOSSARY).
type Atom struct {
	Kind                AtomKind
	HasLeadingWhitespace bool

	Text    string        // UnquotedString / SingleQuotedString / Character / EscapedCharacter / Operator
	Int     int32         // AtomInteger
	VarRef  VarRef        // AtomVariableReference
	Compound *CompoundString // AtomDoubleQuotedString / AtomDoubleBacktickString
	Expr    *Arith        // AtomArithmeticExpression

	next *Atom
}

// AtomList is a singly linked list of Atoms with an O(1)-append tail
// pointer, the shape every list-of-node AST type in this file shares.
type AtomList struct {
	head, tail *Atom
	n          int
}

func (l *AtomList) Append(a *Atom) {
	if l.head == nil {
		l.head = a
	} else {
		l.tail.next = a
	}
	l.tail = a
	l.n++
}

func (l *AtomList) Len() int { return l.n }

// Atoms returns the list contents as a slice, for callers that want
// random access (the list itself stays singly linked for O(1) append).
func (l *AtomList) Atoms() []*Atom {
	out := make([]*Atom, 0, l.n)
	for a := l.head; a != nil; a = a.next {
		out = append(out, a)
	}
	return out
}

// VarRef names a variable lookup: a bare $x is (scope="", name="x") and
// resolves by dynamic scope search; $s:x restricts the lookup to scope
// s.
type VarRef struct {
	Scope string
	Name  string
}

// SegmentKind discriminates a CompoundString's pieces.
type SegmentKind int

const (
	SegStringLiteral SegmentKind = iota
	SegEscapeSequence
	SegVarRef
	SegArithmeticExpression
)

// Segment is one piece of a CompoundString.
type Segment struct {
	Kind  SegmentKind
	Text  string // SegStringLiteral / SegEscapeSequence (already resolved)
	VRef  VarRef
	Expr  *Arith
	next  *Segment
}

// CompoundString is an ordered list of Segments: the content of a
// double-quoted or double-backtick string (spec.md 4.D GLOSSARY).
type CompoundString struct {
	head, tail *Segment
	n          int
}

func (c *CompoundString) Append(s *Segment) {
	if c.head == nil {
		c.head = s
	} else {
		c.tail.next = s
	}
	c.tail = s
	c.n++
}

func (c *CompoundString) Segments() []*Segment {
	out := make([]*Segment, 0, c.n)
	for s := c.head; s != nil; s = s.next {
		out = append(out, s)
	}
	return out
}

// ArithKind discriminates an arithmetic expression node.
type ArithKind int

const (
	ArithLiteral ArithKind = iota
	ArithCompoundString
	ArithVarRef
	ArithCommand
	ArithUnary
	ArithBinary
	ArithIf
	ArithWhile
)

// UnaryKind is the kind of a unary arithmetic node; OpParenthesized is
// distinct from the Value-level UnaryOp (it's a no-op wrapper the
// printer/parser need to tell `(a)` apart from a bare `a`).
type UnaryKind int

const (
	UnaryPositive UnaryKind = iota
	UnaryNegative
	UnaryNot
	UnaryParenthesized
)

// BinKind is the kind of a binary arithmetic node. Pipeline is parsed
// but, per spec.md's Open Questions, never evaluated (NotImplemented).
type BinKind int

const (
	BinPipeline BinKind = iota
	BinDisjunction
	BinConjunction
	BinEquals
	BinNotEquals
	BinLessEquals
	BinGreaterEquals
	BinLess
	BinGreater
	BinAddition
	BinSubtraction
	BinMultiplication
	BinDivision
	BinModulo
)

// Arith is an arithmetic expression node (spec.md 4.D "Arithmetic").
type Arith struct {
	Kind ArithKind
	Pos  Pos

	Literal Value
	Compound *CompoundString
	VRef    VarRef
	Command *AtomList

	UKind UnaryKind
	Unary *Arith

	BKind BinKind
	LHS, RHS *Arith

	Cond  *Arith
	Then  *Block
	Else  *Block // nil when no else-block
}

// StmtKind discriminates a statement (spec.md's "Expression").
type StmtKind int

const (
	StmtNull StmtKind = iota
	StmtArithmetic
	StmtAssignment
	StmtVarDecl
	StmtContinue
	StmtBreak
)

// VarModifier are the declaration modifiers a VarDecl statement may
// carry.
type VarModifier int

const (
	ModNone    VarModifier = 0
	ModMutable VarModifier = 1 << 0
	ModPublic  VarModifier = 1 << 1
)

// Stmt is one top-level or block-level statement.
type Stmt struct {
	Kind StmtKind
	Pos  Pos

	Expr *Arith // StmtArithmetic, StmtBreak (optional)

	// StmtAssignment
	LValue *Arith // must evaluate to a VarRef at eval time; NotLValue otherwise
	RValue *Arith

	// StmtVarDecl
	Modifiers VarModifier
	Decl      VarRef
	DeclExpr  *Arith

	next *Stmt
}

// StmtList is the ExpressionList of spec.md: a singly linked list of
// statements with a tail pointer.
type StmtList struct {
	head, tail *Stmt
	n          int
}

func (l *StmtList) Append(s *Stmt) {
	if l.head == nil {
		l.head = s
	} else {
		l.tail.next = s
	}
	l.tail = s
	l.n++
}

func (l *StmtList) Len() int { return l.n }

func (l *StmtList) Stmts() []*Stmt {
	out := make([]*Stmt, 0, l.n)
	for s := l.head; s != nil; s = s.next {
		out = append(out, s)
	}
	return out
}

// Block is `{ stmt* }`: its own StmtList, introducing a Run Stack scope
// when evaluated.
type Block struct {
	Stmts StmtList
}

// Script is the top-level parse result: a StmtList plus the Arena and
// StringPool that own its storage. A Script's lifetime is one
// parse-execute cycle; Interpreter.Execute resets the Arena on return.
type Script struct {
	Stmts StmtList
	Arena *Arena
	Pool  *StringPool
}
