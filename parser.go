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

import "strings"

// Parser is a hand-written recursive-descent parser with precedence
// climbing for arithmetic, producing an AST rooted at a Script.
//
// Grounded on the teacher's expr.go `parseExpr` (look-ahead/accumulate-
// then-reduce over a byte cursor) and rule_parser.go (splitting one
// logical line into typed pieces), generalized to
// Commands/shell/Parser.c's script/block/expr-list/disjunction/.../
// primary grammar (spec.md 4.F).
type Parser struct {
	lex   *Lexer
	arena *Arena
	pool  *StringPool
}

// NewParser creates a Parser. arena and pool back every node the
// returned Scripts allocate.
func NewParser(arena *Arena, pool *StringPool) *Parser {
	return &Parser{lex: NewLexer(), arena: arena, pool: pool}
}

// Parse lexes and parses src into a Script. The returned Script shares
// this Parser's Arena and StringPool.
func (p *Parser) Parse(src string) (*Script, error) {
	p.lex.SetInput(src)
	list, err := p.parseStmtList(true)
	if err != nil {
		return nil, err
	}
	if p.tok().Kind != TokEof {
		return nil, p.syntaxf("unexpected trailing input")
	}
	return &Script{Stmts: list, Arena: p.arena, Pool: p.pool}, nil
}

func (p *Parser) tok() Token  { return p.lex.GetToken() }
func (p *Parser) pos() Pos    { return p.tok().Pos }
func (p *Parser) advance()    { p.lex.ConsumeToken() }

func (p *Parser) syntaxf(format string, args ...interface{}) error {
	return newError(KindSyntax, p.pos(), format, args...)
}

func (p *Parser) expect(k TokKind, what string) error {
	if p.tok().Kind != k {
		return p.syntaxf("expected %s", what)
	}
	p.advance()
	return nil
}

func isTerminatorTok(k TokKind) bool {
	switch k {
	case TokNewline, TokSemicolon, TokAmpersand:
		return true
	}
	return false
}

func isCommandStopTok(k TokKind) bool {
	switch k {
	case TokEof, TokNewline, TokSemicolon, TokAmpersand,
		TokClosingBrace, TokClosingParen, TokOpeningBrace,
		TokPipe, TokConjunction, TokDisjunction:
		return true
	}
	return false
}

// isArithContinuationTok reports whether k is an operator that one of
// the precedence-climbing levels above primary (parseComparison,
// parseAdditive, ...) would consume next. A bare word immediately
// followed by one of these is being used as a value feeding that
// operator, not as the start of a multi-atom command.
func isArithContinuationTok(k TokKind) bool {
	switch k {
	case TokAssign, TokEqualEqual, TokNotEqual,
		TokLess, TokLessEqual, TokGreater, TokGreaterEqual,
		TokPlus, TokMinus, TokAsterisk, TokSlash,
		TokConjunction, TokDisjunction, TokPipe:
		return true
	}
	return false
}

// peekTokenAfter looks one token past the Lexer's current lookahead
// without consuming it, by snapshotting and restoring the Lexer's
// (value-typed) state around a single ConsumeToken call.
func (p *Parser) peekTokenAfter() TokKind {
	saved := *p.lex
	p.lex.ConsumeToken()
	k := p.lex.GetToken().Kind
	*p.lex = saved
	return k
}

// bareWordIsVarRef decides, for a single unquoted-word token at the
// start of a primary, whether it should be read as a VarRef naming a
// variable rather than as the first atom of a Command. spec.md's own
// scenarios assign to and read bare (non-`$`-prefixed) names in
// arithmetic position (`x = x + 2`, `while $i < 3 { ...; i = $i + 1 }`),
// so a bare word is a VarRef exactly when nothing glues more argv
// atoms onto it: the next token is an operator that continues an
// enclosing arithmetic expression (assignment, comparison, arithmetic,
// logical), or ends the expression outright. Once a Command has
// committed to more than one atom, these same operator tokens are
// absorbed as literal argv words instead (parseCommandAtom), which is
// why `echo "a" + "b"` still parses as one Command: "echo" is not
// itself a bare word immediately followed by an operator.
func (p *Parser) bareWordIsVarRef() bool {
	next := p.peekTokenAfter()
	return isArithContinuationTok(next) || isCommandStopTok(next)
}

func splitScopeName(s string) VarRef {
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return VarRef{Scope: s[:i], Name: s[i+1:]}
	}
	return VarRef{Name: s}
}

// parseStmtList parses (expr terminator)* . atTop is true for the
// script-level list (terminates at EOF), false inside a block
// (terminates at '}', consumed by the caller).
func (p *Parser) parseStmtList(atTop bool) (StmtList, error) {
	var list StmtList
	for {
		for p.tok().Kind == TokNewline {
			p.advance()
		}
		if atTop && p.tok().Kind == TokEof {
			break
		}
		if !atTop && p.tok().Kind == TokClosingBrace {
			break
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return list, err
		}
		list.Append(stmt)
		if isTerminatorTok(p.tok().Kind) {
			p.advance()
			continue
		}
		if atTop && p.tok().Kind == TokEof {
			break
		}
		if !atTop && p.tok().Kind == TokClosingBrace {
			break
		}
		return list, p.syntaxf("expected statement terminator")
	}
	return list, nil
}

func (p *Parser) parseBlock() (*Block, error) {
	if err := p.expect(TokOpeningBrace, "'{'"); err != nil {
		return nil, err
	}
	list, err := p.parseStmtList(false)
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokClosingBrace, "'}'"); err != nil {
		return nil, err
	}
	b := allocT[Block](p.arena)
	b.Stmts = list
	return b, nil
}

func (p *Parser) atKeyword(kw string) bool {
	t := p.tok()
	return t.Kind == TokUnquotedString && t.Text == kw
}

func (p *Parser) parseStmt() (*Stmt, error) {
	pos := p.pos()

	switch {
	case p.atKeyword("let"), p.atKeyword("var"):
		return p.parseVarDecl()
	case p.atKeyword("continue"):
		p.advance()
		return &Stmt{Kind: StmtContinue, Pos: pos}, nil
	case p.atKeyword("break"):
		p.advance()
		var expr *Arith
		if !isCommandStopTok(p.tok().Kind) {
			e, err := p.parseArith()
			if err != nil {
				return nil, err
			}
			expr = e
		}
		return &Stmt{Kind: StmtBreak, Pos: pos, Expr: expr}, nil
	}

	if isTerminatorTok(p.tok().Kind) || p.tok().Kind == TokClosingBrace || p.tok().Kind == TokEof {
		return &Stmt{Kind: StmtNull, Pos: pos}, nil
	}

	lhs, err := p.parseArith()
	if err != nil {
		return nil, err
	}
	if p.tok().Kind == TokAssign {
		p.advance()
		rhs, err := p.parseArith()
		if err != nil {
			return nil, err
		}
		return &Stmt{Kind: StmtAssignment, Pos: pos, LValue: lhs, RValue: rhs}, nil
	}
	return &Stmt{Kind: StmtArithmetic, Pos: pos, Expr: lhs}, nil
}

func (p *Parser) parseVarDecl() (*Stmt, error) {
	pos := p.pos()
	isVar := p.atKeyword("var")
	p.advance() // consume 'let'/'var'

	mods := VarModifier(0)
	if isVar {
		mods |= ModMutable
	}
	if p.atKeyword("pub") {
		mods |= ModPublic
		p.advance()
	}

	if p.tok().Kind != TokUnquotedString {
		return nil, p.syntaxf("expected variable name")
	}
	ref := splitScopeName(p.tok().Text)
	p.advance()

	if err := p.expect(TokAssign, "'='"); err != nil {
		return nil, err
	}
	expr, err := p.parseArith()
	if err != nil {
		return nil, err
	}
	return &Stmt{Kind: StmtVarDecl, Pos: pos, Modifiers: mods, Decl: ref, DeclExpr: expr}, nil
}

// parseArith is the entry point for one arithmetic expression:
// pipeline, the lowest-precedence level (spec.md lists Pipeline among
// Binary kinds; grammar assigns it below disjunction since it combines
// whole commands).
func (p *Parser) parseArith() (*Arith, error) {
	return p.parsePipeline()
}

func (p *Parser) parsePipeline() (*Arith, error) {
	lhs, err := p.parseDisjunction()
	if err != nil {
		return nil, err
	}
	for p.tok().Kind == TokPipe {
		pos := p.pos()
		p.advance()
		rhs, err := p.parseDisjunction()
		if err != nil {
			return nil, err
		}
		lhs = p.mkBinary(pos, BinPipeline, lhs, rhs)
	}
	return lhs, nil
}

func (p *Parser) parseDisjunction() (*Arith, error) {
	lhs, err := p.parseConjunction()
	if err != nil {
		return nil, err
	}
	for p.tok().Kind == TokDisjunction {
		pos := p.pos()
		p.advance()
		rhs, err := p.parseConjunction()
		if err != nil {
			return nil, err
		}
		lhs = p.mkBinary(pos, BinDisjunction, lhs, rhs)
	}
	return lhs, nil
}

func (p *Parser) parseConjunction() (*Arith, error) {
	lhs, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.tok().Kind == TokConjunction {
		pos := p.pos()
		p.advance()
		rhs, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		lhs = p.mkBinary(pos, BinConjunction, lhs, rhs)
	}
	return lhs, nil
}

func (p *Parser) parseEquality() (*Arith, error) {
	lhs, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for {
		var kind BinKind
		switch p.tok().Kind {
		case TokEqualEqual:
			kind = BinEquals
		case TokNotEqual:
			kind = BinNotEquals
		default:
			return lhs, nil
		}
		pos := p.pos()
		p.advance()
		rhs, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		lhs = p.mkBinary(pos, kind, lhs, rhs)
	}
}

func (p *Parser) parseComparison() (*Arith, error) {
	lhs, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		var kind BinKind
		switch p.tok().Kind {
		case TokLess:
			kind = BinLess
		case TokLessEqual:
			kind = BinLessEquals
		case TokGreater:
			kind = BinGreater
		case TokGreaterEqual:
			kind = BinGreaterEquals
		default:
			return lhs, nil
		}
		pos := p.pos()
		p.advance()
		rhs, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		lhs = p.mkBinary(pos, kind, lhs, rhs)
	}
}

func (p *Parser) parseAdditive() (*Arith, error) {
	lhs, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		var kind BinKind
		switch p.tok().Kind {
		case TokPlus:
			kind = BinAddition
		case TokMinus:
			kind = BinSubtraction
		default:
			return lhs, nil
		}
		pos := p.pos()
		p.advance()
		rhs, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		lhs = p.mkBinary(pos, kind, lhs, rhs)
	}
}

func (p *Parser) parseTerm() (*Arith, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var kind BinKind
		switch p.tok().Kind {
		case TokAsterisk:
			kind = BinMultiplication
		case TokSlash:
			kind = BinDivision
		default:
			return lhs, nil
		}
		pos := p.pos()
		p.advance()
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		lhs = p.mkBinary(pos, kind, lhs, rhs)
	}
}

// parseUnary implements the right-associative +, -, ! prefix operators,
// which bind tighter than the multiplicative level.
func (p *Parser) parseUnary() (*Arith, error) {
	pos := p.pos()
	var uk UnaryKind
	switch p.tok().Kind {
	case TokPlus:
		uk = UnaryPositive
	case TokMinus:
		uk = UnaryNegative
	case TokBang:
		uk = UnaryNot
	default:
		return p.parsePrimary()
	}
	p.advance()
	inner, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	a := allocT[Arith](p.arena)
	a.Kind = ArithUnary
	a.Pos = pos
	a.UKind = uk
	a.Unary = inner
	return a, nil
}

func (p *Parser) mkBinary(pos Pos, kind BinKind, lhs, rhs *Arith) *Arith {
	a := allocT[Arith](p.arena)
	a.Kind = ArithBinary
	a.Pos = pos
	a.BKind = kind
	a.LHS = lhs
	a.RHS = rhs
	return a
}

func (p *Parser) parsePrimary() (*Arith, error) {
	pos := p.pos()
	t := p.tok()

	switch {
	case t.Kind == TokInteger:
		p.advance()
		a := allocT[Arith](p.arena)
		a.Kind = ArithLiteral
		a.Pos = pos
		a.Literal = NewInteger(t.Int)
		return a, nil

	case t.Kind == TokVariableName:
		p.advance()
		a := allocT[Arith](p.arena)
		a.Kind = ArithVarRef
		a.Pos = pos
		a.VRef = splitScopeName(t.Text)
		return a, nil

	case t.Kind == TokOpeningParen:
		p.advance()
		inner, err := p.parseArith()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokClosingParen, "')'"); err != nil {
			return nil, err
		}
		a := allocT[Arith](p.arena)
		a.Kind = ArithUnary
		a.Pos = pos
		a.UKind = UnaryParenthesized
		a.Unary = inner
		return a, nil

	case t.Kind == TokDoubleQuote:
		cs, err := p.parseCompoundString(ModeDoubleQuote, TokDoubleQuote)
		if err != nil {
			return nil, err
		}
		a := allocT[Arith](p.arena)
		a.Kind = ArithCompoundString
		a.Pos = pos
		a.Compound = cs
		return a, nil

	case t.Kind == TokDoubleBacktick:
		cs, err := p.parseCompoundString(ModeDoubleBacktick, TokDoubleBacktick)
		if err != nil {
			return nil, err
		}
		a := allocT[Arith](p.arena)
		a.Kind = ArithCompoundString
		a.Pos = pos
		a.Compound = cs
		return a, nil

	case p.atKeyword("if"):
		return p.parseIf()

	case p.atKeyword("while"):
		return p.parseWhile()

	case t.Kind == TokUnquotedString && p.bareWordIsVarRef():
		p.advance()
		a := allocT[Arith](p.arena)
		a.Kind = ArithVarRef
		a.Pos = pos
		a.VRef = splitScopeName(t.Text)
		return a, nil

	case t.Kind == TokUnquotedString, t.Kind == TokSingleQuotedString,
		t.Kind == TokEscapedCharacter, t.Kind == TokBacktickString:
		return p.parseCommand()

	default:
		return nil, p.syntaxf("unexpected token in expression")
	}
}

// parseCompoundString scans CompoundString segments until the closing
// delimiter token, switching the Lexer into the matching mode first (it
// must be switched back to Default before the caller consumes further
// tokens, per spec.md 4.E's mode-switch contract).
func (p *Parser) parseCompoundString(mode LexMode, closing TokKind) (*CompoundString, error) {
	p.lex.SetMode(mode)
	p.advance() // rescan first inner token under the new mode
	cs := allocT[CompoundString](p.arena)
	for {
		t := p.tok()
		switch t.Kind {
		case closing:
			p.lex.SetMode(ModeDefault)
			p.advance()
			return cs, nil
		case TokEof:
			p.lex.SetMode(ModeDefault)
			return nil, p.syntaxf("unterminated compound string")
		case TokStringSegment:
			seg := allocT[Segment](p.arena)
			seg.Kind = SegStringLiteral
			seg.Text = t.Text
			cs.Append(seg)
			p.advance()
		case TokEscapedCharacter:
			seg := allocT[Segment](p.arena)
			seg.Kind = SegEscapeSequence
			seg.Text = t.Text
			cs.Append(seg)
			p.advance()
		case TokVariableName:
			seg := allocT[Segment](p.arena)
			seg.Kind = SegVarRef
			seg.VRef = splitScopeName(t.Text)
			cs.Append(seg)
			p.advance()
		default:
			p.lex.SetMode(ModeDefault)
			return nil, p.syntaxf("unexpected token in compound string")
		}
	}
}

func (p *Parser) parseIf() (*Arith, error) {
	pos := p.pos()
	p.advance()
	cond, err := p.parseArith()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var elseBlock *Block
	for p.tok().Kind == TokNewline {
		// allow `if cond { } \n else { }`
		p.advance()
	}
	if p.atKeyword("else") {
		p.advance()
		eb, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		elseBlock = eb
	}
	a := allocT[Arith](p.arena)
	a.Kind = ArithIf
	a.Pos = pos
	a.Cond = cond
	a.Then = then
	a.Else = elseBlock
	return a, nil
}

func (p *Parser) parseWhile() (*Arith, error) {
	pos := p.pos()
	p.advance()
	cond, err := p.parseArith()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	a := allocT[Arith](p.arena)
	a.Kind = ArithWhile
	a.Pos = pos
	a.Cond = cond
	a.Then = body
	return a, nil
}

// parseCommand greedily gathers whitespace-separated argv atoms until a
// terminator (spec.md 4.F: "consecutive atoms that do NOT have
// has_leading_whitespace are collected into a single argv slot;
// whitespace between atoms separates argv slots"). Unlike the
// precedence-climbing levels above, this is a flat lexical scan, not a
// recursive grammar: operator-shaped tokens (+,-,*,/,<,<=,...) occurring
// here are word content, not binary operators — Pipe/Conjunction/
// Disjunction are the only operator tokens that end a command, since
// those combine whole commands at a level above primary.
func (p *Parser) parseCommand() (*Arith, error) {
	pos := p.pos()
	atoms := &AtomList{}
	for !isCommandStopTok(p.tok().Kind) {
		atom, err := p.parseCommandAtom()
		if err != nil {
			return nil, err
		}
		atoms.Append(atom)
	}
	if atoms.Len() == 0 {
		return nil, p.syntaxf("expected a command")
	}
	a := allocT[Arith](p.arena)
	a.Kind = ArithCommand
	a.Pos = pos
	a.Command = atoms
	return a, nil
}

func (p *Parser) parseCommandAtom() (*Atom, error) {
	t := p.tok()
	leading := t.HasLeadingWhitespace
	a := allocT[Atom](p.arena)
	a.HasLeadingWhitespace = leading

	switch t.Kind {
	case TokUnquotedString:
		a.Kind = AtomUnquotedString
		a.Text = t.Text
		p.advance()
	case TokSingleQuotedString:
		a.Kind = AtomSingleQuotedString
		a.Text = t.Text
		p.advance()
	case TokEscapedCharacter:
		a.Kind = AtomEscapedCharacter
		a.Text = t.Text
		p.advance()
	case TokBacktickString:
		a.Kind = AtomBacktickString
		a.Text = t.Text
		p.advance()
	case TokCharacter:
		a.Kind = AtomCharacter
		a.Text = t.Text
		p.advance()
	case TokInteger:
		a.Kind = AtomInteger
		a.Int = t.Int
		p.advance()
	case TokVariableName:
		a.Kind = AtomVariableReference
		a.VarRef = splitScopeName(t.Text)
		p.advance()
	case TokDoubleQuote:
		cs, err := p.parseCompoundString(ModeDoubleQuote, TokDoubleQuote)
		if err != nil {
			return nil, err
		}
		a.Kind = AtomDoubleQuotedString
		a.Compound = cs
	case TokDoubleBacktick:
		cs, err := p.parseCompoundString(ModeDoubleBacktick, TokDoubleBacktick)
		if err != nil {
			return nil, err
		}
		a.Kind = AtomDoubleBacktickString
		a.Compound = cs
	case TokOpeningParen:
		p.advance()
		inner, err := p.parseArith()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokClosingParen, "')'"); err != nil {
			return nil, err
		}
		a.Kind = AtomArithmeticExpression
		a.Expr = inner
	case TokLess:
		a.Kind, a.Text = AtomOperator, "<"
		p.advance()
	case TokLessEqual:
		a.Kind, a.Text = AtomOperator, "<="
		p.advance()
	case TokGreater:
		a.Kind, a.Text = AtomOperator, ">"
		p.advance()
	case TokGreaterEqual:
		a.Kind, a.Text = AtomOperator, ">="
		p.advance()
	case TokEqualEqual:
		a.Kind, a.Text = AtomOperator, "=="
		p.advance()
	case TokNotEqual:
		a.Kind, a.Text = AtomOperator, "!="
		p.advance()
	case TokPlus:
		a.Kind, a.Text = AtomOperator, "+"
		p.advance()
	case TokMinus:
		a.Kind, a.Text = AtomOperator, "-"
		p.advance()
	case TokAsterisk:
		a.Kind, a.Text = AtomOperator, "*"
		p.advance()
	case TokSlash:
		a.Kind, a.Text = AtomOperator, "/"
		p.advance()
	case TokAssign:
		a.Kind, a.Text = AtomOperator, "="
		p.advance()
	case TokBang:
		a.Kind, a.Text = AtomOperator, "!"
		p.advance()
	default:
		return nil, p.syntaxf("unexpected token in command")
	}
	return a, nil
}
