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
	"testing"
)

func parseOK(t *testing.T, src string) *Script {
	t.Helper()
	p := NewParser(NewArena(0), NewStringPool())
	script, err := p.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) = _, %v; want nil error", src, err)
	}
	return script
}

func TestParseStmtKinds(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want StmtKind
	}{
		{"echo hi", StmtArithmetic},
		{"x = 1", StmtAssignment},
		{"let x = 1", StmtVarDecl},
		{"var x = 1", StmtVarDecl},
		{"continue", StmtContinue},
		{"break", StmtBreak},
		{";", StmtNull},
	} {
		script := parseOK(t, tc.in)
		stmts := script.Stmts.Stmts()
		if len(stmts) != 1 {
			t.Fatalf("Parse(%q): got %d statements, want 1", tc.in, len(stmts))
		}
		if got := stmts[0].Kind; got != tc.want {
			t.Errorf("Parse(%q): stmt kind = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseVarDeclModifiers(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want VarModifier
	}{
		{"let x = 1", ModNone},
		{"var x = 1", ModMutable},
		{"var pub x = 1", ModMutable | ModPublic},
	} {
		script := parseOK(t, tc.in)
		stmt := script.Stmts.Stmts()[0]
		if got := stmt.Modifiers; got != tc.want {
			t.Errorf("Parse(%q): modifiers = %v, want %v", tc.in, got, tc.want)
		}
	}
}

// TestParseCommandAbsorbsOperatorAtoms verifies the Command-gathering
// disambiguation: a command word followed by a string, a bare `+` and
// another string stays ONE Command of four atoms rather than parsing as binary
// addition, while the same expression in parentheses is real
// arithmetic (spec.md testable property: `echo "a" + "b"` vs.
// `echo ("a" + "b")`).
func TestParseCommandAbsorbsOperatorAtoms(t *testing.T) {
	script := parseOK(t, `echo "a" + "b"`)
	stmt := script.Stmts.Stmts()[0]
	if stmt.Kind != StmtArithmetic {
		t.Fatalf("got stmt kind %v, want StmtArithmetic", stmt.Kind)
	}
	arith := stmt.Expr
	if arith.Kind != ArithCommand {
		t.Fatalf("got arith kind %v, want ArithCommand", arith.Kind)
	}
	if got := arith.Command.Len(); got != 4 {
		t.Errorf("Command atom count = %d, want 4 (\"echo\", \"+\", the two strings are separate words)", got)
	}
}

func TestParseParenthesizedArithmeticIsOneWord(t *testing.T) {
	script := parseOK(t, `echo ("a" + "b")`)
	stmt := script.Stmts.Stmts()[0]
	arith := stmt.Expr
	if arith.Kind != ArithCommand {
		t.Fatalf("got arith kind %v, want ArithCommand", arith.Kind)
	}
	atoms := arith.Command.Atoms()
	if len(atoms) != 2 {
		t.Fatalf("Command atom count = %d, want 2 (\"echo\", the parenthesized expression)", len(atoms))
	}
	if atoms[1].Kind != AtomArithmeticExpression {
		t.Errorf("second atom kind = %v, want AtomArithmeticExpression", atoms[1].Kind)
	}
}

// TestParseBareAssignmentTarget verifies spec.md's own scenarios
// (`x = x + 2`, `i = $i + 1`) parse as StmtAssignment with a VarRef
// lvalue, not as a single Command swallowing the `=`.
func TestParseBareAssignmentTarget(t *testing.T) {
	script := parseOK(t, "x = 1")
	stmt := script.Stmts.Stmts()[0]
	if stmt.Kind != StmtAssignment {
		t.Fatalf("Parse(\"x = 1\"): stmt kind = %v, want StmtAssignment", stmt.Kind)
	}
	if stmt.LValue.Kind != ArithVarRef || stmt.LValue.VRef.Name != "x" {
		t.Errorf("Parse(\"x = 1\"): lvalue = %+v, want ArithVarRef(x)", stmt.LValue)
	}
}

// TestParseBareComparisonOperand verifies a bare identifier used as a
// comparison operand parses as ArithVarRef and the comparison as a
// real BinLess node, not as a Command swallowing "<" as an argv atom.
func TestParseBareComparisonOperand(t *testing.T) {
	script := parseOK(t, "(n < 3)")
	stmt := script.Stmts.Stmts()[0]
	arith := stmt.Expr
	if arith.Kind != ArithUnary || arith.UKind != UnaryParenthesized {
		t.Fatalf("Parse(\"(n < 3)\"): got %+v, want a parenthesized expression", arith)
	}
	inner := arith.Unary
	if inner.Kind != ArithBinary || inner.BKind != BinLess {
		t.Fatalf("Parse(\"(n < 3)\"): inner = %+v, want BinLess", inner)
	}
	if inner.LHS.Kind != ArithVarRef || inner.LHS.VRef.Name != "n" {
		t.Errorf("Parse(\"(n < 3)\"): lhs = %+v, want ArithVarRef(n)", inner.LHS)
	}
}

// TestParseBareWordAloneIsVarRef verifies a lone bare identifier
// standing as its own statement reads the variable rather than
// dispatching a command named after it (transcript_test.go's
// "while loop accumulation" case ends with a bare `total`).
func TestParseBareWordAloneIsVarRef(t *testing.T) {
	script := parseOK(t, "total")
	stmt := script.Stmts.Stmts()[0]
	if stmt.Kind != StmtArithmetic || stmt.Expr.Kind != ArithVarRef || stmt.Expr.VRef.Name != "total" {
		t.Errorf("Parse(\"total\") = %+v, want an ArithVarRef(total) expression statement", stmt)
	}
}

func TestParseIfWhile(t *testing.T) {
	script := parseOK(t, `while (1) { break }`)
	stmt := script.Stmts.Stmts()[0]
	if stmt.Kind != StmtArithmetic || stmt.Expr.Kind != ArithWhile {
		t.Fatalf("got stmt %+v, want an ArithWhile expression statement", stmt)
	}
	if len(stmt.Expr.Then.Stmts.Stmts()) != 1 {
		t.Errorf("while body: got %d statements, want 1", len(stmt.Expr.Then.Stmts.Stmts()))
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	for _, in := range []string{
		"if (",
		"while",
		"let =",
		"(1 +",
	} {
		p := NewParser(NewArena(0), NewStringPool())
		if _, err := p.Parse(in); err == nil {
			t.Errorf("Parse(%q) = _, nil; want a syntax error", in)
		}
	}
}
