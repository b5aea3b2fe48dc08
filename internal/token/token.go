// Package token defines the lexical token shape the middle-end's
// test-feeding stub lexer (internal/lexer) produces. Surface grammar is a
// Non-goal of this repository; this package exists only so tests and
// internal/lexer's stub have a concrete, shared Token type to hand the
// parser seam (ast.File construction in tests, internal/module.ParseFunc
// implementations) rather than inventing one per call site.
package token

import (
	"fmt"

	"github.com/tocin-lang/tocin/internal/ast"
)

// Kind classifies a token.
type Kind int

const (
	ILLEGAL Kind = iota
	EOF

	IDENT
	INT
	FLOAT
	STRING
	BOOL
	NIL

	// Keywords
	FUNC
	LET
	CONST
	IF
	ELSE
	MATCH
	TYPE
	TRAIT
	IMPL
	EXTENSION
	ASYNC
	AWAIT
	MOVE
	NEW
	DELETE
	DEFER
	GO
	PROPERTY
	GET
	SET
	MODULE
	IMPORT
	EXPORT
	RETURN
	WHILE
	FOR
	IN

	// Operators and delimiters
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	EQ
	NEQ
	LT
	GT
	LTE
	GTE
	AND
	OR
	NOT
	ARROW
	FARROW
	ASSIGN
	COLON
	DCOLON
	DOT
	COMMA
	SEMICOLON
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
)

var names = map[Kind]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF",
	IDENT: "IDENT", INT: "INT", FLOAT: "FLOAT", STRING: "STRING", BOOL: "BOOL", NIL: "NIL",

	FUNC: "func", LET: "let", CONST: "const", IF: "if", ELSE: "else", MATCH: "match",
	TYPE: "type", TRAIT: "trait", IMPL: "impl", EXTENSION: "extension",
	ASYNC: "async", AWAIT: "await", MOVE: "move", NEW: "new", DELETE: "delete",
	DEFER: "defer", GO: "go", PROPERTY: "property", GET: "get", SET: "set",
	MODULE: "module", IMPORT: "import", EXPORT: "export", RETURN: "return",
	WHILE: "while", FOR: "for", IN: "in",

	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%",
	EQ: "==", NEQ: "!=", LT: "<", GT: ">", LTE: "<=", GTE: ">=",
	AND: "&&", OR: "||", NOT: "!", ARROW: "->", FARROW: "=>",
	ASSIGN: "=", COLON: ":", DCOLON: "::", DOT: ".", COMMA: ",", SEMICOLON: ";",
	LPAREN: "(", RPAREN: ")", LBRACE: "{", RBRACE: "}", LBRACKET: "[", RBRACKET: "]",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var keywords = map[string]Kind{
	"func": FUNC, "let": LET, "const": CONST, "if": IF, "else": ELSE, "match": MATCH,
	"type": TYPE, "trait": TRAIT, "impl": IMPL, "extension": EXTENSION,
	"async": ASYNC, "await": AWAIT, "move": MOVE, "new": NEW, "delete": DELETE,
	"defer": DEFER, "go": GO, "property": PROPERTY, "get": GET, "set": SET,
	"module": MODULE, "import": IMPORT, "export": EXPORT, "return": RETURN,
	"while": WHILE, "for": FOR, "in": IN,
	"true": BOOL, "false": BOOL, "nil": NIL,
}

// Lookup returns the keyword Kind for ident, or IDENT if it isn't one.
func Lookup(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return IDENT
}

// Token is one lexical token: its kind, the exact source text (Lexeme),
// a decoded literal value for literal kinds (Literal), and its source
// position.
type Token struct {
	Kind    Kind
	Lexeme  string
	Literal interface{}
	Pos     ast.Pos
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Lexeme, t.Pos)
}

// IsKeyword reports whether k names a reserved word rather than an
// operator, delimiter, or literal kind.
func (k Kind) IsKeyword() bool {
	switch k {
	case FUNC, LET, CONST, IF, ELSE, MATCH, TYPE, TRAIT, IMPL, EXTENSION,
		ASYNC, AWAIT, MOVE, NEW, DELETE, DEFER, GO, PROPERTY, GET, SET,
		MODULE, IMPORT, EXPORT, RETURN, WHILE, FOR, IN:
		return true
	}
	return false
}
