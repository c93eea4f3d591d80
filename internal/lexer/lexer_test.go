package lexer

import (
	"testing"

	"bonk/internal/diag"
	"bonk/internal/source"
	"bonk/internal/token"
)

func lex(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.bonk", []byte(src))
	bag := diag.NewBag(16)
	lx := New(fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx.All(), bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestLexBlokWithParams(t *testing.T) {
	toks, bag := lex(t, "blok f[bowl x: flot] { bonk x + 1; } # trailing")
	want := []token.Kind{
		token.KwBlok, token.Ident, token.LBracket, token.KwBowl, token.Ident, token.Colon, token.KwFlot,
		token.RBracket, token.LBrace, token.KwBonk, token.Ident, token.Plus, token.NumberLit,
		token.Semicolon, token.RBrace, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
}

func TestLexCompoundOperators(t *testing.T) {
	toks, _ := lex(t, "x *= y += z == w != v <= u >= s")
	want := []token.Kind{
		token.Ident, token.StarAssign, token.Ident, token.PlusAssign, token.Ident, token.EqEq, token.Ident,
		token.BangEq, token.Ident, token.LtEq, token.Ident, token.GtEq, token.Ident, token.EOF,
	}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestLexNumbers(t *testing.T) {
	toks, bag := lex(t, "1 2.5 3e4 .5")
	for _, tok := range toks[:4] {
		if tok.Kind != token.NumberLit {
			t.Fatalf("expected number, got %s (%q)", tok.Kind, tok.Text)
		}
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics")
	}
	_, bag = lex(t, "12abc")
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexBadNumber {
		t.Fatalf("expected LexBadNumber, got %+v", bag.Items())
	}
}

func TestLexStringEscapes(t *testing.T) {
	toks, _ := lex(t, `"hey\n\"you\""`)
	if toks[0].Kind != token.StringLit || toks[0].Text != "hey\n\"you\"" {
		t.Fatalf("unexpected string token %+v", toks[0])
	}
	_, bag := lex(t, `"open`)
	if bag.Count(diag.LexUnterminatedString) != 1 {
		t.Fatalf("expected unterminated string diagnostic")
	}
}

func TestLexUnknownCharIsSkipped(t *testing.T) {
	toks, bag := lex(t, "x $ y")
	if got := kinds(toks); len(got) != 3 || got[1] != token.Ident {
		t.Fatalf("expected invalid char to be skipped, got %v", got)
	}
	if bag.Count(diag.LexUnknownChar) != 1 {
		t.Fatalf("expected one LexUnknownChar")
	}
}

func TestLexUnicodeIdentNormalized(t *testing.T) {
	toks, _ := lex(t, "bowl cafe\u0301;")
	if toks[1].Kind != token.Ident || toks[1].Text != "caf\u00e9" {
		t.Fatalf("expected NFC identifier, got %q", toks[1].Text)
	}
}
