package token

import "testing"

func TestKeywordsRoundTrip(t *testing.T) {
	for text, kind := range keywords {
		if kind.String() != text {
			t.Fatalf("keyword %q prints as %q", text, kind.String())
		}
		tok := Token{Kind: kind}
		if !tok.IsKeyword() {
			t.Fatalf("%q must be a keyword", text)
		}
	}
}

func TestPrimitiveTypeRange(t *testing.T) {
	for _, k := range []Kind{KwBuul, KwShrt, KwNubr, KwLong, KwFlot, KwDobl, KwStrg} {
		if !(Token{Kind: k}).IsPrimitiveType() {
			t.Fatalf("%s must be a primitive type", k)
		}
	}
	if (Token{Kind: KwMany}).IsPrimitiveType() {
		t.Fatalf("many is not a primitive type")
	}
}
