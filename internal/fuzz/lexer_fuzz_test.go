package fuzztests

import (
	"testing"

	"bonk/internal/diag"
	"bonk/internal/lexer"
	"bonk/internal/source"
	"bonk/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.bonk", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		// каждый токен продвигает позицию, иначе лексер завис
		steps := 0
		for {
			tok := lx.Next()
			if tok.Kind == token.EOF {
				break
			}
			steps++
			if steps > len(file.Content)+1 {
				t.Fatalf("lexer produced more tokens than input bytes")
			}
		}
	})
}
