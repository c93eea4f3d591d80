package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"bonk/internal/source"
	"bonk/internal/token"
)

type TokenOutput struct {
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
	Span struct {
		Start uint32 `json:"start"`
		End   uint32 `json:"end"`
	} `json:"span"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)
		if _, err := fmt.Fprintf(w, "%3d: %-12s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" && tok.Kind != token.EOF {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d\n", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		pos, _ := fs.Resolve(tok.Span)
		out := TokenOutput{Kind: tok.Kind.String(), Text: tok.Text, Line: pos.Line, Col: pos.Col}
		out.Span.Start, out.Span.End = tok.Span.Start, tok.Span.End
		output = append(output, out)
		if tok.Kind == token.EOF {
			break
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
