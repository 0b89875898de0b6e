package review

import (
	"strings"

	"golang.org/x/net/html"
)

// ExtractText strips markup from rendered review HTML, returning plain text
// with whitespace collapsed. Script and style bodies are dropped.
func ExtractText(markup string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(markup))
	var text strings.Builder
	skip := 0

	for {
		tokenType := tokenizer.Next()

		switch tokenType {
		case html.ErrorToken:
			// EOF or malformed markup: keep whatever was collected.
			return strings.Join(strings.Fields(text.String()), " ")

		case html.StartTagToken:
			token := tokenizer.Token()
			if token.Data == "script" || token.Data == "style" {
				skip++
			}

		case html.EndTagToken:
			token := tokenizer.Token()
			if (token.Data == "script" || token.Data == "style") && skip > 0 {
				skip--
			}

		case html.TextToken:
			if skip == 0 {
				text.WriteString(tokenizer.Token().Data)
				text.WriteByte(' ')
			}
		}
	}
}
