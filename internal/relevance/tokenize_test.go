package relevance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{"Simple query", "dune", []string{"dune"}},
		{"Mixed case and padding", "  Fiction   Thriller ", []string{"fiction", "thriller"}},
		{"Tabs and newlines", "sci-fi\tclassics\nreviews", []string{"sci-fi", "classics", "reviews"}},
		{"Empty string", "", nil},
		{"Whitespace only", "   \t\n ", nil},
		{"Repeated terms kept", "great great", []string{"great", "great"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.query))
		})
	}
}
