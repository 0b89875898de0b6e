package relevance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSnippetsBlankQueryFallback(t *testing.T) {
	short := "A short review."
	got := ExtractSnippets(short, "", 150, 2)
	require.Len(t, got, 1)
	assert.Equal(t, short, got[0])

	long := strings.Repeat("words and more words. ", 20)
	got = ExtractSnippets(long, "   ", 50, 2)
	require.Len(t, got, 1)
	assert.Equal(t, long[:50]+"...", got[0])
	assert.Len(t, got[0], 53)
}

func TestExtractSnippetsNoOccurrenceFallback(t *testing.T) {
	text := "Nothing in here matches the query at all."
	got := ExtractSnippets(text, "zeppelin", 150, 2)
	require.Len(t, got, 1)
	assert.Equal(t, text, got[0])
}

func TestExtractSnippetsTwoClusters(t *testing.T) {
	text := "In the beginning there was a great book about a great journey."
	got := ExtractSnippets(text, "great", 20, 2)

	// Occurrences at 29 and 48 are 19 apart, past the gap limit of 10, so
	// each gets its own window: [pos-5, pos+10) with ellipses on both ends.
	require.Len(t, got, 2)
	assert.Equal(t, "...as a great book...", got[0])
	assert.Equal(t, "...ut a great jour...", got[1])
}

func TestExtractSnippetsClusterMergesNearbyMatches(t *testing.T) {
	text := "a great and great tale" + strings.Repeat(" filler", 40)
	got := ExtractSnippets(text, "great", 150, 2)

	require.Len(t, got, 1)
	assert.Equal(t, 2, strings.Count(got[0], "great"))
	assert.True(t, strings.HasSuffix(got[0], "..."))
	assert.False(t, strings.HasPrefix(got[0], "..."), "window starts at text start")
}

func TestExtractSnippetsMaxSnippetsFirstFoundOrder(t *testing.T) {
	gap := strings.Repeat("x", 200)
	text := "alpha one " + gap + " alpha two " + gap + " alpha three"
	got := ExtractSnippets(text, "alpha", 40, 2)

	require.Len(t, got, 2)
	assert.Contains(t, got[0], "alpha one")
	assert.Contains(t, got[1], "alpha two")
}

func TestExtractSnippetsLengthBound(t *testing.T) {
	text := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 30)
	for _, snippetLength := range []int{40, 80, 150} {
		for _, snippet := range ExtractSnippets(text, "fox lazy", snippetLength, 3) {
			assert.LessOrEqual(t, len(snippet), snippetLength+6,
				"snippetLength=%d", snippetLength)
		}
	}
}

func TestExtractSnippetsDedupesAcrossTerms(t *testing.T) {
	text := "a great book about a great journey"
	once := ExtractSnippets(text, "great", 150, 2)
	twice := ExtractSnippets(text, "great great", 150, 2)
	assert.Equal(t, once, twice)
}

func TestExtractSnippetsMultiByteRunes(t *testing.T) {
	// U+023A grows and U+0130 shrinks under strings.ToLower; offsets must
	// stay byte-accurate in the original text either way.
	for _, prefix := range []string{"Ⱥ", "İ"} {
		text := strings.Repeat(prefix, 100) + " zebra"
		got := ExtractSnippets(text, "zebra", 150, 2)
		require.Len(t, got, 1, "prefix %q", prefix)
		assert.Contains(t, got[0], "zebra", "prefix %q", prefix)
	}
}

func TestExtractSnippetsCaseFoldsWideRunes(t *testing.T) {
	// Same-width case pairs still fold: İstanbul's dotless I counterpart
	// "ı" (U+0131) and its uppercase "I" are different widths, but
	// Cyrillic Д/д are both two bytes.
	got := ExtractSnippets("О Дюне и песках", "дюне", 150, 2)
	require.Len(t, got, 1)
	assert.Contains(t, got[0], "Дюне")
}

func TestExtractSnippetsDefaults(t *testing.T) {
	long := strings.Repeat("z", 400)
	got := ExtractSnippets(long, "", 0, 0)
	require.Len(t, got, 1)
	assert.Equal(t, long[:DefaultSnippetLength]+"...", got[0])
}
