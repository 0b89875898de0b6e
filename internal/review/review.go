// Package review defines the book-review content model and the markdown
// loader that builds it from a content directory.
package review

import (
	"strings"
	"time"
)

// Reading statuses shown as shelves on the site.
const (
	StatusRead    = "read"
	StatusReading = "reading"
	StatusToRead  = "to-read"
)

// Review is one book review loaded from a markdown file.
type Review struct {
	Slug    string    `json:"slug"`
	Title   string    `json:"title"`
	Author  string    `json:"author"`
	Genre   string    `json:"genre"`
	Tags    []string  `json:"tags"`
	Status  string    `json:"status"`
	Rating  int       `json:"rating"`
	Date    time.Time `json:"date"`
	Excerpt string    `json:"excerpt"`
	Content string    `json:"content"` // plain text of the rendered body
	HTML    string    `json:"html"`    // rendered body markup
}

// Fields returns the named text fields relevance scoring runs over. The
// genre field carries the tags too, so tag terms land on the genre weight.
func (r *Review) Fields() map[string]string {
	genre := r.Genre
	if len(r.Tags) > 0 {
		if genre != "" {
			genre += " "
		}
		genre += strings.Join(r.Tags, " ")
	}

	return map[string]string{
		"title":   r.Title,
		"author":  r.Author,
		"excerpt": r.Excerpt,
		"content": r.Content,
		"genre":   genre,
	}
}

// HasTag reports whether the review carries tag, case-insensitively.
func (r *Review) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// NormalizeStatus maps a frontmatter status onto the shelf vocabulary.
// Unknown values become "to-read" rather than failing the load.
func NormalizeStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case StatusRead, "finished":
		return StatusRead
	case StatusReading, "currently-reading":
		return StatusReading
	default:
		return StatusToRead
	}
}
