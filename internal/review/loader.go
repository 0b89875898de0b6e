package review

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	goslug "github.com/gosimple/slug"
	"github.com/sirupsen/logrus"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

// frontmatter is the YAML header of a review file.
type frontmatter struct {
	Title   string   `yaml:"title"`
	Author  string   `yaml:"author"`
	Genre   string   `yaml:"genre"`
	Tags    []string `yaml:"tags"`
	Status  string   `yaml:"status"`
	Rating  int      `yaml:"rating"`
	Date    string   `yaml:"date"`
	Excerpt string   `yaml:"excerpt"`
}

const dateLayout = "2006-01-02"

// LoadDir parses every markdown review under dir and returns them sorted by
// date descending (newest first). Files that fail to parse are logged and
// skipped so one broken review never takes the site down.
func LoadDir(dir string, log *logrus.Entry) ([]*Review, error) {
	var reviews []*Review

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		r, err := LoadFile(path)
		if err != nil {
			if log != nil {
				log.WithError(err).WithField("file", path).Warn("Skipping unparseable review")
			}
			return nil
		}
		reviews = append(reviews, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan content directory: %w", err)
	}

	sort.Slice(reviews, func(i, j int) bool {
		if !reviews[i].Date.Equal(reviews[j].Date) {
			return reviews[i].Date.After(reviews[j].Date)
		}
		return reviews[i].Slug < reviews[j].Slug
	})

	return reviews, nil
}

// LoadFile parses a single markdown review file.
func LoadFile(path string) (*Review, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read review: %w", err)
	}

	name := filepath.Base(path)
	fm, body, err := splitFrontmatter(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if fm.Title == "" {
		return nil, fmt.Errorf("%s: missing title", name)
	}

	var rendered bytes.Buffer
	if err := goldmark.Convert([]byte(body), &rendered); err != nil {
		return nil, fmt.Errorf("%s: failed to render markdown: %w", name, err)
	}

	r := &Review{
		Slug:    goslug.Make(strings.TrimSuffix(name, filepath.Ext(name))),
		Title:   fm.Title,
		Author:  fm.Author,
		Genre:   fm.Genre,
		Tags:    fm.Tags,
		Status:  NormalizeStatus(fm.Status),
		Rating:  fm.Rating,
		Excerpt: fm.Excerpt,
		HTML:    rendered.String(),
		Content: ExtractText(rendered.String()),
	}
	if r.Slug == "" {
		r.Slug = goslug.Make(fm.Title)
	}

	if fm.Date != "" {
		date, err := time.Parse(dateLayout, fm.Date)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid date %q: %w", name, fm.Date, err)
		}
		r.Date = date
	}

	return r, nil
}

// splitFrontmatter separates the YAML header from the markdown body. The
// header must open on the first line with "---" and close with another.
func splitFrontmatter(content string) (*frontmatter, string, error) {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return nil, "", fmt.Errorf("missing frontmatter")
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end == -1 {
		return nil, "", fmt.Errorf("unclosed frontmatter")
	}

	var fm frontmatter
	header := strings.Join(lines[1:end], "\n")
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return nil, "", fmt.Errorf("invalid frontmatter: %w", err)
	}

	return &fm, strings.Join(lines[end+1:], "\n"), nil
}
