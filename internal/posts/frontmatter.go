package posts

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

type frontMatter struct {
	Title string `yaml:"title"`
	Date  string `yaml:"date"`
}

// Marshal renders a post as a front-matter block followed by its body.
// The slug is not stored; it is the file name.
func Marshal(p *Post) ([]byte, error) {
	header, err := yaml.Marshal(frontMatter{Title: p.Title, Date: p.Date})
	if err != nil {
		return nil, fmt.Errorf("marshal front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")
	buf.Write(header)
	buf.WriteString(delimiter + "\n")
	buf.WriteString(p.Content)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Unmarshal parses a stored document into a post. Missing title falls back
// to the slug and missing date to now. The body is returned as stored, less
// the line ending Marshal appends.
func Unmarshal(slug string, data []byte, now func() string) (*Post, error) {
	text := string(data)

	var fm struct {
		Title string    `yaml:"title"`
		Date  yaml.Node `yaml:"date"`
	}
	body := strings.TrimSuffix(text, "\n")
	if header, rest, crlf, ok := splitFrontMatter(text); ok {
		if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
			return nil, fmt.Errorf("parse front matter of %q: %w", slug, err)
		}
		// Hand-edited files with CRLF delimiters also end the body in CRLF.
		if crlf && strings.HasSuffix(rest, "\r\n") {
			body = strings.TrimSuffix(rest, "\r\n")
		} else {
			body = strings.TrimSuffix(rest, "\n")
		}
	}

	p := &Post{
		Slug:    slug,
		Title:   fm.Title,
		Date:    fm.Date.Value,
		Content: body,
	}
	if p.Title == "" {
		p.Title = slug
	}
	if p.Date == "" {
		p.Date = now()
	}
	return p, nil
}

// splitFrontMatter finds the opening and closing delimiter lines, which may
// end in "\n" or "\r\n". Only those lines are inspected; the body is
// returned byte for byte.
func splitFrontMatter(text string) (header, body string, crlf, ok bool) {
	first, rest, found := strings.Cut(text, "\n")
	if !found || strings.TrimSuffix(first, "\r") != delimiter {
		return "", "", false, false
	}
	crlf = strings.HasSuffix(first, "\r")
	start := len(text) - len(rest)

	for pos := start; pos < len(text); {
		line, next, found := strings.Cut(text[pos:], "\n")
		if strings.TrimSuffix(line, "\r") == delimiter {
			return text[start:pos], next, crlf, true
		}
		if !found {
			break
		}
		pos = len(text) - len(next)
	}
	return "", "", false, false
}
