package posts

import (
	"strings"
	"testing"
)

func fixedNow() string { return "2025-01-01T00:00:00.000Z" }

func TestMarshalUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "single line", content: "hello"},
		{name: "paragraphs", content: "first\n\nsecond\nthird"},
		{name: "trailing newline kept", content: "line\n"},
		{name: "delimiter in body", content: "a\n---\nb"},
		{name: "unicode", content: "こんにちは"},
		{name: "crlf body", content: "a\r\nb"},
		{name: "trailing carriage return", content: "a\r"},
		{name: "crlf delimiter in body", content: "x\r\n---\r\ny"},
		{name: "body is a front matter block", content: "---\ntitle: inner\n---\ninner body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := &Post{Slug: "s", Title: "Title: with colon", Date: "2024-06-01T10:00:00.000Z", Content: tt.content}
			data, err := Marshal(in)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			out, err := Unmarshal("s", data, fixedNow)
			if err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if *out != *in {
				t.Errorf("round trip: got %+v, want %+v", out, in)
			}
		})
	}
}

func TestMarshal_Format(t *testing.T) {
	data, err := Marshal(&Post{Slug: "x", Title: "Hi", Date: "2024-01-01T00:00:00.000Z", Content: "body"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s := string(data)
	if !strings.HasPrefix(s, "---\ntitle: Hi\n") {
		t.Errorf("unexpected header: %q", s)
	}
	if !strings.HasSuffix(s, "---\nbody\n") {
		t.Errorf("unexpected body: %q", s)
	}
	if strings.Contains(s, "slug") {
		t.Errorf("slug should not be stored: %q", s)
	}
}

func TestUnmarshal_Fallbacks(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantTitle string
		wantDate  string
		wantBody  string
	}{
		{
			name:      "no front matter",
			doc:       "just text\n",
			wantTitle: "slug",
			wantDate:  fixedNow(),
			wantBody:  "just text",
		},
		{
			name:      "empty front matter",
			doc:       "---\n---\nbody\n",
			wantTitle: "slug",
			wantDate:  fixedNow(),
			wantBody:  "body",
		},
		{
			name:      "unquoted date",
			doc:       "---\ntitle: T\ndate: 2024-01-01\n---\nbody\n",
			wantTitle: "T",
			wantDate:  "2024-01-01",
			wantBody:  "body",
		},
		{
			name:      "single quoted date",
			doc:       "---\ntitle: T\ndate: '2023-12-01T00:00:00.000Z'\n---\n\nbody\n",
			wantTitle: "T",
			wantDate:  "2023-12-01T00:00:00.000Z",
			wantBody:  "\nbody",
		},
		{
			name:      "closing delimiter at end of file",
			doc:       "---\ntitle: T\n---",
			wantTitle: "T",
			wantDate:  fixedNow(),
			wantBody:  "",
		},
		{
			name:      "crlf body under lf delimiters",
			doc:       "---\ntitle: T\n---\none\r\ntwo\n",
			wantTitle: "T",
			wantDate:  fixedNow(),
			wantBody:  "one\r\ntwo",
		},
		{
			name:      "crlf line endings",
			doc:       "---\r\ntitle: T\r\n---\r\nbody\r\n",
			wantTitle: "T",
			wantDate:  fixedNow(),
			wantBody:  "body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Unmarshal("slug", []byte(tt.doc), fixedNow)
			if err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if p.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", p.Title, tt.wantTitle)
			}
			if p.Date != tt.wantDate {
				t.Errorf("Date = %q, want %q", p.Date, tt.wantDate)
			}
			if p.Content != tt.wantBody {
				t.Errorf("Content = %q, want %q", p.Content, tt.wantBody)
			}
		})
	}
}

func TestUnmarshal_InvalidYAML(t *testing.T) {
	_, err := Unmarshal("bad", []byte("---\ntitle: [unclosed\n---\nbody\n"), fixedNow)
	if err == nil {
		t.Error("expected error for malformed front matter")
	}
}
