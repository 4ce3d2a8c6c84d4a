package posts

import "time"

// DateLayout is the ISO-8601 form stored in front matter, millisecond
// precision in UTC.
const DateLayout = "2006-01-02T15:04:05.000Z07:00"

// Ext is the file extension of a stored post.
const Ext = ".md"

type Post struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Date    string `json:"date"`
	Content string `json:"content"`
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
