package main

import (
	"bytes"
	"fmt"
	"slices"
	"time"
)

type post struct {
	Title, ID, Summary string
	Date               time.Time
	// Dir is the source directory, URL the published location.
	Dir, URL   string
	Body       []byte
	Categories []category
	Draft      bool
	// Assets are the names of the files next to index.md.
	Assets []string
}

// Called from templates
func (p *post) FormatDate() string {
	return formatDate(p.Date)
}

// Called from templates
func (p *post) FormatDateShort() string {
	return formatDateShort(p.Date)
}

func (p *post) ISODate() string {
	return p.Date.Format("2006-01-02")
}

func (p *post) String() string {
	b := new(bytes.Buffer)
	b.WriteString("title: ")
	b.WriteString(p.Title)
	b.WriteString("\ndate: ")
	b.WriteString(p.Date.String())
	b.WriteString("\nsummary: ")
	b.WriteString(p.Summary)
	b.WriteString("\ncategories: ")
	fmt.Fprintln(b, p.Categories)

	body := p.Body
	if len(body) > 200 {
		body = append(body[:200:200], '.', '.', '.')
	}
	b.WriteString("\nbody: ")
	b.Write(body)

	return b.String()
}

type posts []*post

// sortByDate orders posts newest first. Undated posts follow the dated ones
// in the order they were found.
func (ps posts) sortByDate() {
	slices.SortStableFunc(ps, func(a, b *post) int {
		switch {
		case a.Date.IsZero() && b.Date.IsZero():
			return 0
		case a.Date.IsZero():
			return 1
		case b.Date.IsZero():
			return -1
		}
		return b.Date.Compare(a.Date)
	})
}

func (ps posts) dated() posts {
	out := make(posts, 0, len(ps))
	for _, p := range ps {
		if !p.Date.IsZero() {
			out = append(out, p)
		}
	}
	return out
}

func (ps posts) earliestDate() time.Time {
	var t time.Time
	for _, p := range ps {
		if !p.Date.IsZero() && (t.IsZero() || p.Date.Before(t)) {
			t = p.Date
		}
	}
	return t
}

func (ps posts) latestDate() time.Time {
	var t time.Time
	for _, p := range ps {
		if p.Date.After(t) {
			t = p.Date
		}
	}
	return t
}
