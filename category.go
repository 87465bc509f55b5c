package main

import (
	"bytes"
	"cmp"
	"slices"
	"strings"
	"unicode"
)

// A category tags blog posts and CTF write-ups. Its Id names the feed file
// and the icon resource.
type category string

func (c category) String() string { return string(c) }

// Id is the lowercased category with every rune other than a letter, a digit,
// '-' or '_' replaced by '_'. It is always a single path element.
func (c category) Id() string {
	id := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			return unicode.ToLower(r)
		}
		return '_'
	}, c.String())
	if id == "" {
		return "_"
	}
	return id
}

type categoryWithPosts struct {
	Category category
	Posts    posts
}

func (c categoryWithPosts) EarliestDateFormatted() string {
	return formatDateShort(c.Posts.earliestDate())
}

func (c categoryWithPosts) LatestDateFormatted() string {
	return formatDateShort(c.Posts.latestDate())
}

// Posts grouped by category. Sort sorts by number of posts per category, then by newest post.
// Create using groupByCategory which sorts like this.
type postsByCategory []categoryWithPosts

func (pc *postsByCategory) addPost(c category, p *post) {
	for i, cat := range *pc {
		if cat.Category == c {
			cat.Posts = append(cat.Posts, p)
			(*pc)[i] = cat
			return
		}
	}

	*pc = append(*pc, categoryWithPosts{Category: c, Posts: posts{p}})
}

func (pc postsByCategory) String() string {
	b := new(bytes.Buffer)
	for _, c := range pc {
		b.WriteString(c.Category.String())
		b.WriteString(": ")
		for i, p := range c.Posts {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.Title)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func groupByCategory(ps posts) postsByCategory {
	byCat := make(postsByCategory, 0, 20)

	for _, p := range ps {
		for _, cat := range p.Categories {
			byCat.addPost(cat, p)
		}
	}

	slices.SortStableFunc(byCat, func(a, b categoryWithPosts) int {
		// More posts first
		if c := cmp.Compare(len(b.Posts), len(a.Posts)); c != 0 {
			return c
		}
		// then newest post first
		return b.Posts.latestDate().Compare(a.Posts.latestDate())
	})

	return byCat
}
