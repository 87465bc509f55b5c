package main

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	atom "github.com/thomas11/atomgenerator"
	"go.uber.org/zap"
)

// RenderAtom writes the blog feed and one feed per category. Undated posts
// are left out.
func (s *Site) RenderAtom() error {
	dated := s.posts.dated()
	if len(dated) == 0 {
		return nil
	}

	filePath := filepath.Join(s.conf.blogOutDir(), blogFeedName+".xml")
	err := s.renderAndSaveFeed(s.conf.SiteTitle, s.conf.BlogOutDir+"/", filePath, dated)
	if err != nil {
		return err
	}

	return s.renderAndSaveCategoriesAtom(dated)
}

// blogFeedName is reserved for the feed of all posts.
const blogFeedName = "index"

// categoryFeeds names one feed per category. Ids that collide with the blog
// feed or with an earlier category get a numeric suffix.
func categoryFeeds(cats postsByCategory, blogOutDir string) []categoryFeed {
	taken := map[string]bool{blogFeedName: true}
	feeds := make([]categoryFeed, 0, len(cats))
	for _, c := range cats {
		id := c.Category.Id()
		name := id
		for n := 2; taken[name]; n++ {
			name = fmt.Sprintf("%s-%d", id, n)
		}
		taken[name] = true
		feeds = append(feeds, categoryFeed{
			categoryWithPosts: c,
			File:              name + ".xml",
			FeedUrl:           "/" + path.Join(blogOutDir, name+".xml"),
		})
	}
	return feeds
}

func (s *Site) renderFeed(title, relUrl string, ps posts) ([]byte, error) {
	feed := atom.Feed{
		Title:   title,
		Link:    s.absUrl(relUrl),
		PubDate: ps.latestDate(),
	}
	feed.AddAuthor(atom.Author{
		Name: s.conf.Author,
		Uri:  s.conf.AuthorUri,
	})

	for _, p := range ps {
		feed.AddEntry(s.entryForPost(p))
	}

	errs := feed.Validate()
	if len(errs) > 0 {
		for _, e := range errs {
			s.log.Error("invalid atom feed", zap.String("feed", title), zap.Error(e))
		}
		return nil, errs[0]
	}

	return feed.GenXml()
}

func (s *Site) entryForPost(p *post) *atom.Entry {
	description := p.Summary
	if description == "" {
		description = p.Title
	}
	e := &atom.Entry{
		Title:       p.Title,
		Description: description,
		Link:        s.absUrl(p.URL),
		PubDate:     p.Date,
	}

	for _, cat := range p.Categories {
		e.AddCategory(atom.Category{Term: string(cat)})
	}

	if renderedBody, ok := s.renderCache[p.ID]; ok {
		e.Content = renderedBody
	}

	return e
}

func (s *Site) renderAndSaveFeed(title, relUrl, filePath string, ps posts) error {
	atomXml, err := s.renderFeed(title, relUrl, ps)
	if err != nil {
		return err
	}

	if err := os.WriteFile(filePath, atomXml, os.FileMode(0664)); err != nil {
		return err
	}
	s.stats.feeds++
	return nil
}

func (s *Site) renderAndSaveCategoriesAtom(dated posts) error {
	cats := groupByCategory(dated)
	s.log.Debug("grouped posts by category", zap.Stringer("categories", cats))

	for _, feed := range categoryFeeds(cats, s.conf.BlogOutDir) {
		title := s.conf.SiteTitle + ` Category "` + feed.Category.String() + `"`
		filePath := filepath.Join(s.conf.blogOutDir(), feed.File)

		err := s.renderAndSaveFeed(title, s.conf.BlogOutDir+"/", filePath, feed.Posts)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Site) absUrl(relUrl string) string {
	return strings.TrimSuffix(s.conf.BaseUrl, "/") + "/" + strings.TrimPrefix(relUrl, "/")
}
