package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryFeedsAvoidCollisions(t *testing.T) {
	day := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	ps := posts{
		{Title: "a", Date: day, Categories: []category{"Go", "Index", "../x"}},
		{Title: "b", Date: day, Categories: []category{"go", "index-2"}},
	}

	var files, urls []string
	for _, f := range categoryFeeds(groupByCategory(ps), "blog") {
		files = append(files, f.File)
		urls = append(urls, f.FeedUrl)
	}
	assert.Equal(t, []string{"go.xml", "index-2.xml", "___x.xml", "go-2.xml", "index-2-2.xml"}, files)
	assert.Equal(t, "/blog/go.xml", urls[0])
	assert.NotContains(t, files, "index.xml")
}

func TestCategoryFeedDoesNotReplaceBlogFeed(t *testing.T) {
	conf := testConf(t)
	writeIcons(t, conf)
	writeFile(t, filepath.Join(conf.BlogDir, "a", "index.md"), "---\ntitle: A\ndate: 2020-01-02\ncategories: [Index, Go]\n---\na\n")
	writeFile(t, filepath.Join(conf.BlogDir, "b", "index.md"), "---\ntitle: B\ndate: 2020-01-01\ncategories: [go]\n---\nb\n")

	s := testSite(t, conf, false)
	require.NoError(t, s.Build(testRegistry(t)))

	blogFeed, err := os.ReadFile(filepath.Join(conf.blogOutDir(), "index.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(blogFeed), "<title>A</title>")
	assert.Contains(t, string(blogFeed), "<title>B</title>")

	index, err := os.ReadFile(filepath.Join(conf.blogOutDir(), "index-2.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "Index")

	goFeed, err := os.ReadFile(filepath.Join(conf.blogOutDir(), "go.xml"))
	require.NoError(t, err)
	goLower, err := os.ReadFile(filepath.Join(conf.blogOutDir(), "go-2.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(goFeed), "<title>A</title>")
	assert.Contains(t, string(goLower), "<title>B</title>")
	assert.NotContains(t, string(goLower), "<title>A</title>")

	assert.Equal(t, 4, s.stats.feeds)

	blog, err := os.ReadFile(filepath.Join(conf.blogOutDir(), "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(blog), `href="/blog/index-2.xml"`)
	assert.Contains(t, string(blog), `href="/blog/go-2.xml"`)
}
