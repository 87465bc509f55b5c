package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const postIndexFile = "index.md"

var errNoIndex = errors.New("no " + postIndexFile)

var frontMatterDelim = []byte("---")

var postDateFormats = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04", "2006-01-02"}

type frontMatter struct {
	Title      string   `yaml:"title"`
	Date       string   `yaml:"date"`
	Summary    string   `yaml:"summary"`
	Categories []string `yaml:"categories"`
	Draft      bool     `yaml:"draft"`
}

// findPosts returns every subdirectory of dir holding an index.md, in
// directory listing order. A missing blog directory means no posts.
func findPosts(dir string, log *zap.Logger) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		log.Info("no blog directory, skipping posts", zap.String("dir", dir))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	dirs := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		postDir := filepath.Join(dir, e.Name())
		if _, err := os.Stat(filepath.Join(postDir, postIndexFile)); err != nil {
			log.Debug("skipping directory without "+postIndexFile, zap.String("dir", postDir))
			continue
		}
		dirs = append(dirs, postDir)
	}
	return dirs, nil
}

func readPostFromDir(dir, blogOutDir string) (*post, error) {
	slug := filepath.Base(dir)

	content, err := os.ReadFile(filepath.Join(dir, postIndexFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("post %s: %w", slug, errNoIndex)
	}
	if err != nil {
		return nil, err
	}

	fmRaw, body := splitFrontMatter(content)
	var fm frontMatter
	if fmRaw != nil {
		if err := yaml.Unmarshal(fmRaw, &fm); err != nil {
			return nil, fmt.Errorf("post %s: front matter: %w", slug, err)
		}
	}

	p := &post{
		ID:      slug,
		Title:   fm.Title,
		Summary: fm.Summary,
		Dir:     dir,
		URL:     "/" + path.Join(blogOutDir, slug) + "/",
		Body:    body,
		Draft:   fm.Draft,
	}
	if p.Title == "" {
		p.Title = titleFromSlug(slug)
	}
	for _, c := range fm.Categories {
		if c = strings.TrimSpace(c); c != "" {
			p.Categories = append(p.Categories, category(c))
		}
	}
	if fm.Date != "" {
		if p.Date, err = parsePostDate(fm.Date); err != nil {
			return nil, fmt.Errorf("post %s: %w", slug, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.Name() != postIndexFile {
			p.Assets = append(p.Assets, e.Name())
		}
	}

	return p, nil
}

// splitFrontMatter separates a leading "---" delimited YAML block from the
// markdown body. Without one, the whole content is body.
func splitFrontMatter(content []byte) (fm, body []byte) {
	trimmed := bytes.TrimPrefix(content, []byte("\ufeff"))
	if !bytes.HasPrefix(trimmed, frontMatterDelim) {
		return nil, content
	}
	rest := trimmed[len(frontMatterDelim):]
	nl := bytes.IndexByte(rest, '\n')
	if nl == -1 || len(bytes.TrimSpace(rest[:nl])) != 0 {
		return nil, content
	}
	rest = rest[nl+1:]

	for off := 0; off < len(rest); {
		end := bytes.IndexByte(rest[off:], '\n')
		line := rest[off:]
		next := len(rest)
		if end != -1 {
			line = rest[off : off+end]
			next = off + end + 1
		}
		if bytes.Equal(bytes.TrimRight(line, " \r"), frontMatterDelim) {
			return rest[:off], rest[next:]
		}
		off = next
	}
	return nil, content
}

func parsePostDate(s string) (time.Time, error) {
	for _, layout := range postDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q, use YYYY-MM-DD or RFC3339", s)
}

func titleFromSlug(slug string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	return cases.Title(language.English).String(words)
}
