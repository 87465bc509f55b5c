package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/otiai10/copy"
	"go.uber.org/zap"
)

var errBuildLocked = errors.New("another build holds the lock")

type Site struct {
	posts       posts
	conf        *SiteConf
	log         *zap.Logger
	renderCache map[string]string
	stats       buildStats

	resizer  *resizer
	markdown *blackfridayHtmlRenderer
}

// ReadSite discovers the blog posts. Drafts are dropped unless drafts is set.
func ReadSite(conf *SiteConf, drafts bool, log *zap.Logger) (*Site, error) {
	dirs, err := findPosts(conf.BlogDir, log)
	if err != nil {
		return nil, err
	}

	s := &Site{
		posts:       make(posts, 0, len(dirs)),
		conf:        conf,
		log:         log,
		renderCache: make(map[string]string),
		markdown:    newMarkdownRenderer(conf.CodeStyle),
	}
	s.resizer = newResizer(conf, log, &s.stats)

	for _, d := range dirs {
		p, err := readPostFromDir(d, conf.BlogOutDir)
		if err != nil {
			return nil, err
		}
		if !drafts && p.Draft {
			log.Debug("skipping draft", zap.String("post", p.ID))
			continue
		}
		log.Debug("read post", zap.Stringer("post", p))
		s.posts = append(s.posts, p)
	}

	s.posts.sortByDate()

	return s, nil
}

// Build renders the whole site while holding the output lock.
func (s *Site) Build(reg *Registry) error {
	fl := flock.New(s.conf.lockPath())
	if err := os.MkdirAll(filepath.Dir(fl.Path()), os.FileMode(0775)); err != nil {
		return err
	}
	locked, err := fl.TryLock()
	if err != nil {
		return fmt.Errorf("locking %s: %w", fl.Path(), err)
	}
	if !locked {
		return fmt.Errorf("%w: %s", errBuildLocked, fl.Path())
	}
	defer fl.Unlock()

	return s.RenderAll(reg)
}

func (s *Site) RenderAll(reg *Registry) error {
	s.log.Info("writing site", zap.String("out", s.conf.OutDir), zap.Int("sections", reg.len()), zap.Int("posts", len(s.posts)))

	if err := s.CopyStaticFiles(); err != nil {
		return err
	}
	if err := s.writeCodeCSS(); err != nil {
		return err
	}
	if err := s.RenderHtml(reg); err != nil {
		return err
	}
	return s.RenderAtom()
}

func (s *Site) RenderHtml(reg *Registry) error {
	favicons, err := s.resizer.favicons()
	if err != nil {
		return err
	}
	engine, err := newTemplateEngine(s.markdown, s.conf.TemplateDir)
	if err != nil {
		return err
	}
	asm, err := newAssembler(s.conf, s.log, engine, reg, favicons, &s.stats)
	if err != nil {
		return err
	}
	rc := newRenderContext(s.conf, s.resizer, s.posts)

	if err := asm.home(rc); err != nil {
		return fmt.Errorf("home page: %w", err)
	}
	if len(s.posts) == 0 {
		return nil
	}

	if err := asm.blogIndex(rc); err != nil {
		return fmt.Errorf("blog index: %w", err)
	}
	hasFeed := len(s.posts.dated()) > 0
	for _, p := range s.posts {
		renderedBody, err := asm.post(p, hasFeed)
		if err != nil {
			return fmt.Errorf("post %s: %w", p.ID, err)
		}
		s.renderCache[p.ID] = renderedBody
		if err := s.copyPostAssets(p); err != nil {
			return err
		}
		s.stats.posts++
	}
	return nil
}

// CopyStaticFiles mirrors the static files directory (css, js) into the
// output root.
func (s *Site) CopyStaticFiles() error {
	srcDir := s.conf.StaticFilesDir
	if _, err := os.Stat(srcDir); errors.Is(err, os.ErrNotExist) {
		s.log.Info("no static files directory, skipping", zap.String("dir", srcDir))
		return nil
	}
	s.log.Debug("copying static files", zap.String("from", srcDir), zap.String("to", s.conf.OutDir))
	return copy.Copy(srcDir, s.conf.OutDir, copy.Options{
		Skip: func(info os.FileInfo, src, dest string) (bool, error) {
			if !info.IsDir() {
				s.stats.filesCopied++
			}
			return false, nil
		},
	})
}

// copyPostAssets copies everything next to a post's index.md verbatim. A
// sibling index.html would replace the rendered page and is left out.
func (s *Site) copyPostAssets(p *post) error {
	if len(p.Assets) == 0 {
		return nil
	}
	index := filepath.Join(p.Dir, postIndexFile)
	page := filepath.Join(p.Dir, "index.html")
	dest := filepath.Join(s.conf.blogOutDir(), p.ID)
	err := copy.Copy(p.Dir, dest, copy.Options{
		Skip: func(info os.FileInfo, src, dest string) (bool, error) {
			switch src {
			case index:
				return true, nil
			case page:
				s.log.Warn("not copying asset over the rendered page", zap.String("post", p.ID), zap.String("file", src))
				return true, nil
			}
			if !info.IsDir() {
				s.stats.filesCopied++
			}
			return false, nil
		},
	})
	if err != nil {
		return fmt.Errorf("copying assets of %s: %w", p.ID, err)
	}
	return nil
}

func (s *Site) writeCodeCSS() error {
	if err := os.MkdirAll(s.conf.OutDir, os.FileMode(0775)); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(s.conf.OutDir, "chroma.css"))
	if err != nil {
		return err
	}
	if err := s.markdown.writeCSS(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
