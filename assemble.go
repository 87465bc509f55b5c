package main

import (
	"bytes"
	"html/template"
	"io"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"
)

// assembler turns the registry and the posts into complete documents. Every
// page shares the shell and the navigation built from the registry.
type assembler struct {
	conf   *SiteConf
	log    *zap.Logger
	engine *templateEngine
	stats  *buildStats

	shell    templateParam
	navIcons []template.HTML
	reg      *Registry
}

func newAssembler(conf *SiteConf, log *zap.Logger, engine *templateEngine, reg *Registry, favicons []favicon, stats *buildStats) (*assembler, error) {
	icons := iconLoader{dir: conf.ResourcesDir}
	logo, err := icons.logo(conf.LogoName)
	if err != nil {
		return nil, err
	}

	navIcons := make([]template.HTML, 0, reg.len())
	for _, s := range reg.sections() {
		icon, err := icons.sectionIcon(s.ID)
		if err != nil {
			return nil, err
		}
		navIcons = append(navIcons, template.HTML(icon))
	}

	return &assembler{
		conf:   conf,
		log:    log,
		engine: engine,
		stats:  stats,
		shell: templateParam{
			SiteTitle: conf.SiteTitle,
			Logo:      template.HTML(logo),
			Favicons:  favicons,
			Social:    conf.Social,
		},
		navIcons: navIcons,
		reg:      reg,
	}, nil
}

// navigation has one entry per section, in registry order. Off the home page
// the anchors point back to it.
func (a *assembler) navigation(onHome bool) []navItem {
	items := make([]navItem, 0, a.reg.len())
	for i, s := range a.reg.sections() {
		href := "#" + s.ID
		if !onHome {
			href = "/" + href
		}
		items = append(items, navItem{Href: href, Title: s.Title, Icon: a.navIcons[i]})
	}
	return items
}

func (a *assembler) param(pageTitle, fileId string, onHome bool, feed bool) templateParam {
	tp := a.shell
	tp.PageTitle = pageTitle
	tp.FileId = fileId
	tp.Nav = a.navigation(onHome)
	if feed {
		tp.FeedUrl = "/" + path.Join(a.conf.BlogOutDir, blogFeedName+".xml")
	}
	return tp
}

func (a *assembler) assembleHome(w io.Writer, rc *renderContext) error {
	sections, err := a.reg.render(rc)
	if err != nil {
		return err
	}
	p := mainTemplateParam{
		templateParam: a.param("", "index", true, len(rc.posts.dated()) > 0),
		Sections:      sections,
	}
	return a.engine.renderHome(p, w)
}

func (a *assembler) assembleBlog(w io.Writer, rc *renderContext) error {
	list, err := PostList{}.render(rc)
	if err != nil {
		return err
	}
	p := blogTemplateParam{
		templateParam: a.param("Blog", "blog", false, len(rc.posts.dated()) > 0),
		PostList:      list,
		Categories:    categoryFeeds(groupByCategory(rc.posts.dated()), a.conf.BlogOutDir),
	}
	return a.engine.renderBlog(p, w)
}

func (a *assembler) home(rc *renderContext) error {
	return a.writePage(filepath.Join(a.conf.OutDir, "index.html"), func(w io.Writer) error {
		return a.assembleHome(w, rc)
	})
}

func (a *assembler) blogIndex(rc *renderContext) error {
	return a.writePage(filepath.Join(a.conf.blogOutDir(), "index.html"), func(w io.Writer) error {
		return a.assembleBlog(w, rc)
	})
}

// post writes the page of a single post and returns its rendered body.
func (a *assembler) post(p *post, hasFeed bool) (string, error) {
	var renderedBody string
	err := a.writePage(filepath.Join(a.conf.blogOutDir(), p.ID, "index.html"), func(w io.Writer) error {
		var err error
		renderedBody, err = a.engine.renderPost(a.param(p.Title, p.ID, false, hasFeed), p, w)
		return err
	})
	return renderedBody, err
}

// writePage renders the whole document before touching the file so a failed
// template never leaves a truncated page behind.
func (a *assembler) writePage(outPath string, render func(w io.Writer) error) error {
	var b bytes.Buffer
	if err := render(&b); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outPath), os.FileMode(0775)); err != nil {
		return err
	}
	if err := os.WriteFile(outPath, b.Bytes(), os.FileMode(0664)); err != nil {
		return err
	}
	a.log.Debug("wrote page", zap.String("path", outPath))
	a.stats.pages++
	return nil
}
