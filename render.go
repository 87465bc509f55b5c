package main

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"time"
)

//go:embed tmpl/*.html
var embeddedTemplates embed.FS

const globalTemplate = "global.html"

func formatDate(d time.Time) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("January 2, 2006")
}

func formatDateShort(d time.Time) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("Jan 2, 2006")
}

type navItem struct {
	Href, Title string
	Icon        template.HTML
}

// templateParam is shared by every page: the shell and the navigation.
type templateParam struct {
	SiteTitle string
	PageTitle string
	Logo      template.HTML
	Favicons  []favicon
	Nav       []navItem
	Social    []SocialLink
	// A short id such as "index", "blog" or a post slug
	FileId  string
	FeedUrl string
}

type mainTemplateParam struct {
	templateParam
	Sections []renderedSection
}

type categoryFeed struct {
	categoryWithPosts
	// File is the feed's name inside the blog output directory.
	File    string
	FeedUrl string
}

type blogTemplateParam struct {
	templateParam
	PostList   template.HTML
	Categories []categoryFeed
}

type postTemplateParam struct {
	templateParam
	*post
	RenderedBody template.HTML
}

type templateEngine struct {
	toHtml        renderer
	templates     fs.FS
	templateCache map[string]*template.Template
}

// newTemplateEngine reads templates from dir, or from the embedded defaults
// when dir is empty.
func newTemplateEngine(r renderer, dir string) (*templateEngine, error) {
	var fsys fs.FS
	if dir != "" {
		fsys = os.DirFS(dir)
	} else {
		sub, err := fs.Sub(embeddedTemplates, "tmpl")
		if err != nil {
			return nil, err
		}
		fsys = sub
	}
	return &templateEngine{
		toHtml:        r,
		templates:     fsys,
		templateCache: make(map[string]*template.Template),
	}, nil
}

func (te *templateEngine) renderHome(p mainTemplateParam, w io.Writer) error {
	return te.execute(w, "main", p)
}

func (te *templateEngine) renderBlog(p blogTemplateParam, w io.Writer) error {
	return te.execute(w, "blog", p)
}

// renderPost writes the post page and returns the rendered body, which the
// feeds reuse.
func (te *templateEngine) renderPost(tp templateParam, p *post, w io.Writer) (string, error) {
	renderedBody := template.HTML(te.toHtml.render(p.Body))
	param := postTemplateParam{
		templateParam: tp,
		post:          p,
		RenderedBody:  renderedBody,
	}
	return string(renderedBody), te.execute(w, "blog-post", param)
}

func (te *templateEngine) execute(w io.Writer, name string, data any) error {
	t, err := te.getTemplate(name)
	if err != nil {
		return err
	}
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}
	return nil
}

func (te *templateEngine) getTemplate(name string) (*template.Template, error) {
	t, ok := te.templateCache[name]
	if !ok {
		var err error
		t, err = template.New(name).ParseFS(te.templates, globalTemplate, name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		te.templateCache[name] = t
	}
	return t, nil
}
