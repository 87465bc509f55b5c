package main

import (
	"bytes"
	"html/template"
	"path/filepath"
	"strings"
)

var entryTemplates = template.Must(template.New("entries").Parse(`
{{- define "links"}}<ul class="links">
{{- range .}}
<li>{{if .Spam}}<a class="spam" href="#" data-spam="{{.Spam}}"{{if .Title}} title="{{.Title}}"{{end}}>{{.Text}}</a>
{{- else}}<a href="{{.Href}}"{{if .Title}} title="{{.Title}}"{{end}}{{if .Rel}} rel="{{.Rel}}"{{end}}{{if .NewTab}} target="_blank"{{end}}{{if .OnClick}} onclick="{{.OnClick}}"{{end}}>{{.Text}}</a>{{end}}
{{- if .Note}} {{.Note}}{{end}}</li>
{{- end}}
</ul>{{end}}

{{- define "projects"}}
{{- range .}}
<a href="{{.Href}}" title="{{.Title}}"><img class="client-work" src="{{.Src}}" srcset="{{.Srcset}}" sizes="(max-width: 600px) 100vw, 400px" alt="{{.Alt}}"></a>
{{- end}}
{{end}}

{{- define "writeups"}}
{{- range .}}
<h3>{{.Name}}</h3>
<ul class="writeups">
{{- range .Entries}}
<li>{{if .Icon}}<img class="ctf-icon" src="{{.Icon}}" alt="{{.Category}}" title="{{.Category}}"> {{end}}{{if .Event}}{{.Event}} - {{end}}<a href="{{.Href}}">{{.Title}}</a></li>
{{- end}}
</ul>
{{- end}}
{{end}}

{{- define "posts"}}<ul class="posts">
{{- range .}}
<li>{{if not .Date.IsZero}}<time datetime="{{.ISODate}}">{{.FormatDateShort}}</time> {{end}}<a href="{{.URL}}">{{.Title}}</a>{{if .Summary}} <span class="summary">{{.Summary}}</span>{{end}}</li>
{{- end}}
</ul>{{end}}
`))

type renderContext struct {
	conf    *SiteConf
	resizer *resizer
	posts   posts
	icons   map[category]string
}

func newRenderContext(conf *SiteConf, r *resizer, ps posts) *renderContext {
	return &renderContext{conf: conf, resizer: r, posts: ps, icons: make(map[category]string)}
}

func (rc *renderContext) categoryIcon(c category) (string, error) {
	if icon, ok := rc.icons[c]; ok {
		return icon, nil
	}
	icon, err := rc.resizer.icon(c.Id())
	if err != nil {
		return "", err
	}
	rc.icons[c] = icon
	return icon, nil
}

func executeEntries(name string, data any) (template.HTML, error) {
	var b bytes.Buffer
	if err := entryTemplates.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return template.HTML(b.String()), nil
}

// Fragment is literal HTML embedded as is.
type Fragment template.HTML

func (f Fragment) render(*renderContext) (template.HTML, error) {
	return template.HTML(f), nil
}

type Link struct {
	Href, Text, Title string
	Rel               string
	NewTab            bool
	OnClick           template.JS
	// Email replaces Href with an obfuscated mailto link decoded by js.js.
	Email string
	// Note is HTML placed after the anchor.
	Note template.HTML
}

type Links []Link

func (ls Links) render(rc *renderContext) (template.HTML, error) {
	type linkView struct {
		Link
		Spam string
	}
	views := make([]linkView, len(ls))
	for i, l := range ls {
		views[i].Link = l
		if l.Email != "" {
			spam, err := obfuscateEmail("mailto:"+l.Email, rc.conf.ObfuscationKey)
			if err != nil {
				return "", err
			}
			views[i].Spam = spam
		}
	}
	return executeEntries("links", views)
}

// A Project is a card linking to a piece of work, illustrated by a resized
// resource image.
type Project struct {
	Href, Title string
	// Image is a resource name; the extension may be left out.
	Image string
	Alt   string
}

type Projects []Project

func (ps Projects) render(rc *renderContext) (template.HTML, error) {
	type projectView struct {
		Href, Title, Alt, Src string
		Srcset                template.Srcset
	}
	views := make([]projectView, 0, len(ps))
	for _, p := range ps {
		a, err := rc.resizer.resize(p.Image)
		if err != nil {
			return "", err
		}
		alt := p.Alt
		if alt == "" {
			alt = strings.TrimSuffix(filepath.Base(p.Image), filepath.Ext(p.Image))
		}
		views = append(views, projectView{
			Href:   p.Href,
			Title:  p.Title,
			Alt:    alt,
			Src:    a.canonical,
			Srcset: template.Srcset(a.srcset),
		})
	}
	return executeEntries("projects", views)
}

type Writeup struct {
	Event, Title, Href string
	// Category selects the icon resources/<category-id>.png; empty means none.
	Category category
}

type WriteupGroup struct {
	Name    string
	Entries []Writeup
}

type Writeups []WriteupGroup

func (ws Writeups) render(rc *renderContext) (template.HTML, error) {
	type writeupView struct {
		Writeup
		Icon string
	}
	type groupView struct {
		Name    string
		Entries []writeupView
	}
	groups := make([]groupView, 0, len(ws))
	for _, g := range ws {
		gv := groupView{Name: g.Name}
		for _, w := range g.Entries {
			wv := writeupView{Writeup: w}
			if w.Category != "" {
				icon, err := rc.categoryIcon(w.Category)
				if err != nil {
					return "", err
				}
				wv.Icon = icon
			}
			gv.Entries = append(gv.Entries, wv)
		}
		groups = append(groups, gv)
	}
	return executeEntries("writeups", groups)
}

// PostList links the blog posts, newest first. Limit 0 lists all of them.
type PostList struct {
	Limit int
}

func (pl PostList) render(rc *renderContext) (template.HTML, error) {
	ps := rc.posts
	if pl.Limit > 0 && len(ps) > pl.Limit {
		ps = ps[:pl.Limit]
	}
	return executeEntries("posts", ps)
}
