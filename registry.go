package main

import (
	"errors"
	"fmt"
	"html/template"
)

var errDuplicateSection = errors.New("duplicate section id")

// A Section is one anchored block of the home page and one entry of its
// navigation.
type Section struct {
	ID    string
	Title string
	Body  Body
}

// Body renders a section's content. The concrete kinds live in entries.go.
type Body interface {
	render(rc *renderContext) (template.HTML, error)
}

// Registry is the ordered, append-only list of sections of one build.
type Registry struct {
	list []Section
	ids  map[string]bool
}

func newRegistry() *Registry {
	return &Registry{ids: make(map[string]bool)}
}

func (r *Registry) add(s Section) error {
	if s.ID == "" {
		return fmt.Errorf("section %q: empty id", s.Title)
	}
	if r.ids[s.ID] {
		return fmt.Errorf("%w: %s", errDuplicateSection, s.ID)
	}
	if s.Body == nil {
		s.Body = Fragment("")
	}
	r.ids[s.ID] = true
	r.list = append(r.list, s)
	return nil
}

func (r *Registry) sections() []Section {
	return r.list
}

func (r *Registry) len() int {
	return len(r.list)
}

// renderedSection is what the page templates see.
type renderedSection struct {
	ID    string
	Title string
	Body  template.HTML
}

func (r *Registry) render(rc *renderContext) ([]renderedSection, error) {
	out := make([]renderedSection, 0, len(r.list))
	for _, s := range r.list {
		body, err := s.Body.render(rc)
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", s.ID, err)
		}
		out = append(out, renderedSection{ID: s.ID, Title: s.Title, Body: body})
	}
	return out, nil
}
