package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

// Placeholder fills used in the source SVGs and the theme colors they become.
var themeColors = strings.NewReplacer(
	"fill:#010101;", "fill:#1a84ff;",
	"fill:#020202;", "fill:#bbbbbb;",
	"fill:#030303;", "fill:#ffffff;",
)

var (
	xmlProlog      = regexp.MustCompile(`<\?xml[^>]*\?>\s*`)
	highlightStyle = regexp.MustCompile(`style="[^"]*fill:#010101;[^"]*"`)
	rootSVG        = regexp.MustCompile(`<svg\b[^>]*>`)
	classAttr      = regexp.MustCompile(`\sclass="([^"]*)"`)
)

type iconOptions struct {
	// highlight tags the first primary-colored style with class="highlight".
	highlight bool
	// class is set on the root <svg> element.
	class string
}

// normalizeSVG strips the XML prolog and recolors the placeholder fills.
// Applying it to its own output changes nothing.
func normalizeSVG(markup string, opts iconOptions) string {
	markup = xmlProlog.ReplaceAllString(markup, "")
	if opts.highlight {
		if loc := highlightStyle.FindStringIndex(markup); loc != nil {
			markup = markup[:loc[0]] + `class="highlight" ` + markup[loc[0]:]
		}
	}
	markup = themeColors.Replace(markup)
	if opts.class != "" {
		if loc := rootSVG.FindStringIndex(markup); loc != nil {
			markup = markup[:loc[0]] + addClass(markup[loc[0]:loc[1]], opts.class) + markup[loc[1]:]
		}
	}
	return markup
}

// addClass adds class to the attributes of a single start tag, merging it
// into an existing class attribute.
func addClass(tag, class string) string {
	m := classAttr.FindStringSubmatchIndex(tag)
	if m == nil {
		return strings.Replace(tag, "<svg", `<svg class="`+class+`"`, 1)
	}
	existing := tag[m[2]:m[3]]
	if slices.Contains(strings.Fields(existing), class) {
		return tag
	}
	return tag[:m[2]] + strings.TrimSpace(class+" "+existing) + tag[m[3]:]
}

type iconLoader struct {
	dir string
}

func (l iconLoader) svg(path string, opts iconOptions) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("icon: %w", err)
	}
	return normalizeSVG(string(raw), opts), nil
}

// sectionIconPath is resources/<id>.svg, or the shared blank icon when the
// section has none.
func (l iconLoader) sectionIconPath(id string) string {
	p := filepath.Join(l.dir, id+".svg")
	if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
		return filepath.Join(l.dir, "blank.svg")
	}
	return p
}

func (l iconLoader) sectionIcon(id string) (string, error) {
	return l.svg(l.sectionIconPath(id), iconOptions{highlight: true})
}

func (l iconLoader) logo(name string) (string, error) {
	return l.svg(filepath.Join(l.dir, name+".svg"), iconOptions{class: "logo"})
}
