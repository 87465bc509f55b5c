package main

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/russross/blackfriday/v2"
)

// emphasisMarker starts a code line that should be highlighted.
var emphasisMarker = []byte("!!")

const htmlFlags = blackfriday.UseXHTML |
	blackfriday.Smartypants |
	blackfriday.SmartypantsFractions |
	blackfriday.SmartypantsLatexDashes

const extensions = blackfriday.NoIntraEmphasis |
	blackfriday.Tables |
	blackfriday.FencedCode |
	blackfriday.Autolink |
	blackfriday.Strikethrough |
	blackfriday.HeadingIDs

type renderer interface {
	render(in []byte) string
}

func newMarkdownRenderer(codeStyle string) *blackfridayHtmlRenderer {
	return &blackfridayHtmlRenderer{
		html:  blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{Flags: htmlFlags}),
		style: styles.Get(codeStyle),
	}
}

// blackfridayHtmlRenderer is blackfriday's HTML renderer with fenced code
// blocks sent through chroma.
type blackfridayHtmlRenderer struct {
	html  *blackfriday.HTMLRenderer
	style *chroma.Style
}

func (b *blackfridayHtmlRenderer) render(in []byte) string {
	return string(blackfriday.Run(in, blackfriday.WithRenderer(b), blackfriday.WithExtensions(extensions)))
}

func (b *blackfridayHtmlRenderer) RenderNode(w io.Writer, node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
	if node.Type == blackfriday.CodeBlock && node.IsFenced {
		if err := b.highlight(w, node.Literal, codeLanguage(node.Info)); err == nil {
			return blackfriday.GoToNext
		}
	}
	return b.html.RenderNode(w, node, entering)
}

func (b *blackfridayHtmlRenderer) RenderHeader(w io.Writer, ast *blackfriday.Node) {
	b.html.RenderHeader(w, ast)
}

func (b *blackfridayHtmlRenderer) RenderFooter(w io.Writer, ast *blackfriday.Node) {
	b.html.RenderFooter(w, ast)
}

func (b *blackfridayHtmlRenderer) highlight(w io.Writer, code []byte, lang string) error {
	code, lines := extractEmphasis(code)

	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, string(code))
	if err != nil {
		return err
	}

	ranges := make([][2]int, len(lines))
	for i, l := range lines {
		ranges[i] = [2]int{l, l}
	}
	// Render into a buffer so a failed highlight can fall back to plain output.
	var buf bytes.Buffer
	if err := newCodeFormatter(ranges...).Format(&buf, b.style, iterator); err != nil {
		return err
	}
	_, err = buf.WriteTo(w)
	return err
}

// writeCSS writes the stylesheet for the class names used in highlighted code.
func (b *blackfridayHtmlRenderer) writeCSS(w io.Writer) error {
	return newCodeFormatter().WriteCSS(w, b.style)
}

func newCodeFormatter(ranges ...[2]int) *chromahtml.Formatter {
	return chromahtml.New(
		chromahtml.WithClasses(true),
		chromahtml.TabWidth(4),
		chromahtml.HighlightLines(ranges),
	)
}

// codeLanguage is the first word of a fence's info string.
func codeLanguage(info []byte) string {
	fields := strings.Fields(string(info))
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[0], "{}.")
}

// extractEmphasis strips the emphasis marker from code lines and returns the
// cleaned code with the 1-based numbers of the marked lines.
func extractEmphasis(code []byte) ([]byte, []int) {
	out := bytes.NewBuffer(make([]byte, 0, len(code)))
	var lines []int

	r := bufio.NewReader(bytes.NewReader(code))
	for n := 1; ; n++ {
		line, err := r.ReadBytes('\n')
		if len(line) == 0 && err != nil {
			break
		}
		if bytes.HasPrefix(line, emphasisMarker) {
			line = line[len(emphasisMarker):]
			lines = append(lines, n)
		}
		out.Write(line)
		if err != nil {
			break
		}
	}

	return out.Bytes(), lines
}
