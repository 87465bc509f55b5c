package main

import (
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

type buildStats struct {
	pages         int
	posts         int
	feeds         int
	imagesWritten int
	imagesCached  int
	imagesStale   int
	filesCopied   int
}

func (b buildStats) rows() [][2]string {
	return [][2]string{
		{"pages", strconv.Itoa(b.pages)},
		{"posts", strconv.Itoa(b.posts)},
		{"feeds", strconv.Itoa(b.feeds)},
		{"images written", strconv.Itoa(b.imagesWritten)},
		{"images cached", strconv.Itoa(b.imagesCached)},
		{"images stale", strconv.Itoa(b.imagesStale)},
		{"files copied", strconv.Itoa(b.filesCopied)},
	}
}

func (b buildStats) render(w io.Writer, fancy bool) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	if fancy {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}
	tw.AppendHeader(table.Row{"build", "count"})
	for _, r := range b.rows() {
		tw.AppendRow(table.Row{r[0], r[1]})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	tw.Render()
}

func printSummary(stats buildStats) {
	stats.render(os.Stdout, isatty.IsTerminal(os.Stdout.Fd()))
}
