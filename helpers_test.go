package main

import (
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// pngEncoder stands in for WebP so tests do not need libwebp.
type pngEncoder struct{}

func (pngEncoder) ext() string { return ".png" }

func (pngEncoder) encode(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}

const testSVG = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10">
<path style="fill:#010101;stroke:none" d="M0 0h5v5z"/>
<path style="fill:#020202;" d="M5 5h5v5z"/>
<path style="opacity:1;fill:#010101;" d="M0 5h5v5z"/>
<circle style="fill:#030303;" r="1"/>
</svg>
`

func testConf(t *testing.T) *SiteConf {
	t.Helper()
	root := t.TempDir()
	conf := &SiteConf{
		ResourcesDir:   filepath.Join(root, "resources"),
		BlogDir:        filepath.Join(root, "blog"),
		StaticFilesDir: filepath.Join(root, "public"),
		OutDir:         filepath.Join(root, "static"),
	}
	conf.setDefaults()
	require.NoError(t, conf.Validate())
	require.NoError(t, os.MkdirAll(conf.ResourcesDir, 0o755))
	return conf
}

func testResizer(t *testing.T, conf *SiteConf) (*resizer, *buildStats) {
	t.Helper()
	stats := &buildStats{}
	r := newResizer(conf, zaptest.NewLogger(t), stats)
	r.enc = pngEncoder{}
	return r, stats
}

func writeImage(t *testing.T, path string, w, h int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 40, B: 40, A: 255})
	require.NoError(t, imaging.Save(img, path))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// writeIcons provides the logo and the blank fallback every page needs.
func writeIcons(t *testing.T, conf *SiteConf) {
	t.Helper()
	writeFile(t, filepath.Join(conf.ResourcesDir, "logo.svg"), testSVG)
	writeFile(t, filepath.Join(conf.ResourcesDir, "blank.svg"), `<svg viewBox="0 0 1 1"></svg>`)
}
