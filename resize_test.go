package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResizeWritesCanonicalAndVariants(t *testing.T) {
	conf := testConf(t)
	r, stats := testResizer(t, conf)
	src := filepath.Join(conf.ResourcesDir, "card.jpg")
	writeImage(t, src, 1600, 900)

	a, err := r.resize("card")
	require.NoError(t, err)

	assert.Equal(t, "/img/card.jpg", a.canonical)
	assert.Equal(t, "/img/card-1600.png 1600w, /img/card-1200.png 1200w, /img/card-800.png 800w, /img/card-400.png 400w", a.srcset)
	assert.Len(t, a.written, 5)
	assert.Empty(t, a.stale)
	assert.Equal(t, 5, stats.imagesWritten)

	want, err := os.ReadFile(src)
	require.NoError(t, err)
	got, err := os.ReadFile(filepath.Join(conf.imgDir(), "card.jpg"))
	require.NoError(t, err)
	assert.Equal(t, want, got, "canonical copy is byte-identical")

	small, err := imaging.Open(filepath.Join(conf.imgDir(), "card-800.png"))
	require.NoError(t, err)
	assert.Equal(t, 800, small.Bounds().Dx())
	assert.Equal(t, 450, small.Bounds().Dy())
}

func TestResizeSecondRunWritesNothing(t *testing.T) {
	conf := testConf(t)
	r, stats := testResizer(t, conf)
	writeImage(t, filepath.Join(conf.ResourcesDir, "card.png"), 1000, 1000)

	first, err := r.resize("card.png")
	require.NoError(t, err)
	require.NotEmpty(t, first.written)

	second, err := r.resize("card.png")
	require.NoError(t, err)
	assert.Empty(t, second.written)
	assert.Empty(t, second.stale)
	assert.Equal(t, first.srcset, second.srcset)
	assert.Equal(t, len(first.written), stats.imagesWritten)
	assert.Equal(t, 3, stats.imagesCached)
}

// A changed source does not invalidate variants already on disk: they are
// kept and reported as stale.
func TestResizeKeepsStaleVariants(t *testing.T) {
	conf := testConf(t)
	r, stats := testResizer(t, conf)
	src := filepath.Join(conf.ResourcesDir, "card.png")
	writeImage(t, src, 1000, 500)

	_, err := r.resize("card.png")
	require.NoError(t, err)
	variant := filepath.Join(conf.imgDir(), "card-800.png")
	before, err := os.ReadFile(variant)
	require.NoError(t, err)

	writeImage(t, src, 1000, 500)
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(src, later, later))

	a, err := r.resize("card.png")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(conf.imgDir(), "card.png")}, a.written, "only the canonical copy is refreshed")
	assert.Len(t, a.stale, 3)
	assert.Equal(t, 3, stats.imagesStale)

	after, err := os.ReadFile(variant)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	conf.RefreshStale = true
	a, err = r.resize("card.png")
	require.NoError(t, err)
	assert.Empty(t, a.stale)
	assert.Len(t, a.written, 3)
}

func TestResizeSkipsWidthsAboveNative(t *testing.T) {
	conf := testConf(t)
	r, _ := testResizer(t, conf)
	writeImage(t, filepath.Join(conf.ResourcesDir, "small.png"), 500, 300)

	a, err := r.resize("small.png")
	require.NoError(t, err)
	assert.Equal(t, "/img/small-500.png 500w, /img/small-400.png 400w", a.srcset)
}

func TestResizeMissingSource(t *testing.T) {
	conf := testConf(t)
	r, _ := testResizer(t, conf)

	_, err := r.resize("nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NoDirExists(t, conf.imgDir())
}

func TestFitWidth(t *testing.T) {
	tests := []struct {
		w, h, box, want int
	}{
		{1600, 900, 800, 800},
		{600, 1200, 600, 300},
		{600, 1200, 400, 200},
		{300, 200, 400, 300},
		{400, 400, 400, 400},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fitWidth(tt.w, tt.h, tt.box), "%dx%d in %d", tt.w, tt.h, tt.box)
	}
}

func TestIcon(t *testing.T) {
	conf := testConf(t)
	r, stats := testResizer(t, conf)
	writeImage(t, filepath.Join(conf.ResourcesDir, "web.png"), 256, 256)

	url, err := r.icon("web")
	require.NoError(t, err)
	assert.Equal(t, "/icon_web.png", url)

	img, err := imaging.Open(filepath.Join(conf.OutDir, "icon_web.png"))
	require.NoError(t, err)
	assert.Equal(t, conf.IconWidth, img.Bounds().Dx())

	_, err = r.icon("web")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.imagesWritten)
	assert.Equal(t, 1, stats.imagesCached)

	_, err = r.icon("pwn")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFavicons(t *testing.T) {
	conf := testConf(t)
	r, _ := testResizer(t, conf)

	icons, err := r.favicons()
	require.NoError(t, err)
	assert.Empty(t, icons, "no source, no favicons")

	writeImage(t, filepath.Join(conf.ResourcesDir, "favicon.png"), 512, 512)
	icons, err = r.favicons()
	require.NoError(t, err)
	require.Len(t, icons, len(faviconSizes))

	for _, ic := range icons {
		img, err := imaging.Open(filepath.Join(conf.OutDir, filepath.Base(ic.Href)))
		require.NoError(t, err)
		assert.Equal(t, ic.Size, img.Bounds().Dx())
	}
	assert.Equal(t, "shortcut icon", faviconRel(196))
	assert.Equal(t, "apple-touch-icon", faviconRel(180))
	assert.Equal(t, "", faviconRel(144))
	assert.Equal(t, "icon", faviconRel(32))
}
