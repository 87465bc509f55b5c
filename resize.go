package main

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
	"github.com/otiai10/copy"
	"go.uber.org/zap"
)

// variantEncoder writes the derived image format used for size variants.
type variantEncoder interface {
	ext() string
	encode(w io.Writer, img image.Image) error
}

type webpEncoder struct {
	quality float32
}

func (e webpEncoder) ext() string { return ".webp" }

func (e webpEncoder) encode(w io.Writer, img image.Image) error {
	options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, e.quality)
	if err != nil {
		return err
	}
	return webp.Encode(w, img, options)
}

type variantState int

const (
	variantWritten variantState = iota
	variantCached
	variantStale
)

type variant struct {
	width int
	url   string
}

// An asset is a canonical image copy plus its responsive variants.
type asset struct {
	canonical string
	srcset    string
	variants  []variant
	written   []string
	stale     []string
}

type favicon struct {
	Rel  string
	Size int
	Href string
}

var faviconSizes = []int{32, 57, 76, 96, 120, 128, 144, 152, 180, 192, 196, 228}

func faviconRel(size int) string {
	switch size {
	case 196:
		return "shortcut icon"
	case 120, 152, 180:
		return "apple-touch-icon"
	case 144:
		// Rendered as msapplication-TileImage.
		return ""
	}
	return "icon"
}

type resizer struct {
	conf  *SiteConf
	log   *zap.Logger
	enc   variantEncoder
	stats *buildStats
}

func newResizer(conf *SiteConf, log *zap.Logger, stats *buildStats) *resizer {
	return &resizer{
		conf:  conf,
		log:   log,
		enc:   webpEncoder{quality: float32(conf.WebpQuality)},
		stats: stats,
	}
}

// resize copies the named resource image into the output tree and produces
// its down-sized variants. Variants already on disk are never rewritten
// unless RefreshStale is set; stale ones are reported in asset.stale.
func (r *resizer) resize(name string) (*asset, error) {
	if filepath.Ext(name) == "" {
		name += r.conf.DefaultImageExt
	}
	src := filepath.Join(r.conf.ResourcesDir, name)
	srcInfo, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("image %s: %w", name, err)
	}
	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", src, err)
	}

	dst := filepath.Join(r.conf.imgDir(), name)
	if err := os.MkdirAll(filepath.Dir(dst), os.FileMode(0775)); err != nil {
		return nil, err
	}

	a := &asset{canonical: r.imgURL(name)}
	copied, err := r.copyCanonical(src, dst, srcInfo)
	if err != nil {
		return nil, err
	}
	if copied {
		a.written = append(a.written, dst)
	}

	bounds := img.Bounds()
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	load := func() (image.Image, error) { return img, nil }
	for _, w := range r.targetWidths(bounds.Dx()) {
		file := fmt.Sprintf("%s-%d%s", stem, w, r.enc.ext())
		out := filepath.Join(r.conf.imgDir(), file)

		state, err := r.writeVariant(load, w, out, srcInfo)
		if err != nil {
			return nil, err
		}
		switch state {
		case variantWritten:
			a.written = append(a.written, out)
		case variantStale:
			a.stale = append(a.stale, out)
		}
		a.variants = append(a.variants, variant{
			width: fitWidth(bounds.Dx(), bounds.Dy(), w),
			url:   r.imgURL(file),
		})
	}
	a.srcset = srcset(a.variants)

	return a, nil
}

// icon writes a single square-bounded WebP marker to icon_<stem>.webp in the
// output root and returns its URL.
func (r *resizer) icon(name string) (string, error) {
	if filepath.Ext(name) == "" {
		name += ".png"
	}
	src := filepath.Join(r.conf.ResourcesDir, name)
	srcInfo, err := os.Stat(src)
	if err != nil {
		return "", fmt.Errorf("icon %s: %w", name, err)
	}
	if err := os.MkdirAll(r.conf.OutDir, os.FileMode(0775)); err != nil {
		return "", err
	}

	file := "icon_" + strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)) + r.enc.ext()
	load := func() (image.Image, error) { return imaging.Open(src) }
	if _, err := r.writeVariant(load, r.conf.IconWidth, filepath.Join(r.conf.OutDir, file), srcInfo); err != nil {
		return "", err
	}
	return "/" + file, nil
}

// favicons renders the favicon size set from resources/favicon.png. Without a
// source image the site simply has no favicons.
func (r *resizer) favicons() ([]favicon, error) {
	src := filepath.Join(r.conf.ResourcesDir, "favicon.png")
	if _, err := os.Stat(src); errors.Is(err, os.ErrNotExist) {
		r.log.Info("no favicon source, skipping", zap.String("path", src))
		return nil, nil
	}
	if err := os.MkdirAll(r.conf.OutDir, os.FileMode(0775)); err != nil {
		return nil, err
	}

	var img image.Image
	icons := make([]favicon, 0, len(faviconSizes))
	for _, size := range faviconSizes {
		file := fmt.Sprintf("favicon-%d.png", size)
		out := filepath.Join(r.conf.OutDir, file)
		icons = append(icons, favicon{Rel: faviconRel(size), Size: size, Href: "/" + file})

		if _, err := os.Stat(out); err == nil {
			r.stats.imagesCached++
			continue
		}
		if img == nil {
			var err error
			if img, err = imaging.Open(src); err != nil {
				return nil, fmt.Errorf("decoding %s: %w", src, err)
			}
		}
		if err := imaging.Save(imaging.Resize(img, size, size, imaging.Lanczos), out); err != nil {
			return nil, fmt.Errorf("writing %s: %w", out, err)
		}
		r.stats.imagesWritten++
	}
	return icons, nil
}

func (r *resizer) copyCanonical(src, dst string, srcInfo os.FileInfo) (bool, error) {
	if info, err := os.Stat(dst); err == nil && info.Size() == srcInfo.Size() && !info.ModTime().Before(srcInfo.ModTime()) {
		return false, nil
	}
	if err := copy.Copy(src, dst, copy.Options{PreserveTimes: true}); err != nil {
		return false, fmt.Errorf("copying %s: %w", src, err)
	}
	r.stats.imagesWritten++
	return true, nil
}

func (r *resizer) writeVariant(load func() (image.Image, error), width int, out string, srcInfo os.FileInfo) (variantState, error) {
	info, err := os.Stat(out)
	switch {
	case err == nil && !info.ModTime().Before(srcInfo.ModTime()):
		r.stats.imagesCached++
		return variantCached, nil
	case err == nil && !r.conf.RefreshStale:
		r.log.Warn("keeping stale image variant", zap.String("variant", out), zap.String("source", srcInfo.Name()))
		r.stats.imagesStale++
		return variantStale, nil
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return 0, err
	}

	img, err := load()
	if err != nil {
		return 0, err
	}
	f, err := os.Create(out)
	if err != nil {
		return 0, err
	}
	if err := r.enc.encode(f, imaging.Fit(img, width, width, imaging.Lanczos)); err != nil {
		f.Close()
		os.Remove(out)
		return 0, fmt.Errorf("encoding %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return 0, err
	}

	if info, err := os.Stat(out); err == nil {
		r.log.Debug("wrote image variant", zap.String("path", out), zap.String("size", humanize.Bytes(uint64(info.Size()))))
	}
	r.stats.imagesWritten++
	return variantWritten, nil
}

// targetWidths is the native width followed by every configured width below it.
func (r *resizer) targetWidths(native int) []int {
	widths := []int{native}
	for _, w := range r.conf.ImageWidths {
		if w < native {
			widths = append(widths, w)
		}
	}
	return widths
}

func (r *resizer) imgURL(file string) string {
	return "/" + path.Join(r.conf.ImgOutDir, filepath.ToSlash(file))
}

// fitWidth mirrors imaging.Fit for a box x box bound.
func fitWidth(w, h, box int) int {
	if w <= box && h <= box {
		return w
	}
	if w > h {
		return box
	}
	return int(float64(box) * float64(w) / float64(h))
}

func srcset(vs []variant) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprintf("%s %dw", v.url, v.width)
	}
	return strings.Join(parts, ", ")
}
