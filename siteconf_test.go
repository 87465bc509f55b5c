package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfMissingFileUsesDefaults(t *testing.T) {
	conf, err := readConf(filepath.Join(t.TempDir(), "site.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "resources", conf.ResourcesDir)
	assert.Equal(t, "static", conf.OutDir)
	assert.Equal(t, []int{1200, 800, 400}, conf.ImageWidths)
	assert.Equal(t, ".jpg", conf.DefaultImageExt)
	assert.Equal(t, 42, conf.ObfuscationKey)
	assert.Equal(t, conf.SiteTitle, conf.Author)
	assert.Empty(t, conf.TemplateDir)
}

func TestReadConfNormalizesPaths(t *testing.T) {
	dir := t.TempDir()
	confPath := filepath.Join(dir, "site.yaml")
	writeFile(t, confPath, `
site_title: Test Site
out_dir: build
blog_dir: /srv/blog
template_dir: tmpl
image_widths: [400, 1600, 800]
webp_quality: 90
social:
  - href: https://github.com/someone
    title: GitHub
    icon: fab fa-github
`)

	conf, err := readConf(confPath)
	require.NoError(t, err)
	assert.Equal(t, "Test Site", conf.SiteTitle)
	assert.Equal(t, filepath.Join(dir, "build"), conf.OutDir)
	assert.Equal(t, filepath.Join(dir, "resources"), conf.ResourcesDir)
	assert.Equal(t, "/srv/blog", conf.BlogDir)
	assert.Equal(t, filepath.Join(dir, "tmpl"), conf.TemplateDir)
	assert.Equal(t, []int{1600, 800, 400}, conf.ImageWidths)
	assert.Equal(t, 90, conf.WebpQuality)
	require.Len(t, conf.Social, 1)
	assert.Equal(t, "fab fa-github", conf.Social[0].Icon)

	assert.Equal(t, filepath.Join(dir, "build", "img"), conf.imgDir())
	assert.Equal(t, filepath.Join(dir, "build", "blog"), conf.blogOutDir())
	assert.Equal(t, filepath.Join(dir, "build.lock"), conf.lockPath())
}

func TestReadConfRejectsBadYAML(t *testing.T) {
	confPath := filepath.Join(t.TempDir(), "site.yaml")
	writeFile(t, confPath, "image_widths: nope\n")

	_, err := readConf(confPath)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *SiteConf)
	}{
		{"zero width", func(c *SiteConf) { c.ImageWidths = []int{800, 0} }},
		{"negative icon width", func(c *SiteConf) { c.IconWidth = -1 }},
		{"quality too high", func(c *SiteConf) { c.WebpQuality = 101 }},
		{"one digit key", func(c *SiteConf) { c.ObfuscationKey = 7 }},
		{"shared out dirs", func(c *SiteConf) { c.ImgOutDir = "blog" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &SiteConf{}
			c.setDefaults()
			require.NoError(t, c.Validate())
			tt.modify(c)
			assert.Error(t, c.Validate())
		})
	}
}
