package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

type SocialLink struct {
	Href  string `yaml:"href"`
	Title string `yaml:"title"`
	// Font Awesome classes, e.g. "fab fa-github".
	Icon string `yaml:"icon"`
}

type SiteConf struct {
	SiteTitle string `yaml:"site_title"`
	Author    string `yaml:"author"`
	AuthorUri string `yaml:"author_uri"`
	BaseUrl   string `yaml:"base_url"`

	TemplateDir    string `yaml:"template_dir"`
	ResourcesDir   string `yaml:"resources_dir"`
	BlogDir        string `yaml:"blog_dir"`
	StaticFilesDir string `yaml:"static_files_dir"`

	OutDir     string `yaml:"out_dir"`
	ImgOutDir  string `yaml:"img_out_dir"`
	BlogOutDir string `yaml:"blog_out_dir"`

	LogoName        string `yaml:"logo"`
	DefaultImageExt string `yaml:"default_image_ext"`
	ImageWidths     []int  `yaml:"image_widths"`
	IconWidth       int    `yaml:"icon_width"`
	WebpQuality     int    `yaml:"webp_quality"`
	RefreshStale    bool   `yaml:"refresh_stale"`

	CodeStyle      string       `yaml:"code_style"`
	ObfuscationKey int          `yaml:"obfuscation_key"`
	MaxPostsOnHome int          `yaml:"max_posts_on_home"`
	Social         []SocialLink `yaml:"social"`
}

// readConf loads the YAML site configuration. A missing file is not an
// error: the defaults are then rooted at the working directory.
func readConf(fileName string) (*SiteConf, error) {
	conf := SiteConf{}

	rawConf, err := os.ReadFile(fileName)
	switch {
	case errors.Is(err, os.ErrNotExist):
		fileName = ""
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", fileName, err)
	default:
		if err := yaml.Unmarshal(rawConf, &conf); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", fileName, err)
		}
	}

	conf.setDefaults()

	// Normalize relative paths because the executable can be called from anywhere
	if fileName != "" {
		baseDir := filepath.Dir(fileName)
		if conf.TemplateDir != "" {
			conf.TemplateDir = normalizePath(conf.TemplateDir, baseDir)
		}
		conf.ResourcesDir = normalizePath(conf.ResourcesDir, baseDir)
		conf.BlogDir = normalizePath(conf.BlogDir, baseDir)
		conf.StaticFilesDir = normalizePath(conf.StaticFilesDir, baseDir)
		conf.OutDir = normalizePath(conf.OutDir, baseDir)
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", fileName, err)
	}
	return &conf, nil
}

func (c *SiteConf) setDefaults() {
	if c.SiteTitle == "" {
		c.SiteTitle = "Sandr0"
	}
	if c.Author == "" {
		c.Author = c.SiteTitle
	}
	if c.BaseUrl == "" {
		c.BaseUrl = "https://sandr0.xyz/"
	}
	if c.AuthorUri == "" {
		c.AuthorUri = c.BaseUrl
	}
	if c.ResourcesDir == "" {
		c.ResourcesDir = "resources"
	}
	if c.BlogDir == "" {
		c.BlogDir = "blog"
	}
	if c.StaticFilesDir == "" {
		c.StaticFilesDir = "public"
	}
	if c.OutDir == "" {
		c.OutDir = "static"
	}
	if c.ImgOutDir == "" {
		c.ImgOutDir = "img"
	}
	if c.BlogOutDir == "" {
		c.BlogOutDir = "blog"
	}
	if c.LogoName == "" {
		c.LogoName = "logo"
	}
	if c.DefaultImageExt == "" {
		c.DefaultImageExt = ".jpg"
	}
	if len(c.ImageWidths) == 0 {
		c.ImageWidths = []int{1200, 800, 400}
	}
	// Widths are walked largest first.
	slices.Sort(c.ImageWidths)
	slices.Reverse(c.ImageWidths)
	if c.IconWidth == 0 {
		c.IconWidth = 64
	}
	if c.WebpQuality == 0 {
		c.WebpQuality = 80
	}
	if c.CodeStyle == "" {
		c.CodeStyle = "monokai"
	}
	if c.ObfuscationKey == 0 {
		c.ObfuscationKey = 42
	}
	if c.MaxPostsOnHome == 0 {
		c.MaxPostsOnHome = 5
	}
}

// Validate checks the values setDefaults cannot fix.
func (c *SiteConf) Validate() error {
	for _, w := range c.ImageWidths {
		if w <= 0 {
			return fmt.Errorf("image_widths: %d is not a positive width", w)
		}
	}
	if c.IconWidth < 0 {
		return fmt.Errorf("icon_width must be positive, got %d", c.IconWidth)
	}
	if c.WebpQuality < 1 || c.WebpQuality > 100 {
		return fmt.Errorf("webp_quality must be within 1..100, got %d", c.WebpQuality)
	}
	if c.ObfuscationKey < 10 || c.ObfuscationKey > 99 {
		return fmt.Errorf("obfuscation_key must have two digits, got %d", c.ObfuscationKey)
	}
	if c.ImgOutDir == c.BlogOutDir {
		return fmt.Errorf("img_out_dir and blog_out_dir must differ")
	}
	return nil
}

func normalizePath(path, baseDir string) string {
	if !filepath.IsAbs(path) {
		return filepath.Join(baseDir, path)
	}
	return path
}

func (c *SiteConf) imgDir() string {
	return filepath.Join(c.OutDir, c.ImgOutDir)
}

func (c *SiteConf) blogOutDir() string {
	return filepath.Join(c.OutDir, c.BlogOutDir)
}

func (c *SiteConf) lockPath() string {
	return filepath.Clean(c.OutDir) + ".lock"
}
