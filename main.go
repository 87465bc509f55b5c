// Command sitebuilder renders the personal homepage: hand-written sections,
// recolored SVG icons, responsive images and markdown blog posts, written to
// a static output tree.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	siteConfPath string
	drafts       bool
	debug        bool
	port         int
	watch        bool
)

var rootCmd = &cobra.Command{
	Use:          "sitebuilder",
	Short:        "Builds the static site",
	Long:         "Builds the home page, the blog and their assets into the output directory.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSite(func(conf *SiteConf, log *zap.Logger) error {
			return renderSite(conf, log)
		})
	},
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the static site once",
	RunE:  rootCmd.RunE,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Builds the site and serves the output directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSite(func(conf *SiteConf, log *zap.Logger) error {
			if err := renderSite(conf, log); err != nil {
				return err
			}
			if watch {
				// Run watcher in background while serving
				go rerenderOnChange(conf, log)
			}
			return serveSite(conf.OutDir, port, log)
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&siteConfPath, "config", "site.yaml", "Path to the site configuration file")
	rootCmd.PersistentFlags().BoolVar(&drafts, "drafts", false, "Include posts with 'draft: true'")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Verbose logging")
	serveCmd.Flags().IntVarP(&port, "port", "p", 9999, "Port to serve the site on")
	serveCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-render the site on changes to the input directories")

	rootCmd.AddCommand(buildCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func withSite(run func(conf *SiteConf, log *zap.Logger) error) error {
	log, err := newLogger(debug)
	if err != nil {
		return err
	}
	defer log.Sync()

	conf, err := readConf(siteConfPath)
	if err != nil {
		log.Error("loading config", zap.Error(err))
		return err
	}
	if err := run(conf, log); err != nil {
		log.Error("build failed", zap.Error(err))
		return err
	}
	return nil
}

func renderSite(conf *SiteConf, log *zap.Logger) error {
	site, err := ReadSite(conf, drafts, log)
	if err != nil {
		return err
	}
	reg, err := siteContent(conf.MaxPostsOnHome)
	if err != nil {
		return err
	}
	if err := site.Build(reg); err != nil {
		return err
	}
	printSummary(site.stats)
	return nil
}
