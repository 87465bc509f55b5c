package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/radovskyb/watcher"
	"go.uber.org/zap"
)

type noListFile struct {
	http.File
}

func (f noListFile) Readdir(count int) ([]os.FileInfo, error) {
	return nil, nil
}

// noListFileSystem hides directory listings and drops null bytes from paths,
// which would otherwise answer with a 500.
type noListFileSystem struct {
	base http.FileSystem
}

func (fs noListFileSystem) Open(name string) (http.File, error) {
	name = strings.ReplaceAll(name, "\x00", "")
	f, err := fs.base.Open(name)
	if err != nil {
		return nil, err
	}
	return noListFile{f}, nil
}

func previewHandler(dir string) http.Handler {
	files := http.FileServer(noListFileSystem{http.Dir(dir)})
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		files.ServeHTTP(w, r)
	})
}

func serveSite(dir string, port int, log *zap.Logger) error {
	addr := fmt.Sprintf(":%d", port)
	log.Info("serving site", zap.String("dir", dir), zap.String("url", "http://localhost"+addr))
	return http.ListenAndServe(addr, previewHandler(dir))
}

// rerenderOnChange rebuilds the site whenever one of the input directories
// changes. Failed rebuilds are logged and the watch goes on.
func rerenderOnChange(conf *SiteConf, log *zap.Logger) {
	w := watcher.New()
	w.SetMaxEvents(1)

	go watchLoop(w.Event, w.Error, w.Closed, func() error {
		return renderSite(conf, log)
	}, log)

	for _, dir := range []string{conf.ResourcesDir, conf.BlogDir, conf.StaticFilesDir, conf.TemplateDir} {
		if dir == "" {
			continue
		}
		if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := w.AddRecursive(dir); err != nil {
			log.Error("cannot watch", zap.String("dir", dir), zap.Error(err))
			return
		}
		log.Info("watching for changes", zap.String("dir", dir))
	}

	if err := w.Start(time.Millisecond * 200); err != nil {
		log.Error("watcher stopped", zap.Error(err))
	}
}

// watchLoop runs rebuild once per change event until closed is signalled.
func watchLoop(events <-chan watcher.Event, errs <-chan error, closed <-chan struct{}, rebuild func() error, log *zap.Logger) {
	for {
		select {
		case ev := <-events:
			log.Info("change detected, rebuilding", zap.String("path", ev.Path))
			if err := rebuild(); err != nil {
				log.Error("rebuild failed", zap.Error(err))
			}
		case err := <-errs:
			log.Error("watcher", zap.Error(err))
		case <-closed:
			return
		}
	}
}
