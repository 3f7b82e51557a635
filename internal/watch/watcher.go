// ============================================================================
// Fragment - Language Front End
// ============================================================================
//
// Package:     watch
// Description: Re-parses Fragment sources when they change on disk
// Author:      msto63
// Created:     2026-10-09
// License:     MIT
// ============================================================================

package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	mdwerror "github.com/msto63/fragment/foundation/core/error"
	mdwlog "github.com/msto63/fragment/foundation/core/log"
	"github.com/msto63/fragment/foundation/fragment"
	mdwlexer "github.com/msto63/fragment/foundation/fragment/lexer"
	"github.com/msto63/fragment/pkg/core/cache"
)

// DefaultDebounce is used when Options.Debounce is zero
const DefaultDebounce = 200 * time.Millisecond

// Result reports one re-parse
type Result struct {
	Path    string
	Unit    *fragment.Unit
	Err     error
	Removed bool

	// Unchanged is set when the content matched the previous parse and the
	// earlier unit was reused
	Unchanged bool
}

// parsed is the last parse of one file, keyed by path
type parsed struct {
	digest string
	unit   *fragment.Unit
	err    error
}

// Options configures a Watcher
type Options struct {
	Engine   *fragment.Engine
	Logger   *mdwlog.Logger
	Debounce time.Duration

	// OnResult is called from the watch goroutine for every re-parse
	OnResult func(Result)
}

// Watcher re-parses .fr files under a set of files and directories
type Watcher struct {
	mu       sync.Mutex
	engine   *fragment.Engine
	logger   *mdwlog.Logger
	debounce time.Duration
	onResult func(Result)
	last     *cache.Cache[parsed]

	// Directories to watch, and for each the files of interest.
	// A nil file set accepts every .fr file in the directory.
	dirs map[string]map[string]bool

	watcher  *fsnotify.Watcher
	pending  map[string]*time.Timer
	fire     chan string
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
	running  bool
}

// New creates a watcher over paths, each a .fr file or a directory
func New(paths []string, opts Options) (*Watcher, error) {
	if opts.Engine == nil {
		opts.Engine = fragment.New(fragment.Options{Logger: opts.Logger})
	}
	if opts.Logger == nil {
		opts.Logger = mdwlog.NewNop()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	w := &Watcher{
		engine:   opts.Engine,
		logger:   opts.Logger.WithField("component", "watch"),
		debounce: opts.Debounce,
		onResult: opts.OnResult,
		last:     cache.New[parsed](cache.DefaultConfig()),
		dirs:     make(map[string]map[string]bool),
		pending:  make(map[string]*time.Timer),
		fire:     make(chan string),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}

	for _, p := range paths {
		if err := w.addPath(p); err != nil {
			return nil, err
		}
	}
	if len(w.dirs) == 0 {
		return nil, mdwerror.New("nothing to watch").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("watch.New")
	}
	return w, nil
}

func (w *Watcher) addPath(p string) error {
	abs, err := filepath.Abs(p)
	if err != nil {
		return mdwerror.Wrap(err, "invalid path").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("watch.New").
			WithDetail("path", p)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return mdwerror.Wrap(err, "cannot watch path").
			WithCode(mdwerror.CodeSourceNotFound).
			WithOperation("watch.New").
			WithDetail("path", p)
	}

	if info.IsDir() {
		w.dirs[abs] = nil
		return nil
	}
	if !mdwlexer.HasSourceExtension(abs) {
		return mdwerror.Newf("not a %s file: %s", mdwlexer.SourceExtension, p).
			WithCode(mdwerror.CodeUnrecognizedSource).
			WithOperation("watch.New").
			WithDetail("path", p)
	}

	dir := filepath.Dir(abs)
	files, watched := w.dirs[dir]
	if watched && files == nil {
		return nil
	}
	if files == nil {
		files = make(map[string]bool)
		w.dirs[dir] = files
	}
	files[abs] = true
	return nil
}

func (w *Watcher) accepts(path string) bool {
	if !mdwlexer.HasSourceExtension(path) {
		return false
	}
	files, ok := w.dirs[filepath.Dir(path)]
	if !ok {
		return false
	}
	return files == nil || files[path]
}

// Files lists the .fr files currently covered, sorted
func (w *Watcher) Files() []string {
	var out []string
	for dir, files := range w.dirs {
		if files != nil {
			for f := range files {
				out = append(out, f)
			}
			continue
		}
		matches, _ := filepath.Glob(filepath.Join(dir, "*"+mdwlexer.SourceExtension))
		out = append(out, matches...)
	}
	sort.Strings(out)
	return out
}

// ParseAll parses every covered file once and reports each result
func (w *Watcher) ParseAll() []Result {
	files := w.Files()
	results := make([]Result, 0, len(files))
	for _, f := range files {
		r := w.parse(f)
		results = append(results, r)
		w.report(r)
	}
	return results
}

// Start begins watching. Results are delivered until ctx is done or Stop
// is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return mdwerror.Wrap(err, "failed to create watcher").
			WithCode(mdwerror.CodeInternal).
			WithOperation("watch.Start")
	}

	for dir := range w.dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return mdwerror.Wrap(err, "failed to watch directory").
				WithCode(mdwerror.CodeSourceUnreadable).
				WithOperation("watch.Start").
				WithDetail("path", dir)
		}
	}

	w.watcher = watcher
	w.running = true
	w.logger.Info("watching for changes", mdwlog.Fields{
		"directories": len(w.dirs),
		"debounce":    w.debounce.String(),
	})

	go w.watchLoop(ctx)
	return nil
}

// Stop ends watching and waits for the watch goroutine to exit
func (w *Watcher) Stop() {
	w.mu.Lock()
	running := w.running
	w.mu.Unlock()

	w.stopOnce.Do(func() { close(w.stopCh) })
	if running {
		<-w.doneCh
	}
}

func (w *Watcher) watchLoop(ctx context.Context) {
	defer func() {
		for _, t := range w.pending {
			t.Stop()
		}
		w.watcher.Close()
		w.stopOnce.Do(func() { close(w.stopCh) })
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("stopping watcher (context cancelled)")
			return

		case <-w.stopCh:
			w.logger.Debug("stopping watcher (stop signal)")
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case path := <-w.fire:
			delete(w.pending, path)
			r := w.parse(path)
			w.report(r)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.ErrorWithErr("watcher error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := filepath.Clean(event.Name)
	if !w.accepts(path) {
		return
	}

	switch {
	case event.Op&(fsnotify.Create|fsnotify.Write) != 0:
		// Restart the quiet period for this file
		if t, ok := w.pending[path]; ok {
			t.Stop()
		}
		w.pending[path] = time.AfterFunc(w.debounce, func() {
			select {
			case w.fire <- path:
			case <-w.stopCh:
			}
		})

	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		if t, ok := w.pending[path]; ok {
			t.Stop()
			delete(w.pending, path)
		}
		w.last.Delete(path)
		w.logger.Info("source removed", mdwlog.Fields{"path": path})
		w.report(Result{Path: path, Removed: true})
	}
}

func (w *Watcher) parse(path string) Result {
	digest := ""
	if data, err := os.ReadFile(path); err == nil {
		sum := sha256.Sum256(data)
		digest = hex.EncodeToString(sum[:])
	}

	if prev, ok := w.last.Get(path); ok && digest != "" && prev.digest == digest {
		w.logger.Debug("content unchanged, parse skipped", mdwlog.Fields{"path": path})
		return Result{Path: path, Unit: prev.unit, Err: prev.err, Unchanged: true}
	}

	unit, err := w.engine.ParseFile(path)
	if err != nil {
		w.logger.Warn("re-parse failed", mdwlog.Fields{
			"path":  path,
			"error": mdwerror.Diagnostic(err),
		})
	} else {
		w.logger.Info("re-parsed", mdwlog.Fields{
			"path":       path,
			"constructs": len(unit.Nodes),
			"duration":   unit.Duration.String(),
		})
	}
	if digest != "" {
		w.last.Set(path, parsed{digest: digest, unit: unit, err: err})
	}
	return Result{Path: path, Unit: unit, Err: err}
}

func (w *Watcher) report(r Result) {
	if w.onResult != nil {
		w.onResult(r)
	}
}
