package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/graphitepush/pkg/log"
)

// TailConfig controls Follow.
type TailConfig struct {
	// FromStart reads existing content before following.
	FromStart bool

	// FlushInterval pushes buffered samples periodically when positive.
	FlushInterval time.Duration
}

// Follow forwards lines appended to path until ctx is done, then pushes
// whatever is buffered. Truncation rewinds to the start; removal or rename
// waits for the file to be created again. All sink calls happen on the
// calling goroutine.
func Follow(ctx context.Context, path string, cfg TailConfig, parser Parser, sink Sink, logger log.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so that recreated files are noticed.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	t := &tailer{path: path, parser: parser, sink: sink, logger: logger}
	if err := t.open(!cfg.FromStart); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	defer t.close()
	t.drain(ctx)

	var tick <-chan time.Time
	if cfg.FlushInterval > 0 {
		ticker := time.NewTicker(cfg.FlushInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	logger.Info("following file", log.String("path", path))

	for {
		select {
		case <-ctx.Done():
			t.drain(ctx)
			// ctx is canceled; the last push is bounded by the relay timeouts.
			sink.Push(context.WithoutCancel(ctx))
			return nil

		case <-tick:
			sink.Push(ctx)

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) {
				continue
			}
			t.handle(ctx, ev)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", log.Err(err))
		}
	}
}

type tailer struct {
	path    string
	parser  Parser
	sink    Sink
	logger  log.Logger
	file    *os.File
	offset  int64
	partial []byte
	lineNo  int
}

func (t *tailer) open(atEnd bool) error {
	f, err := os.Open(t.path)
	if err != nil {
		return err
	}
	var offset int64
	if atEnd {
		if offset, err = f.Seek(0, io.SeekEnd); err != nil {
			f.Close()
			return fmt.Errorf("seek %s: %w", t.path, err)
		}
	}
	t.file = f
	t.offset = offset
	t.partial = t.partial[:0]
	return nil
}

func (t *tailer) close() {
	if t.file != nil {
		t.file.Close()
		t.file = nil
	}
}

func (t *tailer) handle(ctx context.Context, ev fsnotify.Event) {
	switch {
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		t.drain(ctx)
		t.close()
		t.logger.Info("file moved away, waiting for it to reappear", log.String("path", t.path))

	case ev.Has(fsnotify.Create):
		t.close()
		if err := t.open(false); err != nil {
			t.logger.Warn("reopen failed", log.String("path", t.path), log.Err(err))
			return
		}
		t.drain(ctx)

	case ev.Has(fsnotify.Write):
		if t.file == nil {
			if err := t.open(false); err != nil {
				return
			}
		}
		t.rewindIfTruncated()
		t.drain(ctx)
	}
}

func (t *tailer) rewindIfTruncated() {
	info, err := t.file.Stat()
	if err != nil || info.Size() >= t.offset {
		return
	}
	t.logger.Info("file truncated, reading from start", log.String("path", t.path))
	if _, err := t.file.Seek(0, io.SeekStart); err == nil {
		t.offset = 0
		t.partial = t.partial[:0]
	}
}

// drain forwards every complete line available after the current offset.
func (t *tailer) drain(ctx context.Context) {
	if t.file == nil {
		return
	}
	buf := make([]byte, 32*1024)
	for {
		n, err := t.file.Read(buf)
		if n > 0 {
			t.offset += int64(n)
			t.consume(ctx, buf[:n])
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				t.logger.Warn("read failed", log.String("path", t.path), log.Err(err))
			}
			return
		}
	}
}

func (t *tailer) consume(ctx context.Context, chunk []byte) {
	t.partial = append(t.partial, chunk...)
	for {
		i := bytes.IndexByte(t.partial, '\n')
		if i < 0 {
			return
		}
		t.lineNo++
		forwardLine(ctx, t.partial[:i], t.lineNo, t.parser, t.sink, t.logger)
		t.partial = t.partial[i+1:]
	}
}
