package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"

	"github.com/dshills/richedit/internal/logging"
)

// watchDelay coalesces the burst of events an editor save produces.
const watchDelay = 100 * time.Millisecond

// watch prints the cleaned content of file now and again after every
// change until ctx is done.
func watch(ctx context.Context, file string, stdout, stderr io.Writer, log *logging.Logger) error {
	abs, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", file, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	// Watch the directory: editors often replace the file on save, which
	// drops a watch placed on the file itself.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", file, err)
	}

	emit := func() {
		out, err := convertFile("clean", abs)
		if err != nil {
			printError(stderr, err)
			return
		}
		color.New(color.FgGreen).Fprintf(stderr, "cleaned %s at %s\n", file, time.Now().Format(time.TimeOnly))
		fmt.Fprintln(stdout, out)
	}
	emit()

	debounce := time.NewTimer(watchDelay)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			log.Debug("change %s on %s", ev.Op, ev.Name)
			debounce.Reset(watchDelay)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error: %v", err)
			color.New(color.FgYellow).Fprintf(stderr, "Warning: %v\n", err)

		case <-debounce.C:
			emit()
		}
	}
}
