package main

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const debounce = 200 * time.Millisecond

// Watches the input files and converts the ones that changed. Editors
// often replace files, so the directories are watched, not the files.
func (c *converter) watch(ctx context.Context, jobs []job) error {
	byPath := make(map[string]job, len(jobs))
	for _, j := range jobs {
		if j.in == "" {
			return errors.New("stdin can't be watched")
		}
		abs, err := filepath.Abs(j.in)
		if err != nil {
			return err
		}
		byPath[abs] = j
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	dirs := make(map[string]bool)
	for path := range byPath {
		dir := filepath.Dir(path)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			return err
		}
		dirs[dir] = true
	}
	c.log.Info("watching", zap.Int("inputs", len(byPath)))

	pending := make(map[string]job)
	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			j, ok := byPath[filepath.Clean(ev.Name)]
			if !ok {
				continue
			}
			pending[j.in] = j
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
			} else {
				timer.Reset(debounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.log.Warn("watch error", zap.Error(err))
		case <-timerC:
			timer, timerC = nil, nil
			for _, j := range pending {
				if err := c.convert(j); err != nil {
					c.log.Error("conversion failed", zap.Error(err))
				} else {
					c.log.Info("converted", zap.String("input", j.in), zap.String("output", j.out))
				}
			}
			clear(pending)
		}
	}
}
