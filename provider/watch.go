package provider

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/vidmux/vidmux/log"
	"github.com/vidmux/vidmux/where"
)

// Watch reloads the registry whenever a descriptor file in the sources
// directory is created, changed or removed. It blocks until the context is
// cancelled and is intended to run in its own goroutine next to the server.
func Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err = watcher.Add(where.Sources()); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Ext(event.Name) != DescriptorExtension {
				continue
			}
			log.Infof("source descriptors changed (%s), reloading", event.Op)
			if err = Load(); err != nil {
				log.Errorf("source registry reload failed: %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnf("source watcher: %v", err)
		}
	}
}
