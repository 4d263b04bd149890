package provider

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/vidmux/vidmux/filesystem"
	"github.com/vidmux/vidmux/log"
	"github.com/vidmux/vidmux/source"
	"github.com/vidmux/vidmux/util"
	"github.com/vidmux/vidmux/where"
)

// DescriptorExtension is the file suffix of user-defined source descriptors.
const DescriptorExtension = ".json"

// Customs reads all user-defined source descriptors from the sources directory.
// A file that fails to parse is skipped with a log entry; it never aborts loading.
func Customs() ([]*source.Descriptor, error) {
	files, err := filesystem.API().ReadDir(where.Sources())
	if err != nil {
		return nil, err
	}

	var descriptors []*source.Descriptor
	for _, f := range files {
		if filepath.Ext(f.Name()) != DescriptorExtension {
			continue
		}

		path := filepath.Join(where.Sources(), f.Name())
		d, err := readDescriptor(path)
		if err != nil {
			log.Warnf("skipping source descriptor %s: %v", f.Name(), err)
			continue
		}

		descriptors = append(descriptors, d)
	}

	return descriptors, nil
}

func readDescriptor(path string) (*source.Descriptor, error) {
	content, err := filesystem.API().ReadFile(path)
	if err != nil {
		return nil, err
	}

	var d source.Descriptor
	if err = json.Unmarshal(content, &d); err != nil {
		return nil, fmt.Errorf("parse descriptor: %w", err)
	}

	// The filename is the fallback ID.
	if d.ID == "" {
		d.ID = util.FileStem(path)
	}
	if d.Name == "" {
		d.Name = d.ID
	}

	if err = d.Validate(); err != nil {
		return nil, err
	}

	return &d, nil
}
