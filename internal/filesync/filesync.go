// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package filesync replaces generated files only when their content changed.
package filesync

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"

	"grimm.is/confgen/internal/errors"
)

// Status reports what Sync did, or would do, to a target file.
type Status int

const (
	Unchanged Status = iota
	Updated
	Created
	Stale
)

func (s Status) String() string {
	switch s {
	case Unchanged:
		return "unchanged"
	case Updated:
		return "updated"
	case Created:
		return "created"
	case Stale:
		return "stale"
	default:
		return "unknown"
	}
}

// DefaultMode is used for files that do not exist yet.
const DefaultMode fs.FileMode = 0o644

// Options control a Sync call.
type Options struct {
	// DryRun compares only. Nothing is written and a differing file is Stale.
	DryRun bool
	// Diff, if set, receives a unified diff of a Stale file.
	Diff io.Writer
}

// Sync makes the file at path hold data. An existing file keeps its mode.
func Sync(path string, data []byte, opts Options) (Status, error) {
	current, err := os.ReadFile(path)
	exists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Unchanged, errors.Attr(errors.Wrap(err, errors.KindIO, "read target"), "path", path)
	}
	if exists && bytes.Equal(current, data) {
		return Unchanged, nil
	}

	if opts.DryRun {
		if opts.Diff != nil {
			if err := writeDiff(opts.Diff, path, current, data); err != nil {
				return Stale, err
			}
		}
		return Stale, nil
	}

	mode := DefaultMode
	if exists {
		if fi, err := os.Stat(path); err == nil {
			mode = fi.Mode().Perm()
		}
	}
	if err := replaceFile(path, data, mode); err != nil {
		return Unchanged, errors.Attr(err, "path", path)
	}
	if exists {
		return Updated, nil
	}
	return Created, nil
}

func writeDiff(w io.Writer, path string, current, data []byte) error {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(current)),
		B:        difflib.SplitLines(string(data)),
		FromFile: path,
		ToFile:   path + " (generated)",
		Context:  3,
	}
	if err := difflib.WriteUnifiedDiff(w, diff); err != nil {
		return errors.Wrap(err, errors.KindIO, "write diff")
	}
	return nil
}

// replaceFile writes data to a temporary file beside path and renames it
// into place.
func replaceFile(path string, data []byte, mode fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, errors.KindIO, "create directory")
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, errors.KindIO, "create temporary file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, errors.KindIO, "write temporary file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, errors.KindIO, "close temporary file")
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, errors.KindIO, "set permissions")
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, errors.KindIO, "rename into place")
	}
	return nil
}
