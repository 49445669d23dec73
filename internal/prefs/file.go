package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File is a Store backed by an HCL preference file. Changes are held in
// memory until Save is called.
type File struct {
	*Memory
	path string
}

// Open reads the preference file at path. A missing file yields the
// default preferences; it is created on the first Save.
func Open(path string) (*File, error) {
	f := &File{Memory: NewMemory(), path: path}

	src, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug("no preferences file, using defaults", "path", path)
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading preferences file: %w", err)
	}

	doc, err := Decode(src, path)
	if err != nil {
		return nil, err
	}
	f.Memory.load(doc)
	log.Debug("preferences loaded", "path", path, "version", doc.Version, "history", len(doc.History))
	return f, nil
}

// Path returns the file the store reads from and saves to.
func (f *File) Path() string {
	return f.path
}

// Document returns the current preferences in file form.
func (f *File) Document() *Document {
	return f.Memory.document()
}

// Save writes the preferences to disk in the current format, replacing
// the file atomically.
func (f *File) Save() error {
	data, err := Encode(f.Memory.document())
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating preferences directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".rolodex-*.hcl")
	if err != nil {
		return fmt.Errorf("writing preferences file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing preferences file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing preferences file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("writing preferences file: %w", err)
	}

	log.Debug("preferences saved", "path", f.path)
	return nil
}
