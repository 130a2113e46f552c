package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Library is the on-disk collection format: one JSON file holding one or
// more group snapshots. This is the CLI's input boundary; a library file
// plays the role of the host's datablock registry for offline export.
type Library struct {
	Groups []Group `json:"groups" bson:"groups"`
}

// Group returns the group with the given name and true, or nil and false.
func (l *Library) Group(name string) (*Group, bool) {
	for i := range l.Groups {
		if l.Groups[i].Name == name {
			return &l.Groups[i], true
		}
	}
	return nil, false
}

// Names returns the group names in library order.
func (l *Library) Names() []string {
	names := make([]string, len(l.Groups))
	for i := range l.Groups {
		names[i] = l.Groups[i].Name
	}
	return names
}

// Validate validates every group in the library, stopping at the first
// violation.
func (l *Library) Validate() error {
	for i := range l.Groups {
		if err := Validate(&l.Groups[i]); err != nil {
			return err
		}
	}
	return nil
}

// MarshalLibrary converts a library to indented JSON bytes. Group order
// is preserved as stored, which keeps output deterministic.
func MarshalLibrary(l *Library) ([]byte, error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode library: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteLibrary writes a library as JSON to an io.Writer.
func WriteLibrary(l *Library, w io.Writer) error {
	data, err := MarshalLibrary(l)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteLibraryFile writes a library to a JSON file with 0644 permissions.
func WriteLibraryFile(l *Library, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteLibrary(l, f)
}

// ReadLibrary decodes a JSON library from an io.Reader and validates
// every group in it.
func ReadLibrary(r io.Reader) (*Library, error) {
	var l Library
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return nil, fmt.Errorf("decode library: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// ReadLibraryFile reads and validates a library JSON file.
func ReadLibraryFile(path string) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadLibrary(f)
}
