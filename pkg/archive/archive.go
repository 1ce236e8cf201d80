// Copyright (C) 2026 UC Managed (ops@ucmanaged.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package archive packs backup records into a zip container and reads them
// back out by entry name. The zip layout is a flat list of text entries,
// one per collection, and is the one on-disk contract shared with every
// other consumer of these backups.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var (
	// ErrArchiveOpen reports a path that is not a readable zip. Fatal
	// for a restore: nothing can proceed without the container.
	ErrArchiveOpen = errors.New("cannot open archive")

	// ErrEntryMissing reports a named entry absent from the container.
	ErrEntryMissing = errors.New("entry missing from archive")
)

// Pack zips the given files into dest, entry names taken from the source
// base names. An existing destination is overwritten. File timestamps are
// carried into the entries.
func Pack(dest string, sources []string) (string, error) {
	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("creating archive %s: %w", dest, err)
	}

	zw := zip.NewWriter(out)
	for _, src := range sources {
		if err := addFile(zw, src); err != nil {
			zw.Close()
			out.Close()
			os.Remove(dest)
			return "", err
		}
	}

	if err := zw.Close(); err != nil {
		out.Close()
		os.Remove(dest)
		return "", fmt.Errorf("finalizing archive %s: %w", dest, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("closing archive %s: %w", dest, err)
	}
	return dest, nil
}

func addFile(zw *zip.Writer, src string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("adding %s: %w", src, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("adding %s: %w", src, err)
	}
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("adding %s: %w", src, err)
	}
	hdr.Name = filepath.Base(src)
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("adding %s: %w", src, err)
	}
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("adding %s: %w", src, err)
	}
	return nil
}

// Archive is an opened container handle. Close it on every exit path.
type Archive struct {
	path string
	zr   *zip.ReadCloser
}

// Open opens a container for named-entry reads. A missing or malformed
// file yields an error matching ErrArchiveOpen.
func Open(path string) (*Archive, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrArchiveOpen, path, err)
	}
	return &Archive{path: path, zr: zr}, nil
}

// Path returns the container's path.
func (a *Archive) Path() string { return a.path }

// Entries lists the entry names in container order.
func (a *Archive) Entries() []string {
	names := make([]string, 0, len(a.zr.File))
	for _, f := range a.zr.File {
		names = append(names, f.Name)
	}
	return names
}

// ReadEntry returns the full content of one named entry. Absent entries
// yield an error matching ErrEntryMissing.
func (a *Archive) ReadEntry(name string) ([]byte, error) {
	for _, f := range a.zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("reading entry %s: %w", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("reading entry %s: %w", name, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrEntryMissing, name)
}

// Close releases the container handle.
func (a *Archive) Close() error {
	return a.zr.Close()
}
