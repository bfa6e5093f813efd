package io

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	errs "github.com/matzehuels/xmlmerge/pkg/errors"
)

// MaxDocumentSize bounds how much [Read] and [ReadDocument] will load.
const MaxDocumentSize = 64 << 20

// Read loads a document from r. Inputs larger than [MaxDocumentSize] are
// rejected with INVALID_INPUT. Read does not close r.
func Read(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if len(data) > MaxDocumentSize {
		return nil, errs.New(errs.ErrCodeInvalidInput, "document exceeds %d bytes", MaxDocumentSize)
	}
	return data, nil
}

// ReadDocument reads the file at path. A missing file fails with
// FILE_NOT_FOUND.
func ReadDocument(path string) ([]byte, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "document %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	data, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// ReadExisting is like [ReadDocument] but reports a missing file as
// (nil, false, nil).
func ReadExisting(path string) ([]byte, bool, error) {
	data, err := ReadDocument(path)
	if errs.Is(err, errs.ErrCodeFileNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}
