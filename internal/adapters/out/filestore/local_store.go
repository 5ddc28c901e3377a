// Package filestore keeps uploaded payment proofs on the local disk.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
)

// LocalStore writes every upload to its own file in one directory. The
// reference it returns is the generated file name.
type LocalStore struct {
	dir string
}

// NewLocalStore creates dir when it does not exist.
func NewLocalStore(dir string) (*LocalStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errs.NewValueIsRequiredError("upload dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Dir() string { return s.dir }

// Store copies content into a new file named by a random UUID plus the
// lower-cased extension of filename.
func (s *LocalStore) Store(ctx context.Context, filename string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if content == nil {
		return "", errs.NewValueIsRequiredError("content")
	}

	reference := uuid.NewString() + strings.ToLower(filepath.Ext(filepath.Base(filename)))
	path := filepath.Join(s.dir, reference)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}

	_, copyErr := io.Copy(f, content)
	closeErr := f.Close()
	if err = errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write %s: %w", reference, err)
	}

	return reference, nil
}

// Delete removes a stored file. Deleting a missing reference is not an error.
func (s *LocalStore) Delete(_ context.Context, reference string) error {
	path, err := s.path(reference)
	if err != nil {
		return err
	}
	if err = os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Open returns the stored file for reading.
func (s *LocalStore) Open(reference string) (*os.File, error) {
	path, err := s.path(reference)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, errs.NewObjectNotFoundErrorWithCause("payment proof", reference, err)
	}
	return f, err
}

// path refuses references that would leave the upload directory.
func (s *LocalStore) path(reference string) (string, error) {
	if reference == "" || reference != filepath.Base(reference) || reference == "." || reference == ".." {
		return "", errs.NewValueIsInvalidError("reference")
	}
	return filepath.Join(s.dir, reference), nil
}
