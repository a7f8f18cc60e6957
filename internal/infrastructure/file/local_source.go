package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var ErrFileTooLarge = errors.New("import file exceeds size limit")

// LocalSource reads import files from disk. Relative paths resolve against BaseDir.
type LocalSource struct {
	BaseDir  string
	MaxBytes int64
}

func NewLocalSource(baseDir string, maxBytes int64) *LocalSource {
	if baseDir == "" {
		baseDir = "."
	}
	return &LocalSource{BaseDir: baseDir, MaxBytes: maxBytes}
}

func (s *LocalSource) Open(ctx context.Context, sourcePath string) (io.ReadCloser, error) {
	_ = ctx

	path := s.resolve(sourcePath)
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file %s: %w", path, err)
	}
	return file, nil
}

// ReadFile loads the whole file, failing with ErrFileTooLarge past MaxBytes.
func (s *LocalSource) ReadFile(ctx context.Context, sourcePath string) ([]byte, error) {
	rc, err := s.Open(ctx, sourcePath)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return ReadLimited(rc, s.MaxBytes)
}

func (s *LocalSource) resolve(sourcePath string) string {
	if filepath.IsAbs(sourcePath) {
		return sourcePath
	}
	return filepath.Join(s.BaseDir, sourcePath)
}

// ReadLimited reads r fully. A limit of zero or less disables the cap.
func ReadLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	payload, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if int64(len(payload)) > limit {
		return nil, ErrFileTooLarge
	}
	return payload, nil
}
