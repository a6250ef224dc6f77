package source

import (
	"context"
	"io"
	"os"

	"github.com/DannyDoesGraphics/DARE-sub000/errors"
)

// DefaultReadSize is the chunk size used by file and network sources
// when the caller does not choose one.
const DefaultReadSize = 64 * 1024

// File streams a regular file from an optional byte offset. Chunks are
// at most ReadSize bytes; the final chunk may be shorter.
type File struct {
	f      *os.File
	buf    []byte
	done   bool
	closed bool
}

// FileConfig controls how a file is opened for streaming.
type FileConfig struct {
	Path     string
	Offset   int64 // bytes to skip before the first chunk
	ReadSize int   // chunk size, DefaultReadSize when zero
}

// OpenFile opens path for streaming, seeking to the configured offset.
func OpenFile(cfg FileConfig) (*File, error) {
	if cfg.Path == "" {
		return nil, errors.WrapInvalid(errors.ErrMissingConfig, "FileSource", "OpenFile", "path required")
	}
	if cfg.Offset < 0 {
		return nil, errors.WrapInvalid(errors.ErrInvalidConfig, "FileSource", "OpenFile", "negative offset")
	}
	if cfg.ReadSize <= 0 {
		cfg.ReadSize = DefaultReadSize
	}

	f, err := os.Open(cfg.Path)
	if err != nil {
		return nil, errors.Wrap(err, "FileSource", "OpenFile", "open")
	}
	if cfg.Offset > 0 {
		if _, err := f.Seek(cfg.Offset, io.SeekStart); err != nil {
			f.Close()
			return nil, errors.Wrap(err, "FileSource", "OpenFile", "seek")
		}
	}
	return &File{f: f, buf: make([]byte, cfg.ReadSize)}, nil
}

// Next reads the next chunk from the file.
func (s *File) Next(ctx context.Context) ([]byte, error) {
	if s.closed {
		return nil, errors.ErrSourceClosed
	}
	if s.done {
		return nil, io.EOF
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n, err := s.f.Read(s.buf)
	if n > 0 {
		chunk := make([]byte, n)
		copy(chunk, s.buf[:n])
		return chunk, nil
	}
	if err == io.EOF {
		s.done = true
		return nil, io.EOF
	}
	if err != nil {
		return nil, errors.Wrap(err, "FileSource", "Next", "read")
	}
	return nil, nil
}

// Close releases the file handle.
func (s *File) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.f.Close(); err != nil {
		return errors.Wrap(err, "FileSource", "Close", "close file")
	}
	return nil
}
