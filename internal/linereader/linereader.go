// Package linereader yields the lines of a UTF-8 text file with 1-based numbers.
package linereader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"
)

// MaxLineBytes bounds a single line; longer lines fail the file with a read error.
const MaxLineBytes = 1024 * 1024

var (
	// ErrTooLarge is returned when the file is bigger than the configured limit.
	ErrTooLarge = errors.New("file exceeds size limit")
	// ErrNotRegular is returned for FIFOs, sockets and devices, which are never opened.
	ErrNotRegular = errors.New("not a regular file")
)

// DecodeError reports content that is not valid UTF-8. The message omits the path;
// callers report it alongside.
type DecodeError struct {
	Path string
	Line int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid UTF-8 at line %d", e.Line)
}

// ReadError wraps a failure while reading an opened file.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read: %v", e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Read calls fn for every line of path. Line terminators (\n or \r\n) are removed.
// A file larger than maxBytes (when maxBytes > 0) is rejected with ErrTooLarge
// before any line is produced. Lines already handed to fn before a DecodeError
// or read error must be treated as incomplete by the caller.
func Read(ctx context.Context, path string, maxBytes int64, fn func(number int, text string)) error {
	// opening a FIFO blocks until a writer appears
	if info, err := os.Stat(path); err != nil {
		return err
	} else if !info.Mode().IsRegular() {
		return fmt.Errorf("%s: %w", info.Mode().Type(), ErrNotRegular)
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	if maxBytes > 0 {
		info, err := f.Stat()
		if err != nil {
			return err
		}
		if info.Size() > maxBytes {
			return fmt.Errorf("%d bytes: %w", info.Size(), ErrTooLarge)
		}
	}
	sc := bufio.NewScanner(f)
	buf := make([]byte, 0, 64*1024)
	sc.Buffer(buf, MaxLineBytes)
	n := 0
	for sc.Scan() {
		n++
		if n%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		line := sc.Bytes()
		if !utf8.Valid(line) {
			return &DecodeError{Path: path, Line: n}
		}
		fn(n, string(line))
	}
	if err := sc.Err(); err != nil {
		return &ReadError{Path: path, Err: err}
	}
	return nil
}
