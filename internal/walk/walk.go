// Package walk enumerates the candidate files under a search root.
package walk

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Entry is one candidate file.
type Entry struct {
	// Path is the root joined with the relative path and cleaned; name search runs on it.
	Path string
	// Rel is the slash-separated path relative to the root.
	Rel string
	// Regular is set when the entry, or the target of a symlink, is a regular file.
	// Only regular files have their content searched; FIFOs, sockets, devices and
	// links to directories are matched by name alone.
	Regular bool
}

func regular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Options controls traversal.
type Options struct {
	Recursive bool
	Excludes  []string
}

// ErrorFunc receives entries that could not be read. Traversal continues.
type ErrorFunc func(path string, err error)

// ValidatePatterns reports the first malformed exclude glob.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid exclude pattern: %q", p)
		}
	}
	return nil
}

// Walk calls fn for every non-directory entry under root. With Recursive
// unset only the direct children of root are visited. Entries are produced in
// lexical order. An error from fn or a cancelled ctx stops the walk and is returned.
func Walk(ctx context.Context, root string, opts Options, fn func(Entry) error, onErr ErrorFunc) error {
	if err := ValidatePatterns(opts.Excludes); err != nil {
		return err
	}
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root is not a directory: %s", root)
	}
	if onErr == nil {
		onErr = func(string, error) {}
	}
	if !opts.Recursive {
		return walkFlat(ctx, root, opts.Excludes, fn)
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return err
			}
			onErr(path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}
		rel := relSlash(root, path)
		if excluded(opts.Excludes, rel, d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		return fn(Entry{Path: path, Rel: rel, Regular: regular(path, d)})
	})
}

func walkFlat(ctx context.Context, root string, excludes []string, fn func(Entry) error) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("read root: %w", err)
	}
	for _, d := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			continue
		}
		if excluded(excludes, d.Name(), d.Name()) {
			continue
		}
		path := filepath.Join(root, d.Name())
		if err := fn(Entry{Path: path, Rel: d.Name(), Regular: regular(path, d)}); err != nil {
			return err
		}
	}
	return nil
}

func relSlash(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// excluded tries the relative path first (so "vendor/**" works) and then the base
// name (so "*.log" works at any depth).
func excluded(patterns []string, rel, base string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, rel); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(p, base); err == nil && ok {
			return true
		}
	}
	return false
}

// Collect returns every entry Walk would produce. It is a convenience for callers
// that want the full list up front, such as progress estimation.
func Collect(ctx context.Context, root string, opts Options, onErr ErrorFunc) ([]Entry, error) {
	var out []Entry
	err := Walk(ctx, root, opts, func(e Entry) error {
		out = append(out, e)
		return nil
	}, onErr)
	if err != nil {
		return nil, err
	}
	return out, nil
}
