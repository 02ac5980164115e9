package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type fileProvider interface {
	LastHash(ctx context.Context) (string, error)
	Contents(ctx context.Context) (fs.FS, error)
}

// repo checks out a remote site into a local directory so it can be built.
type repo struct {
	logger   logger
	fp       fileProvider
	destRoot string
	hash     string
}

func newRepo(logger logger, fp fileProvider, destRoot string) *repo {
	return &repo{logger: logger, fp: fp, destRoot: destRoot}
}

// Sync extracts the remote contents into destRoot when the remote hash
// differs from the last one synced. It reports whether anything was written.
func (r *repo) Sync(ctx context.Context) (bool, error) {
	hash, err := r.fp.LastHash(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get last hash: %w", err)
	}

	if hash == r.hash {
		return false, nil
	}

	repoFS, err := r.fp.Contents(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get contents: %w", err)
	}

	n, err := r.extract(repoFS)
	if err != nil {
		return false, fmt.Errorf("failed to extract contents: %w", err)
	}

	r.logger.Info("synced repository", "hash", hash, "files", n, "dest", r.destRoot)
	r.hash = hash
	return true, nil
}

// extract copies every file of the archive into destRoot, dropping the
// archive's top-level directory.
func (r *repo) extract(repoFS fs.FS) (int, error) {
	var n int
	err := fs.WalkDir(repoFS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk dir: %w", err)
		}

		p := strings.Split(path, "/")
		if len(p) < 2 {
			return nil
		}
		destPath := filepath.Join(r.destRoot, filepath.FromSlash(strings.Join(p[1:], "/")))

		if d.IsDir() {
			if err := os.MkdirAll(destPath, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", destPath, err)
			}
			return nil
		}

		if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
			return fmt.Errorf("failed to create parent directory for %q: %w", destPath, err)
		}

		if err := copyFile(repoFS, path, destPath); err != nil {
			return err
		}
		n++
		return nil
	})
	return n, err
}

func copyFile(srcFS fs.FS, src, dest string) error {
	srcFile, err := srcFS.Open(src)
	if err != nil {
		return &IOError{Op: "open", Path: src, Err: err}
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dest)
	if err != nil {
		return &IOError{Op: "create", Path: dest, Err: err}
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return &IOError{Op: "write", Path: dest, Err: err}
	}
	return nil
}
