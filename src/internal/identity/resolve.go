// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package identity

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/H0llyW00dzZ/jssl-server/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/jssl-server/src/logger"
)

// Resolver finds key store files.
//
// The function fields exist so tests can point the lookup at temporary
// directories; NewResolver fills them with the process defaults.
type Resolver struct {
	// Getwd returns the current working directory.
	Getwd func() (string, error)
	// ExecutableDir returns the directory of the running binary.
	ExecutableDir func() (string, error)
	// Log receives the fallback trace. May be nil.
	Log logger.Logger
}

// NewResolver returns a Resolver using the process working directory and
// executable location.
func NewResolver(log logger.Logger) *Resolver {
	return &Resolver{
		Getwd:         os.Getwd,
		ExecutableDir: posix.ExecutableDir,
		Log:           log,
	}
}

// Resolve returns the path of the key store called name.
//
// Absolute names are used as given. Relative names are looked up in the
// working directory, then beside the executable. When neither holds a regular
// file the error wraps ErrNotFound.
func (r *Resolver) Resolve(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty key store name", ErrNotFound)
	}

	if filepath.IsAbs(name) {
		if isFile(name) {
			return name, nil
		}
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	if r.Getwd != nil {
		if wd, err := r.Getwd(); err == nil {
			if p := filepath.Join(wd, name); isFile(p) {
				return p, nil
			}
		}
	}

	if r.ExecutableDir != nil {
		if dir, err := r.ExecutableDir(); err == nil {
			if p := filepath.Join(dir, name); isFile(p) {
				if r.Log != nil {
					r.Log.Printf("Using key store %s", p)
				}
				return p, nil
			}
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Open resolves name and opens it for reading. The caller closes the reader.
func (r *Resolver) Open(name string) (io.ReadCloser, string, error) {
	path, err := r.Resolve(name)
	if err != nil {
		return nil, "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, path, fmt.Errorf("identity: opening %s: %w", path, err)
	}
	return f, path, nil
}

// LoadFile resolves, opens and decodes the key store called name.
// The returned path is the file actually used.
func (r *Resolver) LoadFile(name, password string) (*Material, string, error) {
	rc, path, err := r.Open(name)
	if err != nil {
		return nil, path, err
	}
	defer rc.Close()

	m, err := Load(rc, password)
	if err != nil {
		return nil, path, fmt.Errorf("%s: %w", path, err)
	}
	return m, path, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
