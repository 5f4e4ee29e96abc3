// Package icons resolves icon names to SVG markup stored on disk.
package icons

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"svgbanner/internal/domain"
)

const (
	ext = ".svg"

	// DefaultMaxBytes bounds the size of a single icon file.
	DefaultMaxBytes int64 = 64 * 1024

	nameRule = "required,max=128,icon_name"
)

var (
	namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("icon_name", func(fl validator.FieldLevel) bool {
			return namePattern.MatchString(fl.Field().String())
		})
		validateInst = v
	})
	return validateInst
}

// ValidName reports whether name may be used to look up an icon file.
// Only letters, digits, underscores and hyphens are allowed.
func ValidName(name string) bool {
	return validatorInstance().Var(name, nameRule) == nil
}

// Repository reads icons from a single directory. It holds no mutable state
// and is safe for concurrent use.
type Repository struct {
	dir      string
	maxBytes int64
}

// Option configures a Repository.
type Option func(*Repository)

// WithMaxBytes overrides DefaultMaxBytes. Non-positive values are ignored.
func WithMaxBytes(n int64) Option {
	return func(r *Repository) {
		if n > 0 {
			r.maxBytes = n
		}
	}
}

// New returns a Repository serving <dir>/<name>.svg files.
func New(dir string, opts ...Option) *Repository {
	r := &Repository{dir: dir, maxBytes: DefaultMaxBytes}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dir returns the icon directory.
func (r *Repository) Dir() string { return r.dir }

// Load returns the markup of the named icon. The file is read on every call.
func (r *Repository) Load(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !ValidName(name) {
		return "", fmt.Errorf("%w: invalid name %q", domain.ErrIconNotFound, name)
	}

	path := filepath.Join(r.dir, name+ext)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %q", domain.ErrIconNotFound, name)
		}
		return "", fmt.Errorf("%w: %q: %v", domain.ErrIconReadFailure, name, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", domain.ErrIconReadFailure, name, err)
	}
	if !st.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %q is not a regular file", domain.ErrIconNotFound, name)
	}

	data, err := io.ReadAll(io.LimitReader(f, r.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", domain.ErrIconReadFailure, name, err)
	}
	if int64(len(data)) > r.maxBytes {
		return "", fmt.Errorf("%w: %q exceeds %d bytes", domain.ErrIconReadFailure, name, r.maxBytes)
	}
	return string(data), nil
}

// List returns the names of all loadable icons, sorted.
func (r *Repository) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %v", domain.ErrIconReadFailure, r.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		base, ok := strings.CutSuffix(e.Name(), ext)
		if !ok || !ValidName(base) {
			continue
		}
		if !e.Type().IsRegular() {
			// Symlinks count when they resolve to a regular file, as Load follows them.
			st, err := os.Stat(filepath.Join(r.dir, e.Name()))
			if err != nil || !st.Mode().IsRegular() {
				continue
			}
		}
		names = append(names, base)
	}
	sort.Strings(names)
	return names, nil
}

// Ready reports whether the icon directory exists.
func (r *Repository) Ready() bool {
	st, err := os.Stat(r.dir)
	return err == nil && st.IsDir()
}
