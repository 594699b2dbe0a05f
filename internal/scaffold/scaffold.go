package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/mark-labs/mark/internal/entity"
	"github.com/mark-labs/mark/internal/manifest"
)

// WriteError reports a descriptor that could not be checked or written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing descriptor %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ErrNoEntityDir is matched by errors for an entity directory that is
// missing or not a directory.
var ErrNoEntityDir = errors.New("entity directory missing")

// DirError reports an entity whose directory cannot hold descriptors.
type DirError struct {
	Dir string
	Err error
}

func (e *DirError) Error() string {
	return fmt.Sprintf("entity directory %s: %v", e.Dir, e.Err)
}

func (e *DirError) Unwrap() []error { return []error{ErrNoEntityDir, e.Err} }

// Result holds the outcome of scaffolding one entity.
type Result struct {
	Entity entity.Entity
	// Created lists descriptor paths written. In dry-run mode it lists the
	// paths that would have been written.
	Created []string
	// Existing lists descriptor paths left untouched.
	Existing []string
}

// Scaffolder writes missing descriptors into a filesystem.
type Scaffolder struct {
	fs        billy.Filesystem
	templates *TemplateSet
	root      string
	dryRun    bool
}

// Option configures a Scaffolder.
type Option func(*Scaffolder)

// WithTemplates replaces the embedded template set.
func WithTemplates(t *TemplateSet) Option {
	return func(s *Scaffolder) { s.templates = t }
}

// WithDisplayRoot prefixes paths in log lines with root.
func WithDisplayRoot(root string) Option {
	return func(s *Scaffolder) { s.root = root }
}

// WithDryRun logs what would be created without writing anything.
func WithDryRun(dryRun bool) Option {
	return func(s *Scaffolder) { s.dryRun = dryRun }
}

// New returns a Scaffolder writing into fsys.
func New(fsys billy.Filesystem, opts ...Option) (*Scaffolder, error) {
	s := &Scaffolder{fs: fsys}
	for _, opt := range opts {
		opt(s)
	}
	if s.templates == nil {
		t, err := DefaultTemplates()
		if err != nil {
			return nil, fmt.Errorf("loading descriptor templates: %w", err)
		}
		s.templates = t
	}
	return s, nil
}

// Templates returns the template set in use.
func (s *Scaffolder) Templates() *TemplateSet {
	return s.templates
}

// Display returns path as it appears in log lines.
func (s *Scaffolder) Display(path string) string {
	if s.root == "" {
		return path
	}
	return filepath.Join(s.root, path)
}

// Ensure creates the marker and metadata descriptors of e that do not exist
// yet, appending one line per created file to log. Each file is handled
// independently: a failure on one is logged and the other is still
// attempted. Failures are returned joined, each a *WriteError. A missing
// entity directory yields a *DirError and no file is attempted.
func (s *Scaffolder) Ensure(e entity.Entity, c manifest.Category, log *strings.Builder) (*Result, error) {
	tmpl, err := s.templates.For(c)
	if err != nil {
		return nil, err
	}

	result := &Result{Entity: e}

	info, err := s.fs.Stat(e.Dir)
	if err == nil && !info.IsDir() {
		err = errors.New("not a directory")
	}
	if err != nil {
		derr := &DirError{Dir: e.Dir, Err: err}
		fmt.Fprintf(log, "❌ Failed: %s (%v: %v)\n", s.Display(e.Dir), ErrNoEntityDir, err)
		return result, derr
	}

	var errs []error
	for _, d := range Descriptors {
		path := e.MarkerFile()
		if d == Metadata {
			path = e.MetadataFile()
		}

		exists, err := s.exists(path)
		if err != nil {
			errs = append(errs, s.fail(log, path, err))
			continue
		}
		if exists {
			result.Existing = append(result.Existing, path)
			continue
		}

		content, err := tmpl.Render(d, e.Name)
		if err != nil {
			return result, err
		}

		if s.dryRun {
			fmt.Fprintf(log, "%s Would create: %s\n", tmpl.Glyph(d), s.Display(path))
			result.Created = append(result.Created, path)
			continue
		}

		if err := util.WriteFile(s.fs, path, content, 0644); err != nil {
			errs = append(errs, s.fail(log, path, err))
			continue
		}
		fmt.Fprintf(log, "%s Created: %s\n", tmpl.Glyph(d), s.Display(path))
		result.Created = append(result.Created, path)
	}

	return result, errors.Join(errs...)
}

func (s *Scaffolder) exists(path string) (bool, error) {
	_, err := s.fs.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, err
	}
}

func (s *Scaffolder) fail(log *strings.Builder, path string, err error) error {
	fmt.Fprintf(log, "❌ Failed: %s (%v)\n", s.Display(path), err)
	return &WriteError{Path: path, Err: err}
}
