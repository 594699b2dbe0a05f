package entity

import (
	"errors"
	"fmt"
	"path/filepath"
	"unicode/utf8"
)

// Descriptor file-name prefixes. A descriptor is named <prefix>.<entity-name>.
const (
	MarkerPrefix   = "markers"
	MetadataPrefix = "md"
)

var (
	// ErrEmptyRef is returned for an empty entry such as a bare "- " line.
	ErrEmptyRef = errors.New("empty entry")
	// ErrNoParent is returned when the sub-manifest path has no parent directory.
	ErrNoParent = errors.New("sub-manifest has no parent directory")
	// ErrNoName is returned when the entity directory has no final segment.
	ErrNoName = errors.New("entity directory has no name")
	// ErrInvalidName is returned when the final segment is not valid UTF-8 text.
	ErrInvalidName = errors.New("entity name is not valid text")
)

// ResolveError reports a manifest entry that does not resolve to an entity.
type ResolveError struct {
	SubManifest string
	Ref         string
	Err         error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolving %q in %s: %v", e.Ref, e.SubManifest, e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }

// Entity is a named unit whose descriptors live in Dir.
type Entity struct {
	Dir  string
	Name string
}

// MarkerFile returns the path of the entity's marker descriptor.
func (e Entity) MarkerFile() string {
	return filepath.Join(e.Dir, MarkerPrefix+"."+e.Name)
}

// MetadataFile returns the path of the entity's metadata descriptor.
func (e Entity) MetadataFile() string {
	return filepath.Join(e.Dir, MetadataPrefix+"."+e.Name)
}

// Resolve joins ref onto the directory containing subManifest and returns the
// entity owning the resulting target path.
func Resolve(subManifest, ref string) (Entity, error) {
	fail := func(err error) (Entity, error) {
		return Entity{}, &ResolveError{SubManifest: subManifest, Ref: ref, Err: err}
	}

	if ref == "" {
		return fail(ErrEmptyRef)
	}

	clean := filepath.Clean(subManifest)
	parent := filepath.Dir(clean)
	if subManifest == "" || parent == clean {
		return fail(ErrNoParent)
	}

	dir := filepath.Dir(filepath.Join(parent, ref))
	name := filepath.Base(dir)
	switch name {
	case "", ".", "..", string(filepath.Separator):
		return fail(ErrNoName)
	}
	if !utf8.ValidString(name) {
		return fail(ErrInvalidName)
	}

	return Entity{Dir: dir, Name: name}, nil
}
