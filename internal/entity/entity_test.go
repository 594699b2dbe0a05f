package entity

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		subManifest string
		ref         string
		wantDir     string
		wantName    string
	}{
		{
			name:        "entry in sub-directory",
			subManifest: ".mark/agents/a.agent.marks",
			ref:         "foo/ref.txt",
			wantDir:     ".mark/agents/foo",
			wantName:    "foo",
		},
		{
			name:        "nested entity",
			subManifest: ".mark/agents/a.agent.marks",
			ref:         "a/foo/ref.txt",
			wantDir:     ".mark/agents/a/foo",
			wantName:    "foo",
		},
		{
			name:        "file beside sub-manifest",
			subManifest: ".mark/tools/tool.marks",
			ref:         "ref.txt",
			wantDir:     ".mark/tools",
			wantName:    "tools",
		},
		{
			name:        "parent traversal inside tree",
			subManifest: ".mark/agents/a.agent.marks",
			ref:         "../../src/planner/agent.md",
			wantDir:     "src/planner",
			wantName:    "planner",
		},
		{
			name:        "absolute sub-manifest",
			subManifest: "/work/.mark/agents/a.agent.marks",
			ref:         "foo/ref.txt",
			wantDir:     "/work/.mark/agents/foo",
			wantName:    "foo",
		},
		{
			// Absolute refs stay under the sub-manifest's directory.
			name:        "absolute ref",
			subManifest: ".mark/agents/a.agent.marks",
			ref:         "/abs/x/ref.txt",
			wantDir:     ".mark/agents/abs/x",
			wantName:    "x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Resolve(filepath.FromSlash(tt.subManifest), filepath.FromSlash(tt.ref))
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			if e.Dir != filepath.FromSlash(tt.wantDir) {
				t.Errorf("Dir = %q, want %q", e.Dir, tt.wantDir)
			}
			if e.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", e.Name, tt.wantName)
			}
		})
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name        string
		subManifest string
		ref         string
		want        error
	}{
		{"empty ref", ".mark/agents/a.agent.marks", "", ErrEmptyRef},
		{"empty sub-manifest", "", "foo/ref.txt", ErrNoParent},
		{"root sub-manifest", "/", "foo/ref.txt", ErrNoParent},
		{"dot sub-manifest", ".", "foo/ref.txt", ErrNoParent},
		{"resolves to tree root", ".mark/agents/a.agent.marks", "../../ref.txt", ErrNoName},
		{"escapes tree", ".mark/agents/a.agent.marks", "../../../ref.txt", ErrNoName},
		{"invalid utf-8", ".mark/agents/a.agent.marks", "bad\xff/ref.txt", ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.subManifest, tt.ref)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Resolve() error = %v, want %v", err, tt.want)
			}
			var re *ResolveError
			if !errors.As(err, &re) {
				t.Fatalf("error should be *ResolveError, got %T", err)
			}
			if re.Ref != tt.ref {
				t.Errorf("ResolveError.Ref = %q, want %q", re.Ref, tt.ref)
			}
		})
	}
}

func TestDescriptorFiles(t *testing.T) {
	e := Entity{Dir: filepath.FromSlash(".mark/agents/foo"), Name: "foo"}
	if got, want := e.MarkerFile(), filepath.FromSlash(".mark/agents/foo/markers.foo"); got != want {
		t.Errorf("MarkerFile() = %q, want %q", got, want)
	}
	if got, want := e.MetadataFile(), filepath.FromSlash(".mark/agents/foo/md.foo"); got != want {
		t.Errorf("MetadataFile() = %q, want %q", got, want)
	}
}
