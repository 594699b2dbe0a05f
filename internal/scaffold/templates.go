package scaffold

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/semver/v3"
	"github.com/mark-labs/mark/internal/manifest"
	"go.yaml.in/yaml/v3"
)

//go:embed templates/descriptors.yaml
var defaultTemplates []byte

// supportedVersions is the range of template set versions this build renders.
const supportedVersions = ">= 1.0.0, < 2.0.0"

// namePlaceholder is replaced with the entity name in section titles.
const namePlaceholder = "{name}"

// documentTemplate renders a section list as markdown. Sections are separated
// by one blank line; body text and bullets follow their heading directly.
const documentTemplate = `{{range $i, $s := .}}{{if $i}}{{"\n"}}{{end}}{{heading $s.Level}} {{$s.Title}}
{{with $s.Body}}{{.}}
{{end}}{{range $s.Bullets}}- {{.}}
{{end}}{{end}}`

var document = template.Must(template.New("descriptor").Funcs(template.FuncMap{
	"heading": func(level int) string { return strings.Repeat("#", level) },
}).Parse(documentTemplate))

// Descriptor identifies one of the two files scaffolded per entity.
type Descriptor int

const (
	// Marker is the markers.<name> file describing a trigger/effect pair.
	Marker Descriptor = iota
	// Metadata is the md.<name> file describing capabilities or intent.
	Metadata
)

// Descriptors lists the descriptor kinds in the order they are scaffolded.
var Descriptors = []Descriptor{Marker, Metadata}

func (d Descriptor) String() string {
	if d == Marker {
		return "marker"
	}
	return "metadata"
}

// Section is one heading of a descriptor document.
type Section struct {
	Title   string   `yaml:"title"`
	Level   int      `yaml:"level"`
	Body    string   `yaml:"body,omitempty"`
	Bullets []string `yaml:"bullets,omitempty"`
}

// Glyphs tag creation log lines per descriptor kind.
type Glyphs struct {
	Marker   string `yaml:"marker"`
	Metadata string `yaml:"metadata"`
}

// CategoryTemplate holds the placeholder documents for one category.
type CategoryTemplate struct {
	Header   string    `yaml:"header"`
	Glyphs   Glyphs    `yaml:"glyphs"`
	Marker   []Section `yaml:"marker"`
	Metadata []Section `yaml:"metadata"`
}

// TemplateSet maps category names to their templates.
type TemplateSet struct {
	Version    string                      `yaml:"version"`
	Categories map[string]CategoryTemplate `yaml:"categories"`
}

var (
	defaultOnce sync.Once
	defaultSet  *TemplateSet
	defaultErr  error
)

// DefaultTemplates returns the embedded template set, loaded once.
func DefaultTemplates() (*TemplateSet, error) {
	defaultOnce.Do(func() {
		defaultSet, defaultErr = LoadTemplates(defaultTemplates)
	})
	return defaultSet, defaultErr
}

// LoadTemplates validates and parses a YAML template set. Schema violations
// are returned as a *SchemaError.
func LoadTemplates(data []byte) (*TemplateSet, error) {
	if err := CheckSchema(data); err != nil {
		return nil, err
	}

	var set TemplateSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parsing template set: %w", err)
	}

	if err := checkVersion(set.Version); err != nil {
		return nil, err
	}
	return &set, nil
}

// LoadTemplateFile reads and loads a template set from disk.
func LoadTemplateFile(path string) (*TemplateSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template set %s: %w", path, err)
	}
	set, err := LoadTemplates(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return set, nil
}

func checkVersion(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("template set version %q: %w", version, err)
	}
	c, err := semver.NewConstraint(supportedVersions)
	if err != nil {
		return fmt.Errorf("parsing version constraint: %w", err)
	}
	if !c.Check(v) {
		return fmt.Errorf("template set version %s is not supported (want %s)", v, supportedVersions)
	}
	return nil
}

// For returns the template for category c.
func (t *TemplateSet) For(c manifest.Category) (*CategoryTemplate, error) {
	ct, ok := t.Categories[c.String()]
	if !ok {
		return nil, fmt.Errorf("no descriptor template for category %q", c)
	}
	return &ct, nil
}

// Glyph returns the log tag for descriptor kind d.
func (ct *CategoryTemplate) Glyph(d Descriptor) string {
	if d == Marker {
		return ct.Glyphs.Marker
	}
	return ct.Glyphs.Metadata
}

// Render produces the placeholder document of kind d for the named entity.
func (ct *CategoryTemplate) Render(d Descriptor, name string) ([]byte, error) {
	src := ct.Metadata
	if d == Marker {
		src = ct.Marker
	}

	sections := make([]Section, len(src))
	for i, s := range src {
		s.Title = strings.ReplaceAll(s.Title, namePlaceholder, name)
		sections[i] = s
	}

	var buf bytes.Buffer
	if err := document.Execute(&buf, sections); err != nil {
		return nil, fmt.Errorf("rendering %s template: %w", d, err)
	}
	return buf.Bytes(), nil
}
