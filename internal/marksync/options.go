package marksync

import (
	"log/slog"

	"github.com/go-git/go-billy/v5"
	"github.com/mark-labs/mark/internal/scaffold"
)

// Option configures a Syncer.
type Option func(*Syncer)

// WithFilesystem sets the filesystem the sync reads and writes. Paths inside
// it are relative to the project root. Defaults to the OS filesystem rooted
// at the root directory.
func WithFilesystem(fs billy.Filesystem) Option {
	return func(s *Syncer) { s.fs = fs }
}

// WithStrict makes the first malformed entry or descriptor write failure
// abort the run before the log is written.
func WithStrict(strict bool) Option {
	return func(s *Syncer) { s.strict = strict }
}

// WithDryRun reports planned creations without writing descriptors or the log.
func WithDryRun(dryRun bool) Option {
	return func(s *Syncer) { s.dryRun = dryRun }
}

// WithLogger sets the logger for debug tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Syncer) { s.logger = logger }
}

// WithTemplates replaces the embedded descriptor templates.
func WithTemplates(t *scaffold.TemplateSet) Option {
	return func(s *Syncer) { s.templates = t }
}
