package marksync

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/mark-labs/mark/internal/branding"
	"github.com/mark-labs/mark/internal/entity"
	"github.com/mark-labs/mark/internal/manifest"
	"github.com/mark-labs/mark/internal/scaffold"
)

// Fixed locations under the control directory.
const (
	RootManifest = "mark.mstp"
	CacheDir     = "cache"
	LogFile      = "sync.log"
)

// ErrRootManifest is returned when the root manifest cannot be read. Nothing
// is written in that case.
var ErrRootManifest = errors.New("could not read root manifest")

// Skip records a sub-manifest or entry that contributed nothing.
type Skip struct {
	// Path is the sub-manifest, relative to the project root.
	Path string
	// Ref is the offending entry; empty when the whole sub-manifest was unreadable.
	Ref string
	Err error
}

// Report summarizes one sync run.
type Report struct {
	// Processed counts dispatched sub-manifests, not entities.
	Processed int
	// LogPath is where the log was written; empty on a dry run.
	LogPath  string
	Created  []string
	Skipped  []Skip
	Failures []error
	DryRun   bool
}

// Syncer runs a sync over one project tree.
type Syncer struct {
	root      string
	fs        billy.Filesystem
	strict    bool
	dryRun    bool
	logger    *slog.Logger
	templates *scaffold.TemplateSet
}

// New returns a Syncer for the project at root.
func New(root string, opts ...Option) *Syncer {
	s := &Syncer{root: root}
	for _, opt := range opts {
		opt(s)
	}
	if s.fs == nil {
		s.fs = osfs.New(root)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

// Run syncs the project at root.
func Run(root string, opts ...Option) (*Report, error) {
	return New(root, opts...).Run()
}

// Run reads the root manifest, scaffolds every referenced entity and writes
// the sync log.
func (s *Syncer) Run() (*Report, error) {
	control := branding.ControlDir()
	rootManifest := filepath.Join(control, RootManifest)

	entries, err := manifest.ReadFile(s.fs, rootManifest)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRootManifest, err)
	}
	s.logger.Debug("read root manifest", "path", rootManifest, "entries", len(entries))

	scOpts := []scaffold.Option{
		scaffold.WithDisplayRoot(s.root),
		scaffold.WithDryRun(s.dryRun),
	}
	if s.templates != nil {
		scOpts = append(scOpts, scaffold.WithTemplates(s.templates))
	}
	sc, err := scaffold.New(s.fs, scOpts...)
	if err != nil {
		return nil, err
	}

	report := &Report{DryRun: s.dryRun}
	var log strings.Builder

	for _, entry := range entries {
		c, ok := manifest.CategoryOf(entry)
		if !ok {
			s.logger.Debug("ignoring entry", "entry", entry)
			continue
		}
		sub := filepath.Join(control, entry)
		if err := s.syncManifest(sc, sub, c, &log, report); err != nil {
			return nil, err
		}
		report.Processed++
	}

	if s.dryRun {
		return report, nil
	}

	cache := filepath.Join(control, CacheDir)
	if err := s.fs.MkdirAll(cache, 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory %s: %w", s.display(cache), err)
	}
	logPath := filepath.Join(cache, LogFile)
	if err := util.WriteFile(s.fs, logPath, []byte(log.String()), 0644); err != nil {
		return nil, fmt.Errorf("writing sync log %s: %w", s.display(logPath), err)
	}
	report.LogPath = s.display(logPath)

	return report, nil
}

// syncManifest scaffolds every entity listed in the sub-manifest at sub. Only
// errors that must abort the run are returned.
func (s *Syncer) syncManifest(sc *scaffold.Scaffolder, sub string, c manifest.Category, log *strings.Builder, report *Report) error {
	tmpl, err := sc.Templates().For(c)
	if err != nil {
		return err
	}
	fmt.Fprintf(log, "\n--- %s ---\n", tmpl.Header)

	refs, err := manifest.ReadFile(s.fs, sub)
	if err != nil {
		cause := errors.Unwrap(err)
		fmt.Fprintf(log, "⚠️ Skipped: %s (%v)\n", s.display(sub), cause)
		s.logger.Warn("skipping unreadable sub-manifest", "path", sub, "error", cause)
		report.Skipped = append(report.Skipped, Skip{Path: sub, Err: err})
		return nil
	}
	s.logger.Debug("syncing sub-manifest", "path", sub, "category", c, "entries", len(refs))

	for _, ref := range refs {
		e, err := entity.Resolve(sub, ref)
		if err != nil {
			if s.strict {
				return err
			}
			var re *entity.ResolveError
			reason := err
			if errors.As(err, &re) {
				reason = re.Err
			}
			fmt.Fprintf(log, "⚠️ Skipped entry %q in %s: %v\n", ref, s.display(sub), reason)
			s.logger.Warn("skipping malformed entry", "path", sub, "entry", ref, "error", reason)
			report.Skipped = append(report.Skipped, Skip{Path: sub, Ref: ref, Err: err})
			continue
		}

		res, err := sc.Ensure(e, c, log)
		if res != nil {
			report.Created = append(report.Created, res.Created...)
			for _, p := range res.Created {
				s.logger.Debug("created descriptor", "path", p, "entity", e.Name)
			}
		}
		if err != nil {
			if s.strict || !recoverable(err) {
				return err
			}
			s.logger.Warn("descriptor write failed", "entity", e.Name, "error", err)
			report.Failures = append(report.Failures, err)
		}
	}
	return nil
}

// recoverable reports whether a scaffolding error only affects its entity.
func recoverable(err error) bool {
	var we *scaffold.WriteError
	return errors.As(err, &we) || errors.Is(err, scaffold.ErrNoEntityDir)
}

func (s *Syncer) display(path string) string {
	return filepath.Join(s.root, path)
}
