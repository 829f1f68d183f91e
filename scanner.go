package libdep

import (
	"context"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jward/libdep/internal/store"
)

// scanner reads files from the collection, extracts their include targets
// and files each target into a Dependencies value. When a cache is set,
// files whose content hash is unchanged are served from it.
type scanner struct {
	fsys      fs.FS
	reg       *Registry
	extractor Extractor
	cache     *store.Store
	logger    *log.Logger
}

// includes returns the include targets of the file at p.
func (s *scanner) includes(ctx context.Context, p string) ([]string, error) {
	src, err := fs.ReadFile(s.fsys, p)
	if err != nil {
		return nil, err
	}
	if s.cache == nil {
		return s.extractor.Includes(ctx, p, src)
	}

	hash := store.ContentHash(src)
	f, err := s.cache.FileByPath(p)
	if err != nil {
		s.logger.Warn("scan cache lookup", "file", p, "err", err)
	} else if f != nil && f.Hash == hash {
		targets, err := s.cache.IncludesByFile(f.ID)
		if err == nil {
			s.logger.Debug("scan cache hit", "file", p)
			return targets, nil
		}
		s.logger.Warn("scan cache read", "file", p, "err", err)
	}

	targets, err := s.extractor.Includes(ctx, p, src)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("scan cache miss", "file", p, "includes", len(targets))
	rec := &store.File{Path: p, Hash: hash, ScannedAt: time.Now()}
	if err := s.cache.ReplaceFile(rec, targets); err != nil {
		s.logger.Warn("scan cache write", "file", p, "err", err)
	}
	return targets, nil
}

// scanTree scans every file below dir into d. With stripPrefix, files are
// named relative to dir, which is how include trees name their headers;
// otherwise they keep their root-relative path. A missing dir is not an
// error. An unreadable file or directory is logged and skipped.
func (s *scanner) scanTree(ctx context.Context, dir string, stripPrefix bool, d *Dependencies) {
	if !exists(s.fsys, dir) {
		return
	}
	_ = fs.WalkDir(s.fsys, dir, func(p string, e fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Warn("skipping unreadable path", "path", p, "err", err)
			if e != nil && e.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if e.IsDir() {
			return nil
		}
		name := p
		if stripPrefix {
			name = strings.TrimPrefix(p, dir+"/")
		}
		targets, err := s.includes(ctx, p)
		if err != nil {
			s.logger.Warn("skipping file", "file", p, "err", err)
			return nil
		}
		for _, t := range targets {
			d.record(s.reg, name, t)
		}
		return nil
	})
}

// scanModule builds the primary dependencies of module under policy.
func (s *scanner) scanModule(ctx context.Context, module string, policy ScanPolicy) *Dependencies {
	layout := s.reg.Layout()
	d := newDependencies(module)
	s.scanTree(ctx, layout.IncludeDir(module), true, d)
	if policy.Sources {
		s.scanTree(ctx, layout.SourceDir(module), false, d)
	}
	if policy.Tests {
		s.scanTree(ctx, layout.TestDir(module), false, d)
	}
	return d
}

// scanFiles scans an explicit list of files into d. Each file is read at
// its path in the scanner's filesystem and named by that path joined under
// prefix.
func (s *scanner) scanFiles(ctx context.Context, prefix string, files []string, d *Dependencies) {
	for _, p := range files {
		name := path.Join(prefix, p)
		targets, err := s.includes(ctx, p)
		if err != nil {
			s.logger.Warn("skipping file", "file", name, "err", err)
			continue
		}
		for _, t := range targets {
			d.record(s.reg, name, t)
		}
	}
}
