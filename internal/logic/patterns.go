package logic

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/idelchi/cryptobro/internal/config"
	"github.com/idelchi/cryptobro/internal/filter"
	"github.com/idelchi/cryptobro/pkg/pathmatch"
)

// loadPatterns merges flag and file-based include/exclude patterns.
func loadPatterns(fsys afero.Fs, cfg *config.Config) (includes, excludes []string, err error) {
	includes = append(includes, cfg.Include...)
	excludes = append(excludes, cfg.Exclude...)

	if cfg.IncludeFrom != "" {
		patterns, err := filter.LoadPatterns(fsys, cfg.IncludeFrom)
		if err != nil {
			return nil, nil, fmt.Errorf("loading include patterns: %w", err)
		}

		includes = append(includes, patterns...)
	}

	if cfg.ExcludeFrom != "" {
		patterns, err := filter.LoadPatterns(fsys, cfg.ExcludeFrom)
		if err != nil {
			return nil, nil, fmt.Errorf("loading exclude patterns: %w", err)
		}

		excludes = append(excludes, patterns...)
	}

	return includes, excludes, nil
}

func buildFilter(fsys afero.Fs, cfg *config.Config) (*filter.Filter, error) {
	includes, excludes, err := loadPatterns(fsys, cfg)
	if err != nil {
		return nil, err
	}

	flt, err := filter.NewFilter(includes, excludes)
	if err != nil {
		return nil, fmt.Errorf("building candidate filter: %w", err)
	}

	return flt, nil
}

// Check reports how many files in the data namespace each include/exclude
// pattern matches. It fails if any pattern matches nothing.
func Check(fsys afero.Fs, cfg *config.Config, out io.Writer) error {
	includes, excludes, err := loadPatterns(fsys, cfg)
	if err != nil {
		return err
	}

	if len(includes) == 0 && len(excludes) == 0 {
		return errors.New("no include or exclude patterns to check")
	}

	records, err := filter.NewLister(fsys, nil).List(cfg.Data)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(records))
	for _, record := range records {
		names = append(names, record.Name)
	}

	var failures int

	failures += checkPatterns(out, "include", includes, names, cfg.Quiet)
	failures += checkPatterns(out, "exclude", excludes, names, cfg.Quiet)

	if failures > 0 {
		return fmt.Errorf("%d pattern(s) matched no files in %q", failures, cfg.Data)
	}

	return nil
}

// checkPatterns tests each pattern individually against names.
// Returns the number of patterns that matched zero files.
func checkPatterns(out io.Writer, kind string, patterns, names []string, quiet bool) int {
	var failures int

	for _, pattern := range patterns {
		matcher, err := pathmatch.NewMatcher([]string{pattern})
		if err != nil {
			fmt.Fprintf(out, "%s: %s: invalid pattern: %v\n", kind, pattern, err)

			failures++

			continue
		}

		var count int

		for _, name := range names {
			if matcher.MatchAny(name) {
				count++
			}
		}

		if count == 0 {
			fmt.Fprintf(out, "%s: %s: 0 files (ERROR)\n", kind, pattern)

			failures++
		} else if !quiet {
			fmt.Fprintf(out, "%s: %s: %d files\n", kind, pattern, count)
		}
	}

	return failures
}
