// Package repoinfo determines which GitHub project a source tree belongs to.
//
// Identity comes from a chain of extractors, each reading one metadata source
// (a git remote, a package manifest). The chain is an explicit list passed by
// the caller; Default builds the standard one.
package repoinfo

import (
	"errors"
	"fmt"
	"sort"
)

const (
	// GenericPriority is used by extractors that work for any project,
	// such as the git remote extractor.
	GenericPriority = 0
	// LanguagePriority is used by extractors that read an ecosystem manifest
	// (Cargo.toml, package.json, go.mod).
	LanguagePriority = 50
)

// ErrNoRepoInformation is returned when no applicable extractor succeeded.
var ErrNoRepoInformation = errors.New("no extractor could resolve repository information")

// RepoInformation identifies a project on the hosting service.
type RepoInformation struct {
	Owner string
	Repo  string
}

func (r RepoInformation) String() string {
	return r.Owner + "/" + r.Repo
}

// Extractor is one strategy for resolving repository information.
// Lower priorities run first.
type Extractor struct {
	Name         string
	Priority     int
	IsApplicable func(dir string) bool
	Extract      func(dir string) (RepoInformation, error)
}

// Logf receives one line per failed extraction.
type Logf func(format string, args ...any)

// Resolve runs every applicable extractor in ascending priority order and
// returns the result of the last one that succeeded. Later (more specific)
// sources therefore override earlier generic ones; a failing extractor is
// logged and leaves the previous result in place. Extractors with equal
// priority keep their list order.
func Resolve(dir string, extractors []Extractor, logf Logf) (RepoInformation, error) {
	sorted := make([]Extractor, len(extractors))
	copy(sorted, extractors)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	var (
		info     RepoInformation
		resolved bool
		failures []error
	)
	for _, e := range sorted {
		if !e.IsApplicable(dir) {
			logDebug("[repoinfo] %s: not applicable", e.Name)
			continue
		}

		got, err := e.Extract(dir)
		if err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", e.Name, err))
			if logf != nil {
				logf("extractor %s: %v", e.Name, err)
			}
			continue
		}

		logDebug("[repoinfo] %s: resolved %s", e.Name, got)
		info, resolved = got, true
	}

	if !resolved {
		return RepoInformation{}, errors.Join(append([]error{ErrNoRepoInformation}, failures...)...)
	}
	return info, nil
}

var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for extractor tracing.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}
