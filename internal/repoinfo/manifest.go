package repoinfo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"golang.org/x/mod/modfile"
)

// Manifest file names.
const (
	CargoManifest = "Cargo.toml"
	NPMManifest   = "package.json"
	GoManifest    = "go.mod"
)

var (
	// ErrNoPackageSection is returned when Cargo.toml has no [package] table.
	ErrNoPackageSection = errors.New("no package section inside of Cargo.toml")
	// ErrNoRepositoryField is returned when a manifest has no repository URL.
	ErrNoRepositoryField = errors.New("no repository field in manifest")
	// ErrNoModulePath is returned when go.mod has no module directive.
	ErrNoModulePath = errors.New("no module directive in go.mod")
)

// manifestApplicable reports whether name exists as a regular file in dir.
func manifestApplicable(name string) func(dir string) bool {
	return func(dir string) bool {
		info, err := os.Stat(filepath.Join(dir, name))
		return err == nil && !info.IsDir()
	}
}

func loadManifest(path string, parser koanf.Parser) (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return k, nil
}

// CargoExtractor reads package.repository from Cargo.toml. A repository
// inherited with `repository.workspace = true` is read from
// workspace.package.repository.
func CargoExtractor() Extractor {
	return Extractor{
		Name:         "cargo",
		Priority:     LanguagePriority,
		IsApplicable: manifestApplicable(CargoManifest),
		Extract: func(dir string) (RepoInformation, error) {
			k, err := loadManifest(filepath.Join(dir, CargoManifest), toml.Parser())
			if err != nil {
				return RepoInformation{}, err
			}

			if k.Get("package") == nil {
				return RepoInformation{}, ErrNoPackageSection
			}

			var repository string
			switch v := k.Get("package.repository").(type) {
			case string:
				repository = v
			case map[string]any:
				if inherit, _ := v["workspace"].(bool); inherit {
					repository, _ = k.Get("workspace.package.repository").(string)
				}
			}
			if repository == "" {
				return RepoInformation{}, ErrNoRepositoryField
			}
			return FromURL(repository)
		},
	}
}

// NPMExtractor reads the repository field of package.json, either the string
// form (URL or "github:owner/repo" / "owner/repo" shorthand) or the object
// form with a url key.
func NPMExtractor() Extractor {
	return Extractor{
		Name:         "npm",
		Priority:     LanguagePriority,
		IsApplicable: manifestApplicable(NPMManifest),
		Extract: func(dir string) (RepoInformation, error) {
			k, err := loadManifest(filepath.Join(dir, NPMManifest), json.Parser())
			if err != nil {
				return RepoInformation{}, err
			}

			var repository string
			switch v := k.Get("repository").(type) {
			case string:
				repository = v
			case map[string]any:
				repository, _ = v["url"].(string)
			}
			if repository == "" {
				return RepoInformation{}, ErrNoRepositoryField
			}
			return FromURL(expandNPMShorthand(repository))
		},
	}
}

// npmHosts maps package.json repository shorthand prefixes to hosts.
var npmHosts = map[string]string{
	"github":    "github.com",
	"gitlab":    "gitlab.com",
	"bitbucket": "bitbucket.org",
}

func expandNPMShorthand(v string) string {
	if strings.Contains(v, "://") || scpLikePattern.MatchString(v) {
		return v
	}
	prefix, rest, found := strings.Cut(v, ":")
	if !found {
		return "https://" + SupportedHost + "/" + v
	}
	if host, ok := npmHosts[prefix]; ok {
		return "https://" + host + "/" + rest
	}
	return v
}

// GoModExtractor derives the repository from the module path in go.mod.
// Module paths outside github.com yield an UnsupportedHostError.
func GoModExtractor() Extractor {
	return Extractor{
		Name:         "gomod",
		Priority:     LanguagePriority,
		IsApplicable: manifestApplicable(GoManifest),
		Extract: func(dir string) (RepoInformation, error) {
			path := filepath.Join(dir, GoManifest)
			data, err := os.ReadFile(path)
			if err != nil {
				return RepoInformation{}, fmt.Errorf("reading %s: %w", GoManifest, err)
			}

			f, err := modfile.ParseLax(path, data, nil)
			if err != nil {
				return RepoInformation{}, fmt.Errorf("parsing %s: %w", GoManifest, err)
			}
			if f.Module == nil || f.Module.Mod.Path == "" {
				return RepoInformation{}, ErrNoModulePath
			}
			return FromURL("https://" + f.Module.Mod.Path)
		},
	}
}

// Default returns the standard extractor chain: the git remote first, then
// the ecosystem manifests. When several manifests resolve, the later one in
// this list wins.
func Default(remotes []string) []Extractor {
	return []Extractor{
		GitExtractor(remotes),
		GoModExtractor(),
		NPMExtractor(),
		CargoExtractor(),
	}
}
