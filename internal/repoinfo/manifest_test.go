package repoinfo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	return dir
}

func TestManifestExtractors(t *testing.T) {
	t.Parallel()

	widget := RepoInformation{Owner: "acme", Repo: "widget"}

	tests := map[string]struct {
		extractor  Extractor
		file       string
		content    string
		want       RepoInformation
		wantErr    error
		wantAnyErr bool
	}{
		"cargo package repository": {
			extractor: CargoExtractor(),
			file:      CargoManifest,
			content:   "[package]\nname = \"widget\"\nrepository = \"https://github.com/acme/widget\"\n",
			want:      widget,
		},
		"cargo workspace inherited repository": {
			extractor: CargoExtractor(),
			file:      CargoManifest,
			content: "[workspace.package]\nrepository = \"https://github.com/acme/widget.git\"\n\n" +
				"[package]\nname = \"widget\"\nrepository = { workspace = true }\n",
			want: widget,
		},
		"cargo without package section": {
			extractor: CargoExtractor(),
			file:      CargoManifest,
			content:   "[workspace]\nmembers = [\"a\"]\n",
			wantErr:   ErrNoPackageSection,
		},
		"cargo without repository": {
			extractor: CargoExtractor(),
			file:      CargoManifest,
			content:   "[package]\nname = \"widget\"\n",
			wantErr:   ErrNoRepositoryField,
		},
		"cargo invalid toml": {
			extractor:  CargoExtractor(),
			file:       CargoManifest,
			content:    "[package\n",
			wantAnyErr: true,
		},
		"npm string url": {
			extractor: NPMExtractor(),
			file:      NPMManifest,
			content:   `{"name": "widget", "repository": "https://github.com/acme/widget"}`,
			want:      widget,
		},
		"npm object url": {
			extractor: NPMExtractor(),
			file:      NPMManifest,
			content:   `{"repository": {"type": "git", "url": "git+https://github.com/acme/widget.git"}}`,
			want:      widget,
		},
		"npm github shorthand": {
			extractor: NPMExtractor(),
			file:      NPMManifest,
			content:   `{"repository": "github:acme/widget"}`,
			want:      widget,
		},
		"npm bare shorthand": {
			extractor: NPMExtractor(),
			file:      NPMManifest,
			content:   `{"repository": "acme/widget"}`,
			want:      widget,
		},
		"npm gitlab shorthand": {
			extractor:  NPMExtractor(),
			file:       NPMManifest,
			content:    `{"repository": "gitlab:acme/widget"}`,
			wantAnyErr: true,
		},
		"npm without repository": {
			extractor: NPMExtractor(),
			file:      NPMManifest,
			content:   `{"name": "widget"}`,
			wantErr:   ErrNoRepositoryField,
		},
		"go module path": {
			extractor: GoModExtractor(),
			file:      GoManifest,
			content:   "module github.com/acme/widget/v2\n\ngo 1.22\n",
			want:      widget,
		},
		"go module on other host": {
			extractor:  GoModExtractor(),
			file:       GoManifest,
			content:    "module example.com/widget\n",
			wantAnyErr: true,
		},
		"go.mod without module": {
			extractor: GoModExtractor(),
			file:      GoManifest,
			content:   "go 1.22\n",
			wantErr:   ErrNoModulePath,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := writeManifest(t, tt.file, tt.content)
			require.True(t, tt.extractor.IsApplicable(dir))

			got, err := tt.extractor.Extract(dir)
			switch {
			case tt.wantErr != nil:
				require.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			case tt.wantAnyErr:
				require.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestManifestExtractors_NotApplicableWithoutFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, e := range []Extractor{CargoExtractor(), NPMExtractor(), GoModExtractor()} {
		assert.False(t, e.IsApplicable(dir), e.Name)
	}
}

func TestDefault(t *testing.T) {
	t.Parallel()

	chain := Default(nil)
	names := make([]string, 0, len(chain))
	for _, e := range chain {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"git", "gomod", "npm", "cargo"}, names)
	assert.Equal(t, GenericPriority, chain[0].Priority)
	for _, e := range chain[1:] {
		assert.Equal(t, LanguagePriority, e.Priority, e.Name)
	}
}
