package changelog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ariel-frischer/changelog/internal/git"
	"github.com/ariel-frischer/changelog/internal/markdown"
	"github.com/ariel-frischer/changelog/internal/repoinfo"
)

// DefaultOutput is the file the changelog is written to.
const DefaultOutput = "CHANGELOG.md"

// Options configures Run. Zero values select the defaults.
type Options struct {
	// Output is the changelog path, relative to the project directory.
	Output     string
	TagPattern string
	// Remotes is the lookup order of the git remote extractor.
	Remotes []string
	Clock   func() time.Time
	Logf    repoinfo.Logf
}

// Run generates the changelog of the repository containing dir and writes
// it to the output file inside dir, replacing any existing file. It returns
// the path written.
func Run(dir string, opts Options) (string, error) {
	repo, err := git.Open(dir)
	if err != nil {
		return "", err
	}

	g := &Generator{
		Repo:       repo,
		Dir:        dir,
		Extractors: repoinfo.Default(opts.Remotes),
		TagPattern: opts.TagPattern,
		Clock:      opts.Clock,
		Logf:       opts.Logf,
	}
	doc, err := g.Generate()
	if err != nil {
		return "", err
	}

	output := opts.Output
	if output == "" {
		output = DefaultOutput
	}
	if !filepath.IsAbs(output) {
		output = filepath.Join(dir, output)
	}
	if err := WriteFile(output, doc); err != nil {
		return "", err
	}
	logDebug("[changelog] wrote %s", output)
	return output, nil
}

// WriteFile renders doc into path, creating or truncating the file.
func WriteFile(path string, doc *markdown.Document) error {
	if err := os.WriteFile(path, []byte(doc.Render()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
