// Package inspector implements domain.RepositoryInspector with go-git.
// Remote repositories are shallow-cloned into a temp dir; local paths are
// inspected in place, which also keeps tests hermetic.
package inspector

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"

	"github.com/releasegate/releasegate/internal/domain"
)

// Build manifests we recognize. Presence of any one of them is the
// structure/dependency baseline for a deployable component.
var manifestNames = []string{
	"go.mod",
	"pom.xml",
	"build.gradle",
	"build.gradle.kts",
	"package.json",
	"pyproject.toml",
	"requirements.txt",
}

var ciNames = []string{
	"Dockerfile",
	"Jenkinsfile",
	".gitlab-ci.yml",
}

// GitInspector clones and inspects component repositories.
type GitInspector struct{}

func New() *GitInspector {
	return &GitInspector{}
}

// Inspect checks out the component's repository and reports on its
// structure, dependency manifest, and API contract.
func (g *GitInspector) Inspect(ctx context.Context, repositoryURL, component string) (*domain.InspectionReport, error) {
	path, cleanup, err := g.checkout(ctx, repositoryURL)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	report := &domain.InspectionReport{
		Component:     component,
		RepositoryURL: repositoryURL,
	}

	manifest := firstExisting(path, manifestNames)
	if manifest == "" {
		report.Issues = append(report.Issues, "no build manifest found")
	} else {
		report.DependenciesValid = manifestNonEmpty(filepath.Join(path, manifest))
		if !report.DependenciesValid {
			report.Issues = append(report.Issues, fmt.Sprintf("build manifest %s is empty", manifest))
		}
	}
	report.StructureValid = manifest != ""

	if firstExisting(path, ciNames) == "" {
		// Not fatal, but worth surfacing in the checklist notes.
		report.Issues = append(report.Issues, "no CI configuration found")
	}

	contract, err := findContract(path)
	if err != nil {
		return nil, fmt.Errorf("scanning %s for contracts: %w", component, err)
	}
	report.HasContract = contract != ""

	return report, nil
}

// checkout materializes the repository on disk. Local directories are used
// as-is; anything else is shallow-cloned into a temp dir that the returned
// cleanup removes.
func (g *GitInspector) checkout(ctx context.Context, repositoryURL string) (string, func(), error) {
	if info, err := os.Stat(repositoryURL); err == nil && info.IsDir() {
		return repositoryURL, func() {}, nil
	}

	dir, err := os.MkdirTemp("", "releasegate-inspect-*")
	if err != nil {
		return "", nil, fmt.Errorf("creating clone dir: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	_, err = git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:   repositoryURL,
		Depth: 1,
	})
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("cloning %s: %w", repositoryURL, err)
	}
	return dir, cleanup, nil
}

func firstExisting(root string, names []string) string {
	for _, name := range names {
		if _, err := os.Stat(filepath.Join(root, name)); err == nil {
			return name
		}
	}
	return ""
}

func manifestNonEmpty(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0
}

// findContract looks for an OpenAPI or Swagger document anywhere in the
// checkout except the .git metadata.
func findContract(root string) (string, error) {
	var found string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		name := strings.ToLower(d.Name())
		base := strings.TrimSuffix(name, filepath.Ext(name))
		ext := filepath.Ext(name)
		if (base == "openapi" || base == "swagger") && (ext == ".yaml" || ext == ".yml" || ext == ".json") {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return found, nil
}
