package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/vvka-141/pkgdata/internal/files/filesystem"
	"github.com/vvka-141/pkgdata/pkg/pkgdata"
)

//go:embed all:templates
var templatesFS embed.FS

// projectDirPlaceholder is the template directory renamed to the project's package.
const projectDirPlaceholder = "__project__"

// DefaultTemplate is used when init is given no --template.
const DefaultTemplate = "basic"

// GetTemplatesFS returns the embedded templates filesystem for testing purposes.
// This allows tests to access embedded templates without filesystem I/O.
func GetTemplatesFS() embed.FS {
	return templatesFS
}

// Scaffolder handles project initialization from templates
type Scaffolder struct {
	log pkgdata.Logger
}

// NewScaffolder creates a new Scaffolder instance
func NewScaffolder(log pkgdata.Logger) *Scaffolder {
	return &Scaffolder{
		log: log,
	}
}

// CreateProject creates a new project from a template
func (s *Scaffolder) CreateProject(projectName, templateName, targetPath string) error {
	if err := ValidateProjectName(projectName); err != nil {
		return err
	}

	// Validate template exists
	templatePath := "templates/" + templateName
	if _, err := templatesFS.ReadDir(templatePath); err != nil {
		return fmt.Errorf("template '%s' not found: %w", templateName, pkgdata.ErrInvalidConfig)
	}

	// Check if target directory is empty
	isEmpty, err := isDirectoryEmpty(targetPath)
	if err != nil {
		return fmt.Errorf("failed to check target directory: %w", err)
	}
	if !isEmpty {
		return fmt.Errorf("target directory '%s' is not empty\n\npkgdata init requires an empty directory to avoid overwriting existing files.\n\nOptions:\n• Choose a different location\n• Remove existing files manually\n• Use a new directory name", targetPath)
	}

	if err := os.MkdirAll(targetPath, 0755); err != nil {
		return fmt.Errorf("%w: failed to create project directory: %w", pkgdata.ErrOutputFailed, err)
	}

	s.log.Verbose("Creating project '%s' at %s with template '%s'", projectName, targetPath, templateName)

	if err := s.copyTemplateFiles(templatePath, targetPath, projectName); err != nil {
		return fmt.Errorf("%w: failed to copy template files: %w", pkgdata.ErrOutputFailed, err)
	}

	s.log.Verbose("Project created successfully")
	return nil
}

// copyTemplateFiles recursively copies files from embedded template to target directory
func (s *Scaffolder) copyTemplateFiles(templatePath, targetPath, projectName string) error {
	return fs.WalkDir(templatesFS, templatePath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip the root template directory itself
		if p == templatePath {
			return nil
		}

		relPath := renamePath(strings.TrimPrefix(p, templatePath+"/"), projectName)
		targetFilePath := filepath.Join(targetPath, filepath.FromSlash(relPath))

		if d.IsDir() {
			s.log.Verbose("Creating directory: %s", relPath)
			return os.MkdirAll(targetFilePath, 0755)
		}

		content, err := templatesFS.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", p, err)
		}

		if _, err := os.Stat(targetFilePath); err == nil {
			s.log.Verbose("Keeping existing file: %s", relPath)
			return nil
		}

		s.log.Verbose("Creating file: %s", relPath)
		if err := os.WriteFile(targetFilePath, []byte(processTemplate(string(content), projectName)), 0644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", targetFilePath, err)
		}

		return nil
	})
}

// processTemplate replaces template variables in content
func processTemplate(content, projectName string) string {
	return strings.ReplaceAll(content, "{{PROJECT_NAME}}", projectName)
}

// renamePath substitutes the project name for placeholder path segments.
func renamePath(rel, projectName string) string {
	segments := strings.Split(rel, "/")
	for i, seg := range segments {
		if seg == projectDirPlaceholder {
			segments[i] = projectName
		}
	}
	return path.Join(segments...)
}

// ValidateProjectName checks that name can be used as a Python package name.
func ValidateProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("project name is empty: %w", pkgdata.ErrInvalidConfig)
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return fmt.Errorf("project name %q is not a valid package name (use letters, digits and underscores, not starting with a digit): %w", name, pkgdata.ErrInvalidConfig)
		}
	}
	return nil
}

// ProjectNameFromPath derives a package name from a directory path,
// lowercasing it and turning dashes, dots and spaces into underscores.
func ProjectNameFromPath(targetPath string) string {
	abs, err := filepath.Abs(targetPath)
	if err != nil {
		abs = targetPath
	}
	name := strings.ToLower(filepath.Base(abs))
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '.', ' ':
			return '_'
		}
		return r
	}, name)
}

// ListTemplates returns available template names
func ListTemplates() ([]string, error) {
	entries, err := templatesFS.ReadDir("templates")
	if err != nil {
		return nil, err
	}

	var templates []string
	for _, entry := range entries {
		if entry.IsDir() {
			templates = append(templates, entry.Name())
		}
	}

	return templates, nil
}

// managedFiles may already exist in a directory init writes to; they are
// kept as they are.
var managedFiles = map[string]bool{
	"pkgdata.yaml": true,
	".env":         true,
}

// isDirectoryEmpty checks if a directory is empty or doesn't exist.
// Returns (true, nil) if directory doesn't exist or holds only managed files.
// Returns (false, nil) if directory exists and contains files/subdirectories.
// Returns (false, error) if there's an error checking the directory.
func isDirectoryEmpty(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		// Directory doesn't exist - consider it "empty" (safe to create)
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check directory: %w", err)
	}

	if !info.IsDir() {
		return false, fmt.Errorf("path exists but is not a directory")
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return false, fmt.Errorf("failed to read directory: %w", err)
	}

	for _, entry := range entries {
		if !managedFiles[entry.Name()] {
			return false, nil
		}
	}
	return true, nil
}

// BuildFileTree renders the directory structure under root as a tree.
func BuildFileTree(provider filesystem.FileSystemProvider, root string) (string, error) {
	var sb strings.Builder
	sb.WriteString(root + "/\n")

	if err := writeTree(&sb, provider, root, ""); err != nil {
		return "", fmt.Errorf("failed to build file tree: %w", err)
	}
	return sb.String(), nil
}

func writeTree(sb *strings.Builder, provider filesystem.FileSystemProvider, dir, indent string) error {
	entries, err := provider.ReadDir(dir)
	if err != nil {
		return err
	}

	for i, entry := range entries {
		branch, childIndent := "├── ", indent+"│   "
		if i == len(entries)-1 {
			branch, childIndent = "└── ", indent+"    "
		}

		name := entry.Name()
		if entry.IsDir() {
			sb.WriteString(indent + branch + name + "/\n")
			if err := writeTree(sb, provider, filepath.Join(dir, name), childIndent); err != nil {
				return err
			}
			continue
		}
		sb.WriteString(indent + branch + name + "\n")
	}
	return nil
}
