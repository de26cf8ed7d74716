package bootstrap

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/vvka-141/pkgdata/pkg/pkgdata"
)

// Defaults applied by DefaultOptions and by Render for empty fields.
const (
	DefaultScriptName = "bootstrap.sh"
	DefaultPython     = "python3"
	DefaultEnvDir     = ".venv"
)

// Options describes the environment the generated script builds.
type Options struct {
	ScriptName        string
	Python            string
	EnvDir            string
	PackagesToInstall []string

	// InstallSelf installs the current project with "pip install -e .".
	InstallSelf bool

	// CommandLine runs inside the environment once installation finishes.
	// It is split on whitespace and each word is quoted.
	CommandLine string

	// Env is exported before anything else runs.
	Env map[string]string
}

// DefaultOptions returns options with the default script name, interpreter
// and environment directory.
func DefaultOptions() Options {
	return Options{
		ScriptName: DefaultScriptName,
		Python:     DefaultPython,
		EnvDir:     DefaultEnvDir,
	}
}

const scriptTemplate = `#!/bin/sh
# Generated by pkgdata bootstrap.
set -eu

PYTHON={{ quote .Python }}
ENV_DIR={{ quote .EnvDir }}
{{ range .Env }}export {{ .Key }}={{ quote .Value }}
{{ end }}
if [ ! -d "$ENV_DIR" ]; then
    "$PYTHON" -m venv "$ENV_DIR"
fi
BIN_DIR="$ENV_DIR/bin"
PATH="$BIN_DIR:$PATH"
export PATH

python -m pip install --upgrade pip
{{ if .InstallSelf }}python -m pip install -e .
{{ end }}{{ range .Packages }}python -m pip install {{ quote . }}
{{ end }}{{ if .Command }}
exec {{ .Command }}
{{ end }}`

var script = template.Must(template.New("bootstrap").Funcs(template.FuncMap{
	"quote": ShellQuote,
}).Parse(scriptTemplate))

type envVar struct {
	Key   string
	Value string
}

type scriptData struct {
	Python      string
	EnvDir      string
	Env         []envVar
	InstallSelf bool
	Packages    []string
	Command     string
}

// Validate fills empty fields with defaults and rejects values the script
// cannot carry.
func (o *Options) Validate() error {
	var errs []error

	if o.ScriptName == "" {
		o.ScriptName = DefaultScriptName
	}
	if o.Python == "" {
		o.Python = DefaultPython
	}
	if o.EnvDir == "" {
		o.EnvDir = DefaultEnvDir
	}

	for i, pkg := range o.PackagesToInstall {
		if strings.TrimSpace(pkg) == "" {
			errs = append(errs, fmt.Errorf("package %d is empty: %w", i+1, pkgdata.ErrInvalidConfig))
		}
	}
	for key := range o.Env {
		if !isEnvName(key) {
			errs = append(errs, fmt.Errorf("environment variable name %q is invalid: %w", key, pkgdata.ErrInvalidConfig))
		}
	}

	return errors.Join(errs...)
}

// Render returns the script text for opts.
func Render(opts Options) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	data := scriptData{
		Python:      opts.Python,
		EnvDir:      opts.EnvDir,
		InstallSelf: opts.InstallSelf,
	}
	for _, pkg := range opts.PackagesToInstall {
		data.Packages = append(data.Packages, strings.TrimSpace(pkg))
	}

	keys := make([]string, 0, len(opts.Env))
	for k := range opts.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		data.Env = append(data.Env, envVar{Key: k, Value: opts.Env[k]})
	}

	if words := strings.Fields(opts.CommandLine); len(words) > 0 {
		quoted := make([]string, len(words))
		for i, w := range words {
			quoted[i] = ShellQuote(w)
		}
		data.Command = strings.Join(quoted, " ")
	}

	var buf bytes.Buffer
	if err := script.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render bootstrap script: %w", err)
	}
	return buf.Bytes(), nil
}

// Write renders the script and writes it to fsys as an executable file.
// In dry-run mode the script is only logged.
func Write(fsys billy.Filesystem, opts Options, dryRun bool, log pkgdata.Logger) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	content, err := Render(opts)
	if err != nil {
		return err
	}
	log.Verbose("Bootstrap script contents:\n%s", content)

	if dryRun {
		log.Info("Would write bootstrap script %s", opts.ScriptName)
		return nil
	}

	if err := util.WriteFile(fsys, opts.ScriptName, content, 0755); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", pkgdata.ErrOutputFailed, opts.ScriptName, err)
	}
	log.Info("Wrote bootstrap script %s", opts.ScriptName)
	return nil
}

// ShellQuote returns s quoted for a POSIX shell. Words made only of safe
// characters are returned unchanged.
func ShellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.IndexFunc(s, isUnsafe) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func isUnsafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	return !strings.ContainsRune("_@%+=:,./-", r)
}

func isEnvName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
