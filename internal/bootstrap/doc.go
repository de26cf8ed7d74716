// Package bootstrap generates a POSIX shell script that prepares an isolated
// Python environment for a project.
//
// The script creates a virtual environment, upgrades pip, optionally installs
// the project itself in editable mode, installs the requested packages and
// finally runs a command inside the environment. Every value substituted into
// the script is shell-quoted; the script text itself comes from a fixed
// template.
//
// Example:
//
//	opts := bootstrap.DefaultOptions()
//	opts.PackagesToInstall = []string{"requests"}
//	opts.CommandLine = "pytest -q"
//	err := bootstrap.Write(osfs.New("."), opts, false, logger)
package bootstrap
