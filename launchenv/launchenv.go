// Package launchenv composes the child process environment for a DCC
// launch. It starts from the inherited environment and overlays the
// launch-specific variables: ordered path lists joined with the platform
// list separator, the managed bootstrap script directory, and the site-path
// contract the in-app bootstrap reads.
package launchenv

import (
	"os"
	"strings"

	"github.com/stagehand-dcc/stagehand/catalog"
)

// SitePathSeparator is fixed regardless of platform: the in-app bootstrap
// scripts split the site variable on ';' everywhere.
const SitePathSeparator = ";"

// Options carries every launch-specific input to the environment.
// Path lists keep their caller-supplied order.
type Options struct {
	Spec catalog.Spec

	PluginPaths  []string
	ModulePaths  []string
	PythonPaths  []string
	StartupPaths []string

	// SitePaths is already fully assembled (prefix site dir first, if requested)
	SitePaths []string

	// BootstrapDir is the managed script dir injected so the in-process
	// bootstrap runs; which variable receives it depends on the app
	BootstrapDir string

	// PythonStartupFile is set for plain-interpreter variants (mobupy),
	// which read PYTHONSTARTUP rather than a startup-scripts directory
	PythonStartupFile string

	// ExtraVars are app-specific fixed assignments (e.g. Blender's
	// BLENDER_SYSTEM_SCRIPTS), applied last
	ExtraVars map[string]string
}

// Build returns the full env block for the child process. Any variable that
// had an inherited value and receives new paths keeps the inherited value as
// a suffix: launches add to the user's environment, they never clobber it.
func Build(baseEnv []string, opts Options) []string {
	env := append([]string{}, baseEnv...)
	names := opts.Spec.Env

	// child output should reach the terminal promptly, and debugpy's
	// frozen-module warning is pure noise inside a DCC
	env = Set(env, "PYTHONUNBUFFERED", "1")
	env = Set(env, "PYDEVD_DISABLE_FILE_VALIDATION", "1")

	env = setPathList(env, names.PluginPath, opts.PluginPaths)
	env = setPathList(env, names.ModulePath, opts.ModulePaths)

	// the bootstrap dir always goes first on interpreter search paths, so
	// the managed startup code runs before anything the caller supplied
	pythonPaths := opts.PythonPaths
	startupPaths := opts.StartupPaths
	if opts.BootstrapDir != "" {
		switch {
		case names.StartupPath != "":
			startupPaths = prepend(opts.BootstrapDir, startupPaths)
		case names.PythonPath != "":
			pythonPaths = prepend(opts.BootstrapDir, pythonPaths)
		case names.UserScripts != "":
			env = Set(env, names.UserScripts, opts.BootstrapDir)
		}
	}

	env = setPathList(env, names.PythonPath, pythonPaths)
	env = setPathList(env, names.StartupPath, startupPaths)

	if names.SitePath != "" && len(opts.SitePaths) > 0 {
		env = Set(env, names.SitePath, strings.Join(opts.SitePaths, SitePathSeparator))
	}

	if opts.PythonStartupFile != "" {
		env = Set(env, "PYTHONSTARTUP", opts.PythonStartupFile)
	}

	for name, value := range opts.ExtraVars {
		env = Set(env, name, value)
	}

	return env
}

// setPathList assigns a joined path list to a variable, new paths first,
// appending any inherited value.
func setPathList(env []string, name string, paths []string) []string {
	if name == "" || len(paths) == 0 {
		return env
	}

	joined := strings.Join(paths, string(os.PathListSeparator))
	if inherited, ok := Get(env, name); ok && inherited != "" {
		joined = joined + string(os.PathListSeparator) + inherited
	}

	return Set(env, name, joined)
}

// Set assigns name=value in an env block, replacing an existing assignment
// if there is one.
func Set(env []string, name string, value string) []string {
	prefix := name + "="
	for i, entry := range env {
		if strings.HasPrefix(entry, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}

// Get looks a variable up in an env block.
func Get(env []string, name string) (string, bool) {
	prefix := name + "="
	for _, entry := range env {
		if strings.HasPrefix(entry, prefix) {
			return strings.TrimPrefix(entry, prefix), true
		}
	}
	return "", false
}

func prepend(path string, paths []string) []string {
	return append([]string{path}, paths...)
}
