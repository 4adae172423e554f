// Package locate finds an installed DCC executable by running discovery
// strategies in a fixed order: explicit override, then the cellar, then the
// vendor's conventional install path, then whatever the system (env var,
// registry) has recorded. First hit wins, and a hit is only ever a path
// this package just proved to be a regular file.
package locate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/itchio/wharf/state"
	"github.com/pkg/errors"
	"github.com/stagehand-dcc/stagehand/catalog"
	"github.com/stagehand-dcc/stagehand/syscfg"
)

// ExecutableNotFound means every strategy came up empty. The version itself
// is supported (the catalog had a spec), there's just no install to be found.
type ExecutableNotFound struct {
	App     catalog.App
	Version string
}

func (e *ExecutableNotFound) Error() string {
	return fmt.Sprintf("could not locate a %s %s executable", e.App, e.Version)
}

// Resolve returns the path to the executable for a spec, or *ExecutableNotFound.
// An override, when given, must point to an existing file and short-circuits
// every other source.
func Resolve(consumer *state.Consumer, spec catalog.Spec, cellarDir string, override string) (string, error) {
	if override != "" {
		stats, err := os.Stat(override)
		if err != nil {
			return "", errors.WithMessagef(err, "validating executable override %s", override)
		}
		if stats.IsDir() {
			return "", errors.Errorf("executable override %s is a directory", override)
		}

		consumer.Debugf("%s: using executable override %s", spec, override)
		return override, nil
	}

	if exe, ok := resolveCellar(consumer, spec, cellarDir); ok {
		return exe, nil
	}

	if spec.DefaultInstallDir != "" {
		if exe, ok := checkExe(filepath.Join(spec.DefaultInstallDir, filepath.FromSlash(spec.ExeRelPath))); ok {
			consumer.Debugf("%s: found at default install path %s", spec, exe)
			return exe, nil
		}
	}

	if installDir, ok := syscfg.New(consumer).QueryInstallPath(spec); ok {
		if exe, ok := checkExe(filepath.Join(installDir, filepath.FromSlash(spec.ExeRelPath))); ok {
			consumer.Debugf("%s: found via system config at %s", spec, exe)
			return exe, nil
		}
	}

	return "", errors.WithStack(&ExecutableNotFound{App: spec.App, Version: spec.Version})
}

// resolveCellar looks inside stagehand's own install directory. The exact
// archive-derived directory name is checked first; failing that, any
// directory mentioning the version is scanned, so installs made by older
// releases (or renamed by hand) keep working.
func resolveCellar(consumer *state.Consumer, spec catalog.Spec, cellarDir string) (string, bool) {
	if cellarDir == "" {
		return "", false
	}

	relExe := filepath.FromSlash(spec.ExeRelPath)

	if spec.InstallDirName != "" {
		if exe, ok := checkExe(filepath.Join(cellarDir, spec.InstallDirName, relExe)); ok {
			consumer.Debugf("%s: found in cellar at %s", spec, exe)
			return exe, true
		}
	}

	entries, err := os.ReadDir(cellarDir)
	if err != nil {
		// a missing cellar just means nothing was ever installed here
		return "", false
	}

	for _, entry := range entries {
		if !entry.IsDir() || !strings.Contains(entry.Name(), spec.Version) {
			continue
		}
		if exe, ok := checkExe(filepath.Join(cellarDir, entry.Name(), relExe)); ok {
			consumer.Debugf("%s: found in cellar at %s", spec, exe)
			return exe, true
		}
	}

	return "", false
}

func checkExe(path string) (string, bool) {
	stats, err := os.Stat(path)
	if err != nil || stats.IsDir() {
		return "", false
	}
	return path, true
}
