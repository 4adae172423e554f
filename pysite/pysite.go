// Package pysite discovers the caller's active Python environment so its
// site-packages can be exposed to a DCC's embedded interpreter. Mixing
// site-packages across interpreter versions breaks native extensions, so
// discovery always comes with a version check against the catalog.
package pysite

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/itchio/wharf/state"
	"github.com/pkg/errors"
	"github.com/stagehand-dcc/stagehand/catalog"
)

// InterpreterMismatch means the active Python's version differs from what
// the requested DCC version embeds.
type InterpreterMismatch struct {
	Spec     catalog.Spec
	Required string
	Actual   string
}

func (e *InterpreterMismatch) Error() string {
	return fmt.Sprintf(
		"%s embeds Python %s but the active environment runs Python %s; "+
			"drop --include-prefix-site or switch environments",
		e.Spec, e.Required, e.Actual)
}

// Site describes the active Python environment.
type Site struct {
	// PythonVersion is major.minor, e.g. "3.11"
	PythonVersion string

	// PurelibDir is the environment's site-packages directory
	PurelibDir string
}

const probeProgram = `import sys, sysconfig
print("%d.%d" % sys.version_info[:2])
print(sysconfig.get_paths()["purelib"])`

// Discover locates the active python (the virtualenv's if one is active,
// PATH otherwise) and asks it for its version and site-packages dir.
func Discover(consumer *state.Consumer, env []string) (Site, error) {
	python, err := findPython(env)
	if err != nil {
		return Site{}, err
	}
	consumer.Debugf("probing python at %s", python)

	output, err := exec.Command(python, "-c", probeProgram).Output()
	if err != nil {
		return Site{}, errors.WithMessagef(err, "probing python at %s", python)
	}

	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	if len(lines) != 2 {
		return Site{}, errors.Errorf("unexpected output probing python at %s: %q", python, output)
	}

	return Site{
		PythonVersion: strings.TrimSpace(lines[0]),
		PurelibDir:    strings.TrimSpace(lines[1]),
	}, nil
}

// Check enforces the interpreter contract. Call it before injecting the
// prefix site dir; there's no reason versions need to match otherwise.
func Check(spec catalog.Spec, site Site) error {
	if site.PythonVersion != spec.PythonVersion {
		return errors.WithStack(&InterpreterMismatch{
			Spec:     spec,
			Required: spec.PythonVersion,
			Actual:   site.PythonVersion,
		})
	}
	return nil
}

func findPython(env []string) (string, error) {
	for _, entry := range env {
		if strings.HasPrefix(entry, "VIRTUAL_ENV=") {
			venv := strings.TrimPrefix(entry, "VIRTUAL_ENV=")
			if runtime.GOOS == "windows" {
				return filepath.Join(venv, "Scripts", "python.exe"), nil
			}
			return filepath.Join(venv, "bin", "python"), nil
		}
	}

	for _, name := range []string{"python3", "python"} {
		if python, err := exec.LookPath(name); err == nil {
			return python, nil
		}
	}

	return "", errors.New("no python found: --include-prefix-site requires a python on PATH or an active virtualenv")
}
