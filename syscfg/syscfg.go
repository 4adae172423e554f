// Package syscfg answers one question: did the system itself record where
// a DCC is installed? Sources are the vendor's documented install-location
// environment variable and, on Windows, the vendor's registry key. "Not
// configured" is a normal outcome here, never an error.
package syscfg

import (
	"os"
	"strings"

	"github.com/itchio/wharf/state"
	"github.com/stagehand-dcc/stagehand/catalog"
)

type Store interface {
	// QueryInstallPath reports the configured install directory for a spec.
	// A false return means no usable configuration exists.
	QueryInstallPath(spec catalog.Spec) (string, bool)
}

type store struct {
	consumer *state.Consumer
}

func New(consumer *state.Consumer) Store {
	return &store{consumer: consumer}
}

func (s *store) QueryInstallPath(spec catalog.Spec) (string, bool) {
	if spec.InstallLocationVar != "" {
		value := os.Getenv(spec.InstallLocationVar)

		// the same variable may point at a different version's install,
		// only honor it when it references the version we're after
		if value != "" && strings.Contains(value, spec.Version) {
			if isDir(value) {
				s.consumer.Debugf("%s install dir from %s: %s", spec.App, spec.InstallLocationVar, value)
				return value, true
			}
			s.consumer.Debugf("%s points at missing dir %s, ignoring", spec.InstallLocationVar, value)
		}
	}

	if spec.RegistryKey != "" {
		if dir, ok := queryRegistry(s.consumer, spec.RegistryKey, spec.RegistryValue); ok {
			if isDir(dir) {
				s.consumer.Debugf("%s install dir from registry: %s", spec.App, dir)
				return dir, true
			}
			s.consumer.Debugf("registry points at missing dir %s, ignoring", dir)
		}
	}

	return "", false
}

func isDir(path string) bool {
	stats, err := os.Stat(path)
	return err == nil && stats.IsDir()
}
