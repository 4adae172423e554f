// Package scripts materializes the bootstrap payloads each DCC runs at
// startup. The payloads ship inside the stagehand binary and get written
// under the stagehand root before every launch, so the environment builder
// always has a real directory to point the DCC at.
package scripts

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/stagehand-dcc/stagehand/catalog"
)

//go:embed data
var data embed.FS

// family maps interpreter variants onto the payload they share with
// their host app.
func family(app catalog.App) string {
	switch app {
	case catalog.AppMaya, catalog.AppMayapy:
		return "maya"
	case catalog.AppMobu, catalog.AppMobupy:
		return "mobu"
	default:
		return "blender"
	}
}

// Ensure writes the bootstrap payload for an app under rootDir (idempotent,
// always overwrites so payloads track the running binary) and returns the
// directory the launch environment should inject: the startup dir for the
// Autodesk apps, the scripts dir itself for Blender (which expects a
// directory *containing* startup/).
func Ensure(rootDir string, app catalog.App) (string, error) {
	fam := family(app)
	src := "data/" + fam
	dest := filepath.Join(rootDir, "scripts", fam)

	err := fs.WalkDir(data, src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel := strings.TrimPrefix(path, src)
		target := filepath.Join(dest, filepath.FromSlash(rel))

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		contents, err := data.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, contents, 0o644)
	})
	if err != nil {
		return "", errors.WithMessagef(err, "materializing %s bootstrap scripts", fam)
	}

	if app == catalog.AppBlender {
		return dest, nil
	}
	return filepath.Join(dest, "startup"), nil
}

// StartupFile returns the bootstrap script path itself, for variants that
// take a single file (mobupy's PYTHONSTARTUP).
func StartupFile(rootDir string, app catalog.App) string {
	return filepath.Join(rootDir, "scripts", family(app), "startup", "bootstrap.py")
}
