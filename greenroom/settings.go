package greenroom

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	shellquote "github.com/kballard/go-shellquote"
	"github.com/pkg/errors"
)

// SettingsFileName is looked up inside the stagehand root dir.
const SettingsFileName = "stagehand.toml"

// Settings are entirely optional: a missing settings file yields
// the zero value, and a malformed one must never prevent a launch.
type Settings struct {
	// Cellar overrides the directory downloaded DCCs are stored under
	Cellar string `toml:"cellar"`

	// Apps carries per-app defaults, keyed by command name ("maya", "blender"...)
	Apps map[string]AppSettings `toml:"apps"`
}

type AppSettings struct {
	// Args is a shell-quoted string of extra arguments always passed to the DCC
	Args string `toml:"args"`
}

func LoadSettings(rootDir string) (Settings, error) {
	var settings Settings

	path := filepath.Join(rootDir, SettingsFileName)
	_, err := toml.DecodeFile(path, &settings)
	if err != nil {
		if os.IsNotExist(err) {
			return Settings{}, nil
		}
		return Settings{}, errors.WithMessagef(err, "parsing %s", path)
	}

	return settings, nil
}

// ExtraArgs returns the configured default arguments for an app, if any.
func (s Settings) ExtraArgs(appName string) ([]string, error) {
	appSettings, ok := s.Apps[appName]
	if !ok || appSettings.Args == "" {
		return nil, nil
	}

	parsed, err := shellquote.Split(appSettings.Args)
	if err != nil {
		return nil, errors.WithMessagef(err, "parsing default args for %s", appName)
	}
	return parsed, nil
}
