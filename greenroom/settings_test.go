package greenroom_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stagehand-dcc/stagehand/greenroom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LoadSettings(t *testing.T) {
	rootDir := t.TempDir()

	contents := `
cellar = "/mnt/shared/dccs"

[apps.blender]
args = "--factory-startup -noaudio"

[apps.maya]
args = "-hideConsole"
`
	err := os.WriteFile(filepath.Join(rootDir, greenroom.SettingsFileName), []byte(contents), 0o644)
	require.NoError(t, err)

	settings, err := greenroom.LoadSettings(rootDir)
	require.NoError(t, err)

	assert.Equal(t, "/mnt/shared/dccs", settings.Cellar)

	blenderArgs, err := settings.ExtraArgs("blender")
	require.NoError(t, err)
	assert.Equal(t, []string{"--factory-startup", "-noaudio"}, blenderArgs)

	mayaArgs, err := settings.ExtraArgs("maya")
	require.NoError(t, err)
	assert.Equal(t, []string{"-hideConsole"}, mayaArgs)
}

func Test_LoadSettingsMissingFile(t *testing.T) {
	settings, err := greenroom.LoadSettings(t.TempDir())
	require.NoError(t, err, "a missing settings file is not an error")
	assert.Empty(t, settings.Cellar)
	assert.Empty(t, settings.Apps)
}

func Test_LoadSettingsMalformed(t *testing.T) {
	rootDir := t.TempDir()

	err := os.WriteFile(filepath.Join(rootDir, greenroom.SettingsFileName), []byte("cellar = [unclosed"), 0o644)
	require.NoError(t, err)

	_, err = greenroom.LoadSettings(rootDir)
	assert.Error(t, err)
}

func Test_ExtraArgs(t *testing.T) {
	settings := greenroom.Settings{
		Apps: map[string]greenroom.AppSettings{
			"mobu":    {Args: `--batch "some path/with spaces"`},
			"blender": {Args: ""},
			"broken":  {Args: `"unterminated`},
		},
	}

	args, err := settings.ExtraArgs("mobu")
	require.NoError(t, err)
	assert.Equal(t, []string{"--batch", "some path/with spaces"}, args)

	args, err = settings.ExtraArgs("blender")
	require.NoError(t, err)
	assert.Nil(t, args, "empty args string yields nothing")

	args, err = settings.ExtraArgs("maya")
	require.NoError(t, err)
	assert.Nil(t, args, "unconfigured app yields nothing")

	_, err = settings.ExtraArgs("broken")
	assert.Error(t, err)
}
