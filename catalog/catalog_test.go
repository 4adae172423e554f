package catalog_test

import (
	"testing"

	"github.com/itchio/ox"
	"github.com/stagehand-dcc/stagehand/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LookupIsTotal(t *testing.T) {
	c := catalog.Default()

	apps := []catalog.App{
		catalog.AppMaya,
		catalog.AppMayapy,
		catalog.AppMobu,
		catalog.AppMobupy,
		catalog.AppBlender,
	}

	for _, app := range apps {
		versions := c.Versions(app)
		assert.NotEmpty(t, versions, "%s has versions", app)

		for _, version := range versions {
			for _, platform := range []ox.Platform{ox.PlatformLinux, ox.PlatformWindows} {
				spec, ok := c.Lookup(app, version, platform)
				require.True(t, ok, "%s %s on %s", app, version, platform)
				assert.Equal(t, app, spec.App)
				assert.Equal(t, version, spec.Version)
				assert.Equal(t, platform, spec.Platform)
				assert.NotEmpty(t, spec.PythonVersion)
				assert.NotEmpty(t, spec.ExeRelPath)
				assert.NotEmpty(t, spec.CellarName)
			}
		}
	}
}

func Test_LookupUnknownCombinations(t *testing.T) {
	c := catalog.Default()

	_, ok := c.Lookup(catalog.AppMaya, "2019", ox.PlatformLinux)
	assert.False(t, ok, "unsupported version")

	_, ok = c.Lookup(catalog.AppBlender, "4.3", ox.PlatformOSX)
	assert.False(t, ok, "unsupported platform")

	_, ok = c.Lookup(catalog.App("houdini"), "20.5", ox.PlatformLinux)
	assert.False(t, ok, "unsupported app")
}

func Test_LookupIsDeterministic(t *testing.T) {
	first, ok := catalog.Default().Lookup(catalog.AppBlender, "4.3", ox.PlatformLinux)
	require.True(t, ok)
	second, ok := catalog.Default().Lookup(catalog.AppBlender, "4.3", ox.PlatformLinux)
	require.True(t, ok)

	assert.Equal(t, first, second)
}

func Test_BlenderSpecs(t *testing.T) {
	c := catalog.Default()

	linux, ok := c.Lookup(catalog.AppBlender, "4.3", ox.PlatformLinux)
	require.True(t, ok)
	assert.Equal(t, "https://download.blender.org/release/Blender4.3/blender-4.3.2-linux-x64.tar.xz", linux.DownloadURL)
	assert.Equal(t, "tar.xz", linux.ArchiveFormat)
	assert.Equal(t, "blender-4.3.2-linux-x64", linux.InstallDirName)
	assert.Equal(t, "blender", linux.ExeRelPath)
	assert.Equal(t, "3.11", linux.PythonVersion)

	windows, ok := c.Lookup(catalog.AppBlender, "3.6", ox.PlatformWindows)
	require.True(t, ok)
	assert.Equal(t, "https://download.blender.org/release/Blender3.6/blender-3.6.8-windows-x64.zip", windows.DownloadURL)
	assert.Equal(t, "zip", windows.ArchiveFormat)
	assert.Equal(t, "blender-3.6.8-windows-x64", windows.InstallDirName)
	assert.Equal(t, "blender.exe", windows.ExeRelPath)
	assert.Equal(t, "3.10", windows.PythonVersion)
}

func Test_AutodeskSpecs(t *testing.T) {
	c := catalog.Default()

	maya, ok := c.Lookup(catalog.AppMaya, "2025", ox.PlatformLinux)
	require.True(t, ok)
	assert.Empty(t, maya.DownloadURL, "maya has no vendor archive")
	assert.Equal(t, "/usr/autodesk/maya2025", maya.DefaultInstallDir)
	assert.Equal(t, "bin/maya", maya.ExeRelPath)
	assert.Equal(t, "MAYA_LOCATION", maya.InstallLocationVar)

	mayaWin, ok := c.Lookup(catalog.AppMaya, "2024", ox.PlatformWindows)
	require.True(t, ok)
	assert.Equal(t, `SOFTWARE\Autodesk\Maya\2024\Setup\InstallPath`, mayaWin.RegistryKey)
	assert.Equal(t, "MAYA_INSTALL_LOCATION", mayaWin.RegistryValue)
	assert.Equal(t, "bin/maya.exe", mayaWin.ExeRelPath)

	mobu, ok := c.Lookup(catalog.AppMobu, "2025", ox.PlatformWindows)
	require.True(t, ok)
	assert.Equal(t, `SOFTWARE\Autodesk\MotionBuilder\2025`, mobu.RegistryKey)
	assert.Equal(t, "InstallPath", mobu.RegistryValue)
	assert.Equal(t, "bin/x64/motionbuilder.exe", mobu.ExeRelPath)

	mobupy, ok := c.Lookup(catalog.AppMobupy, "2024", ox.PlatformLinux)
	require.True(t, ok)
	assert.Equal(t, "bin/linux_64/mobupy", mobupy.ExeRelPath)
	assert.Equal(t, "mobu", mobupy.CellarName, "mobupy shares mobu's cellar")
	assert.Empty(t, mobupy.Env.StartupPath, "mobupy takes PYTHONSTARTUP instead")
}

func Test_Versions(t *testing.T) {
	c := catalog.Default()

	assert.Equal(t, []string{"2022", "2023", "2024", "2025"}, c.Versions(catalog.AppMaya))
	assert.Equal(t, []string{"3.6", "4.2", "4.3"}, c.Versions(catalog.AppBlender))
}
