// Package catalog is the static table of DCC versions stagehand knows how
// to locate and (when the vendor publishes archives) install. It does no
// I/O: everything here is data, fixed at process start.
package catalog

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/itchio/ox"
)

type App string

const (
	AppMaya    App = "maya"
	AppMayapy  App = "mayapy"
	AppMobu    App = "mobu"
	AppMobupy  App = "mobupy"
	AppBlender App = "blender"
)

// EnvNames are the variable names a given DCC reads its search paths from.
// An empty name means the DCC has no such concept.
type EnvNames struct {
	PluginPath  string
	ModulePath  string
	PythonPath  string
	StartupPath string
	SitePath    string
	UserScripts string
	ConfigDir   string
}

// Spec is everything known about one (app, version, platform) combination.
// Specs never change after Default() builds the catalog.
type Spec struct {
	App      App
	Version  string
	Platform ox.Platform

	// PythonVersion is the major.minor of the interpreter this DCC embeds
	PythonVersion string

	// DownloadURL is empty for DCCs with no freely downloadable archive
	// (Maya and MotionBuilder are installed by the vendor's own installer)
	DownloadURL   string
	ArchiveFormat string

	// InstallDirName is the directory the archive extracts to inside the
	// cellar, derived from the archive's file name with the extension stripped
	InstallDirName string

	// ExeRelPath is slash-separated, relative to the install dir
	ExeRelPath string

	// DefaultInstallDir is the vendor's conventional install location,
	// empty when the platform has no convention for this DCC
	DefaultInstallDir string

	// Registry key/value yielding the install dir (Windows installs only)
	RegistryKey   string
	RegistryValue string

	// InstallLocationVar is an environment variable the vendor documents
	// as an install-location override, e.g. MAYA_LOCATION
	InstallLocationVar string

	// CellarName groups interpreter variants (mayapy, mobupy) with their
	// host app so they share one managed install directory
	CellarName string

	Env EnvNames
}

func (s Spec) String() string {
	return fmt.Sprintf("%s %s (%s)", s.App, s.Version, s.Platform)
}

type key struct {
	app      App
	version  string
	platform ox.Platform
}

type Catalog struct {
	specs map[key]Spec
}

// Lookup returns the spec for an exact (app, version, platform) combination.
// A false return means the combination is unsupported, which is a normal
// outcome, not an error.
func (c *Catalog) Lookup(app App, version string, platform ox.Platform) (Spec, bool) {
	spec, ok := c.specs[key{app, version, platform}]
	return spec, ok
}

// Versions returns the sorted list of versions known for an app, on any platform.
func (c *Catalog) Versions(app App) []string {
	seen := make(map[string]bool)
	for k := range c.specs {
		if k.app == app {
			seen[k.version] = true
		}
	}

	var versions []string
	for v := range seen {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions
}

// Maya python requirements per version, same for mayapy
var mayaPythonVersions = map[string]string{
	"2022": "3.7",
	"2023": "3.9",
	"2024": "3.10",
	"2025": "3.11",
}

// MotionBuilder python requirements per version, same for mobupy
var mobuPythonVersions = map[string]string{
	"2022": "3.7",
	"2023": "3.7",
	"2024": "3.10",
	"2025": "3.11",
}

// Blender python requirements, and the full release each version maps to
var blenderPythonVersions = map[string]string{
	"3.6": "3.10",
	"4.2": "3.11",
	"4.3": "3.11",
}

var blenderReleases = map[string]string{
	"3.6": "3.6.8",
	"4.2": "4.2.6",
	"4.3": "4.3.2",
}

var mayaEnv = EnvNames{
	PluginPath: "MAYA_PLUGIN_PATH",
	ModulePath: "MAYA_MODULE_PATH",
	PythonPath: "PYTHONPATH",
	SitePath:   "MAYA_SITE_PATH",
	ConfigDir:  "MAYA_APP_DIR",
}

var mobuEnv = EnvNames{
	PluginPath:  "MOTIONBUILDER_PLUGIN_PATH",
	ModulePath:  "MOTIONBUILDER_MODULE_PATH",
	StartupPath: "MOTIONBUILDER_PYTHON_STARTUP",
	SitePath:    "MOTIONBUILDER_SITE_PATH",
	ConfigDir:   "MB_CONFIG_DIR",
}

// mobupy is a plain interpreter: it takes PYTHONSTARTUP rather than
// MotionBuilder's startup-scripts directory
var mobupyEnv = EnvNames{
	SitePath:  "MOTIONBUILDER_SITE_PATH",
	ConfigDir: "MB_CONFIG_DIR",
}

var blenderEnv = EnvNames{
	SitePath:    "BLENDER_SITE_PATH",
	UserScripts: "BLENDER_USER_SCRIPTS",
	ConfigDir:   "BLENDER_USER_CONFIG",
}

// Default builds the catalog. Call it once and pass the result around.
func Default() *Catalog {
	c := &Catalog{
		specs: make(map[key]Spec),
	}

	for version, pythonVersion := range mayaPythonVersions {
		c.addAutodesk(autodeskEntry{
			version:            version,
			pythonVersion:      pythonVersion,
			cellarName:         "maya",
			linuxDefaultDir:    "/usr/autodesk/maya" + version,
			windowsDefaultDir:  `C:\Program Files\Autodesk\Maya ` + version,
			registryKey:        `SOFTWARE\Autodesk\Maya\` + version + `\Setup\InstallPath`,
			registryValue:      "MAYA_INSTALL_LOCATION",
			installLocationVar: "MAYA_LOCATION",
			variants: []autodeskVariant{
				{AppMaya, "bin/maya", "bin/maya.exe", mayaEnv},
				{AppMayapy, "bin/mayapy", "bin/mayapy.exe", mayaEnv},
			},
		})
	}

	for version, pythonVersion := range mobuPythonVersions {
		c.addAutodesk(autodeskEntry{
			version:           version,
			pythonVersion:     pythonVersion,
			cellarName:        "mobu",
			linuxDefaultDir:   "/usr/autodesk/MotionBuilder" + version,
			windowsDefaultDir: `C:\Program Files\Autodesk\MotionBuilder ` + version,
			registryKey:       `SOFTWARE\Autodesk\MotionBuilder\` + version,
			registryValue:     "InstallPath",
			variants: []autodeskVariant{
				{AppMobu, "bin/linux_64/motionbuilder", "bin/x64/motionbuilder.exe", mobuEnv},
				{AppMobupy, "bin/linux_64/mobupy", "bin/x64/mobupy.exe", mobupyEnv},
			},
		})
	}

	for version, pythonVersion := range blenderPythonVersions {
		release := blenderReleases[version]
		releaseDir := "https://download.blender.org/release/Blender" + version

		c.add(Spec{
			App:           AppBlender,
			Version:       version,
			Platform:      ox.PlatformLinux,
			PythonVersion: pythonVersion,
			DownloadURL:   releaseDir + "/blender-" + release + "-linux-x64.tar.xz",
			ArchiveFormat: "tar.xz",
			ExeRelPath:    "blender",
			CellarName:    "blender",
			Env:           blenderEnv,
		})
		c.add(Spec{
			App:               AppBlender,
			Version:           version,
			Platform:          ox.PlatformWindows,
			PythonVersion:     pythonVersion,
			DownloadURL:       releaseDir + "/blender-" + release + "-windows-x64.zip",
			ArchiveFormat:     "zip",
			ExeRelPath:        "blender.exe",
			DefaultInstallDir: `C:\Program Files\Blender Foundation\Blender ` + version,
			CellarName:        "blender",
			Env:               blenderEnv,
		})
	}

	return c
}

type autodeskVariant struct {
	app        App
	linuxExe   string
	windowsExe string
	env        EnvNames
}

type autodeskEntry struct {
	version            string
	pythonVersion      string
	cellarName         string
	linuxDefaultDir    string
	windowsDefaultDir  string
	registryKey        string
	registryValue      string
	installLocationVar string
	variants           []autodeskVariant
}

func (c *Catalog) addAutodesk(e autodeskEntry) {
	for _, v := range e.variants {
		c.add(Spec{
			App:                v.app,
			Version:            e.version,
			Platform:           ox.PlatformLinux,
			PythonVersion:      e.pythonVersion,
			ExeRelPath:         v.linuxExe,
			DefaultInstallDir:  e.linuxDefaultDir,
			InstallLocationVar: e.installLocationVar,
			CellarName:         e.cellarName,
			Env:                v.env,
		})
		c.add(Spec{
			App:                v.app,
			Version:            e.version,
			Platform:           ox.PlatformWindows,
			PythonVersion:      e.pythonVersion,
			ExeRelPath:         v.windowsExe,
			DefaultInstallDir:  e.windowsDefaultDir,
			RegistryKey:        e.registryKey,
			RegistryValue:      e.registryValue,
			InstallLocationVar: e.installLocationVar,
			CellarName:         e.cellarName,
			Env:                v.env,
		})
	}
}

func (c *Catalog) add(spec Spec) {
	if spec.DownloadURL != "" {
		spec.InstallDirName = installDirName(spec.DownloadURL, spec.ArchiveFormat)
	}
	c.specs[key{spec.App, spec.Version, spec.Platform}] = spec
}

// installDirName derives the directory an archive extracts to from the
// archive's remote file name, e.g.
// ".../blender-4.3.2-linux-x64.tar.xz" -> "blender-4.3.2-linux-x64"
func installDirName(url string, format string) string {
	return strings.TrimSuffix(path.Base(url), "."+format)
}
