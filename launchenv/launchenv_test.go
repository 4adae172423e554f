package launchenv_test

import (
	"os"
	"strings"
	"testing"

	"github.com/stagehand-dcc/stagehand/catalog"
	"github.com/stagehand-dcc/stagehand/launchenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sep = string(os.PathListSeparator)

func mayaSpec() catalog.Spec {
	return catalog.Spec{
		App: catalog.AppMaya,
		Env: catalog.EnvNames{
			PluginPath: "MAYA_PLUGIN_PATH",
			ModulePath: "MAYA_MODULE_PATH",
			PythonPath: "PYTHONPATH",
			SitePath:   "MAYA_SITE_PATH",
			ConfigDir:  "MAYA_APP_DIR",
		},
	}
}

func get(t *testing.T, env []string, name string) string {
	value, ok := launchenv.Get(env, name)
	require.True(t, ok, "%s should be set", name)
	return value
}

func Test_BuildJoinsPathLists(t *testing.T) {
	env := launchenv.Build(nil, launchenv.Options{
		Spec:        mayaSpec(),
		PluginPaths: []string{"/a/plugins", "/b/plugins"},
		ModulePaths: []string{"/a/modules"},
	})

	assert.Equal(t, "/a/plugins"+sep+"/b/plugins", get(t, env, "MAYA_PLUGIN_PATH"))
	assert.Equal(t, "/a/modules", get(t, env, "MAYA_MODULE_PATH"))

	_, ok := launchenv.Get(env, "PYTHONPATH")
	assert.False(t, ok, "empty path lists leave the variable alone")
}

func Test_BuildKeepsInheritedSuffix(t *testing.T) {
	base := []string{
		"PYTHONPATH=/inherited/site",
		"HOME=/home/someone",
	}

	env := launchenv.Build(base, launchenv.Options{
		Spec:        mayaSpec(),
		PythonPaths: []string{"/new/first", "/new/second"},
	})

	assert.Equal(t, "/new/first"+sep+"/new/second"+sep+"/inherited/site", get(t, env, "PYTHONPATH"))
	assert.Equal(t, "/home/someone", get(t, env, "HOME"))
}

func Test_BuildBootstrapDirPlacement(t *testing.T) {
	// maya: no startup var, so the bootstrap dir leads PYTHONPATH
	env := launchenv.Build(nil, launchenv.Options{
		Spec:         mayaSpec(),
		PythonPaths:  []string{"/user/python"},
		BootstrapDir: "/root/scripts/maya/startup",
	})
	assert.Equal(t, "/root/scripts/maya/startup"+sep+"/user/python", get(t, env, "PYTHONPATH"))

	// mobu: a startup var exists and takes the bootstrap dir instead
	mobuSpec := catalog.Spec{
		App: catalog.AppMobu,
		Env: catalog.EnvNames{
			PythonPath:  "",
			StartupPath: "MOTIONBUILDER_PYTHON_STARTUP",
		},
	}
	env = launchenv.Build(nil, launchenv.Options{
		Spec:         mobuSpec,
		StartupPaths: []string{"/user/startup"},
		BootstrapDir: "/root/scripts/mobu/startup",
	})
	assert.Equal(t, "/root/scripts/mobu/startup"+sep+"/user/startup", get(t, env, "MOTIONBUILDER_PYTHON_STARTUP"))

	// blender: neither var, user-scripts takes the dir wholesale
	blenderSpec := catalog.Spec{
		App: catalog.AppBlender,
		Env: catalog.EnvNames{
			UserScripts: "BLENDER_USER_SCRIPTS",
		},
	}
	env = launchenv.Build(nil, launchenv.Options{
		Spec:         blenderSpec,
		BootstrapDir: "/root/scripts/blender",
	})
	assert.Equal(t, "/root/scripts/blender", get(t, env, "BLENDER_USER_SCRIPTS"))
}

func Test_BuildSitePath(t *testing.T) {
	env := launchenv.Build(nil, launchenv.Options{
		Spec:      mayaSpec(),
		SitePaths: []string{"/venv/lib/python3.11/site-packages", "/extra/site"},
	})

	// the site separator is fixed, the bootstrap scripts split on ';' everywhere
	assert.Equal(t, "/venv/lib/python3.11/site-packages;/extra/site", get(t, env, "MAYA_SITE_PATH"))

	env = launchenv.Build(nil, launchenv.Options{Spec: mayaSpec()})
	_, ok := launchenv.Get(env, "MAYA_SITE_PATH")
	assert.False(t, ok, "no site paths, no site variable")
}

func Test_BuildFixedVars(t *testing.T) {
	env := launchenv.Build(nil, launchenv.Options{
		Spec:              mayaSpec(),
		PythonStartupFile: "/root/scripts/mobu/startup/bootstrap.py",
		ExtraVars: map[string]string{
			"BLENDER_SYSTEM_SCRIPTS": "/opt/blender/scripts",
		},
	})

	assert.Equal(t, "1", get(t, env, "PYTHONUNBUFFERED"))
	assert.Equal(t, "1", get(t, env, "PYDEVD_DISABLE_FILE_VALIDATION"))
	assert.Equal(t, "/root/scripts/mobu/startup/bootstrap.py", get(t, env, "PYTHONSTARTUP"))
	assert.Equal(t, "/opt/blender/scripts", get(t, env, "BLENDER_SYSTEM_SCRIPTS"))
}

func Test_BuildDoesNotMutateBase(t *testing.T) {
	base := []string{"PYTHONPATH=/inherited"}

	launchenv.Build(base, launchenv.Options{
		Spec:        mayaSpec(),
		PythonPaths: []string{"/new"},
	})

	assert.Equal(t, []string{"PYTHONPATH=/inherited"}, base)
}

func Test_SetAndGet(t *testing.T) {
	env := []string{"PATH=/usr/bin"}

	env = launchenv.Set(env, "PATH", "/overridden")
	env = launchenv.Set(env, "NEW_VAR", "value")

	assert.Equal(t, "/overridden", get(t, env, "PATH"))
	assert.Equal(t, "value", get(t, env, "NEW_VAR"))

	_, ok := launchenv.Get(env, "MISSING")
	assert.False(t, ok)

	// no prefix confusion between PATH and PATHEXT
	env = launchenv.Set(env, "PATHEXT", ".EXE")
	assert.Equal(t, "/overridden", get(t, env, "PATH"))
	assert.True(t, strings.HasPrefix(env[len(env)-1], "PATHEXT="))
}
