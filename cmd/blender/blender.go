package blender

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/itchio/ox"
	"github.com/pkg/errors"
	"github.com/stagehand-dcc/stagehand/catalog"
	"github.com/stagehand-dcc/stagehand/cmd/dccflag"
	"github.com/stagehand-dcc/stagehand/comm"
	"github.com/stagehand-dcc/stagehand/greenroom"
	"github.com/stagehand-dcc/stagehand/launchenv"
	"github.com/stagehand-dcc/stagehand/launcher"
)

var args = struct {
	flags            *dccflag.Flags
	download         *bool
	systemScripts    *string
	systemExtensions *string
}{}

func Register(ctx *greenroom.Context) {
	cmd := ctx.App.Command("blender", "Launch Blender")
	args.flags = dccflag.Register(cmd, ctx.Catalog.Versions(catalog.AppBlender), "4.3")
	args.download = cmd.Flag("download",
		"Download the requested version if it can't be found (--no-download to disable)").
		Default("true").Bool()
	args.systemScripts = cmd.Flag("system-scripts",
		"Directory to set as BLENDER_SYSTEM_SCRIPTS; legacy addons inside are enabled for the session").String()
	args.systemExtensions = cmd.Flag("system-extensions",
		"Directory to set as BLENDER_SYSTEM_EXTENSIONS; system extensions inside are enabled for the session").String()
	ctx.Register(cmd, do)
}

func do(ctx *greenroom.Context) {
	ctx.Must(Do(ctx))
}

func Do(ctx *greenroom.Context) error {
	consumer := comm.NewStateConsumer()

	platform := ox.CurrentRuntime().Platform
	spec, ok := ctx.Catalog.Lookup(catalog.AppBlender, *args.flags.Version, platform)
	if !ok {
		return errors.Errorf("blender %s is not supported on %s", *args.flags.Version, platform)
	}

	sitePaths, err := args.flags.SitePaths(consumer, spec)
	if err != nil {
		return err
	}

	extraVars := make(map[string]string)
	if *args.systemScripts != "" {
		extraVars["BLENDER_SYSTEM_SCRIPTS"] = *args.systemScripts
	}
	if *args.systemExtensions != "" {
		extraVars["BLENDER_SYSTEM_EXTENSIONS"] = *args.systemExtensions
	}

	extraArgs, err := ctx.Settings.ExtraArgs("blender")
	if err != nil {
		comm.Warnf("%s", err.Error())
	}

	// passing --addons is the easiest way to enable system addons for the
	// current session only
	var launchArgs []string
	if addons := systemAddons(*args.systemScripts, *args.systemExtensions); len(addons) > 0 {
		launchArgs = append(launchArgs, "--addons", strings.Join(addons, ","))
	}
	launchArgs = append(launchArgs, extraArgs...)
	launchArgs = append(launchArgs, *args.flags.Args...)

	code, err := launcher.Launch(launcher.Request{
		Spec:        spec,
		Override:    *args.flags.Executable,
		AutoInstall: *args.download,
		Args:        launchArgs,
		Env: launchenv.Options{
			SitePaths: sitePaths,
			ExtraVars: extraVars,
		},
		TempConfigDir: *args.flags.TempConfigDir,
		RootDir:       ctx.RootDir,
		CellarDir:     ctx.CellarDir(spec),
		Consumer:      consumer,
		HTTPClient:    ctx.HTTPClient,
	})
	if err != nil {
		return err
	}

	if code != 0 {
		comm.Debugf("blender exited with code %d", code)
		os.Exit(code)
	}
	return nil
}

// systemAddons lists the addons found in the system scripts and extensions
// directories. Blender addresses extension addons as "bl_ext.system.<name>".
func systemAddons(systemScripts string, systemExtensions string) []string {
	var addons []string

	if systemScripts != "" {
		for _, dir := range subdirs(filepath.Join(systemScripts, "addons")) {
			addons = append(addons, dir)
		}
	}

	if systemExtensions != "" {
		for _, dir := range subdirs(filepath.Join(systemExtensions, "system")) {
			addons = append(addons, "bl_ext.system."+dir)
		}
	}

	return addons
}

func subdirs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names
}
