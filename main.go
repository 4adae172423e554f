package main

import (
	"log"
	"os"

	"github.com/stagehand-dcc/stagehand/comm"
	"github.com/stagehand-dcc/stagehand/greenroom"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

var (
	version = "head" // set by command-line on CI release builds
	commit  = ""     // set by command-line on CI release builds

	app = kingpin.New("stagehand", "Your very own DCC launcher")
)

var appArgs = struct {
	json       *bool
	quiet      *bool
	verbose    *bool
	timestamps *bool
	noProgress *bool
	panic      *bool
}{
	app.Flag("json", "Enable machine-readable JSON-lines output").Short('j').Bool(),
	app.Flag("quiet", "Hide progress indicators & other extra info").Short('q').Bool(),
	app.Flag("verbose", "Display as much extra info as possible").Short('v').Bool(),
	app.Flag("timestamps", "Prefix all output by timestamps (for logging purposes)").Bool(),
	app.Flag("no-progress", "Doesn't show progress bars").Bool(),
	app.Flag("panic", "Panic on error").Hidden().Bool(),
}

func main() {
	app.HelpFlag.Short('h')
	app.Version(versionString())
	app.VersionFlag.Short('V')
	app.Author("the stagehand authors")

	ctx := greenroom.NewContext(app)
	ctx.Version = version
	ctx.VersionString = versionString()

	registerCommands(ctx)

	cmd, err := app.Parse(os.Args[1:])

	if *appArgs.timestamps {
		log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	} else {
		log.SetFlags(0)
	}

	if *appArgs.quiet {
		*appArgs.noProgress = true
	}

	comm.Configure(*appArgs.noProgress, *appArgs.quiet, *appArgs.verbose, *appArgs.json, *appArgs.panic)
	ctx.Quiet = *appArgs.quiet
	ctx.Verbose = *appArgs.verbose
	ctx.JSON = *appArgs.json

	fullCmd := kingpin.MustParse(cmd, err)
	do, ok := ctx.Commands[fullCmd]
	if !ok {
		comm.Dief("unknown command: %s", fullCmd)
	}
	do(ctx)
}

func versionString() string {
	if version == "head" && commit != "" {
		return commit
	}
	return version
}
