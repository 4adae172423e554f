package main

import (
	"github.com/stagehand-dcc/stagehand/cmd/blender"
	"github.com/stagehand-dcc/stagehand/cmd/clean"
	"github.com/stagehand-dcc/stagehand/cmd/install"
	"github.com/stagehand-dcc/stagehand/cmd/locate"
	"github.com/stagehand-dcc/stagehand/cmd/maya"
	"github.com/stagehand-dcc/stagehand/cmd/mayapy"
	"github.com/stagehand-dcc/stagehand/cmd/mobu"
	"github.com/stagehand-dcc/stagehand/cmd/mobupy"
	"github.com/stagehand-dcc/stagehand/cmd/wipe"
	"github.com/stagehand-dcc/stagehand/greenroom"
)

// Each of these specify their own arguments and flags in
// their own package.
func registerCommands(ctx *greenroom.Context) {
	// documented commands

	maya.Register(ctx)
	mayapy.Register(ctx)
	mobu.Register(ctx)
	mobupy.Register(ctx)
	blender.Register(ctx)

	install.Register(ctx)
	locate.Register(ctx)
	clean.Register(ctx)

	// hidden commands

	wipe.Register(ctx)
}
