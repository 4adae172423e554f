// Package dccflag declares the flags every DCC launch command shares, so
// the per-app command packages only add what's specific to their app.
package dccflag

import (
	"fmt"
	"os"
	"strings"

	"github.com/itchio/wharf/state"
	"github.com/stagehand-dcc/stagehand/catalog"
	"github.com/stagehand-dcc/stagehand/pysite"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

type Flags struct {
	Version           *string
	Args              *[]string
	Executable        *string
	SitePath          *[]string
	IncludePrefixSite *bool
	TempConfigDir     *bool
}

func Register(cmd *kingpin.CmdClause, versions []string, defaultVersion string) *Flags {
	f := &Flags{}

	f.Version = cmd.Arg("version",
		fmt.Sprintf("Version to launch (%s)", strings.Join(versions, ", "))).
		Default(defaultVersion).Enum(versions...)
	f.Args = cmd.Arg("args", "Additional arguments to pass to the executable").Strings()

	f.Executable = cmd.Flag("executable",
		"Path to the executable to use. When set, install locations are not searched").
		Short('e').String()
	f.SitePath = cmd.Flag("site-path",
		"Extra directories to add to the executable's site directories at launch").Strings()
	f.IncludePrefixSite = cmd.Flag("include-prefix-site",
		"Add the active python environment's site-packages to the DCC at launch").Bool()
	f.TempConfigDir = cmd.Flag("temp-config-dir",
		"Launch with user config pointed at an empty temp dir").Bool()

	return f
}

// SitePaths assembles the site directory list: the active python
// environment's site-packages first (when requested, and only after the
// interpreter version check passes), then whatever the caller supplied.
func (f *Flags) SitePaths(consumer *state.Consumer, spec catalog.Spec) ([]string, error) {
	var sitePaths []string

	if *f.IncludePrefixSite {
		site, err := pysite.Discover(consumer, os.Environ())
		if err != nil {
			return nil, err
		}
		err = pysite.Check(spec, site)
		if err != nil {
			return nil, err
		}
		sitePaths = append(sitePaths, site.PurelibDir)
	}

	return append(sitePaths, *f.SitePath...), nil
}
