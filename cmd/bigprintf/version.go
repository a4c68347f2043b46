package main

import (
	"fmt"
	"runtime/debug"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// version is the semantic version of the CLI. It can be overridden at build
// time via -ldflags.
var version = "0.1.0-dev"

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionRestColor  = color.New(color.FgBlue)
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the bigprintf version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "bigprintf %s\n", coloredVersion(version))
		if info, ok := debug.ReadBuildInfo(); ok {
			fmt.Fprintf(out, "built with %s\n", info.GoVersion)
		}
		return nil
	},
}

// coloredVersion highlights the major version number of v.
func coloredVersion(v string) string {
	for i := 0; i < len(v); i++ {
		if v[i] == '.' {
			return versionMajorColor.Sprint(v[:i]) + versionRestColor.Sprint(v[i:])
		}
	}
	return versionMajorColor.Sprint(v)
}
