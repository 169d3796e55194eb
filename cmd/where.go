// Package cmd implements the command-line interface for scrub.
package cmd

import (
	"os"

	"github.com/samber/lo"
	"github.com/scrub-cli/scrub/color"
	"github.com/scrub-cli/scrub/style"
	"github.com/scrub-cli/scrub/where"
	"github.com/spf13/cobra"
)

// location is a directory or file scrub keeps state in.
type location struct {
	name  string
	flag  string
	short string
	path  func() string
	// listed locations show up when no flag is given
	listed bool
}

var locations = []location{
	{"Config", "config", "c", where.Config, true},
	{"Hooks", "hooks", "k", where.Hooks, true},
	{"Logs", "logs", "l", where.Logs, true},
	{"History", "history", "s", where.History, true},
	{"Cache", "cache", "", where.Cache, false},
	{"Temp", "temp", "", where.Temp, false},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, l := range locations {
		whereCmd.Flags().BoolP(l.flag, l.short, false, "Print the "+l.name+" path")
		if !l.listed {
			lo.Must0(whereCmd.Flags().MarkHidden(l.flag))
		}
	}

	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(locations, func(l location, _ int) string {
		return l.flag
	})...)

	whereCmd.SetOut(os.Stdout)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Print where scrub keeps its files",
	Run: func(cmd *cobra.Command, args []string) {
		if l, ok := lo.Find(locations, func(l location) bool {
			return lo.Must(cmd.Flags().GetBool(l.flag))
		}); ok {
			cmd.Println(l.path())
			return
		}

		heading := style.New().Bold(true).Foreground(color.HiPurple).Render
		listed := lo.Filter(locations, func(l location, _ int) bool { return l.listed })

		for i, l := range listed {
			cmd.Printf("%s %s\n", heading(l.name+"?"), style.Fg(color.Yellow)("--"+l.flag))
			cmd.Println(l.path())

			if i < len(listed)-1 {
				cmd.Println()
			}
		}
	},
}
