// Package cmd implements the command-line interface for scrub.
package cmd

import (
	"github.com/samber/lo"
	"github.com/scrub-cli/scrub/filesystem"
	"github.com/scrub-cli/scrub/icon"
	"github.com/scrub-cli/scrub/util"
	"github.com/scrub-cli/scrub/where"
	"github.com/spf13/cobra"
)

// clearable is state that can be thrown away without losing settings.
type clearable struct {
	what  string
	flag  string
	short string
	path  func() string
}

var clearables = []clearable{
	{"Cache", "cache", "c", where.Cache},
	{"Resume history", "history", "s", where.History},
	{"Logs", "logs", "l", where.Logs},
	{"Stale sockets", "temp", "", where.Temp},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, c := range clearables {
		clearCmd.Flags().BoolP(c.flag, c.short, false, "Clear "+c.what)
	}
	clearCmd.Flags().BoolP("all", "a", false, "Clear everything listed above")
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete cached and temporary files",
	Run: func(cmd *cobra.Command, args []string) {
		all := lo.Must(cmd.Flags().GetBool("all"))

		selected := lo.Filter(clearables, func(c clearable, _ int) bool {
			return all || lo.Must(cmd.Flags().GetBool(c.flag))
		})

		if len(selected) == 0 {
			handleErr(cmd.Help())
			return
		}

		for _, c := range selected {
			erase := util.PrintErasable(icon.Get(icon.Progress) + " Clearing " + c.what + "...")
			err := filesystem.API().RemoveAll(c.path())
			erase()

			handleErr(err)
			success("%s cleared", c.what)
		}
	},
}
