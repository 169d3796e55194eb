// Package cmd implements the command-line interface for scrub.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"

	"github.com/AlecAivazis/survey/v2"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/scrub-cli/scrub/color"
	"github.com/scrub-cli/scrub/history"
	"github.com/scrub-cli/scrub/icon"
	"github.com/scrub-cli/scrub/style"
	"github.com/scrub-cli/scrub/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
}

// historyCmd is the parent command for the resume history.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the saved playback positions",
}

func completionHistoryPaths(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	entries, err := history.List()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	return lo.Map(entries, func(entry history.Entry, _ int) string {
		return entry.Path
	}), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	historyCmd.AddCommand(historyListCmd)

	historyListCmd.Flags().StringP("filter", "f", "", "Only show entries whose title or path fuzzily matches")
	historyListCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	historyListCmd.Flags().BoolP("paths", "p", false, "Print only the paths")
	historyListCmd.MarkFlagsMutuallyExclusive("json", "paths")

	historyListCmd.SetOut(os.Stdout)
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved playback positions, most recent first",
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := history.Search(lo.Must(cmd.Flags().GetString("filter")))
		handleErr(err)

		switch {
		case lo.Must(cmd.Flags().GetBool("json")):
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(entries))
		case lo.Must(cmd.Flags().GetBool("paths")):
			for _, entry := range entries {
				cmd.Println(entry.Path)
			}
		default:
			if len(entries) == 0 {
				cmd.Println(style.Faint("Nothing saved yet"))
				return
			}

			for _, entry := range entries {
				cmd.Printf("%s %s\n", icon.Get(icon.History), entry)
				cmd.Println("  " + style.Faint(entry.Path))
			}
		}
	},
}

func init() {
	historyCmd.AddCommand(historyRemoveCmd)
}

var historyRemoveCmd = &cobra.Command{
	Use:               "remove [path...]",
	Short:             "Forget the saved positions of the given files or URLs",
	Aliases:           []string{"rm"},
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completionHistoryPaths,
	Run: func(cmd *cobra.Command, args []string) {
		for _, path := range args {
			handleErr(history.Remove(path))
			success("removed %s", style.Fg(color.Yellow)(path))
		}
	},
}

func init() {
	historyCmd.AddCommand(historyClearCmd)
	historyClearCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every saved position",
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := history.List()
		handleErr(err)

		if len(entries) == 0 {
			return
		}

		if !lo.Must(cmd.Flags().GetBool("yes")) {
			var confirmed bool
			handleErr(survey.AskOne(&survey.Confirm{
				Message: fmt.Sprintf("Forget %s?", util.Quantify(len(entries), "saved position", "saved positions")),
				Default: false,
			}, &confirmed))

			if !confirmed {
				return
			}
		}

		handleErr(history.Clear())
		success("history cleared")
	},
}

func init() {
	historyCmd.AddCommand(historySchemaCmd)
	historySchemaCmd.SetOut(os.Stdout)
}

// historySchemaCmd prints the JSON schema of `history list --json` for scripts consuming it.
var historySchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the list output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			return "history." + t.Name()
		}

		schema := reflector.Reflect([]history.Entry{})
		handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(schema))
	},
}
