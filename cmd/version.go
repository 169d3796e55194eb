// Package cmd implements the command-line interface for scrub.
package cmd

import (
	"encoding/json"
	"os"
	"runtime"
	"strings"

	"github.com/samber/lo"
	"github.com/scrub-cli/scrub/color"
	"github.com/scrub-cli/scrub/constant"
	"github.com/scrub-cli/scrub/style"
	"github.com/scrub-cli/scrub/version"
	"github.com/spf13/cobra"
)

// buildInfo is what `scrub version` reports.
type buildInfo struct {
	Version  string `json:"version"`
	Revision string `json:"revision"`
	BuiltAt  string `json:"built_at"`
	BuiltBy  string `json:"built_by"`
	Platform string `json:"platform"`
	Go       string `json:"go"`
}

func currentBuild() buildInfo {
	return buildInfo{
		Version:  constant.Version,
		Revision: constant.Revision,
		BuiltAt:  strings.TrimSpace(constant.BuiltAt),
		BuiltBy:  constant.BuiltBy,
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
		Go:       runtime.Version(),
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "Print only the version number")
	versionCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	versionCmd.MarkFlagsMutuallyExclusive("short", "json")
	versionCmd.SetOut(os.Stdout)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		info := currentBuild()

		switch {
		case lo.Must(cmd.Flags().GetBool("short")):
			cmd.Println(info.Version)
			return
		case lo.Must(cmd.Flags().GetBool("json")):
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(info))
			return
		}

		defer version.Notify()

		cmd.Printf("%s %s\n\n", style.Fg(color.Purple)("▇▇▇"), style.Fg(color.Purple)(constant.Scrub))
		for _, row := range [][2]string{
			{"Version", info.Version},
			{"Revision", info.Revision},
			{"Built at", info.BuiltAt},
			{"Built by", info.BuiltBy},
			{"Platform", info.Platform},
			{"Go", info.Go},
		} {
			cmd.Printf("  %s %s\n", style.Faint(row[0]+strings.Repeat(" ", 10-len(row[0]))), style.Bold(row[1]))
		}
	},
}
