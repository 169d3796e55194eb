// Package cmd implements the command-line interface for scrub.
package cmd

import (
	"os"

	"github.com/samber/lo"
	"github.com/scrub-cli/scrub/color"
	"github.com/scrub-cli/scrub/config"
	"github.com/scrub-cli/scrub/style"
	"github.com/scrub-cli/scrub/where"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

// envVariables returns every variable scrub reads, sorted.
func envVariables() []string {
	names := lo.Map(config.EnvExposed, func(k string, _ int) string {
		field := config.Default[k]
		return field.Env()
	})
	names = append(names, where.EnvConfigPath)
	slices.Sort(names)
	return names
}

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Only list variables that are set")
	envCmd.Flags().BoolP("unset-only", "u", false, "Only list variables that are not set")
	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
	envCmd.SetOut(os.Stdout)
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "List the environment variables scrub reads",
	Long:  "List the environment variables scrub reads. Each one overrides the config file setting of the same name.",
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))
		name := style.New().Bold(true).Foreground(color.Purple).Render

		for _, env := range envVariables() {
			value, present := os.LookupEnv(env)
			if (setOnly && !present) || (unsetOnly && present) {
				continue
			}

			shown := style.Fg(color.Red)("unset")
			if present {
				shown = style.Fg(color.Green)(value)
			}

			cmd.Printf("%s=%s\n", name(env), shown)
		}
	},
}
