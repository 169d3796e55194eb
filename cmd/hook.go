// Package cmd implements the command-line interface for scrub.
package cmd

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/scrub-cli/scrub/color"
	"github.com/scrub-cli/scrub/filesystem"
	"github.com/scrub-cli/scrub/hook"
	"github.com/scrub-cli/scrub/icon"
	"github.com/scrub-cli/scrub/style"
	"github.com/scrub-cli/scrub/timefmt"
	"github.com/scrub-cli/scrub/util"
	"github.com/scrub-cli/scrub/where"
	"github.com/spf13/cobra"
)

const hookExtension = ".lua"

// installedHooks returns the names of the scripts in the hooks directory.
func installedHooks() ([]string, error) {
	entries, err := filesystem.API().ReadDir(where.Hooks())
	if err != nil {
		return nil, err
	}

	return lo.FilterMap(entries, func(item os.FileInfo, _ int) (string, bool) {
		name := item.Name()
		if item.IsDir() || !strings.HasSuffix(name, hookExtension) {
			return "", false
		}

		return util.FileStem(name), true
	}), nil
}

func completionHooks(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	names, err := installedHooks()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	return names, cobra.ShellCompDirectiveDefault
}

func init() {
	rootCmd.AddCommand(hookCmd)
}

// hookCmd is the parent command for Lua seek hooks.
var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Manage Lua seek hooks",
	Long: `Manage Lua seek hooks.
A hook is a Lua script that is told when a seek starts and ends, and may take
the seek over by returning true.`,
}

func init() {
	hookCmd.AddCommand(hookListCmd)
	hookListCmd.SetOut(os.Stdout)
}

var hookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the hooks in the hooks directory",
	Run: func(cmd *cobra.Command, args []string) {
		names, err := installedHooks()
		handleErr(err)

		for _, name := range names {
			cmd.Printf("%s %s\n", icon.Get(icon.Lua), name)
		}
	},
}

func init() {
	hookCmd.AddCommand(hookNewCmd)
	hookNewCmd.Flags().BoolP("force", "f", false, "Overwrite an existing hook with the same name")
}

// hookNewCmd scaffolds a hook script defining both hook functions.
var hookNewCmd = &cobra.Command{
	Use:     "new [name]",
	Short:   "Scaffold a new hook script",
	Args:    cobra.ExactArgs(1),
	Example: "  scrub hook new snap-to-tens",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.SetOut(os.Stdout)

		author := "Anonymous"
		if usr, err := user.Current(); err == nil {
			author = usr.Username
		}

		name := util.SanitizeFilename(args[0])
		target := filepath.Join(where.Hooks(), name+hookExtension)

		if exists, _ := filesystem.API().Exists(target); exists && !lo.Must(cmd.Flags().GetBool("force")) {
			handleErr(fmt.Errorf("hook %s already exists, use --force to overwrite it", name))
		}

		f, err := filesystem.API().Create(target)
		handleErr(err)

		defer util.Ignore(f.Close)

		handleErr(hook.Scaffold(f, name, author))
		cmd.Println(target)
	},
}

// recordedSeeks collects the seeks a hook asks for instead of performing them.
type recordedSeeks []int64

func (r *recordedSeeks) SeekTo(position int64) {
	*r = append(*r, position)
}

func init() {
	hookCmd.AddCommand(hookCheckCmd)
	hookCheckCmd.Flags().Int64P("end", "e", 60000, "Target position in milliseconds passed to OnSeekEnded")
	hookCheckCmd.SetOut(os.Stdout)
}

// hookCheckCmd loads a hook and runs one simulated seek through it.
var hookCheckCmd = &cobra.Command{
	Use:               "check [name or path]",
	Short:             "Load a hook and run a simulated seek through it",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionHooks,
	Example:           "  scrub hook check snap-to-tens --end 41000",
	Run: func(cmd *cobra.Command, args []string) {
		var seeks recordedSeeks

		h, err := hook.Load(hook.Resolve(args[0]), &seeks)
		handleErr(err)
		defer h.Close()

		end := lo.Must(cmd.Flags().GetInt64("end"))
		verdict := func(handled bool) string {
			if handled {
				return style.Fg(color.Yellow)("handled")
			}
			return style.Faint("default")
		}

		cmd.Printf("%s %s defines %s\n", icon.Get(icon.Hook), style.Fg(color.Purple)(h.Name()), strings.Join(h.Defines(), ", "))
		cmd.Printf("  OnSeekStarted()     %s\n", verdict(h.OnSeekStarted()))
		cmd.Printf("  OnSeekEnded(%s)  %s\n", timefmt.Format(end), verdict(h.OnSeekEnded(end)))

		for _, position := range seeks {
			cmd.Printf("  seek(%s)\n", style.Bold(timefmt.Format(position)))
		}

		cmd.Printf("%s %s loaded fine\n", style.Fg(color.Green)(icon.Get(icon.Success)), h.Name())
	},
}
