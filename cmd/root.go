// Package cmd implements the command-line interface for scrub.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Southclaws/fault/fmsg"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/scrub-cli/scrub/color"
	"github.com/scrub-cli/scrub/config"
	"github.com/scrub-cli/scrub/constant"
	"github.com/scrub-cli/scrub/icon"
	"github.com/scrub-cli/scrub/key"
	"github.com/scrub-cli/scrub/log"
	"github.com/scrub-cli/scrub/style"
	"github.com/scrub-cli/scrub/tui"
	"github.com/scrub-cli/scrub/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the version and exit")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Icons variant: "+strings.Join(icon.AvailableVariants(), ", "))
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", cobra.FixedCompletions(icon.AvailableVariants(), cobra.ShellCompDirectiveNoFileComp)))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.Flags().BoolP("write-history", "H", true, "Save the playback position on exit")
	lo.Must0(viper.BindPFlag(key.HistorySaveOnExit, rootCmd.Flags().Lookup("write-history")))

	rootCmd.Flags().BoolP("snap", "s", true, "Snap seeks that land near a chapter start onto it")
	lo.Must0(viper.BindPFlag(key.SnapEnable, rootCmd.Flags().Lookup("snap")))

	rootCmd.Flags().BoolP("continue", "c", false, "Resume the most recently played file")
	rootCmd.Flags().StringP("title", "t", "", "Title shown instead of the file name")
	rootCmd.Flags().String("hook", "", "Lua seek hook to load, by name or path")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("hook", completionHooks))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})
}

// rootCmd defines the entry point for the scrub application.
var rootCmd = &cobra.Command{
	Use:   constant.Scrub + " [file or url]",
	Short: "Scrub through videos from the terminal",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Terminal transport controls for mpv"),
	Args: cobra.MaximumNArgs(1),
	Example: "  scrub ~/Videos/talk.mkv\n" +
		"  scrub -c\n" +
		"  scrub --hook snap https://example.com/stream.m3u8",
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(config.Validate())
		CheckDependencies()

		options := tui.Options{
			Continue: lo.Must(cmd.Flags().GetBool("continue")),
			Title:    lo.Must(cmd.Flags().GetString("title")),
			Hook:     lo.Must(cmd.Flags().GetString("hook")),
		}

		if len(args) > 0 {
			options.Target = args[0]
		}

		handleErr(tui.Run(&options))
	},
}

// Execute runs the command line.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiMagenta + cc.Bold + cc.Underline,
			Commands:      cc.HiGreen + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.HiYellow,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// handleErr prints err and exits. Errors carrying a user-facing message show that
// message, the full chain goes to the log.
func handleErr(err error) {
	if err == nil {
		return
	}

	log.Error(err)

	message := fmsg.GetIssue(err)
	if message == "" {
		message = err.Error()
	}

	_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(message, " \n"))
	os.Exit(1)
}
