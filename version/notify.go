package version

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/scrub-cli/scrub/color"
	"github.com/scrub-cli/scrub/constant"
	"github.com/scrub-cli/scrub/icon"
	"github.com/scrub-cli/scrub/key"
	"github.com/scrub-cli/scrub/log"
	"github.com/scrub-cli/scrub/style"
	"github.com/scrub-cli/scrub/util"
	"github.com/spf13/viper"
)

// Notify prints a notice when a newer release than the running one exists.
// Lookup failures are logged and otherwise ignored.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(icon.Get(icon.Progress) + " Checking for a new release...")
	latest, err := Latest(context.Background())
	erase()

	if err != nil {
		log.Warnf("version check: %v", err)
		return
	}

	notice(os.Stdout, latest)
}

// notice writes the release notice to w if latest is newer than the running version.
func notice(w io.Writer, latest Semver) bool {
	current, err := Parse(constant.Version)
	if err != nil || latest.Compare(current) <= 0 {
		return false
	}

	_, _ = fmt.Fprintf(w, "\n%s %s is out %s\n%s\n\n",
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(constant.Scrub+" "+latest.String()),
		style.Faint("(you have "+current.String()+")"),
		style.Faint("https://github.com/scrub-cli/scrub/releases/tag/v"+latest.String()),
	)
	return true
}
