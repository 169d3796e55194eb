// Package main is the entry point for scrub.
package main

import (
	"github.com/samber/lo"
	"github.com/scrub-cli/scrub/cmd"
	"github.com/scrub-cli/scrub/config"
	"github.com/scrub-cli/scrub/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
