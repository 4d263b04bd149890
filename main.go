// Package main is the entry point for the vidmux service.
package main

import (
	"github.com/samber/lo"
	"github.com/vidmux/vidmux/cmd"
	"github.com/vidmux/vidmux/config"
	"github.com/vidmux/vidmux/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
