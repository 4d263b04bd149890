package cmd

import (
	"os"
	"runtime"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vidmux/vidmux/constant"
	"github.com/vidmux/vidmux/style"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Display only the version string without metadata")
}

// versionCmd displays application version and build metadata.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version and build metadata",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		cmd.Printf("%s %s (%s/%s)\n", style.Bold(constant.Vidmux), constant.Version, runtime.GOOS, runtime.GOARCH)
	},
}
