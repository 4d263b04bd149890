package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/vidmux/vidmux/style"
	"github.com/vidmux/vidmux/where"
)

func init() {
	rootCmd.AddCommand(whereCmd)
	whereCmd.SetOut(os.Stdout)
}

// whereCmd prints the filesystem locations the application reads and writes.
var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Display the application's filesystem locations",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("%s %s\n", style.Bold("config "), where.Config())
		cmd.Printf("%s %s\n", style.Bold("sources"), where.Sources())
		cmd.Printf("%s %s\n", style.Bold("logs   "), where.Logs())
	},
}
