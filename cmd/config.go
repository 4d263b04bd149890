package cmd

import (
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidmux/vidmux/color"
	"github.com/vidmux/vidmux/config"
	"github.com/vidmux/vidmux/style"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

// configCmd provides a parent command for configuration inspection.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect application configuration",
}

func init() {
	configCmd.AddCommand(configListCmd)
	configListCmd.Flags().BoolP("env", "e", false, "Show the environment variable for each field")
	configListCmd.SetOut(os.Stdout)
}

// configListCmd prints every configuration field with its current value.
var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Display all configuration fields and their current values",
	Run: func(cmd *cobra.Command, args []string) {
		showEnv := lo.Must(cmd.Flags().GetBool("env"))
		keyStyle := style.Fg(color.Purple)

		for _, k := range config.Keys() {
			field := config.Default[k]
			cmd.Printf("%s = %v\n", keyStyle(k), viper.Get(k))
			if showEnv {
				cmd.Println(style.Faint("  env: " + field.Env()))
			}
		}
	},
}
