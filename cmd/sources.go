package cmd

import (
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vidmux/vidmux/color"
	"github.com/vidmux/vidmux/provider"
	"github.com/vidmux/vidmux/source"
	"github.com/vidmux/vidmux/style"
)

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

// sourcesCmd provides a parent command for inspecting the source registry.
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Inspect built-in and user-defined content sources",
}

func init() {
	sourcesCmd.AddCommand(sourcesListCmd)

	sourcesListCmd.Flags().BoolP("raw", "r", false, "Suppress header and metadata in the output")
	sourcesListCmd.Flags().BoolP("enabled", "e", false, "Display only sources that participate in searches")
	sourcesListCmd.SetOut(os.Stdout)
}

// sourcesListCmd displays a summary of all registered content sources.
var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Display a collection of all registered content sources",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(provider.Load())

		descriptors := provider.All()
		if lo.Must(cmd.Flags().GetBool("enabled")) {
			descriptors = provider.Enabled()
		}

		printSources(cmd, descriptors, !lo.Must(cmd.Flags().GetBool("raw")))
	},
}

func init() {
	sourcesCmd.AddCommand(sourcesSearchCmd)
	sourcesSearchCmd.SetOut(os.Stdout)
}

// sourcesSearchCmd finds registered sources whose id or name matches a term.
var sourcesSearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Fuzzy-find registered sources by id or display name",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(provider.Load())
		printSources(cmd, provider.FuzzyFind(args[0]), true)
	},
}

func printSources(cmd *cobra.Command, descriptors []*source.Descriptor, header bool) {
	headerStyle := style.New().Foreground(color.HiBlue).Bold(true).Render
	if header {
		cmd.Println(headerStyle("Sources:"))
	}

	for _, d := range descriptors {
		line := d.ID
		if header {
			line += "\t" + d.Name
			if !d.Enabled {
				line += "\t" + style.Faint("(disabled)")
			}
		}
		cmd.Println(line)
	}
}
