package cmd

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidmux/vidmux/key"
	"github.com/vidmux/vidmux/provider"
	"github.com/vidmux/vidmux/stream"
)

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.SetOut(os.Stdout)

	searchCmd.Flags().BoolP("no-verify", "n", false, "Skip the availability probe stage and return raw search results")
	searchCmd.Flags().BoolP("pretty", "P", false, "Indent the JSON output")
}

// searchCmd runs one search-and-verify pipeline invocation and prints the
// folded result as JSON, the non-interactive counterpart of the HTTP API.
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Run one aggregated search and print the result as JSON",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("no-verify")) {
			viper.Set(key.VerifyEnabled, false)
		}

		handleErr(provider.Load())

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		summary, err := stream.New().Collect(ctx, stream.Request{
			Query:     args[0],
			SourceIDs: viper.GetStringSlice(key.SourcesDefault),
		})
		handleErr(err)

		encoder := json.NewEncoder(cmd.OutOrStdout())
		if lo.Must(cmd.Flags().GetBool("pretty")) {
			encoder.SetIndent("", "  ")
		}
		handleErr(encoder.Encode(summary))
	},
}
