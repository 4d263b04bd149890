// Package cmd implements the command-line interface for vidmux.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidmux/vidmux/api"
	"github.com/vidmux/vidmux/constant"
	"github.com/vidmux/vidmux/key"
	"github.com/vidmux/vidmux/log"
	"github.com/vidmux/vidmux/provider"
	"github.com/vidmux/vidmux/stream"
	"github.com/vidmux/vidmux/style"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.Flags().IntP("port", "p", 0, "Port the HTTP server listens on")
	lo.Must0(viper.BindPFlag(key.ServerPort, rootCmd.Flags().Lookup("port")))

	rootCmd.PersistentFlags().StringSliceP("source", "S", []string{}, "Specify the default search sources to prioritize")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("source", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var sources []string
		for _, d := range provider.All() {
			sources = append(sources, d.ID)
		}
		return sources, cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.SourcesDefault, rootCmd.PersistentFlags().Lookup("source")))
}

// rootCmd starts the aggregation HTTP server.
var rootCmd = &cobra.Command{
	Use:   constant.Vidmux,
	Short: "A multi-source video search aggregation service",
	Long: constant.Vidmux + " fans search queries out to many independent video sources,\n" +
		"verifies which results are actually playable, and streams progress to the client.",
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(provider.Load())

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// Descriptor hot reload runs next to the server for its lifetime.
		go func() {
			if err := provider.Watch(ctx); err != nil && ctx.Err() == nil {
				log.Warnf("source watcher stopped: %v", err)
			}
		}()

		server := api.NewServer(api.NewHandler(stream.New()))
		handleErr(server.Run(ctx))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s\n", style.ErrorTitle(strings.Trim(err.Error(), " \n")))
		os.Exit(1)
	}
}
