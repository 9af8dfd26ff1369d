package main

import (
	"context"
	"fmt"
	"os"

	"studymeet/app"
	"studymeet/config"
	"studymeet/log"

	"github.com/spf13/cobra"
)

var (
	version    = "1.0.0"
	serverFlag string
	pollFlag   int

	rootCmd = &cobra.Command{
		Use:     "studymeet",
		Short:   "StudyMeet - a terminal client for coordinating study sessions",
		Args:    cobra.NoArgs,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			log.Initialize()
			defer log.Close()

			cfg := config.LoadConfig()
			if serverFlag != "" {
				cfg.ServerURL = serverFlag
			}
			if pollFlag > 0 {
				cfg.PollIntervalSeconds = pollFlag
			}

			log.Infof("starting studymeet against %s (poll %ds)", cfg.ServerURL, cfg.PollIntervalSeconds)
			return app.Run(ctx, cfg)
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of studymeet",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("studymeet version: %s\n", version)
		},
	}
)

func init() {
	rootCmd.Flags().StringVar(&serverFlag, "server", "", "Base URL of the backend (overrides config and environment)")
	rootCmd.Flags().IntVar(&pollFlag, "poll", 0, "Background refresh period in seconds")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
