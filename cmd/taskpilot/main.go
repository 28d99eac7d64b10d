package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taskpilot/config"
	"taskpilot/internal/server"
)

var version = "dev"

func main() {
	root := &cobra.Command{Use: "taskpilot", Short: "Plan-and-execute task agent"}
	root.AddCommand(serveCMD(), versionCMD())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCMD() *cobra.Command {
	var cfgPath string
	var listen string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Server.Listen = listen
			}
			return server.Run(cfg)
		},
	}
	serve.Flags().StringVar(&listen, "addr", "", "listen address (overrides config)")
	serve.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is ./config.yaml)")
	return serve
}

func versionCMD() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}
}
