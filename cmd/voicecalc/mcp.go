package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/Vovarama1992/voice_calc/internal/config"
	"github.com/Vovarama1992/voice_calc/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server on stdio",
	Long: `Exposes the calculator as MCP tools: calculate, integrate, differentiate
and simplify_trig. Logs go to stderr so they don't corrupt JSON-RPC on stdout.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		log.SetOutput(os.Stderr)

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		// zap production logs to stderr already
		base, err := newLogger(cfg.LogLevel)
		if err != nil {
			return err
		}
		defer base.Sync()

		a, err := buildApp(cmd.Context(), cfg, base, appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()

		a.log.Infow("[mcp] serving on stdio")
		return mcp.NewServer(a.calc).ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
