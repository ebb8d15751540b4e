package main

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Vovarama1992/voice_calc/internal/calc"
	"github.com/Vovarama1992/voice_calc/internal/config"
	"github.com/Vovarama1992/voice_calc/internal/report"
)

// runLocal builds the app for a one-shot terminal command and reports the outcome.
func runLocal(cmd *cobra.Command, fn func(ctx context.Context, a *app) calc.Outcome) error {
	speak, _ := cmd.Flags().GetBool("speak")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	base, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer base.Sync()

	ctx := cmd.Context()
	a, err := buildApp(ctx, cfg, base, appOptions{playback: speak})
	if err != nil {
		return err
	}
	defer a.Close()

	var speaker report.Speaker
	if speak {
		speaker = a.speech
	}
	reporter := report.New(report.NewTerminalDisplay(os.Stdout), speaker)

	out := fn(ctx, a)
	// a speech failure is already on screen
	_ = reporter.Report(ctx, report.Report{Lines: out.Lines, Speech: out.Speech})
	return nil
}

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate an arithmetic expression (Mathematical Expressions)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLocal(cmd, func(ctx context.Context, a *app) calc.Outcome {
			return a.calc.Expression(ctx, strings.Join(args, " "))
		})
	},
}

var integrateCmd = &cobra.Command{
	Use:   "integrate <expression>",
	Short: "Integrate with respect to x; --lower and --upper give a definite integral",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lower, _ := cmd.Flags().GetString("lower")
		upper, _ := cmd.Flags().GetString("upper")
		return runLocal(cmd, func(ctx context.Context, a *app) calc.Outcome {
			return a.calc.Integrate(ctx, strings.Join(args, " "), lower, upper)
		})
	},
}

var diffCmd = &cobra.Command{
	Use:   "diff <expression>",
	Short: "Differentiate with respect to x",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLocal(cmd, func(ctx context.Context, a *app) calc.Outcome {
			return a.calc.Differentiate(ctx, strings.Join(args, " "))
		})
	},
}

var trigCmd = &cobra.Command{
	Use:   "trig <expression>",
	Short: "Simplify a trigonometric expression",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLocal(cmd, func(ctx context.Context, a *app) calc.Outcome {
			return a.calc.Trigonometry(ctx, strings.Join(args, " "))
		})
	},
}

func init() {
	integrateCmd.Flags().String("lower", "", "Lower limit")
	integrateCmd.Flags().String("upper", "", "Upper limit")

	rootCmd.AddCommand(evalCmd, integrateCmd, diffCmd, trigCmd)
}
