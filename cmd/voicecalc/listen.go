package main

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Vovarama1992/voice_calc/internal/calc"
	"github.com/Vovarama1992/voice_calc/internal/speech"
)

// listenCmd is the Basic Operations surface fed from a recording.
var listenCmd = &cobra.Command{
	Use:   "listen <audio-file>",
	Short: "Transcribe a recording and evaluate what was said (Basic Operations)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read audio: %w", err)
		}

		audio := speech.Audio{
			Data: data,
			Name: filepath.Base(path),
			MIME: mime.TypeByExtension(filepath.Ext(path)),
		}

		return runLocal(cmd, func(ctx context.Context, a *app) calc.Outcome {
			transcript, captureErr := a.speech.Listen(ctx, audio)
			return a.calc.Basic(ctx, transcript.Text, captureErr)
		})
	},
}

func init() {
	rootCmd.AddCommand(listenCmd)
}
