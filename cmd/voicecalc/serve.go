package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"

	"github.com/Vovarama1992/voice_calc/internal/config"
	"github.com/Vovarama1992/voice_calc/internal/delivery"
	"github.com/Vovarama1992/voice_calc/internal/notifier"
	"github.com/Vovarama1992/voice_calc/internal/telegram"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the Telegram bot",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		// =========================================================================
		// ENV / LOGGER
		// =========================================================================

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		base, err := newLogger(cfg.LogLevel)
		if err != nil {
			return err
		}
		defer base.Sync()
		zl := logger.NewZapLogger(base.Sugar())

		// =========================================================================
		// TELEGRAM BOT (optional)
		// =========================================================================

		var opts appOptions
		bot, err := initBot(cfg)
		switch {
		case err != nil:
			base.Sugar().Warnw("[serve] telegram unavailable", "err", err)
		case bot == nil:
			base.Sugar().Infow("[serve] TELEGRAM_TOKEN not set, bot disabled")
		}
		if bot != nil && cfg.AdminChatID != 0 {
			opts.notifyInfra = notifier.NewTelegramInfra(bot, cfg.AdminChatID, "voicecalc")
		}

		a, err := buildApp(ctx, cfg, base, opts)
		if err != nil {
			return err
		}
		defer a.Close()

		if bot != nil {
			telegram.NewBotApp(a.calc, a.speech, a.notify, a.log).Start(ctx, bot)
		}

		// =========================================================================
		// HTTP ROUTER
		// =========================================================================

		var store delivery.AudioStore
		if a.store != nil {
			store = a.store
		}
		calcHandler := delivery.NewCalcHandler(a.calc, a.speech, a.speech, store, zl)
		rulesHandler := delivery.NewTextRuleHandler(a.rules, zl)

		r := delivery.NewRouter(delivery.RouterConfig{
			RateLimitPerMinute: cfg.RateLimitPerMinute,
			AdminToken:         cfg.AdminToken,
			Metrics:            a.metrics.Handler(),
		}, calcHandler, rulesHandler)

		// =========================================================================
		// START SERVER
		// =========================================================================

		srv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			zl.Log(logger.LogEntry{
				Level:   "info",
				Message: "listening at " + srv.Addr,
				Service: "voicecalc",
			})
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	},
}

func initBot(cfg config.Config) (*tgbotapi.BotAPI, error) {
	if cfg.TelegramToken == "" {
		return nil, nil
	}
	return telegram.InitBot(cfg.TelegramToken)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
