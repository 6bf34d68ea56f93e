package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/BilalEnesS/calender-telegram-app/internal/bot"
	"github.com/BilalEnesS/calender-telegram-app/internal/calendar"
	"github.com/BilalEnesS/calender-telegram-app/internal/profile"
	"github.com/BilalEnesS/calender-telegram-app/plugin/ai"
	"github.com/BilalEnesS/calender-telegram-app/plugin/ai/extract"
	"github.com/BilalEnesS/calender-telegram-app/plugin/ai/intent"
)

var rootCmd = &cobra.Command{
	Use:   "calbot",
	Short: "Telegram bot that turns natural-language Turkish commands into Google Calendar events",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context())
	},
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Run the one-time Google Calendar OAuth flow and store the token",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_ = godotenv.Load()
		p := profile.FromEnv()
		return calendar.Authorize(cmd.Context(), googleCredentials(p))
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
}

func run(ctx context.Context) error {
	_ = godotenv.Load()

	p := profile.FromEnv()
	if err := p.Validate(); err != nil {
		return err
	}

	logger := newLogger(p)
	slog.SetDefault(logger)

	provider, err := ai.NewProvider(&ai.Config{
		BaseURL:   p.OpenAIBaseURL,
		APIKey:    p.OpenAIAPIKey,
		ChatModel: p.OpenAIModel,
	})
	if err != nil {
		return err
	}

	svc, err := calendar.NewService(ctx, googleCredentials(p))
	if err != nil {
		return err
	}
	submitter := calendar.NewSubmitter(svc, p.GoogleEmail, p.Location())

	router := bot.NewRouter(intent.NewClassifier(nil), extract.NewExtractor(provider), submitter)

	b, err := bot.New(p.TelegramToken, router, logger)
	if err != nil {
		return err
	}

	logger.Info("starting calbot",
		slog.String("mode", p.Mode),
		slog.String("timezone", p.Timezone),
		slog.String("model", p.OpenAIModel))
	return b.Run(ctx)
}

func googleCredentials(p *profile.Profile) calendar.Credentials {
	return calendar.Credentials{
		CredentialsFile:   p.GoogleCredentialsFile,
		CredentialsBase64: p.GoogleCredentialsBase64,
		TokenFile:         p.GoogleTokenFile,
	}
}

func newLogger(p *profile.Profile) *slog.Logger {
	if p.IsDev() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("calbot exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
