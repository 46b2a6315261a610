package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/healthmate-ai/healthmate/internal/app"
	"github.com/healthmate-ai/healthmate/internal/config"
)

var (
	askUser    string
	askSession string
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a one-shot question and stream the answer to stdout",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askUser, "user", "local", "user ID for memory and history")
	askCmd.Flags().StringVar(&askSession, "session", "", "session ID to continue (empty starts a new session)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := newLogger()
	a, err := app.Setup(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil {
			logger.Warn("shutdown error", "error", closeErr)
		}
	}()

	question := strings.Join(args, " ")

	onChunk := func(_ context.Context, chunk string) error {
		_, err := fmt.Print(chunk)
		return err
	}

	res, err := a.Chat.Stream(ctx, askUser, askSession, question, onChunk)
	fmt.Println()
	if err != nil {
		return fmt.Errorf("generating answer: %w", err)
	}

	fmt.Fprintf(os.Stderr, "session: %s\n", res.SessionID)
	return nil
}
