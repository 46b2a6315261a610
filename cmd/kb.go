package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/healthmate-ai/healthmate/internal/app"
	"github.com/healthmate-ai/healthmate/internal/config"
	"github.com/healthmate-ai/healthmate/internal/knowledge"
)

var (
	kbTopK     int
	kbCategory string
)

var kbCmd = &cobra.Command{
	Use:   "kb",
	Short: "Query the medical knowledge base",
}

var kbSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the knowledge base by similarity",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runKBSearch,
}

var kbCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List knowledge base categories",
	RunE: func(*cobra.Command, []string) error {
		for _, c := range knowledge.Categories() {
			fmt.Println(c)
		}
		return nil
	},
}

func init() {
	kbSearchCmd.Flags().IntVar(&kbTopK, "k", knowledge.DefaultTopK, "number of results")
	kbSearchCmd.Flags().StringVar(&kbCategory, "category", "", "restrict to one category")
	kbCmd.AddCommand(kbSearchCmd)
	kbCmd.AddCommand(kbCategoriesCmd)
	rootCmd.AddCommand(kbCmd)
}

func runKBSearch(_ *cobra.Command, args []string) error {
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

	query := strings.Join(args, " ")
	results, err := a.Knowledge.Search(ctx, query, kbTopK, kbCategory)
	if err != nil {
		return fmt.Errorf("searching knowledge base: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("no results")
		return nil
	}
	for i, res := range results {
		fmt.Printf("%d. %s [%s] (similarity %.2f)\n", i+1, res.Title, res.Category, res.Similarity)
		fmt.Println(indent(res.Content, "   "))
	}
	return nil
}

func indent(text, prefix string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
