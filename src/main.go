// Blueprint for new Go projects
// Author: Christi Mahu – https://christimahu.dev
// Part of the dev repo: https://github.com/christimahu/dev/
// This file is part of a minimal idiomatic Go blueprint for creating new applications.
//
// main.go - Entry point for the chatbot application. Trains a bot on the
// built-in exchanges and a corpus, then answers stdin line by line until
// "quit" or "exit".

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/christimahu/dev/usherchat/src/chatbot"
	"github.com/christimahu/dev/usherchat/src/config"
	"github.com/christimahu/dev/usherchat/src/console"
	"github.com/christimahu/dev/usherchat/src/corpus"
	"github.com/christimahu/dev/usherchat/src/llm"
	"github.com/christimahu/dev/usherchat/src/seed"
	"github.com/christimahu/dev/usherchat/src/storage"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin))
}

// run executes the command line and returns the process exit status.
func run(args []string, in io.Reader) int {
	// a missing .env is fine; the environment alone is enough
	_ = godotenv.Load()

	cmd := newRootCmd(in, os.Stdout)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		ancli.PrintErr(fmt.Sprintf("%v\n", err))
		return 1
	}
	return 0
}

// overrides holds flag values that take precedence over the environment.
type overrides struct {
	name      string
	user      string
	corpus    string
	storage   string
	db        string
	selection string
	logLevel  string
	readOnly  bool
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	var o overrides

	root := &cobra.Command{
		Use:           "usherchat",
		Short:         "Chat with a bot trained on example exchanges and a bundled corpus",
		Long:          "Reads one line at a time from stdin and prints the bot's reply. Type quit or exit to stop.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			o.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return chat(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	root.SetIn(in)
	root.SetOut(out)

	f := root.Flags()
	f.StringVar(&o.name, "name", "", "bot name (CHATBOT_NAME)")
	f.StringVar(&o.user, "user", "", "name the bot calls you (CHATBOT_USER_NAME)")
	f.StringVar(&o.corpus, "corpus", "", "corpus identifier or path (CHATBOT_CORPUS)")
	f.StringVar(&o.storage, "storage", "", "memory, sqlite or badger (CHATBOT_STORAGE)")
	f.StringVar(&o.db, "db", "", "database path for sqlite or badger (CHATBOT_DB_PATH)")
	f.StringVar(&o.selection, "selection", "", "first, frequent or random (CHATBOT_RESPONSE_SELECTION)")
	f.StringVar(&o.logLevel, "log-level", "", "debug, info, warn or error (CHATBOT_LOG_LEVEL)")
	f.BoolVar(&o.readOnly, "read-only", false, "do not learn from the conversation (CHATBOT_READ_ONLY)")

	root.AddCommand(&cobra.Command{
		Use:   "corpora",
		Short: "List the bundled corpus identifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ids, err := corpus.Bundled()
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	})

	return root
}

func (o *overrides) apply(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("name") {
		cfg.BotName = o.name
	}
	if f.Changed("user") {
		cfg.UserName = o.user
	}
	if f.Changed("corpus") {
		cfg.Corpus = o.corpus
	}
	if f.Changed("storage") {
		cfg.Storage = o.storage
	}
	if f.Changed("db") {
		cfg.DBPath = o.db
	}
	if f.Changed("selection") {
		cfg.ResponseSelection = o.selection
	}
	if f.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if f.Changed("read-only") {
		cfg.ReadOnly = o.readOnly
	}
}

func setupLogging(levelName string) error {
	level, err := config.ParseLevel(levelName)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		return storage.NewSQLite(cfg.DBPath)
	case config.StorageBadger:
		return storage.NewBadger(cfg.DBPath)
	default:
		return storage.NewMemory(), nil
	}
}

// chat trains the agent and runs the interactive loop.
func chat(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	if err := setupLogging(cfg.LogLevel); err != nil {
		return err
	}

	selection, err := chatbot.ParseSelection(cfg.ResponseSelection)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close storage", "error", closeErr)
		}
	}()

	bot := chatbot.NewBot(cfg.BotName, store,
		chatbot.WithReadOnly(cfg.ReadOnly),
		chatbot.WithSelection(selection),
		chatbot.WithMaxSimilarity(cfg.MaxSimilarity),
		chatbot.WithMinConfidence(cfg.MinConfidence),
	)
	var agent chatbot.Agent = bot
	if cfg.OpenAI.Enabled {
		agent = chatbot.NewChain(bot, llm.New(llm.Config{
			Name:    cfg.BotName,
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.Model,
		}))
	}
	slog.Info("Starting chatbot", "agent", agent.Info().Name, "storage", cfg.Storage, "conversation", bot.Conversation())

	if err := agent.TrainFromPairs(ctx, seed.Exchanges()); err != nil {
		return fmt.Errorf("train exchanges: %w", err)
	}
	if err := agent.TrainFromCorpus(ctx, cfg.Corpus); err != nil {
		return fmt.Errorf("train corpus: %w", err)
	}

	reader := console.NewLineReader(in, out)
	defer reader.Close()

	formatter := chatbot.NewFormatter(cfg.UserName, time.Now)
	return console.New(agent, reader, out, console.WithFormat(formatter.Format)).Run(ctx)
}
