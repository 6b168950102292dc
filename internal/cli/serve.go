package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bloomwell/bloom/internal/analysis"
	"github.com/bloomwell/bloom/internal/chat"
	"github.com/bloomwell/bloom/internal/engagement"
	"github.com/bloomwell/bloom/internal/server"
)

var serveDebug bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the chat API server",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg, log, store, err := setup(ctx)
		if err != nil {
			exitErr("setup", err)
		}
		defer store.Close()

		lexicon := analysis.DefaultLexicon()
		if cfg.LexiconPath != "" {
			lexicon, err = analysis.LoadLexicon(cfg.LexiconPath)
			if err != nil {
				exitErr("load lexicon", err)
			}
		}

		analyzer := analysis.NewAnalyzer(lexicon)
		extractor := analysis.NewExtractor(lexicon)
		generator := chat.NewGenerator(store.Resources, nil)
		engine := engagement.NewEngine(store.Achievements, store.Achievements, store.Messages, log)

		service := chat.NewService(chat.ServiceParams{
			Analyzer:      analyzer,
			Extractor:     extractor,
			Contexts:      chat.NewContextBuilder(store.Messages, extractor, log),
			Generator:     generator,
			Overrider:     chat.NewOverrider(generator, time.Now),
			Messages:      store.Messages,
			Sessions:      store.Sessions,
			Profiles:      store.Profiles,
			Personalities: store.Personalities,
			Patterns:      store.Patterns,
			Achievements:  engine,
			Log:           log,
		})

		srv := server.New(server.Params{
			Addr:                cfg.HTTPAddr,
			Chat:                service,
			Store:               store,
			Analyzer:            analyzer,
			TopK:                cfg.TopK,
			SimilarityThreshold: cfg.SimilarityThreshold,
			Debug:               serveDebug,
			Log:                 log,
		})

		if err := srv.Run(ctx); err != nil {
			exitErr("server", err)
		}
		log.Info().Msg("server shutdown complete")
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Run gin in debug mode")
}
