package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"globe-quiz-service/internal/app"
	"globe-quiz-service/internal/config"
	transport "globe-quiz-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(opts rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the question API and quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			return runServer(cmd.Context(), cfg, opts.port(), log)
		},
	}
}

func runServer(ctx context.Context, cfg config.Config, portFlag string, log *zap.Logger) error {
	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	rt, err := buildRuntime(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer rt.Close()

	service := app.NewQuizService(rt.sessions, app.NewQuizCatalog(rt.cache, cfg.Questions.QuizSize))
	router := transport.NewRouter(log.Named("http"),
		transport.NewWSHandler(service, log.Named("ws")),
		transport.NewQuestionsHandler(rt.fetcher, rt.cache, rt.admission, rt.coverage, log.Named("http")),
		transport.NewCountriesHandler(rt.countries, rt.countries, log.Named("http")),
	)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting globe quiz service", zap.String("port", finalPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		log.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
