package app

import (
	"context"
	"errors"
	"hash/maphash"
	"math/rand/v2"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-panel/internal/config"
	"github.com/vancomm/minesweeper-panel/internal/game"
	"github.com/vancomm/minesweeper-panel/internal/middleware"
)

type App struct {
	log      *logrus.Logger
	config   *config.Config
	router   *http.ServeMux
	registry *game.Registry
}

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func New(log *logrus.Logger, cfg *config.Config) *App {
	app := &App{
		log:      log,
		config:   cfg,
		router:   http.NewServeMux(),
		registry: game.NewRegistry(log, cfg.Session.TTL.Duration, createRand()),
	}
	app.loadRoutes()
	return app
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Logging(a.log),
		middleware.Cors(a.config.CorsOrigins...),
	)
}

// Start serves until ctx is cancelled or the listener fails.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.config.Addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	a.log.Infof("ready to serve @ %s", a.config.Addr)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(sCtx)
	})
	g.Go(func() error {
		return a.registry.Run(gCtx, a.config.Session.SweepInterval.Duration)
	})

	return g.Wait()
}
