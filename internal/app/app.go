package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gitlab.com/nevasik7/alerting"

	"sniperscope/internal/netsim"
	"sniperscope/internal/watcher"
)

type HTTPServer interface {
	Start() error
	Shutdown(ctx context.Context) error
}

type App struct {
	alert   alerting.Alerting
	httpSrv HTTPServer

	watcher        *watcher.Watcher
	netsim         *netsim.Simulator
	netsimInterval time.Duration

	cancelWatch context.CancelFunc
}

func New(lg alerting.Alerting, httpSrv HTTPServer, w *watcher.Watcher, sim *netsim.Simulator, netsimInterval time.Duration) *App {
	return &App{
		alert:          lg,
		httpSrv:        httpSrv,
		watcher:        w,
		netsim:         sim,
		netsimInterval: netsimInterval,
	}
}

func (a *App) Start() error {
	a.alert.Debug("App started begin...")

	watchCtx, cancel := context.WithCancel(context.Background())
	a.cancelWatch = cancel
	go a.watcher.Run(watchCtx)

	if err := a.netsim.Start(a.netsimInterval); err != nil {
		cancel()
		return err
	}

	go func() {
		if err := a.httpSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.alert.Fatalf("Start HTTP server is error=%v", err)
		}
	}()

	a.alert.Info("App started")
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	a.alert.Debug("App stopped begin...")

	if a.cancelWatch != nil {
		a.cancelWatch()
	}
	a.netsim.Stop()

	if err := a.httpSrv.Shutdown(ctx); err != nil {
		return err
	}

	a.alert.Info("App stopped")
	return nil
}
