// Package app assembles the process: credentials and upstream client
// first, then the capability modules, the registry fold, and finally
// the dispatcher and its transport. Construction is strictly one
// directional and fails fast; a misconfigured process never serves a
// single request.
package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"hostbridge/internal/api"
	"hostbridge/internal/config"
	"hostbridge/internal/dispatcher"
	"hostbridge/internal/modules/account"
	"hostbridge/internal/modules/databases"
	"hostbridge/internal/modules/dns"
	"hostbridge/internal/modules/domains"
	"hostbridge/internal/modules/email"
	"hostbridge/internal/modules/packages"
	"hostbridge/internal/registry"
	"hostbridge/internal/upstream"
	"hostbridge/pkg/logging"
)

// DefaultModules returns every capability module the server ships
// with, in registration order. The order is part of the collision
// contract: duplicate names are reported against the earlier module.
func DefaultModules(client *upstream.Client) []api.Module {
	return []api.Module{
		domains.New(client),
		packages.New(client),
		email.New(client),
		databases.New(client),
		dns.New(client),
		account.New(client),
	}
}

// Application is the assembled process, ready to run.
type Application struct {
	cfg    config.Config
	server *dispatcher.Server
}

// New builds the application. Missing credentials and capability name
// collisions are returned here, before any transport is opened.
func New(cfg config.Config) (*Application, error) {
	creds, err := upstream.CredentialsFromEnv()
	if err != nil {
		return nil, err
	}

	client := upstream.NewClient(cfg.Upstream.BaseURL, creds, cfg.UpstreamTimeout())

	reg, err := registry.Load(DefaultModules(client)...)
	if err != nil {
		return nil, fmt.Errorf("loading capability registry: %w", err)
	}

	d := dispatcher.New(reg)
	return &Application{
		cfg:    cfg,
		server: dispatcher.NewServer(d, cfg),
	}, nil
}

// Registry exposes the loaded capability list for the offline
// `capabilities` command.
func Registry(cfg config.Config, creds upstream.Credentials) (*registry.Registry, error) {
	client := upstream.NewClient(cfg.Upstream.BaseURL, creds, cfg.UpstreamTimeout())
	return registry.Load(DefaultModules(client)...)
}

// Run serves until the context is cancelled, an interrupt arrives, or
// the transport fails fatally.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.server.Start(ctx); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		select {
		case err := <-a.server.Errors():
			return fmt.Errorf("transport failed: %w", err)
		case <-gctx.Done():
			return nil
		}
	})
	g.Go(func() error {
		<-gctx.Done()
		logging.Info("App", "Shutting down")
		return a.server.Stop(context.Background())
	})

	return g.Wait()
}
