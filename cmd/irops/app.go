package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phantom-air/irops/internal/config"
	"github.com/phantom-air/irops/internal/narrative"
	"github.com/phantom-air/irops/internal/ops"
	"github.com/phantom-air/irops/internal/recovery"
	"github.com/phantom-air/irops/internal/warehouse"
)

// app wires the service layer for one command invocation.
type app struct {
	cfg       *config.Config
	wh        *warehouse.Client
	store     *recovery.SQLiteStore
	recovery  *recovery.Manager
	ops       *ops.Service
	assistant narrative.Completer
}

// newApp connects the warehouse and opens the session store. Callers
// must Close.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	wh, err := warehouse.Open(cfg.Warehouse)
	if err != nil {
		return nil, fmt.Errorf("connecting to warehouse: %w", err)
	}

	store, err := recovery.OpenStore(cfg.Store.Path)
	if err != nil {
		wh.Close()
		return nil, fmt.Errorf("opening session store: %w", err)
	}

	a := &app{
		cfg:      cfg,
		wh:       wh,
		store:    store,
		recovery: recovery.NewManager(wh, store, wh),
		ops:      ops.NewService(wh),
	}
	if cfg.Agent.Enabled {
		a.assistant = narrative.NewCortexClient(wh, cfg.Agent.Model)
	}
	return a, nil
}

func (a *app) Close() {
	a.store.Close()
	a.wh.Close()
}
