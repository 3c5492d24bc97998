package main

import (
	"fmt"
	"log"

	"github.com/piwi3910/shelfpack/internal/engine"
	"github.com/piwi3910/shelfpack/internal/project"
	"github.com/piwi3910/shelfpack/internal/server"
)

// ============================================================
// ShelfPack HTTP Service
// ============================================================

func main() {
	cfg := server.LoadConfig()

	var store project.Store
	backend := cfg.DBPath
	if cfg.StateFile != "" {
		store = project.NewFileStore(cfg.StateFile)
		backend = cfg.StateFile
	} else {
		db, err := project.OpenSQLite(cfg.DBPath)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		defer db.Close()
		store = db
	}

	opts := engine.DefaultOptions()
	opts.Seed = cfg.Seed
	session, err := engine.NewSession(opts)
	if err != nil {
		log.Fatalf("new session: %v", err)
	}

	st, ok, err := project.LoadState(store)
	switch {
	case err != nil:
		log.Printf("[STATE] could not read saved bay: %v", err)
	case ok:
		if err := session.Restore(st); err != nil {
			log.Printf("[STATE] saved bay discarded: %v", err)
		} else {
			log.Printf("[STATE] restored %d shapes", len(st.Shapes))
		}
	}

	app := server.NewApp(cfg, server.New(session, store, nil))

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting ShelfPack on %s (env: %s, store: %s)", addr, cfg.Environment, backend)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
