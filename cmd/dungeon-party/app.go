package main

import (
	"github.com/ericogr/dungeon-party/internal/config"
	"github.com/ericogr/dungeon-party/internal/engine"
	"github.com/ericogr/dungeon-party/internal/logging"
)

// loadEngineOrExit reads the content catalogue and builds the rules engine.
func loadEngineOrExit(path string) *engine.Engine {
	loaded, err := config.LoadContent(path)
	if err != nil {
		logging.Fatal("Missing or invalid content file", err, logging.Fields{"content_path": path})
	}
	logging.Info("content loaded", logging.Fields{
		"classes":    len(loaded.Classes),
		"cards":      len(loaded.Cards),
		"monsters":   len(loaded.Monsters),
		"encounters": len(loaded.Encounters),
		"bad_notes":  len(loaded.DirectiveErrors),
	})
	return engine.New(&loaded.Content, loaded.DirectiveErrors)
}
