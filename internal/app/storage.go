package app

import (
	"github.com/taskvault/taskvault/internal/config"
	"github.com/taskvault/taskvault/internal/storage"
)

var globalStorage storage.Store

// Storage returns the opened document store. Valid after MustOpenStorage.
func Storage() storage.Store {
	return globalStorage
}

func MustOpenStorage() {
	cfg := config.Global().Storage

	store, err := storage.NewFileStore(globalLogger, cfg.Dir)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("dir", cfg.Dir).
			Msg("failed to open storage")
		panic(err)
	}
	globalStorage = store

	globalLogger.Debug().
		Str("dir", cfg.Dir).
		Msg("opened storage")
}
