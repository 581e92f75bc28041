package platform

import (
	"context"
	"log/slog"

	"github.com/aretw0/memo/pkg/adapters/fs"
	"github.com/aretw0/memo/pkg/core"
)

// New builds a ready memo service.
//
//	svc, err := memo.New(ctx, "", memo.WithWatch(true))
//
// The URI is the data file path; empty means the per-user default.
// ctx bounds background work started here, such as the file watcher.
func New(ctx context.Context, uri string, opts ...Option) (*core.Service, error) {
	o := applyOptions(opts)

	if o.configFile != "" {
		cfg, err := LoadConfig(o.configFile)
		if err != nil {
			return nil, err
		}
		if uri == "" {
			uri = cfg.DataFile
		}
		// Explicit options override the file.
		o = applyOptions(append(cfg.Options(), opts...))
	}

	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	storage := o.storage
	var fileStorage *fs.Storage
	if storage == nil {
		var err error
		fileStorage, err = initFS(ctx, uri, o, logger)
		if err != nil {
			return nil, err
		}
		storage = fileStorage
	}

	service, err := core.NewService(core.Config{
		Storage:     storage,
		Windows:     o.windows,
		Logger:      o.logger,
		Debounce:    o.debounce,
		EventBuffer: o.eventBuffer,
	})
	if err != nil {
		return nil, err
	}

	if o.watch && fileStorage != nil {
		err := fileStorage.Watch(ctx, func(notes []core.Note) {
			if err := service.Reload(ctx, notes); err != nil {
				logger.Warn("reload after external edit failed", "error", err)
			}
		})
		if err != nil {
			return nil, err
		}
	}

	return service, nil
}

// initFS resolves the data path and prepares the file storage.
func initFS(ctx context.Context, uri string, o *options, logger *slog.Logger) (*fs.Storage, error) {
	path := ResolveDataPath(uri)

	useTemp := o.forceTemp || (o.devSafety && IsDevRun())
	resolved := ResolveSafePath(path, useTemp)
	if resolved != path {
		logger.Warn("running in SAFE MODE (Dev/Test)", "original_path", path, "resolved_path", resolved)
	}

	storage := fs.NewStorage(fs.Config{
		Path:         resolved,
		Pretty:       o.pretty,
		Logger:       o.logger,
		ErrorHandler: o.errorHandler,
	})
	if err := storage.Initialize(ctx); err != nil {
		return nil, err
	}
	return storage, nil
}
