package cli

import (
	"context"

	"github.com/custodia-labs/kcc-assistant/internal/adapters/driving/watcher"
	"github.com/custodia-labs/kcc-assistant/internal/logger"
)

// startIndexWatcher reloads the knowledge base when another process
// rebuilds the index. It stops when ctx is cancelled.
func startIndexWatcher(ctx context.Context) {
	if indexReloader == nil || indexPath == "" {
		return
	}

	w, err := watcher.Watch(indexPath, indexReloader)
	if err != nil {
		logger.Warn("Index watching disabled: %v", err)
		return
	}

	go func() {
		if err := w.Run(ctx); err != nil {
			logger.Warn("Index watcher stopped: %v", err)
		}
	}()
	logger.Debug("Watching %s for index rebuilds", indexPath)
}
