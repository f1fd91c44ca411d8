package services

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"docrag-backend/internal/logger"
	"docrag-backend/internal/vectorstore"
)

// StartIndexStatsJob logs vector index size and distinct source count every
// 15 minutes. Returns the scheduler so the caller can stop it on shutdown.
func StartIndexStatsJob(store *vectorstore.MongoStore) (*gocron.Scheduler, error) {
	scheduler := gocron.NewScheduler(time.UTC)

	_, err := scheduler.Every(15).Minutes().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		entries, sources, err := store.Stats(ctx)
		if err != nil {
			logger.Warn("Index stats scan failed", "error", err)
			return
		}
		logger.Info("Vector index stats", "entries", entries, "sources", sources)
	})
	if err != nil {
		return nil, err
	}

	scheduler.StartAsync()
	return scheduler, nil
}
