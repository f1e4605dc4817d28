package jobs

import (
	"context"
	"log/slog"

	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/production"

	"github.com/robfig/cron/v3"
)

// QueueMonitorJob periodically logs the state of the production queue.
// Runs every minute so operators can watch backlog growth without hitting
// the API.
type QueueMonitorJob struct {
	handler queries.GetProductionQueueQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewQueueMonitorJob creates a new job for monitoring the production queue.
// Uses GetProductionQueueQueryHandler to read queue depth once a minute.
func NewQueueMonitorJob(handler queries.GetProductionQueueQueryHandler, logger *slog.Logger) *QueueMonitorJob {
	return &QueueMonitorJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "queue_monitor_job"),
	}
}

// Start begins the queue monitor job to run every minute.
func (j *QueueMonitorJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		query := queries.NewGetProductionQueueQuery()

		queue, err := j.handler.Handle(ctx, query)
		if err != nil {
			j.logger.ErrorContext(ctx, "Queue monitor job failed", "error", err)
			return
		}

		waiting := 0
		preparing := 0
		for _, item := range queue {
			switch item.Status {
			case production.Received:
				waiting++
			case production.InPreparation:
				preparing++
			}
		}

		j.logger.InfoContext(ctx, "Production queue depth",
			"waiting", waiting,
			"in_preparation", preparing,
		)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Queue monitor job started (running every minute)")
	return nil
}

// Stop stops the queue monitor job.
func (j *QueueMonitorJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Queue monitor job stopped")
}
