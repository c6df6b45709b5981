package scheduler

import (
	"context"
	"fmt"

	"gascert_backend/internal/email"
	"gascert_backend/internal/jobs/repository"
	"gascert_backend/platform/apperr"
	"gascert_backend/platform/config"
	"gascert_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Worker processes scheduled reminder tasks.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	repo   *repository.Repository
	sender email.Sender
	log    *logger.Logger
}

// NewWorker creates an asynq worker bound to the reminder queue.
func NewWorker(cfg config.SchedulerConfig, pool *pgxpool.Pool, sender email.Sender, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		repo:   repository.New(pool),
		sender: sender,
		log:    log,
	}

	mux.HandleFunc(TaskJobReminder, w.handleJobReminder)

	return w, nil
}

// Run blocks processing tasks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

// handleJobReminder emails the engineer ahead of a scheduled job. Jobs
// that were deleted, completed, or unscheduled since enqueueing are
// dropped silently.
func (w *Worker) handleJobReminder(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseJobReminderPayload(task)
	if err != nil {
		return err
	}

	jobID, err := uuid.Parse(payload.JobID)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		return err
	}

	job, err := w.repo.GetByID(ctx, jobID, userID)
	if apperr.Is(err, apperr.KindNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if job.Status == "completed" || job.ScheduledFor == nil {
		return nil
	}

	// The wizard stores the engineer's contact details as job fields.
	jobFields, err := w.repo.GetFields(ctx, jobID, userID)
	if err != nil {
		return err
	}
	engineerEmail := jobFields["engineer_email"]
	if engineerEmail == "" {
		w.log.Debug("job reminder skipped, no engineer email on file", "jobId", jobID.String())
		return nil
	}

	address := jobFields["property_address"]
	if address == "" {
		address = job.Address
	}

	return w.sender.SendJobReminderEmail(ctx, engineerEmail, job.JobType, address, *job.ScheduledFor)
}
