package scheduler

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"gascert_backend/platform/config"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// Client enqueues reminder tasks. A nil Client is a valid no-op, so the
// API can run without Redis.
type Client struct {
	client   *asynq.Client
	queue    string
	leadTime time.Duration
}

// NewClient creates a scheduler client from the Redis configuration.
func NewClient(cfg config.SchedulerConfig) (*Client, error) {
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

	return &Client{
		client:   asynq.NewClient(opt),
		queue:    queue,
		leadTime: cfg.GetReminderLeadTime(),
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// ScheduleJobReminder enqueues a reminder to run one lead time before
// the job's scheduled slot. Reminders that would already be in the past
// run immediately.
func (c *Client) ScheduleJobReminder(ctx context.Context, jobID, userID uuid.UUID, scheduledFor time.Time) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewJobReminderTask(JobReminderPayload{
		JobID:  jobID.String(),
		UserID: userID.String(),
	})
	if err != nil {
		return err
	}

	runAt := scheduledFor.Add(-c.leadTime)
	if runAt.Before(time.Now()) {
		runAt = time.Now()
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.ProcessAt(runAt), asynq.Queue(c.queue))
	return err
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if tlsInsecure {
			clone.InsecureSkipVerify = true
		}
		tlsConfig = clone
	} else if tlsInsecure {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}
