// Package scheduler enqueues and processes delayed work through asynq:
// reminder emails for scheduled jobs.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskJobReminder = "jobs.reminder"

// JobReminderPayload identifies the job a reminder is for.
type JobReminderPayload struct {
	JobID  string `json:"jobId"`
	UserID string `json:"userId"`
}

func NewJobReminderTask(payload JobReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskJobReminder, data), nil
}

func ParseJobReminderPayload(task *asynq.Task) (JobReminderPayload, error) {
	var payload JobReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return JobReminderPayload{}, err
	}
	return payload, nil
}
