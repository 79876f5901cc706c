package jobqueue

import (
	"encoding/json"
	"time"
)

// JobType identifies the kind of work a job carries
type JobType string

const (
	JobTypeConfirmationMail JobType = "confirmation_mail"
	JobTypeRegistrationMail JobType = "registration_mail"
)

// JobStatus represents the lifecycle state of a job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusRetrying   JobStatus = "retrying"
)

// ConfirmationMailPayload is the payload for JobTypeConfirmationMail jobs
type ConfirmationMailPayload struct {
	RecipientName  string `json:"recipient_name"`
	RecipientEmail string `json:"recipient_email"`
	Reference      string `json:"reference"`
	AmountDisplay  string `json:"amount_display"`
	PaymentType    string `json:"payment_type"`
}

// RegistrationMailPayload is the payload for JobTypeRegistrationMail jobs
type RegistrationMailPayload struct {
	RecipientName  string `json:"recipient_name"`
	RecipientEmail string `json:"recipient_email"`
	EventTitle     string `json:"event_title"`
}

// Job is a unit of background work stored in Redis
type Job struct {
	ID         string          `json:"id"`
	Type       JobType         `json:"type"`
	Status     JobStatus       `json:"status"`
	Payload    json.RawMessage `json:"payload"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	ProcessedAt *time.Time     `json:"processed_at,omitempty"`
	RetryCount int             `json:"retry_count"`
	MaxRetries int             `json:"max_retries"`
	ErrorMsg   string          `json:"error_msg,omitempty"`
}

// MarkAsProcessing marks the job as currently being processed
func (j *Job) MarkAsProcessing() {
	now := time.Now()
	j.Status = JobStatusProcessing
	j.ProcessedAt = &now
	j.UpdatedAt = now
}

// MarkAsCompleted marks the job as successfully completed
func (j *Job) MarkAsCompleted() {
	j.Status = JobStatusCompleted
	j.UpdatedAt = time.Now()
}

// MarkAsFailed records a failure on the job
func (j *Job) MarkAsFailed(errMsg string) {
	j.Status = JobStatusFailed
	j.ErrorMsg = errMsg
	j.RetryCount++
	j.UpdatedAt = time.Now()
}

// MarkAsRetrying marks the job as scheduled for another attempt
func (j *Job) MarkAsRetrying() {
	j.Status = JobStatusRetrying
	j.UpdatedAt = time.Now()
}

// IsRetryable reports whether the job has retry attempts left
func (j *Job) IsRetryable() bool {
	return j.RetryCount < j.MaxRetries
}
