package jobqueue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobLifecycle(t *testing.T) {
	job := &Job{
		ID:         "job-1",
		Type:       JobTypeConfirmationMail,
		Status:     JobStatusPending,
		MaxRetries: DefaultMaxRetries,
	}

	job.MarkAsProcessing()
	assert.Equal(t, JobStatusProcessing, job.Status)
	assert.NotNil(t, job.ProcessedAt)

	job.MarkAsCompleted()
	assert.Equal(t, JobStatusCompleted, job.Status)
}

func TestJobRetryExhaustion(t *testing.T) {
	job := &Job{ID: "job-2", Type: JobTypeRegistrationMail, MaxRetries: 2}

	job.MarkAsFailed("smtp timeout")
	assert.True(t, job.IsRetryable())
	assert.Equal(t, 1, job.RetryCount)
	assert.Equal(t, "smtp timeout", job.ErrorMsg)

	job.MarkAsRetrying()
	assert.Equal(t, JobStatusRetrying, job.Status)

	job.MarkAsFailed("smtp timeout")
	assert.False(t, job.IsRetryable())
}

func TestConfirmationPayloadRoundTrip(t *testing.T) {
	payload := ConfirmationMailPayload{
		RecipientName:  "Ngozi Adewale",
		RecipientEmail: "ngozi@example.com",
		Reference:      "FESTHIVE_TOUR_BOOKING_1756500000000_abc123",
		AmountDisplay:  "250000.00",
		PaymentType:    "tour_booking",
	}

	raw, err := json.Marshal(payload)
	assert.NoError(t, err)

	job := &Job{Type: JobTypeConfirmationMail, Payload: raw}

	var got ConfirmationMailPayload
	assert.NoError(t, json.Unmarshal(job.Payload, &got))
	assert.Equal(t, payload, got)
}
