package jobqueue

import (
	"encoding/json"
	"fmt"

	"github.com/EberechiLabs/FestHive/internal/pkg/mail"
)

// processConfirmationMailJob sends a payment confirmation email
func (q *Queue) processConfirmationMailJob(job *Job) error {
	var p ConfirmationMailPayload
	if err := json.Unmarshal(job.Payload, &p); err != nil {
		return fmt.Errorf("invalid confirmation mail payload: %w", err)
	}
	if p.RecipientEmail == "" {
		return fmt.Errorf("confirmation mail payload has no recipient")
	}

	return mail.SendPaymentConfirmation(mail.ConfirmationMail{
		RecipientName:  p.RecipientName,
		RecipientEmail: p.RecipientEmail,
		Reference:      p.Reference,
		AmountDisplay:  p.AmountDisplay,
		PaymentType:    p.PaymentType,
	})
}

// processRegistrationMailJob sends a registration acknowledgement email
func (q *Queue) processRegistrationMailJob(job *Job) error {
	var p RegistrationMailPayload
	if err := json.Unmarshal(job.Payload, &p); err != nil {
		return fmt.Errorf("invalid registration mail payload: %w", err)
	}
	if p.RecipientEmail == "" {
		return fmt.Errorf("registration mail payload has no recipient")
	}

	return mail.SendRegistrationReceived(p.RecipientName, p.RecipientEmail, p.EventTitle)
}
