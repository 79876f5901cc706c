package jobqueue

import (
	"github.com/EberechiLabs/FestHive/app/models"
)

// MailNotifier enqueues confirmation emails for paid payment records. It
// satisfies the payment service's Notifier contract; a failed enqueue is
// reported to the caller but never blocks the payment itself.
type MailNotifier struct {
	queue *Queue
}

// NewMailNotifier creates a notifier backed by the given queue
func NewMailNotifier(q *Queue) *MailNotifier {
	return &MailNotifier{queue: q}
}

// PaymentConfirmed queues the confirmation email for a paid record
func (n *MailNotifier) PaymentConfirmed(record *models.PaymentRecord) error {
	_, err := n.queue.EnqueueConfirmationMail(ConfirmationMailPayload{
		RecipientName:  record.CustomerName,
		RecipientEmail: record.CustomerEmail,
		Reference:      record.Reference,
		AmountDisplay:  record.Amount.StringFixed(2),
		PaymentType:    record.PaymentType,
	})
	return err
}
