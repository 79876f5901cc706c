package mail

import (
	"fmt"

	"github.com/EberechiLabs/FestHive/internal/pkg/env"
)

// ConfirmationMail describes a payment confirmation email before rendering.
type ConfirmationMail struct {
	RecipientName  string
	RecipientEmail string
	Reference      string
	AmountDisplay  string
	PaymentType    string
}

// SendPaymentConfirmation renders and sends the payment confirmation email.
func SendPaymentConfirmation(m ConfirmationMail) error {
	domain := env.GetEnv("PUBLIC_DOMAIN", "http://localhost:8080")
	subject := fmt.Sprintf("Payment confirmed - %s", m.Reference)
	body := fmt.Sprintf(`<html><body>
<p>Hi %s,</p>
<p>We have received your payment of <strong>NGN %s</strong> for your %s.</p>
<p>Your payment reference is <strong>%s</strong>. Keep it safe, you will need it at the venue.</p>
<p>You can review your booking at any time: <a href="%s/payments/status?reference=%s">view status</a></p>
<p>See you at the festival!</p>
</body></html>`,
		m.RecipientName, m.AmountDisplay, m.PaymentType, m.Reference, domain, m.Reference)
	return SendMail(m.RecipientEmail, subject, body)
}

// SendRegistrationReceived sends the acknowledgement mail for free registrations.
func SendRegistrationReceived(name, email, eventTitle string) error {
	subject := fmt.Sprintf("Registration received - %s", eventTitle)
	body := fmt.Sprintf(`<html><body>
<p>Hi %s,</p>
<p>Your registration for <strong>%s</strong> has been received.</p>
<p>We will send you further details closer to the event.</p>
</body></html>`, name, eventTitle)
	return SendMail(email, subject, body)
}
