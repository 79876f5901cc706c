package apiv1

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/EberechiLabs/FestHive/app/models"
	"github.com/EberechiLabs/FestHive/app/repository"
	"github.com/EberechiLabs/FestHive/internal/pkg/jobqueue"
	"github.com/EberechiLabs/FestHive/internal/pkg/payments"
)

// APIServer carries the dependencies of the JSON API handlers
type APIServer struct {
	repos    *repository.Repositories
	payments *payments.Service
	queue    *jobqueue.Queue
}

// NewAPIServer creates a new API server instance
func NewAPIServer(repos *repository.Repositories, paySvc *payments.Service, queue *jobqueue.Queue) *APIServer {
	return &APIServer{repos: repos, payments: paySvc, queue: queue}
}

// Pong is the ping response body
type Pong struct {
	Ping string `json:"ping"`
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	response := Pong{
		Ping: "pong",
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// GetQueueStats reports the mail queue backlog and per-status job counters
func (s *APIServer) GetQueueStats(c *fiber.Ctx) error {
	if s.queue == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "unavailable", "message": "job queue is not running"})
	}

	size, err := s.queue.GetQueueSize(c.Context())
	if err != nil {
		log.Printf("queue size: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not read queue"})
	}

	stats, err := s.queue.GetJobStats(c.Context())
	if err != nil {
		log.Printf("queue stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not read queue"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"queued": size,
		"jobs":   stats,
	})
}

// verifyRequest is the body of POST /payments/verify
type verifyRequest struct {
	Reference string `json:"reference"`
}

// PostPaymentVerify re-verifies a reference with the gateway and settles the
// ledger. Replaying a settled reference returns the same outcome again.
func (s *APIServer) PostPaymentVerify(c *fiber.Ctx) error {
	var req verifyRequest
	if err := c.BodyParser(&req); err != nil || req.Reference == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "reference is required"})
	}

	outcome, err := s.payments.VerifyAndRecord(c.Context(), req.Reference)
	if err != nil {
		log.Printf("api verify %s: %v", req.Reference, err)
	}
	if outcome == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "verification failed"})
	}

	return c.Status(fiber.StatusOK).JSON(outcome)
}

// recordRequest is the body of POST /payments/record
type recordRequest struct {
	Reference   string          `json:"reference"`
	PaymentType string          `json:"payment_type"`
	SubjectID   string          `json:"subject_id"`
	SubjectName string          `json:"subject_name"`
	Amount      decimal.Decimal `json:"amount"`
	Customer    struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
	} `json:"customer"`
}

// PostPaymentRecord writes a pending ledger row for an externally initiated
// payment. The write is idempotent on the reference.
func (s *APIServer) PostPaymentRecord(c *fiber.Ctx) error {
	var req recordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid body"})
	}

	record, err := s.payments.RecordPending(payments.CheckoutConfig{
		PaymentType: req.PaymentType,
		SubjectID:   req.SubjectID,
		SubjectName: req.SubjectName,
		Amount:      req.Amount,
		Customer: payments.Customer{
			FullName: req.Customer.FullName,
			Email:    req.Customer.Email,
			Phone:    req.Customer.Phone,
		},
	}, req.Reference)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "unprocessable", "message": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(record)
}

// confirmationRequest is the body of POST /payments/confirmation
type confirmationRequest struct {
	Reference string `json:"reference"`
}

// PostPaymentConfirmation re-fires the confirmation email for a paid
// reference. The send is queued; a queue failure is reported but the payment
// state never changes here.
func (s *APIServer) PostPaymentConfirmation(c *fiber.Ctx) error {
	var req confirmationRequest
	if err := c.BodyParser(&req); err != nil || req.Reference == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "reference is required"})
	}

	if err := s.payments.NotifyConfirmed(req.Reference); err != nil {
		if errors.Is(err, payments.ErrUnknownReference) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "unknown reference"})
		}
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "conflict", "message": err.Error()})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"queued": true})
}

// registerRequest is the body of POST /events/register
type registerRequest struct {
	EventID     uint   `json:"event_id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	TicketCount int    `json:"ticket_count"`
}

// PostEventRegister records a registration for a free event. Priced events
// must go through the web checkout; they are rejected here.
func (s *APIServer) PostEventRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid body"})
	}

	event, err := s.repos.Event.GetByID(req.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "unknown event"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "lookup failed"})
	}
	if !event.Published {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "unknown event"})
	}
	if !event.IsFree() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "unprocessable", "message": "priced events must be registered through the website"})
	}

	if req.TicketCount < 1 {
		req.TicketCount = 1
	}

	reg := &models.EventRegistration{
		EventID:     event.ID,
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		TicketCount: req.TicketCount,
		Status:      models.RegistrationStatusConfirmed,
	}
	if err := reg.Validate(); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "unprocessable", "message": err.Error()})
	}

	if err := s.repos.Registration.Create(reg); err != nil {
		log.Printf("api registration: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not save registration"})
	}

	if s.queue != nil {
		if _, qerr := s.queue.EnqueueRegistrationMail(jobqueue.RegistrationMailPayload{
			RecipientName:  reg.FullName,
			RecipientEmail: reg.Email,
			EventTitle:     event.Title,
		}); qerr != nil {
			log.Printf("queueing registration mail: %v", qerr)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(reg)
}
