package services

import (
	"context"
	"fmt"
	"strings"

	"recipe-share-backend/internal/common"

	"github.com/rs/zerolog/log"
)

// ContactMessage is a message sent through the contact form
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Mailer delivers contact messages
type Mailer interface {
	Send(ctx context.Context, msg ContactMessage) error
}

// LogMailer writes contact messages to the application log
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, msg ContactMessage) error {
	log.Info().
		Str("from_name", msg.Name).
		Str("from_email", msg.Email).
		Str("message", msg.Message).
		Msg("Contact message received")
	return nil
}

// ContactService validates and forwards contact messages
type ContactService struct {
	mailer Mailer
}

// NewContactService creates a new contact service
func NewContactService(mailer Mailer) *ContactService {
	return &ContactService{mailer: mailer}
}

// Send validates msg and hands it to the mailer
func (s *ContactService) Send(ctx context.Context, msg ContactMessage) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Message = strings.TrimSpace(msg.Message)
	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		return fmt.Errorf("name, email and message are required: %w", common.ErrValidation)
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send contact message: %w", err)
	}
	return nil
}
