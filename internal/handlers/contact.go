package handlers

import (
	"net/http"

	"recipe-share-backend/internal/services"
)

// ContactHandler handles the contact form
type ContactHandler struct {
	contact *services.ContactService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contact *services.ContactService) *ContactHandler {
	return &ContactHandler{contact: contact}
}

// SendMessage handles POST /api/contact
func (h *ContactHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var msg services.ContactMessage
	if err := decodeJSON(r, &msg); err != nil {
		respondServiceError(w, r, err, "")
		return
	}

	if err := h.contact.Send(r.Context(), msg); err != nil {
		respondServiceError(w, r, err, "Failed to send message")
		return
	}

	respondJSON(w, http.StatusOK, MessageResponse{Message: "Message sent"})
}
