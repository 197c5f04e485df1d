package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"stayafrika-backend/apperrors"
	"stayafrika-backend/models"
	"stayafrika-backend/storage"
)

type MessageService struct {
	Store storage.Storage
}

func NewMessageService(store storage.Storage) *MessageService {
	return &MessageService{Store: store}
}

// Send records a directed message. The receiver must be a known user; there
// is no other restriction on the pair.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID uint, content string, bookingID *uint) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.Validation(map[string]string{"content": "content is required"})
	}
	if _, err := s.Store.GetUser(ctx, receiverID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewHTTPError(http.StatusNotFound, "Receiver not found", "NOT_FOUND")
		}
		return nil, err
	}

	message := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		BookingID:  bookingID,
		Content:    content,
	}
	if err := s.Store.CreateMessage(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// Conversation returns all messages between the two users, oldest first.
func (s *MessageService) Conversation(ctx context.Context, userID, otherID uint) ([]models.Message, error) {
	return s.Store.GetConversation(ctx, userID, otherID)
}

// MarkRead flips the read flag. Only the receiver may do it.
func (s *MessageService) MarkRead(ctx context.Context, callerID, messageID uint) (*models.Message, error) {
	message, err := s.Store.GetMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if message.ReceiverID != callerID {
		return nil, apperrors.ErrForbidden
	}
	return s.Store.MarkMessageRead(ctx, messageID)
}
