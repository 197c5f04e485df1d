// controllers/message_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stayafrika-backend/apperrors"
	"stayafrika-backend/middleware"
	"stayafrika-backend/services"
	"stayafrika-backend/utils"
)

type SendMessagePayload struct {
	ReceiverID uint   `json:"receiverId" binding:"required"`
	Content    string `json:"content" binding:"required"`
	BookingID  *uint  `json:"bookingId"`
}

type MessageController struct {
	Messages *services.MessageService
}

func NewMessageController(messages *services.MessageService) *MessageController {
	return &MessageController{Messages: messages}
}

func (mc *MessageController) Send(c *gin.Context) {
	caller, ok := middleware.GetUser(c)
	if !ok {
		utils.JSONError(c, apperrors.ErrUnauthorized)
		return
	}

	var payload SendMessagePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, apperrors.ErrInvalidInput)
		return
	}

	message, err := mc.Messages.Send(c.Request.Context(), caller.ID, payload.ReceiverID, payload.Content, payload.BookingID)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, message)
}

// Conversation returns the full thread with another user, oldest first. The
// path id is the other user's id.
func (mc *MessageController) Conversation(c *gin.Context) {
	caller, ok := middleware.GetUser(c)
	if !ok {
		utils.JSONError(c, apperrors.ErrUnauthorized)
		return
	}

	otherID, ok := paramID(c)
	if !ok {
		utils.JSONError(c, apperrors.ErrNotFound)
		return
	}

	messages, err := mc.Messages.Conversation(c.Request.Context(), caller.ID, otherID)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, messages)
}

func (mc *MessageController) MarkRead(c *gin.Context) {
	caller, ok := middleware.GetUser(c)
	if !ok {
		utils.JSONError(c, apperrors.ErrUnauthorized)
		return
	}
	id, ok := paramID(c)
	if !ok {
		utils.JSONError(c, apperrors.ErrNotFound)
		return
	}

	message, err := mc.Messages.MarkRead(c.Request.Context(), caller.ID, id)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, message)
}
