// controllers/waitlist_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stayafrika-backend/apperrors"
	"stayafrika-backend/services"
	"stayafrika-backend/utils"
)

type JoinWaitlistPayload struct {
	FullName              string `json:"fullName" binding:"required"`
	Email                 string `json:"email" binding:"required"`
	City                  string `json:"city" binding:"required"`
	SubscribeToNewsletter bool   `json:"subscribeToNewsletter"`
}

type WaitlistController struct {
	Waitlist *services.WaitlistService
}

func NewWaitlistController(waitlist *services.WaitlistService) *WaitlistController {
	return &WaitlistController{Waitlist: waitlist}
}

func (wc *WaitlistController) Join(c *gin.Context) {
	var payload JoinWaitlistPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, apperrors.ErrInvalidInput)
		return
	}

	if _, err := wc.Waitlist.Join(c.Request.Context(),
		payload.FullName, payload.Email, payload.City, payload.SubscribeToNewsletter); err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{"message": "Successfully added to waitlist"})
}

func (wc *WaitlistController) Entries(c *gin.Context) {
	entries, err := wc.Waitlist.Entries(c.Request.Context())
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, entries)
}
