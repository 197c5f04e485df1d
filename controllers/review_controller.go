// controllers/review_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stayafrika-backend/apperrors"
	"stayafrika-backend/middleware"
	"stayafrika-backend/services"
	"stayafrika-backend/utils"
)

type CreateReviewPayload struct {
	BookingID uint   `json:"bookingId" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
}

type ReviewController struct {
	Reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{Reviews: reviews}
}

func (rc *ReviewController) Create(c *gin.Context) {
	caller, ok := middleware.GetUser(c)
	if !ok {
		utils.JSONError(c, apperrors.ErrUnauthorized)
		return
	}

	var payload CreateReviewPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, apperrors.ErrInvalidInput)
		return
	}

	review, err := rc.Reviews.Create(c.Request.Context(), caller, payload.BookingID, payload.Rating, payload.Comment)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, review)
}
