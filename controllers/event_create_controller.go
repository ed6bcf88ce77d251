package controllers

import (
	"time"

	"github.com/eventhub-id/eventhub-api/middleware"
	"github.com/eventhub-id/eventhub-api/services"
	"github.com/eventhub-id/eventhub-api/utils"
	"github.com/gin-gonic/gin"
)

// CreateEvent creates an event from a multipart form with an optional image
func CreateEvent(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		_ = c.Error(utils.UnauthorizedError(utils.ErrUnauthorized, nil))
		return
	}

	var form CreateEventForm
	if err := c.ShouldBind(&form); err != nil {
		_ = c.Error(utils.ValidationFailed(err))
		return
	}

	input, err := form.toInput(user.ID, time.Now())
	if err != nil {
		_ = c.Error(err)
		return
	}

	if file := middleware.UploadedFile(c); file != nil {
		f, err := file.Open()
		if err != nil {
			_ = c.Error(utils.BadRequestError("Failed to read image", err))
			return
		}
		defer f.Close()
		input.Image = &services.ImageInput{
			Filename: file.Filename,
			Size:     file.Size,
			Body:     f,
		}
	}

	event, summary, err := eventService.Create(c.Request.Context(), input)
	if err != nil {
		_ = c.Error(err)
		return
	}

	message := utils.MsgEventCreated
	if form.IsDraft {
		message = utils.MsgEventDraftSaved
	}
	utils.Created(c, message, gin.H{
		"event":   newEventDetail(event),
		"summary": summary,
	})
}
