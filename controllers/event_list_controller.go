package controllers

import (
	"strconv"

	"github.com/eventhub-id/eventhub-api/services"
	"github.com/eventhub-id/eventhub-api/utils"
	"github.com/gin-gonic/gin"
)

// ExploreEvents searches published events by keyword, location and category
func ExploreEvents(c *gin.Context) {
	events, err := eventService.Explore(services.ExploreFilter{
		Keyword:  c.Query("keyword"),
		Location: c.Query("location"),
		Category: c.Query("category"),
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.Success(c, "Events retrieved successfully", gin.H{
		"events": newEventList(events),
		"total":  len(events),
	})
}

// ListEvents returns the latest published events
func ListEvents(c *gin.Context) {
	events, err := eventService.Latest()
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.Success(c, "Events retrieved successfully", gin.H{
		"events": newEventList(events),
	})
}

// EventDetails returns one event with its media, tickets, tags and promotions
func EventDetails(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		_ = c.Error(utils.BadRequestError("Invalid event ID", err))
		return
	}

	event, err := eventService.Details(uint(id))
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.Success(c, "Event retrieved successfully", gin.H{"event": newEventDetail(event)})
}
