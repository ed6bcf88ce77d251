package controllers

import (
	"time"

	"github.com/eventhub-id/eventhub-api/models"
)

// OrganizerResponse is the public view of an event organizer
type OrganizerResponse struct {
	ID       uint   `json:"id"`
	Fullname string `json:"fullname"`
}

// EventMediaResponse is an event image
type EventMediaResponse struct {
	ID  uint   `json:"id"`
	URL string `json:"url"`
}

// TicketTypeResponse is a ticket class of an event
type TicketTypeResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	TicketType  string  `json:"ticketType"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Description string  `json:"description,omitempty"`
}

// TicketTypeSummary is the price tag of a ticket class shown in listings
type TicketTypeSummary struct {
	TicketType string  `json:"ticketType"`
	Price      float64 `json:"price"`
}

// EventPromotionResponse is a promotion attached to an event
type EventPromotionResponse struct {
	ID                uint      `json:"id"`
	PromoType         string    `json:"promoType"`
	DiscountType      string    `json:"discountType"`
	DiscountValue     float64   `json:"discountValue"`
	Code              *string   `json:"code,omitempty"`
	MinPurchaseAmount *float64  `json:"minPurchaseAmount,omitempty"`
	MaxDiscountAmount *float64  `json:"maxDiscountAmount,omitempty"`
	Quota             int       `json:"quota"`
	UsedCount         int       `json:"usedCount"`
	StartDate         time.Time `json:"startDate"`
	EndDate           time.Time `json:"endDate"`
}

// EventListItem is an event as shown in listings
type EventListItem struct {
	ID             uint                 `json:"id"`
	Title          string               `json:"title"`
	Slug           string               `json:"slug"`
	Category       string               `json:"category"`
	StartDate      time.Time            `json:"startDate"`
	EndDate        time.Time            `json:"endDate"`
	Location       string               `json:"location"`
	Venue          string               `json:"venue"`
	AvailableSeats int                  `json:"availableSeats"`
	Status         string               `json:"status"`
	EventMedia     []EventMediaResponse `json:"eventMedia"`
	Organizer      OrganizerResponse    `json:"organizer"`
	TicketTypes    []TicketTypeSummary  `json:"ticketTypes"`
	CreatedAt      time.Time            `json:"createdAt"`
}

// EventDetailResponse is a single event with all of its relations.
// TicketTypes replaces the listing summary with the full ticket classes.
type EventDetailResponse struct {
	EventListItem
	Description string                   `json:"description"`
	TotalSeats  int                      `json:"totalSeats"`
	Tags        []string                 `json:"tags"`
	TicketTypes []TicketTypeResponse     `json:"ticketTypes"`
	Promotions  []EventPromotionResponse `json:"promotions"`
}

func newEventListItem(e *models.Event) EventListItem {
	media := make([]EventMediaResponse, 0, len(e.Media))
	for _, m := range e.Media {
		media = append(media, EventMediaResponse{ID: m.ID, URL: m.URL})
	}
	tickets := make([]TicketTypeSummary, 0, len(e.TicketTypes))
	for _, t := range e.TicketTypes {
		tickets = append(tickets, TicketTypeSummary{TicketType: t.TicketType, Price: t.Price})
	}
	return EventListItem{
		ID:             e.ID,
		Title:          e.Title,
		Slug:           e.Slug,
		Category:       e.Category,
		StartDate:      e.StartDate,
		EndDate:        e.EndDate,
		Location:       e.Location,
		Venue:          e.Venue,
		AvailableSeats: e.AvailableSeats,
		Status:         e.Status,
		EventMedia:     media,
		Organizer:      OrganizerResponse{ID: e.Organizer.ID, Fullname: e.Organizer.Fullname},
		TicketTypes:    tickets,
		CreatedAt:      e.CreatedAt,
	}
}

func newEventList(events []models.Event) []EventListItem {
	items := make([]EventListItem, 0, len(events))
	for i := range events {
		items = append(items, newEventListItem(&events[i]))
	}
	return items
}

func newEventDetail(e *models.Event) EventDetailResponse {
	tags := make([]string, 0, len(e.Tags))
	for _, t := range e.Tags {
		tags = append(tags, t.Tag)
	}
	tickets := make([]TicketTypeResponse, 0, len(e.TicketTypes))
	for _, t := range e.TicketTypes {
		tickets = append(tickets, TicketTypeResponse{
			ID:          t.ID,
			Name:        t.Name,
			TicketType:  t.TicketType,
			Price:       t.Price,
			Quantity:    t.Quantity,
			Description: t.Description,
		})
	}
	promos := make([]EventPromotionResponse, 0, len(e.Promotions))
	for _, p := range e.Promotions {
		promos = append(promos, EventPromotionResponse{
			ID:                p.ID,
			PromoType:         p.PromoType,
			DiscountType:      p.DiscountType,
			DiscountValue:     p.DiscountValue,
			Code:              p.Code,
			MinPurchaseAmount: p.MinPurchaseAmount,
			MaxDiscountAmount: p.MaxDiscountAmount,
			Quota:             p.Quota,
			UsedCount:         p.UsedCount,
			StartDate:         p.StartDate,
			EndDate:           p.EndDate,
		})
	}
	return EventDetailResponse{
		EventListItem: newEventListItem(e),
		Description:   e.Description,
		TotalSeats:    e.TotalSeats,
		Tags:          tags,
		TicketTypes:   tickets,
		Promotions:    promos,
	}
}
