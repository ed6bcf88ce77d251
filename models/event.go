package models

import (
	"time"

	"gorm.io/gorm"
)

// Event statuses
const (
	EventStatusDraft     = "DRAFT"
	EventStatusPublished = "PUBLISHED"
)

// Ticket kinds
const (
	TicketPaid = "PAID"
	TicketFree = "FREE"
)

// CategoryAll disables category filtering when exploring events
const CategoryAll = "All Events"

// EventCategories lists the categories an event may be filed under
var EventCategories = []string{
	"Music & Concerts",
	"Sports & Fitness",
	"Arts & Culture",
	"Food & Drink",
	"Technology",
	"Business",
	"Education",
	"Community",
	"Other",
}

// IsValidEventCategory reports whether c is one of EventCategories
func IsValidEventCategory(c string) bool {
	for _, known := range EventCategories {
		if known == c {
			return true
		}
	}
	return false
}

// Event represents an event created by an organizer
type Event struct {
	gorm.Model
	OrganizerID    uint         `gorm:"index;not null" json:"organizer_id"`
	Organizer      User         `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`
	Title          string       `gorm:"not null" json:"title"`
	Slug           string       `gorm:"uniqueIndex;not null" json:"slug"`
	Description    string       `gorm:"type:text" json:"description"`
	Category       string       `gorm:"index" json:"category"`
	StartDate      time.Time    `json:"start_date"`
	EndDate        time.Time    `json:"end_date"`
	Location       string       `json:"location"`
	Venue          string       `json:"venue"`
	TotalSeats     int          `json:"total_seats"`
	AvailableSeats int          `json:"available_seats"`
	Status         string       `gorm:"index;default:DRAFT" json:"status"`
	Media          []EventMedia `gorm:"foreignKey:EventID" json:"event_media,omitempty"`
	Tags           []EventTag   `gorm:"foreignKey:EventID" json:"tags,omitempty"`
	TicketTypes    []TicketType `gorm:"foreignKey:EventID" json:"ticket_types,omitempty"`
	Promotions     []Promotion  `gorm:"foreignKey:EventID" json:"promotions,omitempty"`
}

// EventMedia is an uploaded image attached to an event
type EventMedia struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EventID    uint      `gorm:"index;not null" json:"event_id"`
	URL        string    `gorm:"not null" json:"url"`
	StorageKey string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// EventTag is a free-form label on an event
type EventTag struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	EventID uint   `gorm:"index;not null" json:"event_id"`
	Tag     string `gorm:"not null" json:"tag"`
}

// TicketType is a sellable ticket class for an event
type TicketType struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EventID     uint      `gorm:"index;not null" json:"event_id"`
	Name        string    `gorm:"not null" json:"name"`
	TicketType  string    `gorm:"not null" json:"ticket_type"`
	Price       float64   `gorm:"default:0" json:"price"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Description string    `gorm:"size:500" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
