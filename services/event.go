package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/eventhub-id/eventhub-api/models"
	"github.com/eventhub-id/eventhub-api/utils"
	"gorm.io/gorm"
)

// LatestEventsLimit is how many events the landing list shows
const LatestEventsLimit = 12

const eventImageFolder = "events"

// EventService creates and reads events
type EventService struct {
	DB      *gorm.DB
	Storage utils.Uploader
}

// TicketTypeInput is a validated ticket class
type TicketTypeInput struct {
	Name        string
	TicketType  string
	Price       float64
	Quantity    int
	Description string
}

// PromotionInput is a validated event promotion
type PromotionInput struct {
	PromoType         string
	DiscountType      string
	DiscountValue     float64
	Code              string
	MinPurchaseAmount *float64
	MaxDiscountAmount *float64
	Quota             int
	StartDate         time.Time
	EndDate           time.Time
}

// ImageInput is an image to attach to the event
type ImageInput struct {
	Filename string
	Size     int64
	Body     io.Reader
}

// CreateEventInput is a validated create-event request
type CreateEventInput struct {
	OrganizerID uint
	Title       string
	Description string
	Category    string
	StartDate   time.Time
	EndDate     time.Time
	Location    string
	Venue       string
	Capacity    int
	TicketTypes []TicketTypeInput
	Tags        []string
	Promotions  []PromotionInput
	IsDraft     bool
	Image       *ImageInput
}

// EventSummary is returned alongside a newly created event
type EventSummary struct {
	TotalSeats       int    `json:"totalSeats"`
	AvailableSeats   int    `json:"availableSeats"`
	EventLocation    string `json:"eventLocation"`
	EventVenue       string `json:"eventVenue"`
	HasImage         bool   `json:"hasImage"`
	TagsCount        int    `json:"tagsCount"`
	TicketTypesCount int    `json:"ticketTypesCount"`
	PromotionsCount  int    `json:"promotionsCount"`
}

// ExploreFilter narrows the explore listing
type ExploreFilter struct {
	Keyword  string
	Location string
	Category string
}

// DuplicatePromotionCodes returns codes that appear more than once in promos
func DuplicatePromotionCodes(promos []PromotionInput) []string {
	seen := make(map[string]int, len(promos))
	var dups []string
	for _, p := range promos {
		if p.Code == "" {
			continue
		}
		seen[p.Code]++
		if seen[p.Code] == 2 {
			dups = append(dups, p.Code)
		}
	}
	return dups
}

// Create stores an event with its media, tags, ticket types and promotions.
// The image is uploaded first and removed again if the transaction fails.
func (s *EventService) Create(ctx context.Context, in CreateEventInput) (*models.Event, *EventSummary, error) {
	if dups := DuplicatePromotionCodes(in.Promotions); len(dups) > 0 {
		return nil, nil, utils.BadRequestError("Duplicate promotion codes in request", nil).
			WithDetails(fmt.Sprintf("Duplicate codes: %s", strings.Join(dups, ", ")))
	}

	var media *models.EventMedia
	if in.Image != nil {
		if s.Storage == nil {
			return nil, nil, utils.ServiceUnavailableError("Image storage is not configured", nil)
		}
		key := utils.ObjectKey(eventImageFolder, in.Image.Filename)
		url, err := s.Storage.Upload(ctx, key, utils.ContentTypeForFilename(in.Image.Filename), in.Image.Body, in.Image.Size)
		if err != nil {
			return nil, nil, utils.InternalError("Failed to upload image", err)
		}
		media = &models.EventMedia{URL: url, StorageKey: key}
	}

	status := models.EventStatusPublished
	if in.IsDraft {
		status = models.EventStatusDraft
	}
	event := models.Event{
		OrganizerID:    in.OrganizerID,
		Title:          in.Title,
		Slug:           utils.EventSlug(in.Title),
		Description:    in.Description,
		Category:       in.Category,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		Location:       in.Location,
		Venue:          in.Venue,
		TotalSeats:     in.Capacity,
		AvailableSeats: in.Capacity,
		Status:         status,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := checkStoredPromotionCodes(tx, in.Promotions); err != nil {
			return err
		}

		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		if media != nil {
			media.EventID = event.ID
			if err := tx.Create(media).Error; err != nil {
				return err
			}
		}

		if len(in.Tags) > 0 {
			tags := make([]models.EventTag, 0, len(in.Tags))
			for _, t := range in.Tags {
				tags = append(tags, models.EventTag{EventID: event.ID, Tag: t})
			}
			if err := tx.Create(&tags).Error; err != nil {
				return err
			}
		}

		tickets := make([]models.TicketType, 0, len(in.TicketTypes))
		for _, t := range in.TicketTypes {
			tickets = append(tickets, models.TicketType{
				EventID:     event.ID,
				Name:        t.Name,
				TicketType:  t.TicketType,
				Price:       t.Price,
				Quantity:    t.Quantity,
				Description: t.Description,
			})
		}
		if len(tickets) > 0 {
			if err := tx.Create(&tickets).Error; err != nil {
				return err
			}
		}

		if len(in.Promotions) > 0 {
			promos := make([]models.Promotion, 0, len(in.Promotions))
			for _, p := range in.Promotions {
				promo := models.Promotion{
					EventID:           &event.ID,
					PromoType:         p.PromoType,
					DiscountType:      p.DiscountType,
					DiscountValue:     p.DiscountValue,
					MinPurchaseAmount: p.MinPurchaseAmount,
					MaxDiscountAmount: p.MaxDiscountAmount,
					Quota:             p.Quota,
					StartDate:         p.StartDate,
					EndDate:           p.EndDate,
				}
				if p.Code != "" {
					code := p.Code
					promo.Code = &code
				}
				promos = append(promos, promo)
			}
			if err := tx.Create(&promos).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if media != nil {
			if derr := s.Storage.Delete(context.Background(), media.StorageKey); derr != nil {
				utils.LogError("Failed to remove orphaned event image %s: %v", media.StorageKey, derr)
			}
		}
		if utils.IsAppError(err) {
			return nil, nil, err
		}
		if utils.IsUniqueViolation(err) {
			return nil, nil, utils.ConflictError("Promotion code already exists", err)
		}
		return nil, nil, utils.InternalError("Failed to create event", err)
	}

	created, err := s.Details(event.ID)
	if err != nil {
		return nil, nil, err
	}

	summary := &EventSummary{
		TotalSeats:       event.TotalSeats,
		AvailableSeats:   event.AvailableSeats,
		EventLocation:    event.Location,
		EventVenue:       event.Venue,
		HasImage:         media != nil,
		TagsCount:        len(in.Tags),
		TicketTypesCount: len(in.TicketTypes),
		PromotionsCount:  len(in.Promotions),
	}
	utils.LogInfo("Event %d (%s) created by user %d as %s", event.ID, event.Slug, in.OrganizerID, status)
	return created, summary, nil
}

func checkStoredPromotionCodes(tx *gorm.DB, promos []PromotionInput) error {
	var codes []string
	for _, p := range promos {
		if p.Code != "" {
			codes = append(codes, p.Code)
		}
	}
	if len(codes) == 0 {
		return nil
	}

	var existing []string
	if err := tx.Unscoped().Model(&models.Promotion{}).Where("code IN ?", codes).Pluck("code", &existing).Error; err != nil {
		return err
	}
	if len(existing) > 0 {
		return utils.ConflictError("Promotion code already exists", nil).
			WithDetails(fmt.Sprintf("Existing codes: %s", strings.Join(existing, ", ")))
	}
	return nil
}

func (s *EventService) withListRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Media").Preload("Organizer").Preload("TicketTypes")
}

// Explore lists published events matching filter, newest first
func (s *EventService) Explore(filter ExploreFilter) ([]models.Event, error) {
	query := s.withListRelations(s.DB).Where("status = ?", models.EventStatusPublished)

	if kw := strings.TrimSpace(filter.Keyword); kw != "" {
		query = query.Where(`LOWER(title) LIKE ? ESCAPE '\'`, likePattern(kw))
	}
	if loc := strings.TrimSpace(filter.Location); loc != "" {
		query = query.Where(`LOWER(location) LIKE ? ESCAPE '\'`, likePattern(loc))
	}
	if cat := strings.TrimSpace(filter.Category); cat != "" && cat != models.CategoryAll {
		query = query.Where("category = ?", cat)
	}

	var events []models.Event
	if err := query.Order("created_at DESC, id DESC").Find(&events).Error; err != nil {
		return nil, utils.InternalError("Failed to explore events", err)
	}
	return events, nil
}

// Latest returns the most recently created published events
func (s *EventService) Latest() ([]models.Event, error) {
	var events []models.Event
	err := s.withListRelations(s.DB).
		Where("status = ?", models.EventStatusPublished).
		Order("created_at DESC, id DESC").
		Limit(LatestEventsLimit).
		Find(&events).Error
	if err != nil {
		return nil, utils.InternalError("Failed to list events", err)
	}
	return events, nil
}

// Details loads one event with all of its relations
func (s *EventService) Details(id uint) (*models.Event, error) {
	var event models.Event
	err := s.DB.Preload("Organizer").
		Preload("Media").
		Preload("Tags").
		Preload("TicketTypes").
		Preload("Promotions").
		First(&event, id).Error
	if err != nil {
		if utils.IsRecordNotFound(err) {
			return nil, utils.NotFoundError("Event not found", err)
		}
		return nil, utils.InternalError("Failed to load event", err)
	}
	return &event, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a case-insensitive substring pattern with the
// wildcards of s matched literally.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
