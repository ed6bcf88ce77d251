package controllers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/eventhub-id/eventhub-api/models"
	"github.com/eventhub-id/eventhub-api/services"
	"github.com/eventhub-id/eventhub-api/utils"
)

const (
	eventDateTimeLayout = "2006-01-02 15:04"

	maxTicketPrice     = 10000000
	minFixedDiscount   = 1000
	maxPercentDiscount = 100
	maxEventTags       = 10
)

// CreateEventForm is the multipart form of the create-event endpoint.
// ticketTypes, tags and promotions carry JSON arrays.
type CreateEventForm struct {
	Name        string `form:"name" binding:"required,min=3,max=100"`
	Description string `form:"description" binding:"required,min=10,max=100000"`
	Category    string `form:"category" binding:"required"`
	StartDate   string `form:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate     string `form:"endDate" binding:"required,datetime=2006-01-02"`
	StartTime   string `form:"startTime" binding:"required,clock"`
	EndTime     string `form:"endTime" binding:"required,clock"`
	Location    string `form:"location" binding:"required,min=2"`
	Venue       string `form:"venue" binding:"required,min=2"`
	Capacity    int    `form:"capacity" binding:"required,min=1,max=1000000"`
	TicketTypes string `form:"ticketTypes" binding:"required"`
	Tags        string `form:"tags" binding:"required"`
	Promotions  string `form:"promotions"`
	IsDraft     bool   `form:"isDraft"`
}

// TicketTypeRequest is one entry of the ticketTypes field
type TicketTypeRequest struct {
	Name        string   `json:"name" binding:"required,min=2"`
	TicketType  string   `json:"ticketType" binding:"required,oneof=PAID FREE"`
	Price       *float64 `json:"price" binding:"omitempty,min=0"`
	Quantity    int      `json:"quantity" binding:"required,min=1"`
	Description string   `json:"description" binding:"max=500"`
}

// PromotionRequest is one entry of the promotions field
type PromotionRequest struct {
	PromoType         string    `json:"promoType" binding:"required,oneof=EARLY_BIRD FLASH_SALE BUNDLE REFERRAL VOUCHER"`
	DiscountType      string    `json:"discountType" binding:"required,oneof=PERCENTAGE FIXED_AMOUNT"`
	DiscountValue     float64   `json:"discountValue" binding:"required,gt=0"`
	Code              string    `json:"code" binding:"omitempty,min=3,max=20,promocode"`
	MinPurchaseAmount *float64  `json:"minPurchaseAmount" binding:"omitempty,min=1000"`
	MaxDiscountAmount *float64  `json:"maxDiscountAmount" binding:"omitempty,min=1000"`
	Quota             int       `json:"quota" binding:"required,min=1,max=100000"`
	StartDate         time.Time `json:"startDate" binding:"required"`
	EndDate           time.Time `json:"endDate" binding:"required"`
}

type ticketTypesPayload struct {
	TicketTypes []TicketTypeRequest `json:"ticketTypes" binding:"required,min=1,dive"`
}

type promotionsPayload struct {
	Promotions []PromotionRequest `json:"promotions" binding:"dive"`
}

// toInput checks the rules that span fields and converts the form into a
// service input. All problems are reported together.
func (f *CreateEventForm) toInput(organizerID uint, now time.Time) (services.CreateEventInput, error) {
	var errs utils.FieldValidationErrors
	in := services.CreateEventInput{
		OrganizerID: organizerID,
		Title:       f.Name,
		Description: f.Description,
		Category:    f.Category,
		Location:    f.Location,
		Venue:       f.Venue,
		Capacity:    f.Capacity,
		IsDraft:     f.IsDraft,
	}

	if !models.IsValidEventCategory(f.Category) {
		errs.Add("category", "must be one of the supported categories")
	}

	start, startErr := time.ParseInLocation(eventDateTimeLayout, f.StartDate+" "+f.StartTime, time.Local)
	end, endErr := time.ParseInLocation(eventDateTimeLayout, f.EndDate+" "+f.EndTime, time.Local)
	switch {
	case startErr != nil:
		errs.Add("startDate", "invalid start date or time")
	case endErr != nil:
		errs.Add("endDate", "invalid end date or time")
	default:
		if !start.After(now) {
			errs.Add("startDate", "must be in the future")
		}
		if !end.After(start) {
			errs.Add("endDate", "must be after the start")
		}
	}
	in.StartDate, in.EndDate = start, end

	var tickets ticketTypesPayload
	if err := json.Unmarshal([]byte(f.TicketTypes), &tickets.TicketTypes); err != nil {
		errs.Add("ticketTypes", "must be a JSON array")
	} else if err := utils.ValidateStruct(&tickets); err != nil {
		errs = append(errs, utils.FormatValidationErrors(err)...)
	} else {
		for i, t := range tickets.TicketTypes {
			price := 0.0
			if t.TicketType == models.TicketPaid {
				if t.Price == nil {
					errs.Add(fmt.Sprintf("ticketTypes[%d].price", i), "is required for paid tickets")
					continue
				}
				if *t.Price > maxTicketPrice {
					errs.Add(fmt.Sprintf("ticketTypes[%d].price", i), "must be at most 10000000")
					continue
				}
				price = *t.Price
			}
			in.TicketTypes = append(in.TicketTypes, services.TicketTypeInput{
				Name:        t.Name,
				TicketType:  t.TicketType,
				Price:       price,
				Quantity:    t.Quantity,
				Description: t.Description,
			})
		}
	}

	var tags []string
	if err := json.Unmarshal([]byte(f.Tags), &tags); err != nil {
		errs.Add("tags", "must be a JSON array of strings")
	} else {
		tags = utils.NormalizeTags(tags)
		if len(tags) < 1 || len(tags) > maxEventTags {
			errs.Add("tags", "must contain between 1 and 10 tags")
		}
		in.Tags = tags
	}

	if f.Promotions != "" {
		var promos promotionsPayload
		if err := json.Unmarshal([]byte(f.Promotions), &promos.Promotions); err != nil {
			errs.Add("promotions", "must be a JSON array")
		} else if err := utils.ValidateStruct(&promos); err != nil {
			errs = append(errs, utils.FormatValidationErrors(err)...)
		} else {
			for i, p := range promos.Promotions {
				field := fmt.Sprintf("promotions[%d]", i)
				if p.DiscountType == models.DiscountPercentage && p.DiscountValue > maxPercentDiscount {
					errs.Add(field+".discountValue", "percentage discount must be at most 100")
				}
				if p.DiscountType == models.DiscountFixedAmount && p.DiscountValue < minFixedDiscount {
					errs.Add(field+".discountValue", "fixed discount must be at least 1000")
				}
				if !p.EndDate.After(p.StartDate) {
					errs.Add(field+".endDate", "must be after the start date")
				}
				in.Promotions = append(in.Promotions, services.PromotionInput{
					PromoType:         p.PromoType,
					DiscountType:      p.DiscountType,
					DiscountValue:     p.DiscountValue,
					Code:              p.Code,
					MinPurchaseAmount: p.MinPurchaseAmount,
					MaxDiscountAmount: p.MaxDiscountAmount,
					Quota:             p.Quota,
					StartDate:         p.StartDate,
					EndDate:           p.EndDate,
				})
			}
		}
	}

	if len(errs) > 0 {
		return in, utils.BadRequestError("Validation failed", errs).WithDetails(errs)
	}
	return in, nil
}
