package model

import (
	"fmt"
	"time"

	gosimpleslug "github.com/gosimple/slug"
)

type ListingStatus string

const (
	ListingStatusPending  ListingStatus = "pending"
	ListingStatusApproved ListingStatus = "approved"
	ListingStatusRejected ListingStatus = "rejected"
	ListingStatusInactive ListingStatus = "inactive" // set by the owner app, never by moderation
)

// CarCategories is the fixed label set the dashboard popularity figures are
// reported over. Listings outside these labels are not counted.
var CarCategories = []string{"SUV", "Sedan", "Hatchback", "Luxury"}

type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// Documents the owner uploaded for moderation review.
type ListingDocuments struct {
	CarInsurance     string `json:"car_insurance"`
	DriverLicense    string `json:"driver_license"`
	ControlTechnique string `json:"control_technique"`
}

type CarListing struct {
	ID           string           `json:"id"`
	Make         string           `json:"make"`
	Model        string           `json:"model"`
	Year         int              `json:"year"`
	Price        float64          `json:"price"`
	Category     string           `json:"category"`
	Description  string           `json:"description"`
	Transmission string           `json:"transmission"`
	FuelType     string           `json:"fuel_type"`
	Seats        int              `json:"seats"`
	Location     Location         `json:"location"`
	Status       ListingStatus    `json:"status"`
	IsActive     bool             `json:"is_active"`
	Rating       float64          `json:"rating"`
	TotalRatings int              `json:"total_ratings"`
	TotalRentals int              `json:"total_rentals"`
	OwnerID      string           `json:"owner_id"`
	Photos       []string         `json:"photos"`
	Features     []string         `json:"features"`
	Documents    ListingDocuments `json:"documents"`
	Revision     int64            `json:"revision"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// Slug is the stable detail-route identifier, e.g. "toyota-corolla-2019-8f2a".
// The id suffix keeps identical make/model/year listings distinct.
func (c *CarListing) Slug() string {
	suffix := c.ID
	if len(suffix) > 4 {
		suffix = suffix[:4]
	}
	return gosimpleslug.Make(fmt.Sprintf("%s %s %d %s", c.Make, c.Model, c.Year, suffix))
}
