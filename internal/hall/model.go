package hall

import (
	"strings"
	"time"
)

type Hall struct {
	ID           int       `db:"id" json:"id"`
	ManagerID    int       `db:"manager_id" json:"manager_id"`
	Name         string    `db:"name" json:"name"`
	City         string    `db:"city" json:"city"`
	Sport        string    `db:"sport" json:"sport"`
	Location     string    `db:"location" json:"location"`
	Capacity     int       `db:"capacity" json:"capacity"`
	PricePerHour int       `db:"price_per_hour" json:"price_per_hour"`
	Description  string    `db:"description" json:"description"`
	Amenities    string    `db:"amenities" json:"-"`
	Rating       float64   `db:"rating" json:"rating"`
	Tags         []string  `db:"-" json:"tags"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// SplitAmenities turns the comma-separated amenities column into tags.
func (h *Hall) SplitAmenities() {
	h.Tags = []string{}
	for _, tag := range strings.Split(h.Amenities, ",") {
		if t := strings.TrimSpace(tag); t != "" {
			h.Tags = append(h.Tags, t)
		}
	}
}

type CreateHallRequest struct {
	Name         string  `json:"name" binding:"required"`
	City         string  `json:"city" binding:"required"`
	Sport        string  `json:"sport" binding:"required"`
	Location     string  `json:"location" binding:"required"`
	Capacity     int     `json:"capacity" binding:"required,min=1"`
	PricePerHour int     `json:"price_per_hour" binding:"required,min=0"`
	Description  string  `json:"description"`
	Amenities    string  `json:"amenities"`
	Rating       float64 `json:"rating"`
}

type UpdateHallRequest struct {
	Name         string  `json:"name" binding:"required"`
	City         string  `json:"city" binding:"required"`
	Sport        string  `json:"sport" binding:"required"`
	Location     string  `json:"location" binding:"required"`
	Capacity     int     `json:"capacity" binding:"required,min=1"`
	PricePerHour int     `json:"price_per_hour" binding:"required,min=0"`
	Description  string  `json:"description"`
	Amenities    string  `json:"amenities"`
	Rating       float64 `json:"rating"`
}
