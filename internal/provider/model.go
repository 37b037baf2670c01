package provider

import "time"

// KnownTrades lists the trades the marketplace currently serves.
var KnownTrades = []string{"plumber", "electrician"}

// Provider is a tradesperson listing. Rating and ReviewCount are rolling
// aggregates maintained as reviews come in.
type Provider struct {
	ID          string
	Name        string
	Trade       string
	Email       string
	Phone       string
	City        string
	Description string
	HourlyRate  float64
	Rating      float64
	ReviewCount int
	Badges      []string
	CreatedAt   time.Time
}

// Filter narrows provider listings. Zero-valued fields match everything.
type Filter struct {
	Trade string
	City  string
	Limit int
}
