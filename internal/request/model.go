package request

import "time"

// ServiceRequest is a customer job posting looking for a tradesperson.
type ServiceRequest struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Trade     string
	City      string
	Title     string
	Details   string
	Budget    float64
	CreatedAt time.Time
}

// Filter narrows job listings. Zero-valued fields match everything.
type Filter struct {
	Trade string
	City  string
	Limit int
}
