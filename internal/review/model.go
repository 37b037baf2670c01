package review

import "time"

// Review is a customer rating left against a provider listing. Creating
// one also folds its rating into the listing's rolling aggregates.
type Review struct {
	ID         string
	ProviderID string
	Name       string
	Rating     int
	Comment    string
	CreatedAt  time.Time
}
