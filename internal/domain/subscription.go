package domain

import "time"

// SubscriptionTier is a plan a creator offers.
type SubscriptionTier struct {
	ID       string   `json:"_id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Currency string   `json:"currency"`
	Benefits []string `json:"benefits"`
}

// Subscription links a subscriber to a creator through a tier.
type Subscription struct {
	ID            string    `json:"_id"`
	Subscriber    UserRef   `json:"subscriber"`
	Creator       UserRef   `json:"creator"`
	Tier          TierRef   `json:"tier"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	IsActive      bool      `json:"isActive"`
	AutoRenew     bool      `json:"autoRenew"`
	PaymentMethod string    `json:"paymentMethod,omitempty"`
	Price         float64   `json:"price"`
	Currency      string    `json:"currency"`
}

// ActiveAt reports whether the subscription grants access at t.
func (s Subscription) ActiveAt(t time.Time) bool {
	return s.IsActive && !t.Before(s.StartDate) && t.Before(s.EndDate)
}
