package domain

import (
	"regexp"
	"time"
)

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// ValidEmail reports whether s looks like an email address. Forms, the
// session manager and the dev backend all check against it.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// User is the account record shared by fans and creators.
type User struct {
	ID             string          `json:"_id"`
	Username       string          `json:"username"`
	Email          string          `json:"email"`
	FullName       string          `json:"fullName,omitempty"`
	ProfilePicture string          `json:"profilePicture,omitempty"`
	CoverImage     string          `json:"coverImage,omitempty"`
	Bio            string          `json:"bio,omitempty"`
	IsCreator      bool            `json:"isCreator"`
	Country        string          `json:"country,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	CreatorDetails *CreatorDetails `json:"creatorDetails,omitempty"`
	Followers      []string        `json:"followers"`
	Following      []string        `json:"following"`
	CreatedAt      time.Time       `json:"createdAt"`
	PasswordHash   string          `json:"-"`
}

// CreatorDetails holds the creator-only part of a profile.
type CreatorDetails struct {
	Categories        []string           `json:"categories"`
	SubscriptionTiers []SubscriptionTier `json:"subscriptionTiers"`
	PaymentMethods    []PaymentMethod    `json:"paymentMethods,omitempty"`
}

// PaymentMethod is an opaque payout method descriptor.
type PaymentMethod struct {
	Type    string         `json:"type"`
	Details map[string]any `json:"details,omitempty"`
}

// UserUpdate is a partial profile update; nil fields are left unchanged.
type UserUpdate struct {
	FullName       *string `json:"fullName,omitempty"`
	Username       *string `json:"username,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
	CoverImage     *string `json:"coverImage,omitempty"`
	Bio            *string `json:"bio,omitempty"`
	Country        *string `json:"country,omitempty"`
	Phone          *string `json:"phone,omitempty"`
}

// Clone returns a deep copy so cached users can be handed out safely.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Followers = append([]string(nil), u.Followers...)
	c.Following = append([]string(nil), u.Following...)
	if u.CreatorDetails != nil {
		d := *u.CreatorDetails
		d.Categories = append([]string(nil), u.CreatorDetails.Categories...)
		d.SubscriptionTiers = append([]SubscriptionTier(nil), u.CreatorDetails.SubscriptionTiers...)
		d.PaymentMethods = append([]PaymentMethod(nil), u.CreatorDetails.PaymentMethods...)
		c.CreatorDetails = &d
	}
	return &c
}
