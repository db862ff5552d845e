package domain

import (
	"slices"
	"time"
)

// ContentType enumerates the media kinds a post can carry.
type ContentType string

const (
	ContentTypeImage ContentType = "image"
	ContentTypeVideo ContentType = "video"
	ContentTypeAudio ContentType = "audio"
	ContentTypeText  ContentType = "text"
	ContentTypeLive  ContentType = "live"
)

// Valid reports whether t is a known content type.
func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeImage, ContentTypeVideo, ContentTypeAudio, ContentTypeText, ContentTypeLive:
		return true
	}
	return false
}

// ContentStatus enumerates publication states.
type ContentStatus string

const (
	ContentStatusDraft     ContentStatus = "draft"
	ContentStatusPublished ContentStatus = "published"
	ContentStatusArchived  ContentStatus = "archived"
)

// Content is a creator-authored post.
type Content struct {
	ID            string        `json:"_id"`
	Creator       UserRef       `json:"creator"`
	Title         string        `json:"title"`
	Description   string        `json:"description,omitempty"`
	Category      string        `json:"category,omitempty"`
	ContentType   ContentType   `json:"contentType"`
	MediaURL      string        `json:"mediaUrl,omitempty"`
	ThumbnailURL  string        `json:"thumbnailUrl,omitempty"`
	Tags          []string      `json:"tags"`
	IsExclusive   bool          `json:"isExclusive"`
	RequiredTier  string        `json:"requiredTier,omitempty"`
	IsPaidContent bool          `json:"isPaidContent"`
	Price         float64       `json:"price,omitempty"`
	Currency      string        `json:"currency,omitempty"`
	Likes         []string      `json:"likes"`
	Comments      []Comment     `json:"comments"`
	Views         int           `json:"views"`
	Status        ContentStatus `json:"status"`
	ScheduleDate  *time.Time    `json:"scheduleDate,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// ContentInput carries the writable fields of create and update calls.
type ContentInput struct {
	Title         string        `json:"title,omitempty"`
	Description   string        `json:"description,omitempty"`
	Category      string        `json:"category,omitempty"`
	ContentType   ContentType   `json:"contentType,omitempty"`
	MediaURL      string        `json:"mediaUrl,omitempty"`
	ThumbnailURL  string        `json:"thumbnailUrl,omitempty"`
	Tags          []string      `json:"tags,omitempty"`
	IsExclusive   *bool         `json:"isExclusive,omitempty"`
	RequiredTier  string        `json:"requiredTier,omitempty"`
	IsPaidContent *bool         `json:"isPaidContent,omitempty"`
	Price         *float64      `json:"price,omitempty"`
	Currency      string        `json:"currency,omitempty"`
	Status        ContentStatus `json:"status,omitempty"`
}

// Comment is an entry in a content item's comment thread.
type Comment struct {
	ID        string    `json:"_id"`
	User      UserRef   `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Category is a discovery bucket on the home feed.
type Category struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// CreatorStats summarizes a creator's dashboard.
type CreatorStats struct {
	TotalContent     int     `json:"totalContent"`
	TotalViews       int     `json:"totalViews"`
	TotalLikes       int     `json:"totalLikes"`
	TotalSubscribers int     `json:"totalSubscribers"`
	TotalRevenue     float64 `json:"totalRevenue"`
}

// PlatformFeeRate is the share of revenue kept by the platform.
const PlatformFeeRate = 0.15

// NetEarnings is the revenue paid out to the creator.
func (s CreatorStats) NetEarnings() float64 {
	return s.TotalRevenue * (1 - PlatformFeeRate)
}

// PlatformFee is the revenue kept by the platform.
func (s CreatorStats) PlatformFee() float64 {
	return s.TotalRevenue * PlatformFeeRate
}

// LikedBy reports whether userID is in the likes list.
func (c *Content) LikedBy(userID string) bool {
	return slices.Contains(c.Likes, userID)
}

// AddLike appends userID unless already present. It reports whether the
// list changed.
func (c *Content) AddLike(userID string) bool {
	if c.LikedBy(userID) {
		return false
	}
	c.Likes = append(c.Likes, userID)
	return true
}

// RemoveLike drops every occurrence of userID. It reports whether the list
// changed.
func (c *Content) RemoveLike(userID string) bool {
	n := len(c.Likes)
	c.Likes = slices.DeleteFunc(c.Likes, func(id string) bool { return id == userID })
	return len(c.Likes) != n
}

// Clone returns a copy whose slices do not alias c.
func (c *Content) Clone() *Content {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Tags = slices.Clone(c.Tags)
	cp.Likes = slices.Clone(c.Likes)
	cp.Comments = slices.Clone(c.Comments)
	return &cp
}
