package forms

import (
	"strings"

	"github.com/spec-kit/creatorhub/internal/domain"
)

// ContentForm is the create-content form.
type ContentForm struct {
	Title        string
	Description  string
	Category     string
	ContentType  domain.ContentType
	MediaURL     string
	ThumbnailURL string
	IsExclusive  bool
}

// Validate checks every field. Text posts need no media; images and videos
// also need a thumbnail.
func (f ContentForm) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(f.Title) == "" {
		errs["title"] = "Title is required"
	}
	if strings.TrimSpace(f.Description) == "" {
		errs["description"] = "Description is required"
	}
	if f.Category == "" {
		errs["category"] = "Category is required"
	}
	contentType := f.contentType()
	if contentType != domain.ContentTypeText && f.MediaURL == "" {
		errs["media"] = "Media file is required"
	}
	if (contentType == domain.ContentTypeVideo || contentType == domain.ContentTypeImage) && f.ThumbnailURL == "" {
		errs["thumbnail"] = "Thumbnail is required"
	}
	return errs
}

// Input converts the form into a create request.
func (f ContentForm) Input() domain.ContentInput {
	exclusive := f.IsExclusive
	return domain.ContentInput{
		Title:        strings.TrimSpace(f.Title),
		Description:  strings.TrimSpace(f.Description),
		Category:     f.Category,
		ContentType:  f.contentType(),
		MediaURL:     f.MediaURL,
		ThumbnailURL: f.ThumbnailURL,
		IsExclusive:  &exclusive,
	}
}

func (f ContentForm) contentType() domain.ContentType {
	if f.ContentType == "" {
		return domain.ContentTypeText
	}
	return f.ContentType
}
