package dto

import "github.com/spec-kit/creatorhub/internal/domain"

// ContentResponse wraps a single content item.
type ContentResponse struct {
	Content *domain.Content `json:"content"`
}

// ContentListResponse wraps a list of content items.
type ContentListResponse struct {
	Contents []domain.Content `json:"contents"`
}

// CategoriesResponse lists discovery categories.
type CategoriesResponse struct {
	Categories []domain.Category `json:"categories"`
}

// LikeResponse reports the likes list after a like or unlike.
type LikeResponse struct {
	Success bool     `json:"success"`
	Likes   []string `json:"likes"`
}

// CommentRequest adds a comment.
type CommentRequest struct {
	Text string `json:"text"`
}

// CommentResponse wraps the stored comment.
type CommentResponse struct {
	Comment domain.Comment `json:"comment"`
}

// CommentsResponse lists comments newest first.
type CommentsResponse struct {
	Comments []domain.Comment `json:"comments"`
}

// StatsResponse wraps creator dashboard stats.
type StatsResponse struct {
	Stats domain.CreatorStats `json:"stats"`
}
