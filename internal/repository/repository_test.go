package repository

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/creatorhub/internal/domain"
)

func TestUserRepositoryUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	email := gofakeit.Email()
	u := &domain.User{Username: gofakeit.Username(), Email: email}
	require.NoError(t, repo.Create(ctx, u))
	require.NotEmpty(t, u.ID)

	err := repo.Create(ctx, &domain.User{Username: "someone-else", Email: email})
	require.ErrorIs(t, err, ErrDuplicate)

	got, err := repo.GetByUsername(ctx, u.Username)
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	_, err = repo.GetByID(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestContentRepositoryLikesAndComments(t *testing.T) {
	ctx := context.Background()
	repo := NewContentRepository()

	c := &domain.Content{Title: gofakeit.Sentence(3), Creator: domain.RefUser("creator"), Status: domain.ContentStatusPublished}
	require.NoError(t, repo.Create(ctx, c))

	likes, err := repo.AddLike(ctx, c.ID, "fan")
	require.NoError(t, err)
	likes, err = repo.AddLike(ctx, c.ID, "fan")
	require.NoError(t, err)
	require.Equal(t, []string{"fan"}, likes)

	require.NoError(t, repo.AddComment(ctx, c.ID, &domain.Comment{Text: "first"}))
	require.NoError(t, repo.AddComment(ctx, c.ID, &domain.Comment{Text: "second"}))
	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, "second", got.Comments[0].Text)
	require.NotEmpty(t, got.Comments[0].ID)

	likes, err = repo.RemoveLike(ctx, c.ID, "fan")
	require.NoError(t, err)
	require.Empty(t, likes)

	list, err := repo.List(ctx, ContentFilter{CreatorID: "creator"})
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, c.ID))
	require.ErrorIs(t, repo.Delete(ctx, c.ID), ErrNotFound)
}

func TestSubscriptionRepositoryOneActivePerPair(t *testing.T) {
	ctx := context.Background()
	repo := NewSubscriptionRepository()
	now := time.Now().UTC()

	sub := &domain.Subscription{
		Subscriber: domain.RefUser("fan"),
		Creator:    domain.RefUser("creator"),
		StartDate:  now,
		EndDate:    now.AddDate(0, 1, 0),
		IsActive:   true,
	}
	require.NoError(t, repo.Create(ctx, sub))

	dup := *sub
	require.ErrorIs(t, repo.Create(ctx, &dup), ErrDuplicate)

	found, err := repo.FindActive(ctx, "fan", "creator", now.Add(time.Hour))
	require.NoError(t, err)
	require.Equal(t, sub.ID, found.ID)

	_, err = repo.FindActive(ctx, "fan", "creator", now.AddDate(0, 2, 0))
	require.ErrorIs(t, err, ErrNotFound)
}
