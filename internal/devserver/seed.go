package devserver

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"

	"github.com/spec-kit/creatorhub/internal/domain"
	"github.com/spec-kit/creatorhub/internal/service"
)

// SeedPassword is the password of every seeded account.
const SeedPassword = "password123"

var seedCategories = []string{"Music", "Art", "Fitness", "Gaming"}

var seedTypes = []domain.ContentType{
	domain.ContentTypeImage,
	domain.ContentTypeVideo,
	domain.ContentTypeAudio,
	domain.ContentTypeText,
}

// Seed fills the backend with creators, tiers, content and one fan so the
// client has something to browse. The same seed yields the same data.
func (s *Server) Seed(ctx context.Context, seed uint64) error {
	faker := gofakeit.New(seed)

	var creators []*domain.User
	for i, category := range seedCategories {
		creator, _, err := s.Auth.Register(ctx, service.RegisterInput{
			Username:  fmt.Sprintf("creator%d", i+1),
			Email:     fmt.Sprintf("creator%d@example.com", i+1),
			Password:  SeedPassword,
			IsCreator: true,
			FullName:  faker.Name(),
		})
		if err != nil {
			return fmt.Errorf("seed creator: %w", err)
		}
		bio := faker.Sentence(8)
		if _, err := s.Users.Update(ctx, creator.ID, domain.UserUpdate{Bio: &bio}); err != nil {
			return fmt.Errorf("seed bio: %w", err)
		}
		for _, tier := range []domain.SubscriptionTier{
			{Name: "Supporter", Price: 4.99, Benefits: []string{"Exclusive posts"}},
			{Name: "Insider", Price: 14.99, Benefits: []string{"Exclusive posts", "Early access"}},
		} {
			if _, err := s.Users.AddTier(ctx, creator.ID, tier); err != nil {
				return fmt.Errorf("seed tier: %w", err)
			}
		}
		for j := 0; j < 3; j++ {
			exclusive := j == 2
			_, err := s.Content.Create(ctx, creator, domain.ContentInput{
				Title:       faker.Sentence(4),
				Description: faker.Paragraph(1, 3, 12, " "),
				Category:    category,
				ContentType: seedTypes[(i+j)%len(seedTypes)],
				Tags:        []string{faker.Word(), faker.Word()},
				IsExclusive: &exclusive,
			})
			if err != nil {
				return fmt.Errorf("seed content: %w", err)
			}
		}
		creators = append(creators, creator)
	}

	if _, _, err := s.Auth.Register(ctx, service.RegisterInput{
		Username: "fan",
		Email:    "fan@example.com",
		Password: SeedPassword,
		FullName: faker.Name(),
	}); err != nil {
		return fmt.Errorf("seed fan: %w", err)
	}

	s.logger.Info("seeded dev backend", zap.Int("creators", len(creators)))
	return nil
}
