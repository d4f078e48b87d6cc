package service

import (
	"context"
	"errors"
	"fmt"

	"campusmarket/internal/models"
	"campusmarket/internal/repository"
)

// Profile is the public view of a user together with the ratings they have
// received and their currently available listings.
type Profile struct {
	User    *models.User
	Ratings []models.Rating
	Items   []models.Item
}

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
}

type userService struct {
	userRepo   repository.UserRepository
	ratingRepo repository.RatingRepository
	itemRepo   repository.ItemRepository
}

func NewUserService(userRepo repository.UserRepository, ratingRepo repository.RatingRepository,
	itemRepo repository.ItemRepository) UserService {
	return &userService{
		userRepo:   userRepo,
		ratingRepo: ratingRepo,
		itemRepo:   itemRepo,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	ratings, err := s.ratingRepo.GetByToUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.itemRepo.GetAvailableByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{
		User:    user,
		Ratings: ratings,
		Items:   items,
	}, nil
}
