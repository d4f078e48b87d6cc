package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"campusmarket/internal/models"
	"campusmarket/internal/repository"
	"campusmarket/internal/storage"
)

type CreateLostFoundInput struct {
	Type        string
	Title       string
	Category    string
	Description *string
	Photo       *string
	Photos      []string
	Location    *string
	Date        *time.Time
	ContactInfo *string
}

// UpdateLostFoundInput carries only the fields the caller wants to change.
// The post type is immutable and deliberately absent.
type UpdateLostFoundInput struct {
	Title       *string
	Category    *string
	Description *string
	Photo       *string
	Photos      []string
	Location    *string
	Date        *time.Time
	ContactInfo *string
	Status      *string
}

type LostFoundService interface {
	Create(ctx context.Context, userID string, input CreateLostFoundInput) (*models.LostFoundPost, error)
	List(ctx context.Context, filter repository.LostFoundFilter, page, limit int) ([]models.LostFoundPost, int, error)
	GetByID(ctx context.Context, postID string) (*models.LostFoundPost, error)
	Update(ctx context.Context, userID, postID string, input UpdateLostFoundInput) (*models.LostFoundPost, error)
	Delete(ctx context.Context, userID, postID string) error
}

type lostFoundService struct {
	postRepo repository.LostFoundRepository
	store    storage.Storage
}

func NewLostFoundService(postRepo repository.LostFoundRepository, store storage.Storage) LostFoundService {
	return &lostFoundService{postRepo: postRepo, store: store}
}

func (s *lostFoundService) Create(ctx context.Context, userID string, input CreateLostFoundInput) (*models.LostFoundPost, error) {
	photo := input.Photo
	if photo != nil && *photo != "" {
		uploaded, err := s.store.UploadDataURI(ctx, "lost-found", *photo)
		if err != nil {
			log.Printf("Failed to upload post photo: %v", err)
		} else {
			photo = &uploaded
		}
	}

	post := &models.LostFoundPost{
		UserID:      userID,
		Type:        input.Type,
		Title:       input.Title,
		Category:    input.Category,
		Description: input.Description,
		Photo:       photo,
		Photos:      input.Photos,
		Location:    input.Location,
		Date:        input.Date,
		ContactInfo: input.ContactInfo,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return s.postRepo.GetByID(ctx, post.PostID)
}

func (s *lostFoundService) List(ctx context.Context, filter repository.LostFoundFilter, page, limit int) ([]models.LostFoundPost, int, error) {
	offset := (page - 1) * limit
	return s.postRepo.List(ctx, filter, limit, offset)
}

func (s *lostFoundService) GetByID(ctx context.Context, postID string) (*models.LostFoundPost, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

// Update mutates a post after the existence check and then the ownership
// check, in that order: an unknown id is NotFound even for a stranger.
func (s *lostFoundService) Update(ctx context.Context, userID, postID string, input UpdateLostFoundInput) (*models.LostFoundPost, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if post.UserID != userID {
		return nil, ErrForbidden
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Category != nil {
		post.Category = *input.Category
	}
	if input.Description != nil {
		post.Description = input.Description
	}
	if input.Photo != nil {
		post.Photo = input.Photo
	}
	if input.Photos != nil {
		post.Photos = input.Photos
	}
	if input.Location != nil {
		post.Location = input.Location
	}
	if input.Date != nil {
		post.Date = input.Date
	}
	if input.ContactInfo != nil {
		post.ContactInfo = input.ContactInfo
	}
	if input.Status != nil {
		post.Status = *input.Status
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return s.postRepo.GetByID(ctx, postID)
}

func (s *lostFoundService) Delete(ctx context.Context, userID, postID string) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if post.UserID != userID {
		return ErrForbidden
	}

	return s.postRepo.Delete(ctx, postID)
}
