package service

import (
	"context"
	"fmt"
	"log"

	"campusmarket/internal/models"
	"campusmarket/internal/repository"
	"campusmarket/internal/storage"
)

type CreateItemInput struct {
	Name        string
	Category    string
	Description *string
	Price       float64
	Condition   string
	Photo       *string
}

type ItemService interface {
	Create(ctx context.Context, userID string, input CreateItemInput) (*models.Item, error)
	List(ctx context.Context, filter repository.ItemFilter, page, limit int) ([]models.Item, int, error)
}

type itemService struct {
	itemRepo repository.ItemRepository
	store    storage.Storage
}

func NewItemService(itemRepo repository.ItemRepository, store storage.Storage) ItemService {
	return &itemService{itemRepo: itemRepo, store: store}
}

func (s *itemService) Create(ctx context.Context, userID string, input CreateItemInput) (*models.Item, error) {
	photo := input.Photo
	if photo != nil && *photo != "" {
		uploaded, err := s.store.UploadDataURI(ctx, "items", *photo)
		if err != nil {
			// Keep the listing; a broken photo upload should not lose the item.
			log.Printf("Failed to upload item photo: %v", err)
		} else {
			photo = &uploaded
		}
	}

	item := &models.Item{
		UserID:      userID,
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		Price:       input.Price,
		Condition:   input.Condition,
		Photo:       photo,
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return item, nil
}

func (s *itemService) List(ctx context.Context, filter repository.ItemFilter, page, limit int) ([]models.Item, int, error) {
	offset := (page - 1) * limit
	return s.itemRepo.List(ctx, filter, limit, offset)
}
