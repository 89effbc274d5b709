package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/prepfox/catalog-service/models"
	"github.com/prepfox/catalog-service/repository"
)

type CategoryCreateRequest struct {
	Name       string  `json:"name" validate:"required"`
	ParentName *string `json:"parent_name,omitempty"`
	Image      string  `json:"image"`
	IsActive   bool    `json:"is_active"`
	SortOrder  int     `json:"sort_order"`
}

type CategoryService struct {
	repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// CreateCategory handles the business logic for creating a single category.
func (s *CategoryService) CreateCategory(ctx context.Context, req CategoryCreateRequest) (*models.Category, error) {
	// Check for duplicates
	_, err := s.repo.FindByName(ctx, req.Name)
	if err == nil {
		return nil, fmt.Errorf("category with name '%s' already exists", req.Name)
	}
	if err != mongo.ErrNoDocuments {
		return nil, err // A real database error occurred
	}

	var parentID *uuid.UUID
	if req.ParentName != nil && *req.ParentName != "" {
		parent, err := s.repo.FindByName(ctx, *req.ParentName)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, fmt.Errorf("parent category '%s' not found", *req.ParentName)
			}
			return nil, err
		}
		parentID = &parent.ID
	}

	now := time.Now().UTC()
	newCategory := &models.Category{
		ID:        uuid.New(),
		Name:      req.Name,
		Slug:      Slugify(req.Name),
		ParentID:  parentID,
		Image:     req.Image,
		IsActive:  req.IsActive,
		SortOrder: req.SortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.repo.Create(ctx, newCategory); err != nil {
		return nil, err
	}
	return newCategory, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	if len(updates) == 0 {
		return 0, fmt.Errorf("no update fields provided")
	}
	delete(updates, "_id")

	if name, ok := updates["name"].(string); ok {
		updates["slug"] = Slugify(name)
	}

	result, err := s.repo.Update(ctx, id, bson.M(updates))
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	result, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
