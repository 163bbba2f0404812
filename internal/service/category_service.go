package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/XiaBell/Sprint4-Arquisfot/internal/dto"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/model"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/repository"

	"github.com/google/uuid"
)

// CategoryService defines business operations for product categories.
type CategoryService interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) (dto.CategoryResponse, error)
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (dto.CategoryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo     repository.CategoryRepository
	products repository.ProductRepository
}

func NewCategoryService(repo repository.CategoryRepository, products repository.ProductRepository) CategoryService {
	return &categoryService{repo: repo, products: products}
}

func mapCategory(c model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (dto.CategoryResponse, error) {
	if req.Name == "" {
		return dto.CategoryResponse{}, fmt.Errorf("%w: name must not be empty", ErrValidation)
	}
	ctx, cancel := withWriteTimeout(ctx)
	defer cancel()

	c := &model.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return dto.CategoryResponse{}, fmt.Errorf("%w: %q", ErrDuplicateName, req.Name)
		}
		return dto.CategoryResponse{}, storeErr(err)
	}
	return mapCategory(*c), nil
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	ctx, cancel := withWriteTimeout(ctx)
	defer cancel()

	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	result := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		result = append(result, mapCategory(c))
	}
	return result, nil
}

// Update only touches the description: category names are immutable once the
// category may be referenced by products.
func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (dto.CategoryResponse, error) {
	ctx, cancel := withWriteTimeout(ctx)
	defer cancel()

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.CategoryResponse{}, ErrNotFound
		}
		return dto.CategoryResponse{}, storeErr(err)
	}

	if req.Description != nil {
		c.Description = req.Description
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return dto.CategoryResponse{}, storeErr(err)
	}
	return mapCategory(*c), nil
}

// Delete refuses to remove a category that products still reference —
// referential protection, not cascade.
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := withWriteTimeout(ctx)
	defer cancel()

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return storeErr(err)
	}

	n, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return storeErr(err)
	}
	if n > 0 {
		return fmt.Errorf("%w: %d products reference this category", ErrReferentialConflict, n)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		// The FK may still fire if a product was created between the check
		// and the delete.
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return ErrReferentialConflict
		}
		return storeErr(err)
	}
	return nil
}
