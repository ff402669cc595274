package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
)

type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryReader
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryReader) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category %d: %w", categoryID, err)
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

// FilterCategories returns the categories whose name contains name, ignoring case.
func (s *categoryService) FilterCategories(ctx context.Context, name string) ([]domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("category name filter cannot be empty")
	}
	categories, err := s.categoryRepo.FindCategoriesByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to filter categories by %q: %w", name, err)
	}
	if len(categories) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no categories match %q", name))
	}
	return categories, nil
}
