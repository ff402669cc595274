package services

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

// CategorySvcFacade defines read operations for category reference data
type CategorySvcFacade interface {
	GetCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	FilterCategories(ctx context.Context, name string) ([]domain.Category, error)
}
