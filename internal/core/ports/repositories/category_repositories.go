package repositories

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

// CategoryReader defines read operations for category data
type CategoryReader interface {
	FindCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	// FindCategoriesByName matches name case-insensitively anywhere in the category name.
	FindCategoriesByName(ctx context.Context, name string) ([]domain.Category, error)
}
