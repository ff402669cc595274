package dto

import "github.com/SscSPs/finance_tracker/internal/core/domain"

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID int64  `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	IconURL    string `json:"iconUrl,omitempty"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO
func ToCategoryResponse(c domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.CategoryID,
		Name:       c.Name,
		Type:       string(c.Type),
		IconURL:    c.IconURL,
	}
}

// ToListCategoryResponse converts a slice of categories.
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		res[i] = ToCategoryResponse(c)
	}
	return res
}
