package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/entity"
)

// CreateListingRequest alta de listing por un opticien (nace pending).
type CreateListingRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

// ListingResponse listing expuesto por la API.
type ListingResponse struct {
	ID           string          `json:"id"`
	OwnerID      string          `json:"owner_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	Status       string          `json:"status"`
	RejectReason string          `json:"reject_reason,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ListingListResponse página de listings.
type ListingListResponse struct {
	Items []ListingResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ToListingResponse mapea la entidad al DTO de salida.
func ToListingResponse(l *entity.Listing) *ListingResponse {
	if l == nil {
		return nil
	}
	return &ListingResponse{
		ID:           l.ID,
		OwnerID:      l.OwnerID,
		Name:         l.Name,
		Description:  l.Description,
		Price:        l.Price,
		Stock:        l.Stock,
		Status:       string(l.Status),
		RejectReason: l.RejectReason,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

// ToListingList mapea una página de entidades.
func ToListingList(ls []*entity.Listing, page PageResponse) ListingListResponse {
	items := make([]ListingResponse, 0, len(ls))
	for _, l := range ls {
		items = append(items, *ToListingResponse(l))
	}
	return ListingListResponse{Items: items, Page: page}
}
