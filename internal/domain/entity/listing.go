package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Listing representa un producto publicado por un opticien.
// Nace pending; solo un admin lo aprueba o rechaza. El stock solo lo mutan
// el checkout (colaborador externo) y la restauración al rehusar una orden.
// Invariante: Stock >= 0 en todo momento.
type Listing struct {
	ID           string
	OwnerID      string
	Name         string
	Description  string
	Price        decimal.Decimal
	Stock        int
	Status       ModerationStatus
	RejectReason string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
