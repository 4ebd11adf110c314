package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Tipos de evento emitidos tras una transición confirmada.
const (
	EventAccountApproved = "AccountApproved"
	EventAccountRejected = "AccountRejected"
	EventListingApproved = "ListingApproved"
	EventListingRejected = "ListingRejected"
	EventOrderValidated  = "OrderValidated"
	EventOrderRefused    = "OrderRefused"
	EventOrderCompleted  = "OrderCompleted"
)

// Envelope sobre común de todos los eventos de transición.
type Envelope struct {
	EventID      string          `json:"event_id"`      // uuid
	EventType    string          `json:"event_type"`    // una de las const de arriba
	EventVersion int             `json:"event_version"` // 1
	OccurredAt   time.Time       `json:"occurred_at"`   // RFC3339
	Producer     string          `json:"producer"`      // "marketplace-api"
	EntityID     string          `json:"entity_id"`     // clave de partición
	Payload      json.RawMessage `json:"payload"`
}

// NewEnvelope arma el sobre con el payload serializado.
func NewEnvelope(eventType, entityID string, payload any) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		EventID:      uuid.New().String(),
		EventType:    eventType,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     "marketplace-api",
		EntityID:     entityID,
		Payload:      raw,
	}, nil
}

// Publisher puerto de salida hacia el broker. Una implementación nil/ausente
// desactiva la publicación; los casos de uso nunca fallan por el broker.
type Publisher interface {
	Publish(ctx context.Context, evt Envelope) error
}

// ---- Payloads por tipo de evento ----

// ModerationPayload para Account*/Listing*.
type ModerationPayload struct {
	EntityID string `json:"entity_id"`
	Status   string `json:"status"`
	Reason   string `json:"reason,omitempty"`
}

// RestoredItem stock devuelto a un listing al rehusar una orden.
type RestoredItem struct {
	ListingID string `json:"listing_id"`
	Quantity  int    `json:"quantity"`
}

// OrderTransitionPayload para OrderValidated/OrderRefused/OrderCompleted.
type OrderTransitionPayload struct {
	OrderID       string         `json:"order_id"`
	Status        string         `json:"status"`
	AdminNote     string         `json:"admin_note,omitempty"`
	RestoredItems []RestoredItem `json:"restored_items,omitempty"`
}
