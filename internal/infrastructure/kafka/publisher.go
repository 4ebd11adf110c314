package kafka

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/events"
)

var _ events.Publisher = (*Publisher)(nil)

// Publisher publica los sobres de transición en un tópico Kafka.
// Particiona por EntityID para que los eventos de una misma entidad
// conserven el orden.
type Publisher struct {
	w *kafkago.Writer
}

// NewPublisher construye el writer para el tópico de transiciones.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		w: &kafkago.Writer{
			Addr:         kafkago.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafkago.Hash{},
			RequiredAcks: kafkago.RequireAll,
		},
	}
}

// Publish serializa el sobre y lo escribe. Los casos de uso lo tratan como
// best-effort: la transición ya está confirmada en la DB cuando se publica.
func (p *Publisher) Publish(ctx context.Context, evt events.Envelope) error {
	value, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(evt.EntityID),
		Value: value,
		Time:  evt.OccurredAt,
	})
}

// Close cierra el writer subyacente.
func (p *Publisher) Close() error {
	return p.w.Close()
}
