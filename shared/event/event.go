// Package event publishes domain events after a mutation has been committed.
package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=./mocks/event_mock.go -package=mocks

import (
	"context"
	"roomboard/config"
	"roomboard/infras/kafka"
	"roomboard/infras/otel"
	"roomboard/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
)

type BookingCreated struct {
	BookingID string    `json:"booking_id"`
	RoomID    string    `json:"room_id"`
	GuestName string    `json:"guest_name"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	StaffID   string    `json:"staff_id"`
	CreatedAt time.Time `json:"created_at"`
}

type RoomStatusChanged struct {
	RoomID    string    `json:"room_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Reason    string    `json:"reason"`
	ChangedAt time.Time `json:"changed_at"`
}

const (
	ReasonManualCycle = "manual_cycle"
	ReasonManualSet   = "manual_set"
	ReasonBooking     = "booking"
	ReasonVoice       = "voice"
)

// Publisher never blocks the caller and never reports delivery failures back to it.
type Publisher interface {
	BookingsCreated(ctx context.Context, events ...BookingCreated)
	RoomStatusChanged(ctx context.Context, event RoomStatusChanged)
}

type kafkaPublisher struct {
	client kafka.Client
	otel   otel.Otel
	topics struct {
		bookingCreated    string
		roomStatusChanged string
	}
}

// NewPublisher publishes to Kafka, or only logs the events when client is nil.
func NewPublisher(cfg *config.Config, client kafka.Client, otl otel.Otel) Publisher {
	if client == nil {
		return logPublisher{}
	}

	p := &kafkaPublisher{client: client, otel: otl}
	p.topics.bookingCreated = cfg.Kafka.Topics.BookingCreated
	p.topics.roomStatusChanged = cfg.Kafka.Topics.RoomStatusChanged

	return p
}

func (p *kafkaPublisher) BookingsCreated(ctx context.Context, events ...BookingCreated) {
	if len(events) == 0 {
		return
	}

	messages := make([]kafka.Message, len(events))
	for i, e := range events {
		messages[i] = kafka.Message{Key: e.RoomID, Value: e}
	}

	p.send(ctx, p.topics.bookingCreated, messages)
}

func (p *kafkaPublisher) RoomStatusChanged(ctx context.Context, event RoomStatusChanged) {
	p.send(ctx, p.topics.roomStatusChanged, []kafka.Message{{Key: event.RoomID, Value: event}})
}

func (p *kafkaPublisher) send(ctx context.Context, topic string, messages []kafka.Message) {
	go func() {
		c, scope := p.otel.NewScope(context.WithoutCancel(ctx), constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
		defer scope.End()

		scope.SetAttribute("topic", topic)

		if err := p.client.SendMessages(c, topic, messages...); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("topic", topic).Msg("failed to publish domain event")
		}
	}()
}

type logPublisher struct{}

func (logPublisher) BookingsCreated(_ context.Context, events ...BookingCreated) {
	for _, e := range events {
		log.Debug().Str("booking_id", e.BookingID).Str("room_id", e.RoomID).Msg("booking created")
	}
}

func (logPublisher) RoomStatusChanged(_ context.Context, e RoomStatusChanged) {
	log.Debug().Str("room_id", e.RoomID).Str("from", e.From).Str("to", e.To).Str("reason", e.Reason).Msg("room status changed")
}
