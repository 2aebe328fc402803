package notify

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	TypeBookingCreated   = "booking.created"
	TypeBookingCancelled = "booking.cancelled"
	TypeBookingCompleted = "booking.completed"
	TypeBookingNoShow    = "booking.no_show"
)

type Notification struct {
	Type       string    `json:"type"`
	BookingID  uuid.UUID `json:"booking_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	BarberID   uuid.UUID `json:"barber_id"`
	Date       string    `json:"date"`
	TimeSlot   string    `json:"time_slot"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Notifier is fire-and-forget; delivery failures never reach the caller.
type Notifier interface {
	Notify(n Notification)
}

type Publisher interface {
	Publish(ctx context.Context, n Notification) error
}

// RedisPublisher pushes notifications to a pub/sub channel consumed by the
// delivery workers (push, e-mail).
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, n Notification) error {
	b, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, b).Err()
}

// LogPublisher only logs; used when no broker is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, n Notification) error {
	log.Info().
		Str("type", n.Type).
		Str("booking_id", n.BookingID.String()).
		Str("date", n.Date).
		Str("time_slot", n.TimeSlot).
		Msg("notification")
	return nil
}

type Dispatcher struct {
	pub   Publisher
	queue chan Notification
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func NewDispatcher(pub Publisher) *Dispatcher {
	d := &Dispatcher{
		pub:   pub,
		queue: make(chan Notification, 256),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for n := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := d.pub.Publish(ctx, n); err != nil {
			log.Warn().Err(err).Str("type", n.Type).Msg("notification publish failed")
		}
		cancel()
	}
}

func (d *Dispatcher) Notify(n Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		log.Warn().Str("type", n.Type).Msg("notifier closed, dropping")
		return
	}

	select {
	case d.queue <- n:
	default:
		log.Warn().Str("type", n.Type).Msg("notification queue full, dropping")
	}
}

func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	d.wg.Wait()
}
