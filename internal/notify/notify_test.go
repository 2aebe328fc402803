package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakePublisher struct {
	mu   sync.Mutex
	got  []Notification
	fail bool
}

func (p *fakePublisher) Publish(_ context.Context, n Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker down")
	}
	p.got = append(p.got, n)
	return nil
}

func TestDispatcherDeliversInOrder(t *testing.T) {
	pub := &fakePublisher{}
	d := NewDispatcher(pub)

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, id := range ids {
		d.Notify(Notification{Type: TypeBookingCreated, BookingID: id})
	}
	d.Close()

	pub.mu.Lock()
	defer pub.mu.Unlock()
	if assert.Len(t, pub.got, 3) {
		for i, id := range ids {
			assert.Equal(t, id, pub.got[i].BookingID)
		}
	}
}

func TestDispatcherSwallowsPublishErrors(t *testing.T) {
	pub := &fakePublisher{fail: true}
	d := NewDispatcher(pub)

	assert.NotPanics(t, func() {
		d.Notify(Notification{Type: TypeBookingCancelled, BookingID: uuid.New()})
		d.Close()
	})
}

func TestLogPublisher(t *testing.T) {
	assert.NoError(t, LogPublisher{}.Publish(context.Background(), Notification{Type: TypeBookingNoShow}))
}

func TestDispatcherDropsAfterClose(t *testing.T) {
	pub := &fakePublisher{}
	d := NewDispatcher(pub)
	d.Close()

	assert.NotPanics(t, func() {
		d.Notify(Notification{Type: TypeBookingCompleted, BookingID: uuid.New()})
		d.Close()
	})

	pub.mu.Lock()
	defer pub.mu.Unlock()
	assert.Empty(t, pub.got)
}
