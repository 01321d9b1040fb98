package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/companion-booking/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
}

func (c *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	c.exchange, c.key, c.msg = exchange, key, msg
	return c.err
}

func (c *fakeChannel) Close() error { return nil }

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event domain.Event) error {
	return m.Called(ctx, event).Error(0)
}

type recordedMetric struct {
	eventType string
	ok        bool
}

type fakeMetrics struct {
	calls []recordedMetric
}

func (f *fakeMetrics) EventPublished(eventType string, ok bool) {
	f.calls = append(f.calls, recordedMetric{eventType, ok})
}

func TestRabbitPublisherPublish(t *testing.T) {
	ch := &fakeChannel{}
	p := newRabbitPublisherWithChannel(ch, "companion.events")

	b := &domain.Booking{ID: 10, ClientID: 1, CompanionID: 2, BookingDate: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), StartTime: "12:00", EndTime: "14:00"}
	event := domain.NewBookingCreatedEvent(b, time.Now())

	require.NoError(t, p.Publish(context.Background(), event))

	assert.Equal(t, "companion.events", ch.exchange)
	assert.Equal(t, "BookingCreated", ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.NotEmpty(t, ch.msg.MessageId)

	var decoded domain.Event
	require.NoError(t, json.Unmarshal(ch.msg.Body, &decoded))
	assert.Equal(t, domain.EventBookingCreated, decoded.Type)
	assert.Equal(t, ch.msg.MessageId, decoded.ID)
	assert.Equal(t, "2024-06-03", decoded.Payload["bookingDate"])
}

func TestRabbitPublisherWrapsBrokerError(t *testing.T) {
	p := newRabbitPublisherWithChannel(&fakeChannel{err: errors.New("channel closed")}, "x")

	err := p.Publish(context.Background(), domain.Event{Type: domain.EventBookingStatusChanged})
	assert.ErrorIs(t, err, ErrPublish)
}

func TestDispatcherSwallowsFailures(t *testing.T) {
	pub := &mockPublisher{}
	metrics := &fakeMetrics{}

	pub.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.EventBookingCreated && e.ID != ""
	})).Return(nil).Once()
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.EventBookingStatusChanged
	})).Return(errors.New("broker down")).Once()

	d := NewDispatcher(pub, metrics, nopLogger{})
	d.Dispatch(context.Background(),
		domain.Event{Type: domain.EventBookingCreated},
		domain.Event{Type: domain.EventBookingStatusChanged},
	)

	pub.AssertExpectations(t)
	assert.Equal(t, []recordedMetric{
		{"BookingCreated", true},
		{"BookingStatusChanged", false},
	}, metrics.calls)
}

func TestLogPublisherNeverFails(t *testing.T) {
	p := NewLogPublisher(nopLogger{})
	assert.NoError(t, p.Publish(context.Background(), domain.Event{Type: domain.EventApplicationReviewed}))
}
