package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *recordingLogger) record(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf(format, v...))
}

func (l *recordingLogger) Info(format string, v ...interface{})  { l.record(format, v...) }
func (l *recordingLogger) Warn(format string, v ...interface{})  { l.record(format, v...) }
func (l *recordingLogger) Error(format string, v ...interface{}) { l.record(format, v...) }

func (l *recordingLogger) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.messages...)
}

type recordingObserver struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (o *recordingObserver) Name() string { return "recording" }

func (o *recordingObserver) Handle(_ context.Context, event Event) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
	return o.err
}

func (o *recordingObserver) received() []Event {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Event(nil), o.events...)
}

type countingMetrics struct {
	mu        sync.Mutex
	published int
	dropped   int
}

func (m *countingMetrics) IncEventPublished(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published++
}

func (m *countingMetrics) IncEventDropped(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropped++
}

func testSlot() *domain.AvailabilitySlot {
	return &domain.AvailabilitySlot{
		ID:        "slot-1",
		UserID:    "user-1",
		DayOfWeek: 1,
		StartTime: types.MustTimeOfDay("09:00"),
		EndTime:   types.MustTimeOfDay("17:00"),
	}
}

func TestBus_DeliversToAllObservers(t *testing.T) {
	first := &recordingObserver{}
	second := &recordingObserver{err: errors.New("observer failed")}
	logger := &recordingLogger{}
	metrics := &countingMetrics{}

	bus := NewBus(8, logger, metrics, first, second)
	bus.Start()

	event := NewSlotEvent(domain.EventSlotCreated, testSlot(), time.Now())
	require.NoError(t, bus.Publish(context.Background(), event))
	require.NoError(t, bus.Close(context.Background()))

	require.Len(t, first.received(), 1)
	assert.Equal(t, event.ID, first.received()[0].ID)
	// Ошибка одного наблюдателя не мешает остальным
	require.Len(t, second.received(), 1)
	assert.Equal(t, 1, metrics.published)
	assert.NotEmpty(t, logger.all())
}

func TestBus_DropsWhenQueueIsFull(t *testing.T) {
	metrics := &countingMetrics{}
	bus := NewBus(1, &recordingLogger{}, metrics)

	// Горутина доставки не запущена, очередь не разгружается
	require.NoError(t, bus.Publish(context.Background(), NewSlotEvent(domain.EventSlotCreated, testSlot(), time.Now())))
	require.NoError(t, bus.Publish(context.Background(), NewSlotEvent(domain.EventSlotCreated, testSlot(), time.Now())))

	assert.Equal(t, 1, metrics.published)
	assert.Equal(t, 1, metrics.dropped)
}

func TestBus_PublishAfterClose(t *testing.T) {
	bus := NewBus(4, &recordingLogger{}, nil)
	bus.Start()
	require.NoError(t, bus.Close(context.Background()))

	err := bus.Publish(context.Background(), NewSlotEvent(domain.EventSlotDeleted, testSlot(), time.Now()))
	assert.ErrorIs(t, err, ErrBusClosed)

	// Повторное закрытие безопасно
	assert.NoError(t, bus.Close(context.Background()))
}

type blockingObserver struct {
	release chan struct{}
}

func (o *blockingObserver) Name() string { return "blocking" }

func (o *blockingObserver) Handle(_ context.Context, _ Event) error {
	<-o.release
	return nil
}

func TestShutdown_ClosesWritersAfterDelivery(t *testing.T) {
	observer := &recordingObserver{}
	bus := NewBus(4, &recordingLogger{}, nil, observer)
	bus.Start()
	require.NoError(t, bus.Publish(context.Background(), NewSlotEvent(domain.EventSlotCreated, testSlot(), time.Now())))

	writer := &fakeWriter{}
	require.NoError(t, Shutdown(context.Background(), bus, &recordingLogger{}, writer))

	assert.Len(t, observer.received(), 1)
	assert.True(t, writer.closed)
}

func TestShutdown_SkipsWritersOnTimeout(t *testing.T) {
	observer := &blockingObserver{release: make(chan struct{})}
	defer close(observer.release)

	bus := NewBus(4, &recordingLogger{}, nil, observer)
	bus.Start()
	require.NoError(t, bus.Publish(context.Background(), NewSlotEvent(domain.EventSlotCreated, testSlot(), time.Now())))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	writer := &fakeWriter{}
	logger := &recordingLogger{}
	err := Shutdown(ctx, bus, logger, writer)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, writer.closed)
	assert.Contains(t, logger.all(), "Events: writers close skipped, dispatcher may still be writing")
}

func TestNewSlotEvent(t *testing.T) {
	occurred := time.Date(2026, 3, 2, 12, 0, 0, 0, time.FixedZone("UTC+3", 3*60*60))

	event := NewSlotEvent(domain.EventSlotCreated, testSlot(), occurred)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, domain.EventSlotCreated, event.Type)
	assert.Equal(t, "user-1", event.UserID)
	assert.Equal(t, "slot-1", event.SlotID)
	assert.Equal(t, 1, event.DayOfWeek)
	assert.Equal(t, "09:00", event.StartTime)
	assert.Equal(t, "17:00", event.EndTime)
	assert.Equal(t, time.UTC, event.OccurredAt.Location())
}

func TestLogObserver(t *testing.T) {
	logger := &recordingLogger{}
	observer := NewLogObserver(logger)

	require.NoError(t, observer.Handle(context.Background(), NewSlotEvent(domain.EventSlotCreated, testSlot(), time.Now())))

	messages := logger.all()
	require.Len(t, messages, 1)
	assert.Equal(t, "[NOTIFY] user=user-1 added availability slot id=slot-1: Monday 09:00-17:00", messages[0])
}

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaObserver_WritesMessage(t *testing.T) {
	writer := &fakeWriter{}
	observer := NewKafkaObserverWithWriter(writer, time.Second)

	event := NewSlotEvent(domain.EventSlotDeleted, testSlot(), time.Now())
	require.NoError(t, observer.Handle(context.Background(), event))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, []byte("user-1"), msg.Key)
	assert.Equal(t, "event_id", msg.Headers[0].Key)
	assert.Equal(t, []byte(event.ID), msg.Headers[0].Value)
	assert.Equal(t, []byte(domain.EventSlotDeleted), msg.Headers[1].Value)

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event.SlotID, decoded.SlotID)

	require.NoError(t, observer.Close())
	assert.True(t, writer.closed)
}

func TestKafkaObserver_WriteError(t *testing.T) {
	writer := &fakeWriter{err: errors.New("broker unavailable")}
	observer := NewKafkaObserverWithWriter(writer, time.Second)

	err := observer.Handle(context.Background(), NewSlotEvent(domain.EventSlotCreated, testSlot(), time.Now()))
	assert.ErrorIs(t, err, writer.err)
}
