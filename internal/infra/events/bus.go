package events

import (
	"context"
	"errors"
	"io"
	"sync"
)

// ErrBusClosed возвращается при публикации в закрытую шину
var ErrBusClosed = errors.New("events: bus is closed")

// Observer получатель событий
type Observer interface {
	Name() string
	Handle(ctx context.Context, event Event) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics счётчики шины, может быть nil
type Metrics interface {
	IncEventPublished(eventType string)
	IncEventDropped(eventType string)
}

// Bus асинхронная шина событий в рамках процесса
//
// Publish не блокирует вызывающего: событие кладётся в буферизованный канал,
// а единственная горутина раздаёт его наблюдателям по очереди.
// Если буфер заполнен, событие отбрасывается и учитывается в метриках
type Bus struct {
	queue     chan Event
	observers []Observer
	logger    Logger
	metrics   Metrics

	mu      sync.RWMutex
	closed  bool
	started bool
	done    chan struct{}
}

// NewBus создает шину с буфером bufferSize
func NewBus(bufferSize int, logger Logger, metrics Metrics, observers ...Observer) *Bus {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Bus{
		queue:     make(chan Event, bufferSize),
		observers: observers,
		logger:    logger,
		metrics:   metrics,
		done:      make(chan struct{}),
	}
}

// Start запускает горутину доставки событий
func (b *Bus) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.started || b.closed {
		return
	}
	b.started = true
	go b.run()
}

// Publish ставит событие в очередь и сразу возвращает управление
func (b *Bus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBusClosed
	}

	select {
	case b.queue <- event:
		if b.metrics != nil {
			b.metrics.IncEventPublished(event.Type)
		}
	default:
		b.logger.Warn("EventBus: queue is full, dropping event type=%s id=%s", event.Type, event.ID)
		if b.metrics != nil {
			b.metrics.IncEventDropped(event.Type)
		}
	}

	return nil
}

// Close прекращает приём событий и ждёт доставки оставшихся, пока не истечёт ctx
func (b *Bus) Close(ctx context.Context) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	close(b.queue)
	started := b.started
	b.mu.Unlock()

	if !started {
		return nil
	}

	select {
	case <-b.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown закрывает шину и затем writer'ы наблюдателей
// Если шина не успела доставить события до ctx, writer'ы не закрываются: dispatcher ещё может в них писать
func Shutdown(ctx context.Context, bus *Bus, logger Logger, writers ...io.Closer) error {
	if err := bus.Close(ctx); err != nil {
		if len(writers) > 0 {
			logger.Warn("Events: writers close skipped, dispatcher may still be writing")
		}
		return err
	}

	for _, w := range writers {
		if err := w.Close(); err != nil {
			logger.Error("Events: failed to close writer: %v", err)
		}
	}
	return nil
}

func (b *Bus) run() {
	defer close(b.done)

	for event := range b.queue {
		b.dispatch(event)
	}
}

func (b *Bus) dispatch(event Event) {
	for _, observer := range b.observers {
		if err := observer.Handle(context.Background(), event); err != nil {
			b.logger.Error("EventBus: observer=%s failed to handle event type=%s id=%s: %v",
				observer.Name(), event.Type, event.ID, err)
		}
	}
}
