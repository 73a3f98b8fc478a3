package queue

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"equitybridge/server/internal/models"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// IndexQueue is an in-memory queue of index-record batches feeding the
// batch processors during archive imports.
type IndexQueue struct {
	items    chan []*models.IndexRecord
	done     chan struct{}
	maxSize  int
	closed   bool
	mu       sync.RWMutex
	logger   *logrus.Logger
	handlers []func([]*models.IndexRecord) error
}

// NewIndexQueue creates a new queue with the specified buffer size.
func NewIndexQueue(bufferSize int, logger *logrus.Logger) *IndexQueue {
	return &IndexQueue{
		items:    make(chan []*models.IndexRecord, bufferSize),
		done:     make(chan struct{}),
		maxSize:  bufferSize,
		logger:   logger,
		handlers: make([]func([]*models.IndexRecord) error, 0),
	}
}

// Push adds a batch of index records to the queue.
func (q *IndexQueue) Push(records []*models.IndexRecord) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return ErrQueueClosed
	}
	q.mu.RUnlock()

	// Non-blocking send to prevent deadlocks
	select {
	case q.items <- records:
		q.logger.WithField("batch_size", len(records)).Debug("Pushed batch to queue")
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe adds a handler function that will be called for each batch.
func (q *IndexQueue) Subscribe(handler func([]*models.IndexRecord) error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start begins processing items in the queue.
func (q *IndexQueue) Start() {
	go q.process()
}

func (q *IndexQueue) process() {
	for {
		select {
		case <-q.done:
			return
		case batch := <-q.items:
			q.processBatch(batch)
		}
	}
}

// processBatch sends the batch to all subscribed handlers.
func (q *IndexQueue) processBatch(batch []*models.IndexRecord) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(batch); err != nil {
			q.logger.WithError(err).Error("Handler failed to process batch")
		}
	}
}

// Close stops the queue and prevents new items from being added.
func (q *IndexQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	q.closed = true
	close(q.done)
	close(q.items)
	return nil
}

// Len returns the current number of batches in the queue.
func (q *IndexQueue) Len() int {
	return len(q.items)
}

// IsClosed returns whether the queue has been closed.
func (q *IndexQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
