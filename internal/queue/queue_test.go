package queue

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"equitybridge/server/internal/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func testBatch(month string) []*models.IndexRecord {
	return []*models.IndexRecord{
		{
			AreaName:         "Toronto",
			PropertyCategory: "Detached",
			ReportMonth:      month,
			IndexValue:       312.4,
		},
	}
}

func TestPushAndLen(t *testing.T) {
	q := NewIndexQueue(4, testLogger())

	assert.Equal(t, 0, q.Len())
	assert.NoError(t, q.Push(testBatch("2026-01")))
	assert.NoError(t, q.Push(testBatch("2026-02")))
	assert.Equal(t, 2, q.Len())
}

func TestPushFullQueue(t *testing.T) {
	q := NewIndexQueue(1, testLogger())

	assert.NoError(t, q.Push(testBatch("2026-01")))
	err := q.Push(testBatch("2026-02"))
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestPushClosedQueue(t *testing.T) {
	q := NewIndexQueue(4, testLogger())
	assert.NoError(t, q.Close())

	err := q.Push(testBatch("2026-01"))
	assert.ErrorIs(t, err, ErrQueueClosed)
	assert.True(t, q.IsClosed())
}

func TestCloseIsIdempotent(t *testing.T) {
	q := NewIndexQueue(4, testLogger())

	assert.NoError(t, q.Close())
	assert.NoError(t, q.Close())
}

func TestSubscribeReceivesBatches(t *testing.T) {
	q := NewIndexQueue(4, testLogger())

	var mu sync.Mutex
	var received [][]*models.IndexRecord
	done := make(chan struct{}, 2)

	q.Subscribe(func(batch []*models.IndexRecord) error {
		mu.Lock()
		received = append(received, batch)
		mu.Unlock()
		done <- struct{}{}
		return nil
	})
	q.Start()

	assert.NoError(t, q.Push(testBatch("2026-01")))
	assert.NoError(t, q.Push(testBatch("2026-02")))

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for batch")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, received, 2)
	assert.Equal(t, "2026-01", received[0][0].ReportMonth)
}

func TestHandlerErrorDoesNotStopProcessing(t *testing.T) {
	q := NewIndexQueue(4, testLogger())

	done := make(chan string, 2)
	q.Subscribe(func(batch []*models.IndexRecord) error {
		done <- batch[0].ReportMonth
		return errors.New("handler failed")
	})
	q.Start()

	assert.NoError(t, q.Push(testBatch("2026-01")))
	assert.NoError(t, q.Push(testBatch("2026-02")))

	months := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		select {
		case m := <-done:
			months = append(months, m)
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for batch")
		}
	}
	assert.Equal(t, []string{"2026-01", "2026-02"}, months)
}
