package queue

import (
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"compscope/server/internal/models"
)

func TestNewRecordQueue(t *testing.T) {
	logger := logrus.New()
	q := NewRecordQueue(10, logger)
	assert.NotNil(t, q)
	assert.Equal(t, 10, q.maxSize)
	assert.False(t, q.IsClosed())
}

func TestRecordQueue_Push(t *testing.T) {
	logger := logrus.New()
	q := NewRecordQueue(2, logger)

	// Test successful push
	batch := []*models.PropertyRecord{{ID: "MLS-1"}}
	err := q.Push(batch)
	assert.NoError(t, err)
	assert.Equal(t, 1, q.Len())

	// Test queue full
	for i := 0; i < 2; i++ {
		_ = q.Push([]*models.PropertyRecord{{ID: "MLS-x"}})
	}
	err = q.Push(batch)
	assert.Equal(t, ErrQueueFull, err)

	// Test closed queue
	q.Close()
	err = q.Push(batch)
	assert.Equal(t, ErrQueueClosed, err)
}

func TestRecordQueue_Subscribe(t *testing.T) {
	logger := logrus.New()
	q := NewRecordQueue(10, logger)

	var processed []*models.PropertyRecord
	var mu sync.Mutex

	q.Subscribe(func(records []*models.PropertyRecord) error {
		mu.Lock()
		processed = append(processed, records...)
		mu.Unlock()
		return nil
	})

	q.Start()

	batch := []*models.PropertyRecord{{ID: "MLS-1"}, {ID: "MLS-2"}}
	err := q.Push(batch)
	assert.NoError(t, err)

	// Wait for processing
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	assert.Equal(t, 2, len(processed))
	assert.Equal(t, "MLS-1", processed[0].ID)
	assert.Equal(t, "MLS-2", processed[1].ID)
	mu.Unlock()
}

func TestRecordQueue_Close(t *testing.T) {
	logger := logrus.New()
	q := NewRecordQueue(10, logger)

	err := q.Close()
	assert.NoError(t, err)
	assert.True(t, q.IsClosed())

	// Second close is a no-op
	err = q.Close()
	assert.NoError(t, err)
}

func TestRecordQueue_DispatchToAllHandlers(t *testing.T) {
	logger := logrus.New()
	q := NewRecordQueue(10, logger)

	var wg sync.WaitGroup
	processedBatches := 0
	var mu sync.Mutex

	for i := 0; i < 3; i++ {
		wg.Add(1)
		q.Subscribe(func(records []*models.PropertyRecord) error {
			mu.Lock()
			processedBatches++
			mu.Unlock()
			wg.Done()
			return nil
		})
	}

	q.Start()

	err := q.Push([]*models.PropertyRecord{{ID: "MLS-1"}})
	assert.NoError(t, err)

	wg.Wait()

	mu.Lock()
	assert.Equal(t, 3, processedBatches)
	mu.Unlock()
}
