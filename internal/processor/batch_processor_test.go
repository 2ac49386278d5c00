package processor

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compscope/server/config"
	"compscope/server/internal/database"
	"compscope/server/internal/models"
	"compscope/server/internal/queue"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.BatchProcessing.QueueSize = 10
	cfg.BatchProcessing.ProcessorCount = 2
	cfg.BatchProcessing.MaxRetries = 1
	cfg.BatchProcessing.RetryDelay = 0
	return cfg
}

func TestNewBatchProcessor(t *testing.T) {
	db, err := database.NewDatabase(":memory:", logrus.New())
	require.NoError(t, err)
	defer db.Close()

	q := queue.NewRecordQueue(10, logrus.New())
	cfg := testConfig()
	logger := logrus.New()

	p := NewBatchProcessor(db.DB(), q, cfg, logger)

	assert.NotNil(t, p)
	assert.Equal(t, q, p.queue)
	assert.Equal(t, cfg, p.config)
	assert.Equal(t, logger, p.logger)
}

func TestBatchProcessor_ProcessBatch(t *testing.T) {
	db, err := database.NewDatabase(":memory:", logrus.New())
	require.NoError(t, err)
	defer db.Close()

	q := queue.NewRecordQueue(10, logrus.New())
	p := NewBatchProcessor(db.DB(), q, testConfig(), logrus.New())

	list := 300000.0
	batch := []*models.PropertyRecord{
		{ID: "MLS-1", SubjectID: "SUBJ", Status: models.StatusActive, ListPrice: &list},
		{ID: "MLS-2", SubjectID: "SUBJ", Status: models.StatusPending},
	}

	require.NoError(t, p.processBatch(batch))

	stored, err := db.GetComparables("SUBJ")
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestBatchProcessor_EndToEndThroughQueue(t *testing.T) {
	db, err := database.NewDatabase(":memory:", logrus.New())
	require.NoError(t, err)
	defer db.Close()

	q := queue.NewRecordQueue(10, logrus.New())
	p := NewBatchProcessor(db.DB(), q, testConfig(), logrus.New())

	p.Start()
	q.Start()
	defer p.Stop()

	err = q.Push([]*models.PropertyRecord{
		{ID: "MLS-1", SubjectID: "SUBJ", Status: models.StatusClosed},
	})
	require.NoError(t, err)

	// Give the queue goroutine time to drain.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		stored, err := db.GetComparables("SUBJ")
		require.NoError(t, err)
		if len(stored) == 1 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("batch was never persisted")
}
