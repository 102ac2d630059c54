package tasks

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnricher struct {
	enriched chan uint
}

func (f *fakeEnricher) EnrichBook(_ context.Context, bookID uint) ([]string, error) {
	f.enriched <- bookID
	return []string{"total_pages"}, nil
}

func setupTasksTest(t *testing.T) (*Client, func()) {
	mainDBPath := "./test_tasks_" + t.Name() + ".db"
	tasksDBPath := "./test_tasks_" + t.Name() + "-tasks.db"

	cfg := DefaultConfig()
	cfg.Workers = 1

	client, err := NewClient(mainDBPath, cfg)
	require.NoError(t, err)

	cleanup := func() {
		client.Close()
		os.Remove(mainDBPath)
		os.Remove(tasksDBPath)
		os.Remove(tasksDBPath + "-shm")
		os.Remove(tasksDBPath + "-wal")
	}
	return client, cleanup
}

func TestClient_SidecarDatabasePath(t *testing.T) {
	client, cleanup := setupTasksTest(t)
	defer cleanup()

	// The queue database is created next to the main one, not inside it.
	_, err := os.Stat("./test_tasks_" + t.Name() + "-tasks.db")
	assert.NoError(t, err)
	assert.NotNil(t, client)
}

func TestClient_ProcessesEnrichTask(t *testing.T) {
	client, cleanup := setupTasksTest(t)
	defer cleanup()

	enricher := &fakeEnricher{enriched: make(chan uint, 1)}
	client.Register(NewEnrichBookQueue(enricher))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	client.Start(ctx)

	ids, err := client.Add(EnrichBookTask{BookID: 7}).Save()
	require.NoError(t, err)
	require.Len(t, ids, 1)

	select {
	case bookID := <-enricher.enriched:
		assert.Equal(t, uint(7), bookID)
	case <-time.After(5 * time.Second):
		t.Fatal("task was not processed within 5s")
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	assert.True(t, client.Stop(stopCtx))
}
