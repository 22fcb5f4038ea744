package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookDispatcherDeliversOnlyRegisteredCells(t *testing.T) {
	var mu sync.Mutex
	var received []CellSnapshot

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var snap CellSnapshot
		require.NoError(t, json.NewDecoder(r.Body).Decode(&snap))
		mu.Lock()
		received = append(received, snap)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	d := NewWebhookDispatcher()
	d.Start()
	defer d.Close()

	d.SetURL(Coord{0, 0}, server.URL)
	d.Notify([]CellSnapshot{
		{Name: "A1", Value: 5},
		{Name: "B1", Value: 9},
	})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 1
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, "A1", received[0].Name)
	assert.Equal(t, int32(5), received[0].Value)
}

func TestWebhookDispatcherSetURLClearsRegistration(t *testing.T) {
	d := NewWebhookDispatcher()
	d.SetURL(Coord{0, 0}, "http://example.invalid")
	assert.Equal(t, "http://example.invalid", d.URL(Coord{0, 0}))

	d.SetURL(Coord{0, 0}, "")
	assert.Equal(t, "", d.URL(Coord{0, 0}))
}
