package main

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	json "github.com/bytedance/sonic"
)

// WebhookWorkersCount is the number of concurrent senders draining the
// dispatch queue.
const WebhookWorkersCount = 5

// WebhookSendCommand is one queued delivery: a cell's current snapshot
// posted to a previously registered URL.
type WebhookSendCommand struct {
	URL  string
	Cell CellSnapshot
}

// WebhookDispatcher notifies registered URLs whenever a cell they are
// watching is recomputed. One dispatcher serves the single in-memory
// grid; there is no multi-sheet resource model to route between.
type WebhookDispatcher struct {
	queue    chan WebhookSendCommand
	webhooks map[Coord]string
}

func NewWebhookDispatcher() *WebhookDispatcher {
	return &WebhookDispatcher{
		queue:    make(chan WebhookSendCommand, 20),
		webhooks: map[Coord]string{},
	}
}

// SetURL registers url for coord, or clears any registration when url is
// empty.
func (d *WebhookDispatcher) SetURL(coord Coord, url string) {
	if url == "" {
		delete(d.webhooks, coord)
		return
	}
	d.webhooks[coord] = url
}

// URL returns the registered webhook for coord, or "" if none.
func (d *WebhookDispatcher) URL(coord Coord) string {
	return d.webhooks[coord]
}

// Notify enqueues a delivery for every snapshot whose coordinate has a
// registered webhook. Non-blocking: the enqueue happens on its own
// goroutine so a slow or absent webhook target never stalls the command
// thread that just finished an edit transaction.
func (d *WebhookDispatcher) Notify(snapshots []CellSnapshot) {
	go func() {
		for _, snap := range snapshots {
			url, ok := d.coordWebhook(snap)
			if !ok {
				continue
			}
			d.queue <- WebhookSendCommand{URL: url, Cell: snap}
		}
	}()
}

func (d *WebhookDispatcher) coordWebhook(snap CellSnapshot) (string, bool) {
	coord, ok := NameToCoord(snap.Name)
	if !ok {
		return "", false
	}
	url, ok := d.webhooks[coord]
	return url, ok
}

// Start spins up the worker pool; Close drains and stops it.
func (d *WebhookDispatcher) Start() {
	for i := 0; i < WebhookWorkersCount; i++ {
		go d.runSenderWorker()
	}
}

func (d *WebhookDispatcher) Close() {
	close(d.queue)
}

func (d *WebhookDispatcher) runSenderWorker() {
	client := &http.Client{Timeout: 5 * time.Second}

	for command := range d.queue {
		payload, err := json.Marshal(command.Cell)
		if err != nil {
			fmt.Printf("webhook payload encode error: %s\n", err)
			continue
		}
		resp, err := client.Post(command.URL, "application/json", bytes.NewReader(payload))
		if err != nil {
			fmt.Printf("webhook send error: %s\n", err)
			continue
		}
		resp.Body.Close()
		if resp.StatusCode >= 300 {
			fmt.Printf("unexpected webhook response status: %s\n", resp.Status)
		}
	}
}
