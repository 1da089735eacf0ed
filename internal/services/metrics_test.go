package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

func TestMetricsHubConcurrentAddRemove(t *testing.T) {
	hub := NewMetricsHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	conns := make([]*websocket.Conn, 20)
	for i := range conns {
		conns[i] = &websocket.Conn{}
	}

	var wg sync.WaitGroup
	for _, conn := range conns {
		conn := conn
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Add(conn)
		}()
	}
	wg.Wait()
	assert.Len(t, hub.snapshot(), 20)

	for _, conn := range conns[:10] {
		conn := conn
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Remove(conn)
		}()
	}
	wg.Wait()
	assert.Len(t, hub.snapshot(), 10)
}

func TestMetricsHubBroadcastNeverBlocks(t *testing.T) {
	hub := NewMetricsHub()
	// No Run loop draining the channel: filling it past capacity must
	// drop samples rather than block the sampling goroutine.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Broadcast(MetricSample{CapturedAt: time.Now()})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked on a full channel")
	}
}
