package viewqueue

import (
	"context"
	"sync"
	"time"

	"github.com/chapterone/storefront-core/internal/upstream"
)

var (
	clientRef *upstream.Client
	ch        chan upstream.ViewEvent
	done      chan struct{}
	wg        sync.WaitGroup
	once      sync.Once
)

// Start spins up N workers with a buffered channel.
// Suggested: buf=10000, workers=2
func Start(client *upstream.Client, buf, workers int) {
	once.Do(func() {
		clientRef = client
		ch = make(chan upstream.ViewEvent, buf)
		done = make(chan struct{})
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go worker()
		}
	})
}

// Enqueue tries to queue a view event without blocking.
// If the buffer is full, the event is dropped (acceptable for metrics).
func Enqueue(bookID string) {
	if bookID == "" || ch == nil {
		return
	}
	ev := upstream.ViewEvent{BookID: bookID, ViewedAt: time.Now().UTC()}
	select {
	case ch <- ev:
	default:
		// buffer full; drop
	}
}

// Shutdown signals workers to stop, flushes remaining events, and waits.
func Shutdown() {
	if done == nil {
		return
	}
	close(done)
	wg.Wait()
}

// --- internal ---

const (
	batchSize  = 100
	flushEvery = 250 * time.Millisecond
	reportTO   = 2 * time.Second
)

func worker() {
	defer wg.Done()
	tk := time.NewTicker(flushEvery)
	defer tk.Stop()

	batch := make([]upstream.ViewEvent, 0, batchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		_ = reportBatch(batch) // best-effort; errors are ignored for metrics
		batch = batch[:0]
	}

	for {
		select {
		case <-done:
			// drain quickly then flush
			for {
				select {
				case ev := <-ch:
					batch = append(batch, ev)
					if len(batch) >= batchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		case ev := <-ch:
			batch = append(batch, ev)
			if len(batch) >= batchSize {
				flush()
			}
		case <-tk.C:
			flush()
		}
	}
}

func reportBatch(batch []upstream.ViewEvent) error {
	if len(batch) == 0 {
		return nil
	}
	out := make([]upstream.ViewEvent, len(batch))
	copy(out, batch)
	ctx, cancel := context.WithTimeout(context.Background(), reportTO)
	defer cancel()
	return clientRef.ReportViews(ctx, out)
}
