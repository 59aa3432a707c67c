package syncgw

import (
	"context"
	"log"
	"sync"

	"github.com/gmllt/bboard/internal/board"
)

// Dispatcher runs every notification on its own goroutine so the caller
// never waits on the network. Failures are logged and dropped; there is no
// ordering between notifications and no retry.
type Dispatcher struct {
	client *Client
	logger *log.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

var _ board.Notifier = (*Dispatcher)(nil)

func NewDispatcher(client *Client, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Dispatcher{client: client, logger: logger}
}

func (d *Dispatcher) goSend(op, boardID, cardID string, send func(ctx context.Context) error) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.logger.Printf("sync: %s dropped board=%s card=%s err=dispatcher closed", op, boardID, cardID)
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()
	go func() {
		defer d.wg.Done()
		if err := send(context.Background()); err != nil {
			if cardID != "" {
				d.logger.Printf("sync: %s failed board=%s card=%s err=%v", op, boardID, cardID, err)
				return
			}
			d.logger.Printf("sync: %s failed board=%s err=%v", op, boardID, err)
		}
	}()
}

func (d *Dispatcher) BoardCreated(b board.Board) {
	d.goSend("set_super_peer", b.ID, "", func(ctx context.Context) error {
		return d.client.RegisterBoard(ctx, b)
	})
}

func (d *Dispatcher) BoardDeleted(b board.Board) {
	d.goSend("unregister_board", b.ID, "", func(ctx context.Context) error {
		return d.client.UnregisterBoard(ctx, b)
	})
}

func (d *Dispatcher) CardSaved(boardID string, c board.Card) {
	d.goSend("save_card", boardID, c.ID, func(ctx context.Context) error {
		return d.client.SaveCard(ctx, boardID, c)
	})
}

func (d *Dispatcher) CardUpdated(boardID string, c board.Card) {
	d.goSend("update_card", boardID, c.ID, func(ctx context.Context) error {
		return d.client.UpdateCard(ctx, boardID, c)
	})
}

func (d *Dispatcher) CardDeleted(boardID, cardID string) {
	d.goSend("delete_card", boardID, cardID, func(ctx context.Context) error {
		return d.client.DeleteCard(ctx, boardID, cardID)
	})
}

// Wait blocks until every notification sent so far has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Close stops accepting notifications and waits for those in flight.
// Later notifications are logged and dropped.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.wg.Wait()
}
