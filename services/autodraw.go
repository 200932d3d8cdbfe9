package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bingolive/bingo-backend/game"
	"go.uber.org/zap"
)

// AutoDrawer repeatedly invokes DrawNext on a fixed cadence. It is a
// driver of the round state machine, not part of it: cancellation only
// stops future draws, never rolls back committed ones. The loop stops
// itself on ErrExhaustedPool, on ErrStaleRound (round finished under
// it) and on any store failure, so a blind retry can never double-draw.
type AutoDrawer struct {
	rounds   *RoundService
	interval time.Duration
	log      *zap.SugaredLogger

	mu      sync.Mutex
	cancels map[uint]chan struct{}
}

func NewAutoDrawer(rounds *RoundService, interval time.Duration, log *zap.SugaredLogger) *AutoDrawer {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	return &AutoDrawer{
		rounds:   rounds,
		interval: interval,
		log:      log,
		cancels:  make(map[uint]chan struct{}),
	}
}

// Start launches the draw loop for a round, drawing once immediately.
// Returns false if a loop is already running for that round.
func (d *AutoDrawer) Start(roundID uint) bool {
	d.mu.Lock()
	if _, running := d.cancels[roundID]; running {
		d.mu.Unlock()
		return false
	}
	cancel := make(chan struct{})
	d.cancels[roundID] = cancel
	d.mu.Unlock()

	go d.run(roundID, cancel)
	d.log.Infow("auto-draw started", "round_id", roundID, "interval", d.interval)
	return true
}

// Stop cancels the draw loop for a round. Returns false if no loop was
// running.
func (d *AutoDrawer) Stop(roundID uint) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	cancel, running := d.cancels[roundID]
	if !running {
		return false
	}
	close(cancel)
	delete(d.cancels, roundID)
	return true
}

// Running reports whether a loop is active for the round.
func (d *AutoDrawer) Running(roundID uint) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, running := d.cancels[roundID]
	return running
}

func (d *AutoDrawer) run(roundID uint, cancel <-chan struct{}) {
	defer d.clear(roundID, cancel)

	if !d.drawOnce(roundID) {
		return
	}
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-cancel:
			d.log.Infow("auto-draw cancelled", "round_id", roundID)
			return
		case <-ticker.C:
			if !d.drawOnce(roundID) {
				return
			}
		}
	}
}

func (d *AutoDrawer) drawOnce(roundID uint) bool {
	_, err := d.rounds.DrawNext(context.Background(), roundID)
	switch {
	case err == nil:
		return true
	case errors.Is(err, game.ErrExhaustedPool):
		d.log.Infow("auto-draw stopped, pool exhausted", "round_id", roundID)
	case errors.Is(err, game.ErrStaleRound):
		d.log.Infow("auto-draw stopped, round no longer active", "round_id", roundID)
	default:
		d.log.Errorw("auto-draw stopped on store error", "round_id", roundID, "error", err)
	}
	return false
}

// clear removes the loop's own cancel channel unless Stop already
// replaced it for a newer loop.
func (d *AutoDrawer) clear(roundID uint, cancel <-chan struct{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if current, ok := d.cancels[roundID]; ok && current == cancel {
		delete(d.cancels, roundID)
	}
}
