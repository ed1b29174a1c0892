package session

import "sync"

// Tracker is the score sink shared by all question instances of a session.
type Tracker interface {
	Increment()
	Reset()
}

// ScoreTracker counts questions answered correctly in the current session.
// Only Increment and Reset change the count.
type ScoreTracker struct {
	mu    sync.Mutex
	score int
}

func NewScoreTracker() *ScoreTracker {
	return &ScoreTracker{}
}

func (t *ScoreTracker) Increment() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.score++
}

func (t *ScoreTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.score = 0
}

func (t *ScoreTracker) Score() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.score
}
