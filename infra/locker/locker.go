package locker

import "sync"

// Locker tracks which batch dates are being processed in this process so that
// two runs for the same date never overlap.
type Locker struct {
	mu           sync.Mutex
	inProcessMap map[string]int64
}

func New() *Locker {
	return &Locker{
		inProcessMap: make(map[string]int64),
	}
}

// TryMarkAsProcessing claims batchDate for logID. It returns false when
// another run already holds the date.
func (l *Locker) TryMarkAsProcessing(batchDate string, logID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, busy := l.inProcessMap[batchDate]; busy {
		return false
	}
	l.inProcessMap[batchDate] = logID
	return true
}

// IsProcessing checks if a batch date is already being processed.
func (l *Locker) IsProcessing(batchDate string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, busy := l.inProcessMap[batchDate]
	return busy
}

// Unlock releases batchDate if it is held by logID.
func (l *Locker) Unlock(batchDate string, logID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.inProcessMap[batchDate] == logID {
		delete(l.inProcessMap, batchDate)
	}
}
