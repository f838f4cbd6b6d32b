package scheduling

import "sync"

// Ledger is the authoritative record of slot occupancy. The slot generator's
// view of availability is advisory; the ledger is the enforcement point for
// double-booking, serializing concurrent reservations per doctor.
type Ledger interface {
	// Reserve atomically claims (doctorID, dayKey, timeLabel). At most one
	// of two concurrent callers succeeds; the loser gets ErrSlotTaken.
	// On success the stable slot key is returned.
	Reserve(doctorID, dayKey, timeLabel string) (string, error)
	// Release frees a previously reserved slot. Releasing a slot that is
	// not reserved returns ErrSlotNotFound.
	Release(doctorID, dayKey, timeLabel string) error
	// Seed loads a doctor's occupancy from a stored snapshot, once: a
	// doctor the ledger already tracks is left untouched so in-flight
	// reservations are not lost.
	Seed(doctorID string, booked map[string][]string)
}

// DefaultSlotLedger is the in-memory Ledger implementation. A single mutex
// guards the doctor index; each doctor entry carries its own mutex so
// reservations for different doctors do not contend.
type DefaultSlotLedger struct {
	mu      sync.Mutex
	doctors map[string]*doctorSlots
}

type doctorSlots struct {
	mu    sync.Mutex
	taken map[string]struct{} // keyed by slot key
}

// NewSlotLedger creates an empty ledger.
func NewSlotLedger() *DefaultSlotLedger {
	return &DefaultSlotLedger{doctors: make(map[string]*doctorSlots)}
}

func (l *DefaultSlotLedger) doctor(doctorID string) *doctorSlots {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.doctors[doctorID]
	if !ok {
		entry = &doctorSlots{taken: make(map[string]struct{})}
		l.doctors[doctorID] = entry
	}
	return entry
}

func (l *DefaultSlotLedger) Reserve(doctorID, dayKey, timeLabel string) (string, error) {
	entry := l.doctor(doctorID)
	key := SlotKey(doctorID, dayKey, timeLabel)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if _, exists := entry.taken[key]; exists {
		return "", ErrSlotTaken
	}
	entry.taken[key] = struct{}{}
	return key, nil
}

func (l *DefaultSlotLedger) Release(doctorID, dayKey, timeLabel string) error {
	entry := l.doctor(doctorID)
	key := SlotKey(doctorID, dayKey, timeLabel)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if _, exists := entry.taken[key]; !exists {
		return ErrSlotNotFound
	}
	delete(entry.taken, key)
	return nil
}

func (l *DefaultSlotLedger) Seed(doctorID string, booked map[string][]string) {
	l.mu.Lock()
	if _, ok := l.doctors[doctorID]; ok {
		l.mu.Unlock()
		return
	}
	entry := &doctorSlots{taken: make(map[string]struct{})}
	entry.mu.Lock() // hold until populated so a concurrent Reserve waits
	l.doctors[doctorID] = entry
	l.mu.Unlock()
	defer entry.mu.Unlock()
	for dayKey, labels := range booked {
		for _, label := range labels {
			entry.taken[SlotKey(doctorID, dayKey, label)] = struct{}{}
		}
	}
}
