package sim

import "sort"

// OutEntry is a passenger parked outside the building until Tick.
type OutEntry struct {
	Tick      int
	Seq       uint64 // insertion order among entries with the same Tick
	Passenger Passenger
}

// OutQueue is the delayed re-entry queue: a multi-valued queue ordered by
// re-entry tick, then by insertion sequence. It is kept as a sorted slice so
// that ordered scans and cloning are plain slice operations.
type OutQueue struct {
	entries []OutEntry
	nextSeq uint64
}

// Len returns the number of parked passengers.
func (q *OutQueue) Len() int {
	return len(q.entries)
}

// Push parks p until tick. Entries with equal ticks keep insertion order.
func (q *OutQueue) Push(tick int, p Passenger) {
	q.nextSeq++
	i := sort.Search(len(q.entries), func(i int) bool { return q.entries[i].Tick > tick })
	q.entries = append(q.entries, OutEntry{})
	copy(q.entries[i+1:], q.entries[i:])
	q.entries[i] = OutEntry{Tick: tick, Seq: q.nextSeq, Passenger: p}
}

// PeekTick returns the earliest re-entry tick.
func (q *OutQueue) PeekTick() (int, bool) {
	if len(q.entries) == 0 {
		return 0, false
	}
	return q.entries[0].Tick, true
}

// PopDue removes and returns the earliest entry if its tick is strictly before tick.
func (q *OutQueue) PopDue(tick int) (OutEntry, bool) {
	if len(q.entries) == 0 || q.entries[0].Tick >= tick {
		return OutEntry{}, false
	}
	e := q.entries[0]
	q.entries = q.entries[1:]
	return e, true
}

// Due returns the entries with a re-entry tick at or before limit, in queue
// order. The returned slice aliases the queue and must not be modified.
func (q *OutQueue) Due(limit int) []OutEntry {
	n := sort.Search(len(q.entries), func(i int) bool { return q.entries[i].Tick > limit })
	return q.entries[:n]
}

// Entries returns every parked passenger in queue order. The returned slice
// aliases the queue and must not be modified.
func (q *OutQueue) Entries() []OutEntry {
	return q.entries
}

// Find returns the entry holding passenger id.
func (q *OutQueue) Find(id int) (OutEntry, bool) {
	for _, e := range q.entries {
		if e.Passenger.ID == id {
			return e, true
		}
	}
	return OutEntry{}, false
}

// Remove takes passenger id out of the queue.
func (q *OutQueue) Remove(id int) (Passenger, bool) {
	for i, e := range q.entries {
		if e.Passenger.ID == id {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return e.Passenger, true
		}
	}
	return Passenger{}, false
}

// Clone returns an independent copy of the queue.
func (q *OutQueue) Clone() OutQueue {
	out := OutQueue{nextSeq: q.nextSeq}
	if len(q.entries) > 0 {
		out.entries = make([]OutEntry, len(q.entries))
		copy(out.entries, q.entries)
	}
	return out
}
