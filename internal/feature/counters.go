package feature

import (
	"sort"
	"sync"

	"logmon/internal/parser"
	"logmon/internal/types"
)

// RunCounters holds the counts of a single run. It is owned by the scanning
// routine and needs no locking.
type RunCounters struct {
	FailedLogins int64
	Errors       int64
	Criticals    int64
	Addresses    map[string]int64
}

// NewRunCounters creates an empty counter set
func NewRunCounters() *RunCounters {
	return &RunCounters{Addresses: make(map[string]int64)}
}

// Add records one classified line
func (r *RunCounters) Add(cl parser.Classification) {
	if cl.FailedLogin {
		r.FailedLogins++
		if cl.Address != "" {
			r.Addresses[cl.Address]++
		}
	}
	if cl.Error {
		r.Errors++
	}
	if cl.Critical {
		r.Criticals++
	}
}

// Counts returns a serializable snapshot
func (r *RunCounters) Counts() types.Counts {
	addrs := make(map[string]int64, len(r.Addresses))
	for k, v := range r.Addresses {
		addrs[k] = v
	}
	return types.Counts{
		FailedLogins: r.FailedLogins,
		Errors:       r.Errors,
		Criticals:    r.Criticals,
		Addresses:    addrs,
	}
}

// AddressCount is one entry of a sorted address listing
type AddressCount struct {
	Address string `json:"address"`
	Count   int64  `json:"count"`
}

// SortedAddresses orders addresses by count descending, then by address
// ascending so equal counts print in a stable order.
func SortedAddresses(m map[string]int64) []AddressCount {
	out := make([]AddressCount, 0, len(m))
	for addr, n := range m {
		out = append(out, AddressCount{Address: addr, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Address < out[j].Address
	})
	return out
}

// Cumulative accumulates run counters across runs. Follow mode reads it from
// the status API while runs update it, so access is serialized.
type Cumulative struct {
	mu     sync.Mutex
	totals *RunCounters
}

// NewCumulative creates an empty accumulator
func NewCumulative() *Cumulative {
	return &Cumulative{totals: NewRunCounters()}
}

// Merge adds a finished run to the totals
func (c *Cumulative) Merge(run *RunCounters) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.totals.FailedLogins += run.FailedLogins
	c.totals.Errors += run.Errors
	c.totals.Criticals += run.Criticals
	for addr, n := range run.Addresses {
		c.totals.Addresses[addr] += n
	}
}

// Snapshot returns a copy of the totals
func (c *Cumulative) Snapshot() types.Counts {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totals.Counts()
}

// ReplaceAll restores totals, e.g. from the state store
func (c *Cumulative) ReplaceAll(counts types.Counts) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.totals = NewRunCounters()
	c.totals.FailedLogins = counts.FailedLogins
	c.totals.Errors = counts.Errors
	c.totals.Criticals = counts.Criticals
	for addr, n := range counts.Addresses {
		c.totals.Addresses[addr] = n
	}
}

// TopAddresses returns at most limit addresses ordered like SortedAddresses
func (c *Cumulative) TopAddresses(limit int) []AddressCount {
	c.mu.Lock()
	sorted := SortedAddresses(c.totals.Addresses)
	c.mu.Unlock()

	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
