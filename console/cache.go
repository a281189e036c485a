package console

import (
	"sync"

	"github.com/b2b-console/orgconsole/model"
	"github.com/pkg/errors"
)

// LoadState is the outcome of the most recent fetch of a projection
type LoadState int

// Load states
const (
	StateNotLoaded LoadState = iota
	StateLoading
	StateReady
	StateNotFound
	StateFailed
)

func (s LoadState) String() string {
	switch s {
	case StateNotLoaded:
		return "not loaded"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateNotFound:
		return "not found"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// projection is the bookkeeping shared by the list and detail caches.
// fetch serializes fetch+replace; mu guards the fields.
// epoch counts invalidations; a fetch only clears stale when no mutation
// committed after it started.
type projection struct {
	fetch   sync.Mutex
	mu      sync.RWMutex
	state   LoadState
	loaded  bool
	stale   bool
	err     error
	version uint64
	epoch   uint64
}

// beginLoad marks the projection loading and returns the epoch the fetch reads at
func (p *projection) beginLoad() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = StateLoading
	return p.epoch
}

// invalidate marks the projection stale after a committed mutation
func (p *projection) invalidate() {
	p.mu.Lock()
	p.stale = true
	p.epoch++
	p.mu.Unlock()
}

// failLocked records a load failure; the previous value stays in place. Caller holds mu.
func (p *projection) failLocked(err error) {
	p.err = err
	p.state = StateFailed
	if errors.Is(err, ErrNotFound) {
		p.state = StateNotFound
	}
}

// replacedLocked records a successful fetch started at epoch. Caller holds mu.
func (p *projection) replacedLocked(epoch uint64) {
	p.err = nil
	p.state = StateReady
	p.loaded = true
	if epoch == p.epoch {
		p.stale = false
	}
	p.version++
}

// ListCache holds the projection of the organization list
type ListCache struct {
	projection
	orgs []model.OrgSummary
}

// ListSnapshot is a copy of the list projection at one point in time
type ListSnapshot struct {
	Organizations []model.OrgSummary
	State         LoadState
	// Loaded is true once any fetch succeeded; Organizations is the last good value
	Loaded  bool
	Stale   bool
	Err     error
	Version uint64
}

// Snapshot returns a copy of the cached list and its load state
func (c *ListCache) Snapshot() ListSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var orgs []model.OrgSummary
	if c.orgs != nil {
		orgs = make([]model.OrgSummary, len(c.orgs))
		copy(orgs, c.orgs)
	}
	return ListSnapshot{
		Organizations: orgs,
		State:         c.state,
		Loaded:        c.loaded,
		Stale:         c.stale,
		Err:           c.err,
		Version:       c.version,
	}
}

func (c *ListCache) replace(orgs []model.OrgSummary, epoch uint64) {
	next := make([]model.OrgSummary, len(orgs))
	copy(next, orgs)

	c.mu.Lock()
	c.orgs = next
	c.replacedLocked(epoch)
	c.mu.Unlock()
}

func (c *ListCache) fail(err error) {
	c.mu.Lock()
	c.failLocked(err)
	c.mu.Unlock()
}

// DetailCache holds the projection of one organization and its users
type DetailCache struct {
	projection
	orgID string
	org   *model.Organization
}

// NewDetailCache returns an empty cache for the organization orgID
func NewDetailCache(orgID string) *DetailCache {
	return &DetailCache{orgID: orgID}
}

// OrgID returns the organization this cache is bound to
func (c *DetailCache) OrgID() string {
	return c.orgID
}

// DetailSnapshot is a copy of the detail projection at one point in time
type DetailSnapshot struct {
	OrgID string
	// Organization is the last good value, nil until the first successful fetch
	Organization *model.Organization
	State        LoadState
	Stale        bool
	Err          error
	Version      uint64
}

// Snapshot returns a deep copy of the cached organization and its load state
func (c *DetailCache) Snapshot() DetailSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return DetailSnapshot{
		OrgID:        c.orgID,
		Organization: c.org.Clone(),
		State:        c.state,
		Stale:        c.stale,
		Err:          c.err,
		Version:      c.version,
	}
}

// organization returns a deep copy of the cached organization, or nil
func (c *DetailCache) organization() *model.Organization {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.org.Clone()
}

func (c *DetailCache) replace(org *model.Organization, epoch uint64) {
	next := org.Clone()
	if next.Users == nil {
		next.Users = []model.User{}
	}

	c.mu.Lock()
	c.org = next
	c.replacedLocked(epoch)
	c.mu.Unlock()
}

func (c *DetailCache) fail(err error) {
	c.mu.Lock()
	c.failLocked(err)
	c.mu.Unlock()
}
