package console

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Driver is the only component that talks to the Store and the only writer of
// the caches. Every write goes through Commit.
type Driver struct {
	store    Store
	reporter Reporter
	logger   *zap.Logger
}

// NewDriver returns a Driver for store
func NewDriver(store Store, opts ...Option) *Driver {
	o := newOptions(opts)
	return &Driver{
		store:    store,
		reporter: o.reporter,
		logger:   o.logger,
	}
}

// Mutation describes one write and the projection it invalidates
type Mutation struct {
	Op     string
	OrgID  string
	UserID string

	// Check runs before any request is issued; a non-nil result aborts the commit
	Check func() error
	// Do issues exactly one store call
	Do func(ctx context.Context, s Store) error

	// List or Detail (or both) are refetched after the mutation succeeds
	List   *ListCache
	Detail *DetailCache
}

// LoadList fetches the organization list and replaces the cache wholesale.
// On failure the previous list stays in place.
func (d *Driver) LoadList(ctx context.Context, cache *ListCache) error {
	cache.fetch.Lock()
	defer cache.fetch.Unlock()

	epoch := cache.beginLoad()
	start := time.Now()
	orgs, err := d.store.ListOrganizations(ctx)
	if err != nil {
		cache.fail(err)
		return d.report(&Failure{Kind: FailureLoad, Op: "list organizations", Err: err})
	}
	cache.replace(orgs, epoch)

	d.logger.Debug("organization list loaded", zap.Int("count", len(orgs)), zap.Duration("took", time.Since(start)))
	return nil
}

// LoadDetail fetches the organization the cache is bound to and replaces the cache wholesale.
// At most one fetch per cache is in flight; a second call waits for the first to settle.
func (d *Driver) LoadDetail(ctx context.Context, cache *DetailCache) error {
	orgID := cache.OrgID()
	if orgID == "" {
		return d.report(preconditionf("get organization", "", "", "org_id is unknown"))
	}

	cache.fetch.Lock()
	defer cache.fetch.Unlock()

	epoch := cache.beginLoad()
	start := time.Now()
	org, err := d.store.GetOrganization(ctx, orgID)
	if err == nil && org == nil {
		err = errors.Wrap(ErrNotFound, "empty response")
	}
	if err != nil {
		cache.fail(err)
		return d.report(&Failure{Kind: FailureLoad, Op: "get organization", OrgID: orgID, Err: err})
	}
	cache.replace(org, epoch)

	d.logger.Debug("organization loaded", zap.String("org_id", orgID), zap.Int("users", len(org.Users)), zap.Duration("took", time.Since(start)))
	return nil
}

// Commit runs the refetch-after-mutation protocol:
//
//  1. m.Check; a failure aborts without a request
//  2. exactly one store call through m.Do
//  3. on failure the caches are left untouched
//  4. on success the affected projections are marked stale and refetched wholesale
//
// The response of the mutation itself is never merged into a cache. A load
// failure returned from Commit means the mutation was applied but the refetch
// failed; Committed reports true for it and the projection stays stale.
func (d *Driver) Commit(ctx context.Context, m Mutation) error {
	if m.Check != nil {
		if err := m.Check(); err != nil {
			var f *Failure
			if !errors.As(err, &f) {
				f = &Failure{Kind: FailurePrecondition, Op: m.Op, OrgID: m.OrgID, UserID: m.UserID, Err: err}
			}
			return d.report(f)
		}
	}

	if err := m.Do(ctx, d.store); err != nil {
		return d.report(&Failure{Kind: FailureMutation, Op: m.Op, OrgID: m.OrgID, UserID: m.UserID, Err: err})
	}
	d.logger.Info("mutation committed", zap.String("op", m.Op), zap.String("org_id", m.OrgID), zap.String("user_id", m.UserID))

	if m.List != nil {
		m.List.invalidate()
	}
	if m.Detail != nil {
		m.Detail.invalidate()
	}

	var refetchErr error
	if m.List != nil {
		if err := d.LoadList(ctx, m.List); err != nil {
			refetchErr = err
		}
	}
	if m.Detail != nil {
		if err := d.LoadDetail(ctx, m.Detail); err != nil && refetchErr == nil {
			refetchErr = err
		}
	}
	return refetchErr
}

func (d *Driver) report(f *Failure) error {
	d.reporter.Report(f)
	return f
}
