package console

import (
	"context"
	"sync"

	"github.com/b2b-console/orgconsole/model"
	"github.com/pkg/errors"
)

// ListController drives the organization list view: the list projection, the
// search term, the Add Organization dialog and organization deletion.
// It is safe for concurrent use.
type ListController struct {
	driver *Driver
	cache  *ListCache

	mu      sync.Mutex
	search  string
	dialog  dialogSlot
	failure *Failure
}

// NewListController returns a controller with an empty list projection
func NewListController(driver *Driver) *ListController {
	return &ListController{driver: driver, cache: &ListCache{}}
}

// Load fetches the list and replaces the projection
func (c *ListController) Load(ctx context.Context) error {
	err := c.driver.LoadList(ctx, c.cache)
	c.record(err)
	return err
}

// Snapshot returns the current list projection
func (c *ListController) Snapshot() ListSnapshot {
	return c.cache.Snapshot()
}

// SetSearchTerm changes the name filter
func (c *ListController) SetSearchTerm(term string) {
	c.mu.Lock()
	c.search = term
	c.mu.Unlock()
}

// SearchTerm returns the name filter
func (c *ListController) SearchTerm() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.search
}

// Filtered returns the cached list filtered by the search term, recomputed on every call
func (c *ListController) Filtered() []model.OrgSummary {
	return FilterByName(c.cache.Snapshot().Organizations, c.SearchTerm())
}

// OpenAddOrganization opens the Add Organization dialog with an empty buffer
func (c *ListController) OpenAddOrganization() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dialog.open(&AddOrganizationDialog{})
}

// Dialog returns a copy of the open dialog, or nil
func (c *ListController) Dialog() Dialog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dialog.get()
}

// SetOrgInput sets one field of the Add Organization buffer.
// Accepted fields are org_name, org_slug, org_mail and org_contact.
func (c *ListController) SetOrgInput(field Field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.dialog.edit(func(d Dialog) error {
		add, ok := d.(*AddOrganizationDialog)
		if !ok {
			return ErrDialogMismatch
		}
		switch field {
		case FieldName:
			add.Name = value
		case FieldSlug:
			add.Slug = value
		case FieldMail:
			add.Mail = value
		case FieldContact:
			add.Contact = value
		default:
			return errors.Wrap(ErrUnknownField, string(field))
		}
		return nil
	})
}

// CancelDialog closes the dialog without a request
func (c *ListController) CancelDialog() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dialog.cancel()
}

// CommitDialog creates the buffered organization and refetches the list.
// On failure the dialog stays open with its buffer intact.
func (c *ListController) CommitDialog(ctx context.Context) error {
	c.mu.Lock()
	d, err := c.dialog.begin()
	c.mu.Unlock()
	if err != nil {
		return err
	}

	add, ok := d.(*AddOrganizationDialog)
	if !ok {
		c.settle(false, nil)
		return ErrDialogMismatch
	}

	err = c.driver.Commit(ctx, Mutation{
		Op: "create organization",
		Do: func(ctx context.Context, s Store) error {
			_, err := s.CreateOrganization(ctx, model.OrganizationCreate{
				Name:    add.Name,
				Slug:    add.Slug,
				Mail:    add.Mail,
				Contact: add.Contact,
			})
			return err
		},
		List: c.cache,
	})
	return c.settle(Committed(err), err)
}

// DeleteOrganization deletes orgID and refetches the list
func (c *ListController) DeleteOrganization(ctx context.Context, orgID string) error {
	err := c.driver.Commit(ctx, Mutation{
		Op:    "delete organization",
		OrgID: orgID,
		Check: requireOrgID("delete organization", orgID),
		Do: func(ctx context.Context, s Store) error {
			return s.DeleteOrganization(ctx, orgID)
		},
		List: c.cache,
	})
	c.record(err)
	if Committed(err) {
		return nil
	}
	return err
}

// LastFailure returns the failure of the most recent operation, or nil
func (c *ListController) LastFailure() *Failure {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failure
}

// DismissFailure clears LastFailure
func (c *ListController) DismissFailure() {
	c.mu.Lock()
	c.failure = nil
	c.mu.Unlock()
}

func (c *ListController) settle(committed bool, err error) error {
	c.mu.Lock()
	c.dialog.settle(committed)
	c.recordLocked(err)
	c.mu.Unlock()
	if committed {
		return nil
	}
	return err
}

func (c *ListController) record(err error) {
	c.mu.Lock()
	c.recordLocked(err)
	c.mu.Unlock()
}

func (c *ListController) recordLocked(err error) {
	c.failure = asFailure(err)
}

// asFailure returns the *Failure in err's chain, or nil
func asFailure(err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return nil
}

func requireOrgID(op, orgID string) func() error {
	return func() error {
		if orgID == "" {
			return preconditionf(op, "", "", "org_id is unknown")
		}
		return nil
	}
}
