package console

import (
	"context"
	"strings"
	"sync"

	"github.com/b2b-console/orgconsole/model"
	"github.com/pkg/errors"
)

// DetailController drives the view of one organization: its projection, the
// edit draft, the Add User, Edit User and Change Status dialogs and user
// deletion. The loaded organization is owned by the controller instance.
// It is safe for concurrent use.
type DetailController struct {
	driver *Driver
	orgID  string
	cache  *DetailCache

	mu      sync.Mutex
	draft   DraftEditor
	saving  bool
	dialog  dialogSlot
	failure *Failure
}

// NewDetailController returns a controller for orgID with an empty projection
func NewDetailController(driver *Driver, orgID string) *DetailController {
	return &DetailController{
		driver: driver,
		orgID:  orgID,
		cache:  NewDetailCache(orgID),
	}
}

// OrgID returns the organization this view is bound to
func (c *DetailController) OrgID() string {
	return c.orgID
}

// Load fetches the organization and replaces the projection
func (c *DetailController) Load(ctx context.Context) error {
	err := c.driver.LoadDetail(ctx, c.cache)
	c.record(err)
	return err
}

// Snapshot returns the current projection
func (c *DetailController) Snapshot() DetailSnapshot {
	return c.cache.Snapshot()
}

//
// Draft editor
//

// EnterEdit snapshots the cached organization into a draft. It returns false
// and changes nothing when no organization is cached or a draft already exists.
func (c *DetailController) EnterEdit() bool {
	org := c.cache.organization()

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.Enter(org)
}

// Editing reports whether edit mode is on
func (c *DetailController) Editing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.Editing()
}

// Draft returns a copy of the draft, or nil when not editing
func (c *DetailController) Draft() *model.Organization {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.Draft()
}

// SetField changes one draft field. Outside edit mode every field is read-only.
func (c *DetailController) SetField(field Field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.saving {
		return ErrCommitPending
	}
	return c.draft.Set(field, value)
}

// CancelEdit discards the draft; the cached organization is untouched
func (c *DetailController) CancelEdit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.draft.Editing() {
		return ErrNotEditing
	}
	if c.saving {
		return ErrCommitPending
	}
	c.draft.Discard()
	return nil
}

// SaveEdit submits the draft as the full editable document and refetches the
// organization. The draft is discarded only after the refetch has settled; on
// a failed update edit mode stays on with the draft unchanged.
func (c *DetailController) SaveEdit(ctx context.Context) error {
	c.mu.Lock()
	if !c.draft.Editing() {
		c.mu.Unlock()
		return ErrNotEditing
	}
	if c.saving {
		c.mu.Unlock()
		return ErrCommitPending
	}
	c.saving = true
	doc := c.draft.Draft().Update()
	c.mu.Unlock()

	err := c.driver.Commit(ctx, Mutation{
		Op:    "update organization",
		OrgID: c.orgID,
		Check: requireOrgID("update organization", c.orgID),
		Do: func(ctx context.Context, s Store) error {
			return s.UpdateOrganization(ctx, c.orgID, doc)
		},
		Detail: c.cache,
	})

	committed := Committed(err)
	c.mu.Lock()
	c.saving = false
	if committed {
		c.draft.Discard()
	}
	c.recordLocked(err)
	c.mu.Unlock()

	if committed {
		return nil
	}
	return err
}

//
// Dialogs
//

// OpenAddUser opens the Add User dialog scoped to this organization with an empty buffer
func (c *DetailController) OpenAddUser() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dialog.open(&AddUserDialog{OrgID: c.orgID})
}

// OpenEditUser opens the Edit User dialog pre-filled from the cached user.
// Opening it for another user replaces the target and the buffer.
func (c *DetailController) OpenEditUser(userID string) error {
	org := c.cache.organization()
	var user model.User
	found := false
	if org != nil {
		user, found = org.FindUser(userID)
	}
	if !found {
		return c.preconditionFailure(preconditionf("edit user", c.orgID, userID, "user is not in the loaded organization"))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dialog.open(&EditUserDialog{
		OrgID:  c.orgID,
		UserID: user.UserID,
		Name:   user.Name,
		Role:   user.Role,
	})
}

// OpenChangeStatus opens the Change Status dialog pre-filled with the cached status
func (c *DetailController) OpenChangeStatus() error {
	org := c.cache.organization()
	if org == nil {
		return c.preconditionFailure(preconditionf("change status", c.orgID, "", "organization is not loaded"))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dialog.open(&ChangeStatusDialog{OrgID: c.orgID, Status: org.Status})
}

// Dialog returns a copy of the open dialog, or nil
func (c *DetailController) Dialog() Dialog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dialog.get()
}

// SetUserName sets the name in the Add User or Edit User buffer
func (c *DetailController) SetUserName(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.dialog.edit(func(d Dialog) error {
		switch d := d.(type) {
		case *AddUserDialog:
			d.Name = name
		case *EditUserDialog:
			d.Name = name
		default:
			return ErrDialogMismatch
		}
		return nil
	})
}

// SetUserRole sets the role in the Add User or Edit User buffer
func (c *DetailController) SetUserRole(role string) error {
	r, err := model.ParseRole(strings.TrimSpace(role))
	if err != nil {
		return errors.Wrap(ErrInvalidValue, err.Error())
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.dialog.edit(func(d Dialog) error {
		switch d := d.(type) {
		case *AddUserDialog:
			d.Role = r
		case *EditUserDialog:
			d.Role = r
		default:
			return ErrDialogMismatch
		}
		return nil
	})
}

// SetTargetStatus sets the status in the Change Status buffer
func (c *DetailController) SetTargetStatus(status string) error {
	s, err := model.ParseStatus(strings.TrimSpace(status))
	if err != nil {
		return errors.Wrap(ErrInvalidValue, err.Error())
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.dialog.edit(func(d Dialog) error {
		cs, ok := d.(*ChangeStatusDialog)
		if !ok {
			return ErrDialogMismatch
		}
		cs.Status = s
		return nil
	})
}

// CancelDialog closes the open dialog without a request
func (c *DetailController) CancelDialog() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dialog.cancel()
}

// CommitDialog issues the mutation of the open dialog and refetches the
// organization. On failure the dialog stays open with its buffer intact.
func (c *DetailController) CommitDialog(ctx context.Context) error {
	c.mu.Lock()
	d, err := c.dialog.begin()
	c.mu.Unlock()
	if err != nil {
		return err
	}

	var m Mutation
	switch d := d.(type) {
	case *AddUserDialog:
		in := model.UserInput{Name: d.Name, Role: d.Role}
		m = Mutation{
			Op:    "create user",
			OrgID: d.OrgID,
			Check: requireOrgID("create user", d.OrgID),
			Do: func(ctx context.Context, s Store) error {
				_, err := s.CreateUser(ctx, d.OrgID, in)
				return err
			},
		}
	case *EditUserDialog:
		in := model.UserInput{Name: d.Name, Role: d.Role}
		m = Mutation{
			Op:     "update user",
			OrgID:  d.OrgID,
			UserID: d.UserID,
			Check:  c.requireUser("update user", d.OrgID, d.UserID),
			Do: func(ctx context.Context, s Store) error {
				return s.UpdateUser(ctx, d.OrgID, d.UserID, in)
			},
		}
	case *ChangeStatusDialog:
		m = Mutation{
			Op:    "update organization status",
			OrgID: d.OrgID,
			Check: c.requireLoaded("update organization status", d.OrgID),
			Do: func(ctx context.Context, s Store) error {
				return s.UpdateOrganizationStatus(ctx, d.OrgID, d.Status)
			},
		}
	default:
		c.settle(false, nil)
		return ErrDialogMismatch
	}
	m.Detail = c.cache

	err = c.driver.Commit(ctx, m)
	return c.settle(Committed(err), err)
}

// DeleteUser deletes a user of this organization and refetches it
func (c *DetailController) DeleteUser(ctx context.Context, userID string) error {
	err := c.driver.Commit(ctx, Mutation{
		Op:     "delete user",
		OrgID:  c.orgID,
		UserID: userID,
		Check:  c.requireUser("delete user", c.orgID, userID),
		Do: func(ctx context.Context, s Store) error {
			return s.DeleteUser(ctx, c.orgID, userID)
		},
		Detail: c.cache,
	})
	c.record(err)
	if Committed(err) {
		return nil
	}
	return err
}

// LastFailure returns the failure of the most recent operation, or nil
func (c *DetailController) LastFailure() *Failure {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failure
}

// DismissFailure clears LastFailure
func (c *DetailController) DismissFailure() {
	c.mu.Lock()
	c.failure = nil
	c.mu.Unlock()
}

func (c *DetailController) requireLoaded(op, orgID string) func() error {
	return func() error {
		if orgID == "" {
			return preconditionf(op, "", "", "org_id is unknown")
		}
		if c.cache.organization() == nil {
			return preconditionf(op, orgID, "", "organization is not loaded")
		}
		return nil
	}
}

func (c *DetailController) requireUser(op, orgID, userID string) func() error {
	return func() error {
		if err := c.requireLoaded(op, orgID)(); err != nil {
			return err
		}
		if userID == "" {
			return preconditionf(op, orgID, "", "user_id is unknown")
		}
		if _, ok := c.cache.organization().FindUser(userID); !ok {
			return preconditionf(op, orgID, userID, "user is not in the loaded organization")
		}
		return nil
	}
}

func (c *DetailController) preconditionFailure(f *Failure) error {
	err := c.driver.report(f)
	c.record(err)
	return err
}

func (c *DetailController) settle(committed bool, err error) error {
	c.mu.Lock()
	c.dialog.settle(committed)
	c.recordLocked(err)
	c.mu.Unlock()
	if committed {
		return nil
	}
	return err
}

func (c *DetailController) record(err error) {
	c.mu.Lock()
	c.recordLocked(err)
	c.mu.Unlock()
}

func (c *DetailController) recordLocked(err error) {
	c.failure = asFailure(err)
}
