package console

import (
	"github.com/b2b-console/orgconsole/model"
)

// DialogKind identifies one of the modal flows
type DialogKind int

// Dialog kinds
const (
	DialogAddOrganization DialogKind = iota
	DialogAddUser
	DialogEditUser
	DialogChangeStatus
)

func (k DialogKind) String() string {
	switch k {
	case DialogAddOrganization:
		return "add organization"
	case DialogAddUser:
		return "add user"
	case DialogEditUser:
		return "edit user"
	case DialogChangeStatus:
		return "change status"
	default:
		return "unknown dialog"
	}
}

// Dialog is the open modal flow and its input buffer. A nil Dialog means no
// dialog is open. The set of implementations is closed.
type Dialog interface {
	Kind() DialogKind
	clone() Dialog
}

// AddOrganizationDialog buffers the fields of a new organization
type AddOrganizationDialog struct {
	Name    string
	Slug    string
	Mail    string
	Contact string
}

// Kind implements Dialog
func (d *AddOrganizationDialog) Kind() DialogKind { return DialogAddOrganization }

func (d *AddOrganizationDialog) clone() Dialog { c := *d; return &c }

// AddUserDialog buffers a new user of OrgID
type AddUserDialog struct {
	OrgID string
	Name  string
	Role  model.Role
}

// Kind implements Dialog
func (d *AddUserDialog) Kind() DialogKind { return DialogAddUser }

func (d *AddUserDialog) clone() Dialog { c := *d; return &c }

// EditUserDialog buffers the new name and role of the target user UserID
type EditUserDialog struct {
	OrgID  string
	UserID string
	Name   string
	Role   model.Role
}

// Kind implements Dialog
func (d *EditUserDialog) Kind() DialogKind { return DialogEditUser }

func (d *EditUserDialog) clone() Dialog { c := *d; return &c }

// ChangeStatusDialog buffers the target status of OrgID
type ChangeStatusDialog struct {
	OrgID  string
	Status model.Status
}

// Kind implements Dialog
func (d *ChangeStatusDialog) Kind() DialogKind { return DialogChangeStatus }

func (d *ChangeStatusDialog) clone() Dialog { c := *d; return &c }

// dialogSlot holds at most one open dialog and the pending flag of its commit.
// Opening replaces the current dialog and its buffer. Not safe for concurrent use.
type dialogSlot struct {
	current Dialog
	pending bool
}

func (s *dialogSlot) open(d Dialog) error {
	if s.pending {
		return ErrCommitPending
	}
	s.current = d
	return nil
}

func (s *dialogSlot) get() Dialog {
	if s.current == nil {
		return nil
	}
	return s.current.clone()
}

// edit applies fn to the open buffer
func (s *dialogSlot) edit(fn func(d Dialog) error) error {
	if s.current == nil {
		return ErrNoDialog
	}
	if s.pending {
		return ErrCommitPending
	}
	return fn(s.current)
}

func (s *dialogSlot) cancel() error {
	if s.current == nil {
		return ErrNoDialog
	}
	if s.pending {
		return ErrCommitPending
	}
	s.current = nil
	return nil
}

// begin marks the open dialog pending and returns a copy of its buffer
func (s *dialogSlot) begin() (Dialog, error) {
	if s.current == nil {
		return nil, ErrNoDialog
	}
	if s.pending {
		return nil, ErrCommitPending
	}
	s.pending = true
	return s.current.clone(), nil
}

// settle clears the pending flag and closes the dialog when the commit went through
func (s *dialogSlot) settle(committed bool) {
	s.pending = false
	if committed {
		s.current = nil
	}
}
