package console

import (
	"strconv"
	"strings"

	"github.com/b2b-console/orgconsole/model"
	"github.com/pkg/errors"
)

// Field names an organization field by its wire name
type Field string

// Organization fields
const (
	FieldOrgID            Field = "org_id"
	FieldName             Field = "org_name"
	FieldMail             Field = "org_mail"
	FieldContact          Field = "org_contact"
	FieldSlug             Field = "org_slug"
	FieldStatus           Field = "status"
	FieldPendingRequests  Field = "pending_requests"
	FieldPrimaryAdminName Field = "primary_admin_name"
	FieldPrimaryAdminMail Field = "primary_admin_mail"
	FieldSupportEmail     Field = "support_email"
	FieldPhone            Field = "phone"
	FieldAltPhone         Field = "alt_phone"
	FieldMaxCoordinators  Field = "max_coordinators"
	FieldTimezoneCommon   Field = "timezone_common"
	FieldTimezoneRegion   Field = "timezone_region"
	FieldLanguage         Field = "language"
	FieldWebsiteURL       Field = "website_url"
	FieldCreatedDate      Field = "created_date"
	FieldUpdatedDate      Field = "updated_date"
	FieldUsers            Field = "users"
)

type fieldSetter func(o *model.Organization, value string) error

func stringField(get func(o *model.Organization) *string) fieldSetter {
	return func(o *model.Organization, value string) error {
		*get(o) = value
		return nil
	}
}

var editableFields = map[Field]fieldSetter{
	FieldName:             stringField(func(o *model.Organization) *string { return &o.Name }),
	FieldMail:             stringField(func(o *model.Organization) *string { return &o.Mail }),
	FieldContact:          stringField(func(o *model.Organization) *string { return &o.Contact }),
	FieldSlug:             stringField(func(o *model.Organization) *string { return &o.Slug }),
	FieldPrimaryAdminName: stringField(func(o *model.Organization) *string { return &o.PrimaryAdminName }),
	FieldPrimaryAdminMail: stringField(func(o *model.Organization) *string { return &o.PrimaryAdminMail }),
	FieldSupportEmail:     stringField(func(o *model.Organization) *string { return &o.SupportEmail }),
	FieldPhone:            stringField(func(o *model.Organization) *string { return &o.Phone }),
	FieldAltPhone:         stringField(func(o *model.Organization) *string { return &o.AltPhone }),
	FieldTimezoneCommon:   stringField(func(o *model.Organization) *string { return &o.TimezoneCommon }),
	FieldTimezoneRegion:   stringField(func(o *model.Organization) *string { return &o.TimezoneRegion }),
	FieldLanguage:         stringField(func(o *model.Organization) *string { return &o.Language }),
	FieldWebsiteURL:       stringField(func(o *model.Organization) *string { return &o.WebsiteURL }),
	FieldMaxCoordinators: func(o *model.Organization, value string) error {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 0 {
			return errors.Wrapf(ErrInvalidValue, "%s must be a non-negative integer, got %q", FieldMaxCoordinators, value)
		}
		o.MaxCoordinators = n
		return nil
	},
}

// Identity, workflow-owned and server-computed fields
var readOnlyFields = map[Field]bool{
	FieldOrgID:           true,
	FieldStatus:          true,
	FieldPendingRequests: true,
	FieldCreatedDate:     true,
	FieldUpdatedDate:     true,
	FieldUsers:           true,
}

// EditableFields lists the fields the draft accepts, in form order
var EditableFields = []Field{
	FieldName, FieldSlug, FieldMail, FieldContact,
	FieldPrimaryAdminName, FieldPrimaryAdminMail, FieldSupportEmail,
	FieldPhone, FieldAltPhone, FieldMaxCoordinators,
	FieldTimezoneCommon, FieldTimezoneRegion, FieldLanguage, FieldWebsiteURL,
}

// DraftEditor holds the working copy of an organization while edit mode is on.
// The zero value is in viewing mode. It is not safe for concurrent use.
type DraftEditor struct {
	draft *model.Organization
}

// Editing reports whether a draft exists
func (e *DraftEditor) Editing() bool {
	return e.draft != nil
}

// Enter snapshots org into a new draft. It does nothing and returns false when
// org is nil or a draft already exists.
func (e *DraftEditor) Enter(org *model.Organization) bool {
	if org == nil || e.draft != nil {
		return false
	}
	e.draft = org.Clone()
	return true
}

// Set changes one field of the draft
func (e *DraftEditor) Set(field Field, value string) error {
	if e.draft == nil {
		return ErrNotEditing
	}
	if readOnlyFields[field] {
		return errors.Wrap(ErrReadOnlyField, string(field))
	}
	set, ok := editableFields[field]
	if !ok {
		return errors.Wrap(ErrUnknownField, string(field))
	}
	return set(e.draft, value)
}

// Draft returns a copy of the draft, or nil in viewing mode
func (e *DraftEditor) Draft() *model.Organization {
	return e.draft.Clone()
}

// Discard drops the draft and returns to viewing mode
func (e *DraftEditor) Discard() {
	e.draft = nil
}
