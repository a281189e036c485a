// Package console holds the client-side state of the organization admin console:
// the list and detail projections, the edit draft, the dialog workflows and the
// driver that keeps them consistent with the remote store by refetching after
// every mutation.
package console

import (
	"context"

	"github.com/b2b-console/orgconsole/model"
	"github.com/pkg/errors"
)

// ErrNotFound is matched by a Store error when the organization does not exist
var ErrNotFound = errors.New("organization not found")

// Store is the remote organization store. Only the Driver calls it.
//
// Any failed call, whether the transport failed or the store answered with a
// non-success status, is reported as a single error value. GetOrganization
// errors match ErrNotFound when the organization does not exist.
type Store interface {
	ListOrganizations(ctx context.Context) ([]model.OrgSummary, error)
	GetOrganization(ctx context.Context, orgID string) (*model.Organization, error)
	CreateOrganization(ctx context.Context, in model.OrganizationCreate) (string, error)
	UpdateOrganization(ctx context.Context, orgID string, doc model.OrganizationUpdate) error
	UpdateOrganizationStatus(ctx context.Context, orgID string, status model.Status) error
	DeleteOrganization(ctx context.Context, orgID string) error
	CreateUser(ctx context.Context, orgID string, in model.UserInput) (string, error)
	UpdateUser(ctx context.Context, orgID, userID string, in model.UserInput) error
	DeleteUser(ctx context.Context, orgID, userID string) error
}
