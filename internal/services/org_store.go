// Package services provides the persistence services behind the reference organization store.
package services

import (
	"context"
	"errors"

	"github.com/b2b-console/orgconsole/model"
)

// Store errors surfaced to the REST layer
var (
	ErrOrgNotFound  = errors.New("organization not found")
	ErrUserNotFound = errors.New("user not found in this organization")
	ErrConflict     = errors.New("organization name or slug already exists")
)

// OrgStore persists organizations and the users nested under them
type OrgStore interface {
	ListOrganizations(ctx context.Context) ([]model.Organization, error)
	GetOrganization(ctx context.Context, orgID string) (*model.Organization, error)
	CreateOrganization(ctx context.Context, org *model.Organization) error
	UpdateOrganization(ctx context.Context, orgID string, update model.OrganizationUpdate) (*model.Organization, error)
	DeleteOrganization(ctx context.Context, orgID string) (*model.Organization, error)

	CreateUser(ctx context.Context, user *model.User) error
	UpdateUser(ctx context.Context, orgID, userID string, in model.UserInput) (*model.User, error)
	DeleteUser(ctx context.Context, orgID, userID string) (*model.User, error)
}
