package services

import (
	"context"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/arangodb/go-driver/v2/arangodb/shared"
	"github.com/b2b-console/orgconsole/database"
	"github.com/b2b-console/orgconsole/model"
	"github.com/pkg/errors"
)

// orgWithUsers projects an organisation document into the wire shape, users included
const orgWithUsers = `
	LET users = (
		FOR u IN user
			FILTER u.org_id == o._key
			RETURN UNSET(u, "_key", "_id", "_rev")
	)
	RETURN MERGE(UNSET(o, "_key", "_id", "_rev"), { users: users })
`

// listOrganizations orders by creation time, org_id breaking ties like the memory store
const listOrganizations = `FOR o IN organisation SORT DATE_TIMESTAMP(o.created_date), o._key` + orgWithUsers

// ArangoStore implements OrgStore on top of ArangoDB
type ArangoStore struct {
	DB database.DBConnection
}

// NewArangoStore wraps an initialized database connection
func NewArangoStore(db database.DBConnection) *ArangoStore {
	return &ArangoStore{DB: db}
}

// ListOrganizations returns every organization in creation order
func (s *ArangoStore) ListOrganizations(ctx context.Context) ([]model.Organization, error) {
	cursor, err := s.DB.Database.Query(ctx, listOrganizations, nil)
	if err != nil {
		return nil, errors.Wrap(err, "list organizations")
	}
	defer cursor.Close()

	orgs := []model.Organization{}
	for cursor.HasMore() {
		var org model.Organization
		if _, err := cursor.ReadDocument(ctx, &org); err != nil {
			return nil, errors.Wrap(err, "read organization")
		}
		sortUsers(org.Users)
		orgs = append(orgs, org)
	}
	return orgs, nil
}

// GetOrganization returns one organization with its users
func (s *ArangoStore) GetOrganization(ctx context.Context, orgID string) (*model.Organization, error) {
	query := `FOR o IN organisation FILTER o._key == @key` + orgWithUsers

	cursor, err := s.DB.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"key": orgID},
	})
	if err != nil {
		return nil, errors.Wrap(err, "get organization")
	}
	defer cursor.Close()

	if !cursor.HasMore() {
		return nil, ErrOrgNotFound
	}
	var org model.Organization
	if _, err := cursor.ReadDocument(ctx, &org); err != nil {
		return nil, errors.Wrap(err, "read organization")
	}
	sortUsers(org.Users)
	return &org, nil
}

// CreateOrganization inserts a new organization keyed by its org_id
func (s *ArangoStore) CreateOrganization(ctx context.Context, org *model.Organization) error {
	query := `INSERT MERGE(UNSET(@org, "users"), @overrides) INTO organisation`

	_, err := s.DB.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"org": org, "overrides": orgOverrides(org)},
	})
	if shared.IsConflict(err) {
		return ErrConflict
	}
	return errors.Wrap(err, "create organization")
}

// UpdateOrganization applies the set fields of update and replaces the stored document
func (s *ArangoStore) UpdateOrganization(ctx context.Context, orgID string, update model.OrganizationUpdate) (*model.Organization, error) {
	org, err := s.GetOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	update.Apply(org)

	query := `REPLACE @key WITH MERGE(UNSET(@org, "users"), @overrides) IN organisation`
	_, err = s.DB.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"key": orgID, "org": org, "overrides": orgOverrides(org)},
	})
	if shared.IsConflict(err) {
		return nil, ErrConflict
	}
	if shared.IsNotFound(err) {
		return nil, ErrOrgNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "update organization")
	}
	return org, nil
}

// DeleteOrganization removes the organization and cascades to its users
func (s *ArangoStore) DeleteOrganization(ctx context.Context, orgID string) (*model.Organization, error) {
	org, err := s.GetOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}

	bindVars := map[string]interface{}{"key": orgID}
	if _, err := s.DB.Database.Query(ctx, `FOR u IN user FILTER u.org_id == @key REMOVE u IN user`, &arangodb.QueryOptions{BindVars: bindVars}); err != nil {
		return nil, errors.Wrap(err, "delete organization users")
	}
	if _, err := s.DB.Database.Query(ctx, `REMOVE @key IN organisation`, &arangodb.QueryOptions{BindVars: bindVars}); err != nil {
		if shared.IsNotFound(err) {
			return nil, ErrOrgNotFound
		}
		return nil, errors.Wrap(err, "delete organization")
	}
	return org, nil
}

// CreateUser inserts a user under an existing organization
func (s *ArangoStore) CreateUser(ctx context.Context, user *model.User) error {
	query := `
		LET org = DOCUMENT("organisation", @org_id)
		FILTER org != null
		INSERT MERGE(@user, { _key: @user.user_id }) INTO user
		RETURN NEW._key
	`
	cursor, err := s.DB.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"org_id": user.OrgID, "user": user},
	})
	if err != nil {
		return errors.Wrap(err, "create user")
	}
	defer cursor.Close()

	if !cursor.HasMore() {
		return ErrOrgNotFound
	}
	return nil
}

// UpdateUser changes the name and role of a user scoped to orgID
func (s *ArangoStore) UpdateUser(ctx context.Context, orgID, userID string, in model.UserInput) (*model.User, error) {
	query := `
		FOR u IN user
			FILTER u._key == @user_id AND u.org_id == @org_id
			UPDATE u WITH { user_name: @name, user_role: @role, updated_date: @now } IN user
			RETURN UNSET(NEW, "_key", "_id", "_rev")
	`
	return s.readUser(ctx, query, map[string]interface{}{
		"user_id": userID,
		"org_id":  orgID,
		"name":    in.Name,
		"role":    in.Role,
		"now":     time.Now().UTC(),
	})
}

// DeleteUser removes a user scoped to orgID
func (s *ArangoStore) DeleteUser(ctx context.Context, orgID, userID string) (*model.User, error) {
	query := `
		FOR u IN user
			FILTER u._key == @user_id AND u.org_id == @org_id
			REMOVE u IN user
			RETURN UNSET(OLD, "_key", "_id", "_rev")
	`
	return s.readUser(ctx, query, map[string]interface{}{
		"user_id": userID,
		"org_id":  orgID,
	})
}

func (s *ArangoStore) readUser(ctx context.Context, query string, bindVars map[string]interface{}) (*model.User, error) {
	cursor, err := s.DB.Database.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	if err != nil {
		return nil, errors.Wrap(err, "user query")
	}
	defer cursor.Close()

	if !cursor.HasMore() {
		return nil, ErrUserNotFound
	}
	var user model.User
	if _, err := cursor.ReadDocument(ctx, &user); err != nil {
		return nil, errors.Wrap(err, "read user")
	}
	return &user, nil
}

// orgOverrides are merged over the wire shape of org before it is stored.
// An empty slug is stored as null so the sparse org_slug_unique index skips it.
func orgOverrides(org *model.Organization) map[string]interface{} {
	var slug interface{}
	if org.Slug != "" {
		slug = org.Slug
	}
	return map[string]interface{}{"_key": org.OrgID, "org_slug": slug}
}

var _ OrgStore = (*ArangoStore)(nil)
