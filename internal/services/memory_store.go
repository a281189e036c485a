package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/b2b-console/orgconsole/model"
)

type memoryStore struct {
	orgs  map[string]*model.Organization
	users map[string]*model.User
	mutex sync.RWMutex
}

// NewMemoryStore returns an OrgStore kept entirely in process memory
func NewMemoryStore() OrgStore {
	return &memoryStore{
		orgs:  make(map[string]*model.Organization),
		users: make(map[string]*model.User),
	}
}

func (s *memoryStore) ListOrganizations(_ context.Context) ([]model.Organization, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	orgs := make([]model.Organization, 0, len(s.orgs))
	for _, org := range s.orgs {
		orgs = append(orgs, *s.withUsers(org))
	}
	sort.Slice(orgs, func(i, j int) bool {
		if !orgs[i].CreatedDate.Equal(orgs[j].CreatedDate) {
			return orgs[i].CreatedDate.Before(orgs[j].CreatedDate)
		}
		return orgs[i].OrgID < orgs[j].OrgID
	})
	return orgs, nil
}

func (s *memoryStore) GetOrganization(_ context.Context, orgID string) (*model.Organization, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	org, ok := s.orgs[orgID]
	if !ok {
		return nil, ErrOrgNotFound
	}
	return s.withUsers(org), nil
}

func (s *memoryStore) CreateOrganization(_ context.Context, org *model.Organization) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.conflicts("", org.Name, org.Slug) {
		return ErrConflict
	}
	stored := org.Clone()
	stored.Users = nil
	s.orgs[org.OrgID] = stored
	return nil
}

func (s *memoryStore) UpdateOrganization(_ context.Context, orgID string, update model.OrganizationUpdate) (*model.Organization, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	org, ok := s.orgs[orgID]
	if !ok {
		return nil, ErrOrgNotFound
	}
	next := org.Clone()
	update.Apply(next)
	if s.conflicts(orgID, next.Name, next.Slug) {
		return nil, ErrConflict
	}
	s.orgs[orgID] = next
	return s.withUsers(next), nil
}

func (s *memoryStore) DeleteOrganization(_ context.Context, orgID string) (*model.Organization, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	org, ok := s.orgs[orgID]
	if !ok {
		return nil, ErrOrgNotFound
	}
	deleted := s.withUsers(org)
	for id, u := range s.users {
		if u.OrgID == orgID {
			delete(s.users, id)
		}
	}
	delete(s.orgs, orgID)
	return deleted, nil
}

func (s *memoryStore) CreateUser(_ context.Context, user *model.User) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.orgs[user.OrgID]; !ok {
		return ErrOrgNotFound
	}
	u := *user
	s.users[user.UserID] = &u
	return nil
}

func (s *memoryStore) UpdateUser(_ context.Context, orgID, userID string, in model.UserInput) (*model.User, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	u, ok := s.users[userID]
	if !ok || u.OrgID != orgID {
		return nil, ErrUserNotFound
	}
	u.Name = in.Name
	u.Role = in.Role
	u.UpdatedDate = time.Now().UTC()
	updated := *u
	return &updated, nil
}

func (s *memoryStore) DeleteUser(_ context.Context, orgID, userID string) (*model.User, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	u, ok := s.users[userID]
	if !ok || u.OrgID != orgID {
		return nil, ErrUserNotFound
	}
	delete(s.users, userID)
	return u, nil
}

// conflicts reports whether another organization already uses name or slug.
// Caller must hold the lock.
func (s *memoryStore) conflicts(selfID, name, slug string) bool {
	for id, org := range s.orgs {
		if id == selfID {
			continue
		}
		if org.Name == name || (slug != "" && org.Slug == slug) {
			return true
		}
	}
	return false
}

// withUsers returns a copy of org carrying its users in creation order.
// Caller must hold the lock.
func (s *memoryStore) withUsers(org *model.Organization) *model.Organization {
	c := org.Clone()
	c.Users = []model.User{}
	for _, u := range s.users {
		if u.OrgID == org.OrgID {
			c.Users = append(c.Users, *u)
		}
	}
	sortUsers(c.Users)
	return c
}

func sortUsers(users []model.User) {
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedDate.Equal(users[j].CreatedDate) {
			return users[i].CreatedDate.Before(users[j].CreatedDate)
		}
		return users[i].UserID < users[j].UserID
	})
}
