package console

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/b2b-console/orgconsole/model"
	"github.com/pkg/errors"
	"go.uber.org/zap/zaptest"
)

// Store operation names recorded by fakeStore
const (
	opList         = "list"
	opGet          = "get"
	opCreateOrg    = "create_org"
	opUpdateOrg    = "update_org"
	opUpdateStatus = "update_status"
	opDeleteOrg    = "delete_org"
	opCreateUser   = "create_user"
	opUpdateUser   = "update_user"
	opDeleteUser   = "delete_user"
)

type call struct {
	Op     string
	OrgID  string
	UserID string
	Body   interface{}
}

// fakeStore is an in-memory Store that records every call
type fakeStore struct {
	mu      sync.Mutex
	orgs    map[string]*model.Organization
	order   []string
	calls   []call
	fail    map[string]error
	nextID  int
	frozen  map[string]bool
	onCall  func(op string)
	created time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orgs:    map[string]*model.Organization{},
		fail:    map[string]error{},
		frozen:  map[string]bool{},
		created: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// seed adds an organization without recording a call
func (s *fakeStore) seed(orgID, name string, users ...model.User) *model.Organization {
	s.mu.Lock()
	defer s.mu.Unlock()

	org := model.NewOrganization(orgID, model.OrganizationCreate{Name: name, Slug: orgID})
	org.CreatedDate, org.UpdatedDate = s.created, s.created
	for _, u := range users {
		u.OrgID = orgID
		org.Users = append(org.Users, u)
	}
	s.orgs[orgID] = org
	s.order = append(s.order, orgID)
	return org.Clone()
}

// failNext makes the next call of op fail with err
func (s *fakeStore) failNext(op string, err error) {
	s.mu.Lock()
	s.fail[op] = err
	s.mu.Unlock()
}

// ignore makes op succeed without changing anything
func (s *fakeStore) ignore(op string) {
	s.mu.Lock()
	s.frozen[op] = true
	s.mu.Unlock()
}

func (s *fakeStore) record(c call) error {
	s.mu.Lock()
	s.calls = append(s.calls, c)
	hook := s.onCall
	err := s.fail[c.Op]
	delete(s.fail, c.Op)
	s.mu.Unlock()

	if hook != nil {
		hook(c.Op)
	}
	return err
}

func (s *fakeStore) callsOf(op string) []call {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []call
	for _, c := range s.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (s *fakeStore) ops() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.calls))
	for i, c := range s.calls {
		out[i] = c.Op
	}
	return out
}

func (s *fakeStore) ListOrganizations(_ context.Context) ([]model.OrgSummary, error) {
	if err := s.record(call{Op: opList}); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.OrgSummary{}
	for _, id := range s.order {
		if org, ok := s.orgs[id]; ok {
			out = append(out, org.Summary())
		}
	}
	return out, nil
}

func (s *fakeStore) GetOrganization(_ context.Context, orgID string) (*model.Organization, error) {
	if err := s.record(call{Op: opGet, OrgID: orgID}); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	org, ok := s.orgs[orgID]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "org %s", orgID)
	}
	return org.Clone(), nil
}

func (s *fakeStore) CreateOrganization(_ context.Context, in model.OrganizationCreate) (string, error) {
	if err := s.record(call{Op: opCreateOrg, Body: in}); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := fmt.Sprintf("org_new_%d", s.nextID)
	s.orgs[id] = model.NewOrganization(id, in)
	s.order = append(s.order, id)
	return id, nil
}

func (s *fakeStore) UpdateOrganization(_ context.Context, orgID string, doc model.OrganizationUpdate) error {
	if err := s.record(call{Op: opUpdateOrg, OrgID: orgID, Body: doc}); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	org, ok := s.orgs[orgID]
	if !ok {
		return errors.Wrapf(ErrNotFound, "org %s", orgID)
	}
	if !s.frozen[opUpdateOrg] {
		doc.Apply(org)
	}
	return nil
}

func (s *fakeStore) UpdateOrganizationStatus(_ context.Context, orgID string, status model.Status) error {
	if err := s.record(call{Op: opUpdateStatus, OrgID: orgID, Body: status}); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	org, ok := s.orgs[orgID]
	if !ok {
		return errors.Wrapf(ErrNotFound, "org %s", orgID)
	}
	if !s.frozen[opUpdateStatus] {
		org.Status = status
	}
	return nil
}

func (s *fakeStore) DeleteOrganization(_ context.Context, orgID string) error {
	if err := s.record(call{Op: opDeleteOrg, OrgID: orgID}); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orgs[orgID]; !ok {
		return errors.Wrapf(ErrNotFound, "org %s", orgID)
	}
	delete(s.orgs, orgID)
	return nil
}

func (s *fakeStore) CreateUser(_ context.Context, orgID string, in model.UserInput) (string, error) {
	if err := s.record(call{Op: opCreateUser, OrgID: orgID, Body: in}); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	org, ok := s.orgs[orgID]
	if !ok {
		return "", errors.Wrapf(ErrNotFound, "org %s", orgID)
	}
	s.nextID++
	id := fmt.Sprintf("user_new_%d", s.nextID)
	org.Users = append(org.Users, *model.NewUser(id, orgID, in))
	return id, nil
}

func (s *fakeStore) UpdateUser(_ context.Context, orgID, userID string, in model.UserInput) error {
	if err := s.record(call{Op: opUpdateUser, OrgID: orgID, UserID: userID, Body: in}); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	org, ok := s.orgs[orgID]
	if !ok {
		return errors.Wrapf(ErrNotFound, "org %s", orgID)
	}
	for i := range org.Users {
		if org.Users[i].UserID == userID {
			org.Users[i].Name = in.Name
			org.Users[i].Role = in.Role
			return nil
		}
	}
	return errors.New("user not found")
}

func (s *fakeStore) DeleteUser(_ context.Context, orgID, userID string) error {
	if err := s.record(call{Op: opDeleteUser, OrgID: orgID, UserID: userID}); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	org, ok := s.orgs[orgID]
	if !ok {
		return errors.Wrapf(ErrNotFound, "org %s", orgID)
	}
	for i := range org.Users {
		if org.Users[i].UserID == userID {
			org.Users = append(org.Users[:i], org.Users[i+1:]...)
			return nil
		}
	}
	return errors.New("user not found")
}

var _ Store = (*fakeStore)(nil)

// failureLog collects reported failures
type failureLog struct {
	mu       sync.Mutex
	failures []*Failure
}

func (l *failureLog) Report(f *Failure) {
	l.mu.Lock()
	l.failures = append(l.failures, f)
	l.mu.Unlock()
}

func (l *failureLog) kinds() []FailureKind {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]FailureKind, len(l.failures))
	for i, f := range l.failures {
		out[i] = f.Kind
	}
	return out
}

func newTestConsole(t *testing.T, store Store) (*Console, *failureLog) {
	t.Helper()
	log := &failureLog{}
	return New(store, WithLogger(zaptest.NewLogger(t)), WithReporter(log)), log
}

var errBoom = errors.New("connection refused")
