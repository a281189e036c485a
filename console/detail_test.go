package console

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/b2b-console/orgconsole/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddUser_Scenario(t *testing.T) {
	store := newFakeStore()
	store.seed("org_1", "Acme")
	view, _ := loadedView(t, store, "org_1")
	require.Empty(t, view.Snapshot().Organization.Users)

	require.NoError(t, view.OpenAddUser())
	require.NoError(t, view.SetUserName("A. Smith"))
	require.NoError(t, view.SetUserRole("Admin"))
	require.NoError(t, view.CommitDialog(context.Background()))

	creates := store.callsOf(opCreateUser)
	require.Len(t, creates, 1)
	assert.Equal(t, "org_1", creates[0].OrgID)
	assert.Equal(t, model.UserInput{Name: "A. Smith", Role: model.RoleAdmin}, creates[0].Body)
	assert.Equal(t, []string{opGet, opCreateUser, opGet}, store.ops())

	users := view.Snapshot().Organization.Users
	require.Len(t, users, 1)
	assert.Equal(t, "A. Smith", users[0].Name)
	assert.Equal(t, model.RoleAdmin, users[0].Role)
	assert.Nil(t, view.Dialog())
}

func TestChangeStatus_Scenario(t *testing.T) {
	store := newFakeStore()
	store.seed("org_1", "Acme")
	view, _ := loadedView(t, store, "org_1")

	require.NoError(t, view.OpenChangeStatus())
	assert.Equal(t, &ChangeStatusDialog{OrgID: "org_1", Status: model.StatusActive}, view.Dialog())

	require.NoError(t, view.SetTargetStatus("Blocked"))
	assert.Equal(t, model.StatusActive, view.Snapshot().Organization.Status, "buffer edits never touch the cache")

	require.NoError(t, view.CommitDialog(context.Background()))

	updates := store.callsOf(opUpdateStatus)
	require.Len(t, updates, 1)
	assert.Equal(t, model.StatusBlocked, updates[0].Body)
	assert.Equal(t, model.StatusBlocked, view.Snapshot().Organization.Status)
	assert.Nil(t, view.Dialog())
}

func TestChangeStatus_CacheFollowsStoreNotRequest(t *testing.T) {
	store := newFakeStore()
	store.seed("org_1", "Acme")
	store.ignore(opUpdateStatus)
	view, _ := loadedView(t, store, "org_1")

	require.NoError(t, view.OpenChangeStatus())
	require.NoError(t, view.SetTargetStatus("Inactive"))
	require.NoError(t, view.CommitDialog(context.Background()))

	assert.Equal(t, model.StatusActive, view.Snapshot().Organization.Status)
}

func TestEditUser_PrefillAndRetarget(t *testing.T) {
	store := newFakeStore()
	store.seed("org_1", "Acme",
		model.User{UserID: "u1", Name: "A. Smith", Role: model.RoleAdmin},
		model.User{UserID: "u2", Name: "B. Jones", Role: model.RoleCoordinator},
	)
	view, _ := loadedView(t, store, "org_1")

	require.NoError(t, view.OpenEditUser("u1"))
	require.NoError(t, view.SetUserName("typed but abandoned"))

	require.NoError(t, view.OpenEditUser("u2"))
	assert.Equal(t, &EditUserDialog{OrgID: "org_1", UserID: "u2", Name: "B. Jones", Role: model.RoleCoordinator}, view.Dialog())

	require.NoError(t, view.SetUserRole("Admin"))
	require.NoError(t, view.CommitDialog(context.Background()))

	updates := store.callsOf(opUpdateUser)
	require.Len(t, updates, 1)
	assert.Equal(t, "u2", updates[0].UserID)
	assert.Equal(t, model.UserInput{Name: "B. Jones", Role: model.RoleAdmin}, updates[0].Body)

	u2, ok := view.Snapshot().Organization.FindUser("u2")
	require.True(t, ok)
	assert.Equal(t, model.RoleAdmin, u2.Role)
	u1, _ := view.Snapshot().Organization.FindUser("u1")
	assert.Equal(t, "A. Smith", u1.Name)
	assert.Nil(t, view.Dialog())
}

func TestDialogs_OneAtATime(t *testing.T) {
	store := newFakeStore()
	store.seed("org_1", "Acme", model.User{UserID: "u1", Name: "A. Smith", Role: model.RoleAdmin})
	view, _ := loadedView(t, store, "org_1")

	assert.Nil(t, view.Dialog())
	assert.ErrorIs(t, view.CancelDialog(), ErrNoDialog)
	assert.ErrorIs(t, view.SetUserName("x"), ErrNoDialog)
	assert.ErrorIs(t, view.CommitDialog(context.Background()), ErrNoDialog)

	require.NoError(t, view.OpenAddUser())
	require.NoError(t, view.SetUserName("A. Smith"))
	assert.ErrorIs(t, view.SetTargetStatus("Blocked"), ErrDialogMismatch)

	require.NoError(t, view.OpenChangeStatus())
	assert.Equal(t, DialogChangeStatus, view.Dialog().Kind())
	assert.ErrorIs(t, view.SetUserName("x"), ErrDialogMismatch)

	require.NoError(t, view.OpenAddUser())
	assert.Equal(t, &AddUserDialog{OrgID: "org_1"}, view.Dialog(), "reopening starts from an empty buffer")

	assert.ErrorIs(t, view.SetUserRole("Owner"), ErrInvalidValue)
	assert.ErrorIs(t, view.SetTargetStatus("Archived"), ErrInvalidValue)

	require.NoError(t, view.CancelDialog())
	assert.Nil(t, view.Dialog())
	assert.Equal(t, []string{opGet}, store.ops(), "cancel never issues a request")
}

func TestDialog_CopyDoesNotAliasBuffer(t *testing.T) {
	store := newFakeStore()
	store.seed("org_1", "Acme")
	view, _ := loadedView(t, store, "org_1")

	require.NoError(t, view.OpenAddUser())
	d := view.Dialog().(*AddUserDialog)
	d.Name = "sneaky"
	assert.Equal(t, "", view.Dialog().(*AddUserDialog).Name)
}

func TestCommitDialog_FailureKeepsBuffer(t *testing.T) {
	store := newFakeStore()
	store.seed("org_1", "Acme")
	view, log := loadedView(t, store, "org_1")
	before := view.Snapshot()

	require.NoError(t, view.OpenAddUser())
	require.NoError(t, view.SetUserName("A. Smith"))
	require.NoError(t, view.SetUserRole("Co-ordinator"))

	store.failNext(opCreateUser, errBoom)
	err := view.CommitDialog(context.Background())
	require.Error(t, err)

	assert.Equal(t, &AddUserDialog{OrgID: "org_1", Name: "A. Smith", Role: model.RoleCoordinator}, view.Dialog())
	assert.Equal(t, before, view.Snapshot())
	assert.Len(t, store.callsOf(opGet), 1)
	assert.Equal(t, []FailureKind{FailureMutation}, log.kinds())

	require.NoError(t, view.CommitDialog(context.Background()), "retry from the intact buffer")
	assert.Len(t, view.Snapshot().Organization.Users, 1)
}

func TestCommitDialog_RejectsResubmissionWhilePending(t *testing.T) {
	store := newFakeStore()
	store.seed("org_1", "Acme")
	view, _ := loadedView(t, store, "org_1")
	require.NoError(t, view.OpenAddUser())
	require.NoError(t, view.SetUserName("A. Smith"))

	entered := make(chan struct{})
	release := make(chan struct{})
	store.onCall = func(op string) {
		if op == opCreateUser {
			close(entered)
			<-release
		}
	}

	done := make(chan error, 1)
	go func() { done <- view.CommitDialog(context.Background()) }()
	<-entered

	assert.ErrorIs(t, view.CommitDialog(context.Background()), ErrCommitPending)
	assert.ErrorIs(t, view.OpenChangeStatus(), ErrCommitPending)
	assert.ErrorIs(t, view.CancelDialog(), ErrCommitPending)
	assert.ErrorIs(t, view.SetUserName("late"), ErrCommitPending)

	close(release)
	require.NoError(t, <-done)
	assert.Len(t, store.callsOf(opCreateUser), 1)
	assert.Nil(t, view.Dialog())
}

func TestPreconditions_AbortBeforeAnyRequest(t *testing.T) {
	store := newFakeStore()
	c, log := newTestConsole(t, store)

	unknown := c.Organization("")
	require.NoError(t, unknown.OpenAddUser())
	require.NoError(t, unknown.SetUserName("A. Smith"))
	err := unknown.CommitDialog(context.Background())
	assert.ErrorIs(t, err, ErrPrecondition)
	assert.NotNil(t, unknown.Dialog(), "dialog stays open after a precondition failure")

	notLoaded := c.Organization("org_1")
	assert.ErrorIs(t, notLoaded.OpenChangeStatus(), ErrPrecondition)
	assert.ErrorIs(t, notLoaded.OpenEditUser("u1"), ErrPrecondition)
	assert.ErrorIs(t, notLoaded.DeleteUser(context.Background(), "u1"), ErrPrecondition)
	assert.ErrorIs(t, c.Organizations().DeleteOrganization(context.Background(), ""), ErrPrecondition)

	assert.Empty(t, store.ops())
	for _, k := range log.kinds() {
		assert.Equal(t, FailurePrecondition, k)
	}
	assert.Len(t, log.kinds(), 5)
	assert.Equal(t, FailurePrecondition, notLoaded.LastFailure().Kind)
}

func TestEditUser_TargetRemovedBeforeCommit(t *testing.T) {
	store := newFakeStore()
	store.seed("org_1", "Acme",
		model.User{UserID: "u1", Name: "A. Smith", Role: model.RoleAdmin},
		model.User{UserID: "u2", Name: "B. Jones", Role: model.RoleCoordinator},
	)
	view, _ := loadedView(t, store, "org_1")

	require.NoError(t, view.OpenEditUser("u2"))
	require.NoError(t, view.DeleteUser(context.Background(), "u2"))

	err := view.CommitDialog(context.Background())
	assert.ErrorIs(t, err, ErrPrecondition)
	assert.Empty(t, store.callsOf(opUpdateUser))
	assert.Equal(t, DialogEditUser, view.Dialog().Kind())
	require.NoError(t, view.CancelDialog())
}

func TestDeleteUser_RefetchesDetail(t *testing.T) {
	store := newFakeStore()
	store.seed("org_1", "Acme", model.User{UserID: "u1", Name: "A. Smith", Role: model.RoleAdmin})
	view, _ := loadedView(t, store, "org_1")

	require.NoError(t, view.DeleteUser(context.Background(), "u1"))
	assert.Equal(t, []string{opGet, opDeleteUser, opGet}, store.ops())
	assert.Empty(t, view.Snapshot().Organization.Users)
}

func TestCommit_RefetchFailureAfterMutation(t *testing.T) {
	store := newFakeStore()
	store.seed("org_1", "Acme")
	view, log := loadedView(t, store, "org_1")

	require.NoError(t, view.OpenAddUser())
	require.NoError(t, view.SetUserName("A. Smith"))
	store.failNext(opGet, errBoom)

	require.NoError(t, view.CommitDialog(context.Background()), "the write itself went through")
	assert.Nil(t, view.Dialog())

	snap := view.Snapshot()
	assert.True(t, snap.Stale)
	assert.Equal(t, StateFailed, snap.State)
	assert.Empty(t, snap.Organization.Users, "prior value stays until a fetch succeeds")
	assert.Equal(t, []FailureKind{FailureLoad}, log.kinds())
	require.NotNil(t, view.LastFailure())
	assert.Equal(t, FailureLoad, view.LastFailure().Kind)

	require.NoError(t, view.Load(context.Background()))
	assert.False(t, view.Snapshot().Stale)
	assert.Len(t, view.Snapshot().Organization.Users, 1)
}

func TestLoadDetail_AtMostOneFetchInFlight(t *testing.T) {
	store := newFakeStore()
	store.seed("org_1", "Acme")
	c, _ := newTestConsole(t, store)
	view := c.Organization("org_1")

	var inFlight, maxInFlight int32
	store.onCall = func(op string) {
		if op != opGet {
			return
		}
		n := atomic.AddInt32(&inFlight, 1)
		for {
			m := atomic.LoadInt32(&maxInFlight)
			if n <= m || atomic.CompareAndSwapInt32(&maxInFlight, m, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, view.Load(context.Background()))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&maxInFlight))
	assert.Len(t, store.callsOf(opGet), 4)
}
