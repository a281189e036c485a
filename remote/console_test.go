package remote

import (
	"context"
	"testing"

	"github.com/b2b-console/orgconsole/console"
	"github.com/b2b-console/orgconsole/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// Drives every console flow against the reference store over the wire
func TestConsoleAgainstStore(t *testing.T) {
	ctx := context.Background()
	c := console.New(startStore(t), console.WithLogger(zaptest.NewLogger(t)))

	list := c.Organizations()
	require.NoError(t, list.Load(ctx))
	assert.Empty(t, list.Snapshot().Organizations)

	require.NoError(t, list.OpenAddOrganization())
	require.NoError(t, list.SetOrgInput(console.FieldName, "Acme Corp"))
	require.NoError(t, list.SetOrgInput(console.FieldMail, "ops@acme.example"))
	require.NoError(t, list.CommitDialog(ctx))

	rows := list.Snapshot().Organizations
	require.Len(t, rows, 1)
	orgID := rows[0].OrgID

	require.NoError(t, list.OpenAddOrganization())
	require.NoError(t, list.SetOrgInput(console.FieldName, "Acme Corp"))
	err := list.CommitDialog(ctx)
	assert.ErrorIs(t, err, ErrRequestFailed, "duplicate name is a mutation failure")
	assert.NotNil(t, list.Dialog())
	require.NoError(t, list.CancelDialog())

	view := c.Organization(orgID)
	require.NoError(t, view.Load(ctx))
	assert.Equal(t, "acme-corp", view.Snapshot().Organization.Slug)

	require.NoError(t, view.OpenAddUser())
	require.NoError(t, view.SetUserName("A. Smith"))
	require.NoError(t, view.SetUserRole("Admin"))
	require.NoError(t, view.CommitDialog(ctx))
	users := view.Snapshot().Organization.Users
	require.Len(t, users, 1)
	assert.Equal(t, "A. Smith", users[0].Name)
	assert.Equal(t, model.RoleAdmin, users[0].Role)

	require.NoError(t, view.OpenEditUser(users[0].UserID))
	require.NoError(t, view.SetUserRole("Co-ordinator"))
	require.NoError(t, view.CommitDialog(ctx))
	assert.Equal(t, model.RoleCoordinator, view.Snapshot().Organization.Users[0].Role)

	require.NoError(t, view.OpenChangeStatus())
	require.NoError(t, view.SetTargetStatus("Blocked"))
	require.NoError(t, view.CommitDialog(ctx))
	assert.Equal(t, model.StatusBlocked, view.Snapshot().Organization.Status)

	require.True(t, view.EnterEdit())
	require.NoError(t, view.SetField(console.FieldSupportEmail, "help@acme.example"))
	require.NoError(t, view.SetField(console.FieldMaxCoordinators, "3"))
	require.NoError(t, view.SaveEdit(ctx))
	org := view.Snapshot().Organization
	assert.Equal(t, "help@acme.example", org.SupportEmail)
	assert.Equal(t, 3, org.MaxCoordinators)
	assert.Equal(t, model.StatusBlocked, org.Status, "saving the draft never touches status")

	require.NoError(t, view.DeleteUser(ctx, users[0].UserID))
	assert.Empty(t, view.Snapshot().Organization.Users)

	require.NoError(t, list.DeleteOrganization(ctx, orgID))
	assert.Empty(t, list.Snapshot().Organizations)

	err = view.Load(ctx)
	assert.ErrorIs(t, err, console.ErrNotFound)
	assert.Equal(t, console.StateNotFound, view.Snapshot().State)
}
