package console

import (
	"context"
	"testing"

	"github.com/b2b-console/orgconsole/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaries(names ...string) []model.OrgSummary {
	out := make([]model.OrgSummary, len(names))
	for i, n := range names {
		out[i] = model.OrgSummary{OrgID: n, Name: n, Status: model.StatusActive}
	}
	return out
}

func TestFilterByName(t *testing.T) {
	orgs := summaries("Globex East", "Acme", "globex west", "Initech", "GLOBEX")
	input := append([]model.OrgSummary(nil), orgs...)

	first := FilterByName(orgs, "globex")
	second := FilterByName(orgs, "globex")

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"Globex East", "globex west", "GLOBEX"}, names(first))
	assert.Equal(t, input, orgs, "input must not be modified")

	assert.Equal(t, names(orgs), names(FilterByName(orgs, "   ")))
	assert.Empty(t, FilterByName(orgs, "umbrella"))
	assert.Empty(t, FilterByName(nil, "x"))
}

func TestListController_FilteredFollowsBothInputs(t *testing.T) {
	store := newFakeStore()
	store.seed("org_1", "Acme")
	store.seed("org_2", "Globex")
	c, _ := newTestConsole(t, store)
	list := c.Organizations()
	require.NoError(t, list.Load(context.Background()))

	list.SetSearchTerm("glo")
	assert.Equal(t, []string{"Globex"}, names(list.Filtered()))

	store.seed("org_3", "Globe Trotters")
	require.NoError(t, list.Load(context.Background()))
	assert.Equal(t, []string{"Globex", "Globe Trotters"}, names(list.Filtered()))

	list.SetSearchTerm("")
	assert.Len(t, list.Filtered(), 3)
}

func names(orgs []model.OrgSummary) []string {
	out := make([]string, len(orgs))
	for i, o := range orgs {
		out[i] = o.Name
	}
	return out
}
