package console

import (
	"github.com/b2b-console/orgconsole/model"
	"github.com/b2b-console/orgconsole/util"
)

// FilterByName returns the organizations whose name contains term, ignoring case.
// The input is not modified and matches keep their input order. A blank term matches all.
func FilterByName(orgs []model.OrgSummary, term string) []model.OrgSummary {
	out := make([]model.OrgSummary, 0, len(orgs))
	for _, org := range orgs {
		if util.NameContains(org.Name, term) {
			out = append(out, org)
		}
	}
	return out
}
