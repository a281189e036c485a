// Package graphql assembles the read-only GraphQL schema of the organization store.
package graphql

import (
	"github.com/b2b-console/orgconsole/graphql/modules/organisations"
	"github.com/b2b-console/orgconsole/internal/services"
	"github.com/graphql-go/graphql"
)

// CreateSchema builds the root schema from the module query fields
func CreateSchema(store services.OrgStore) (graphql.Schema, error) {
	fields := graphql.Fields{}
	for name, field := range organisations.GetQueryFields(store) {
		fields[name] = field
	}

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Query",
			Fields: fields,
		}),
	})
}
