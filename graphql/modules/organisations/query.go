// Package organisations defines the GraphQL queries for organizations.
package organisations

import (
	"github.com/b2b-console/orgconsole/internal/services"
	"github.com/graphql-go/graphql"
)

// GetQueryFields returns the organization queries to be mounted in the root schema
func GetQueryFields(store services.OrgStore) graphql.Fields {
	return graphql.Fields{
		"organizations": &graphql.Field{
			Type: graphql.NewList(OrganizationSummaryType),
			Args: graphql.FieldConfigArgument{
				"search": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				"status": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				search := p.Args["search"].(string)
				status := p.Args["status"].(string)
				return ResolveOrganizations(p.Context, store, search, status)
			},
		},
		"organization": &graphql.Field{
			Type: OrganizationType,
			Args: graphql.FieldConfigArgument{
				"org_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				orgID := p.Args["org_id"].(string)
				org, err := ResolveOrganization(p.Context, store, orgID)
				if org == nil {
					return nil, err
				}
				return org, err
			},
		},
	}
}
