// Package organisations defines the GraphQL types for organizations and their users.
package organisations

import (
	"github.com/graphql-go/graphql"
)

// UserType represents a user nested under an organization
var UserType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"user_id":      &graphql.Field{Type: graphql.String},
		"user_name":    &graphql.Field{Type: graphql.String},
		"user_role":    &graphql.Field{Type: graphql.String},
		"created_date": &graphql.Field{Type: graphql.String},
	},
})

// OrganizationSummaryType represents a row of the organization list
var OrganizationSummaryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "OrganizationSummary",
	Fields: graphql.Fields{
		"org_id":           &graphql.Field{Type: graphql.String},
		"org_name":         &graphql.Field{Type: graphql.String},
		"status":           &graphql.Field{Type: graphql.String},
		"pending_requests": &graphql.Field{Type: graphql.Int},
	},
})

// OrganizationType represents the full organization document
var OrganizationType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Organization",
	Fields: graphql.Fields{
		"org_id":             &graphql.Field{Type: graphql.String},
		"org_name":           &graphql.Field{Type: graphql.String},
		"org_mail":           &graphql.Field{Type: graphql.String},
		"org_contact":        &graphql.Field{Type: graphql.String},
		"org_slug":           &graphql.Field{Type: graphql.String},
		"status":             &graphql.Field{Type: graphql.String},
		"pending_requests":   &graphql.Field{Type: graphql.Int},
		"primary_admin_name": &graphql.Field{Type: graphql.String},
		"primary_admin_mail": &graphql.Field{Type: graphql.String},
		"support_email":      &graphql.Field{Type: graphql.String},
		"phone":              &graphql.Field{Type: graphql.String},
		"alt_phone":          &graphql.Field{Type: graphql.String},
		"max_coordinators":   &graphql.Field{Type: graphql.Int},
		"timezone_common":    &graphql.Field{Type: graphql.String},
		"timezone_region":    &graphql.Field{Type: graphql.String},
		"language":           &graphql.Field{Type: graphql.String},
		"website_url":        &graphql.Field{Type: graphql.String},
		"created_date":       &graphql.Field{Type: graphql.String},
		"updated_date":       &graphql.Field{Type: graphql.String},
		"users":              &graphql.Field{Type: graphql.NewList(UserType)},
	},
})
