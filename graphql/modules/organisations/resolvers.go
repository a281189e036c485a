// Package organisations implements the resolvers for organization queries.
package organisations

import (
	"context"
	"errors"
	"time"

	"github.com/b2b-console/orgconsole/internal/services"
	"github.com/b2b-console/orgconsole/util"
)

// ResolveOrganizations lists organization rows, optionally filtered by name and status
func ResolveOrganizations(ctx context.Context, store services.OrgStore, search, status string) ([]map[string]interface{}, error) {
	orgs, err := store.ListOrganizations(ctx)
	if err != nil {
		return nil, err
	}

	rows := []map[string]interface{}{}
	for _, org := range orgs {
		if !util.NameContains(org.Name, search) {
			continue
		}
		if status != "" && string(org.Status) != status {
			continue
		}
		rows = append(rows, map[string]interface{}{
			"org_id":           org.OrgID,
			"org_name":         org.Name,
			"status":           string(org.Status),
			"pending_requests": org.PendingRequests,
		})
	}
	return rows, nil
}

// ResolveOrganization returns one organization document, or nil when it does not exist
func ResolveOrganization(ctx context.Context, store services.OrgStore, orgID string) (map[string]interface{}, error) {
	org, err := store.GetOrganization(ctx, orgID)
	if errors.Is(err, services.ErrOrgNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	users := make([]map[string]interface{}, len(org.Users))
	for i, u := range org.Users {
		users[i] = map[string]interface{}{
			"user_id":      u.UserID,
			"user_name":    u.Name,
			"user_role":    string(u.Role),
			"created_date": formatTime(u.CreatedDate),
		}
	}

	return map[string]interface{}{
		"org_id":             org.OrgID,
		"org_name":           org.Name,
		"org_mail":           org.Mail,
		"org_contact":        org.Contact,
		"org_slug":           org.Slug,
		"status":             string(org.Status),
		"pending_requests":   org.PendingRequests,
		"primary_admin_name": org.PrimaryAdminName,
		"primary_admin_mail": org.PrimaryAdminMail,
		"support_email":      org.SupportEmail,
		"phone":              org.Phone,
		"alt_phone":          org.AltPhone,
		"max_coordinators":   org.MaxCoordinators,
		"timezone_common":    org.TimezoneCommon,
		"timezone_region":    org.TimezoneRegion,
		"language":           org.Language,
		"website_url":        org.WebsiteURL,
		"created_date":       formatTime(org.CreatedDate),
		"updated_date":       formatTime(org.UpdatedDate),
		"users":              users,
	}, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
