package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/b2b-console/orgconsole/model"
)

func printOrganizations(w io.Writer, orgs []model.OrgSummary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ORG ID\tNAME\tSTATUS\tPENDING")
	for _, o := range orgs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", o.OrgID, o.Name, o.Status, o.PendingRequests)
	}
	return tw.Flush()
}

func printOrganization(w io.Writer, org *model.Organization) error {
	if org == nil {
		_, err := fmt.Fprintln(w, "organization not loaded")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	rows := [][2]string{
		{"org_id", org.OrgID},
		{"org_name", org.Name},
		{"org_slug", org.Slug},
		{"org_mail", org.Mail},
		{"org_contact", org.Contact},
		{"status", string(org.Status)},
		{"pending_requests", fmt.Sprint(org.PendingRequests)},
		{"primary_admin_name", org.PrimaryAdminName},
		{"primary_admin_mail", org.PrimaryAdminMail},
		{"support_email", org.SupportEmail},
		{"phone", org.Phone},
		{"alt_phone", org.AltPhone},
		{"max_coordinators", fmt.Sprint(org.MaxCoordinators)},
		{"timezone_common", org.TimezoneCommon},
		{"timezone_region", org.TimezoneRegion},
		{"language", org.Language},
		{"website_url", org.WebsiteURL},
		{"created_date", formatDate(org.CreatedDate)},
		{"updated_date", formatDate(org.UpdatedDate)},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", r[0], r[1])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nUsers (%d)\n", len(org.Users))
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USER ID\tNAME\tROLE\tCREATED")
	for _, u := range org.Users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.UserID, u.Name, u.Role, formatDate(u.CreatedDate))
	}
	return tw.Flush()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
