// Package model defines the data structures for organization management in the console.
package model

import (
	"fmt"
	"time"
)

// Status is the lifecycle status of an organization
type Status string

// Organization lifecycle statuses
const (
	StatusActive   Status = "Active"
	StatusBlocked  Status = "Blocked"
	StatusInactive Status = "Inactive"
)

// Statuses lists every valid status in display order
var Statuses = []Status{StatusActive, StatusBlocked, StatusInactive}

// ParseStatus validates a raw status string
func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid status %q", s)
}

// Valid reports whether the status is one of the known statuses
func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// Defaults applied by the remote store when an organization is created
const (
	DefaultMaxCoordinators = 5
	DefaultTimezoneCommon  = "India Standard Time"
	DefaultTimezoneRegion  = "Asia/Colombo"
	DefaultLanguage        = "English"
)

// Organization represents a tenant organization with its nested users
type Organization struct {
	OrgID            string    `json:"org_id"`
	Name             string    `json:"org_name"`
	Mail             string    `json:"org_mail"`
	Contact          string    `json:"org_contact"`
	Slug             string    `json:"org_slug"`
	Status           Status    `json:"status"`
	PendingRequests  int       `json:"pending_requests"`
	PrimaryAdminName string    `json:"primary_admin_name"`
	PrimaryAdminMail string    `json:"primary_admin_mail"`
	SupportEmail     string    `json:"support_email"`
	Phone            string    `json:"phone"`
	AltPhone         string    `json:"alt_phone"`
	MaxCoordinators  int       `json:"max_coordinators"`
	TimezoneCommon   string    `json:"timezone_common"`
	TimezoneRegion   string    `json:"timezone_region"`
	Language         string    `json:"language"`
	WebsiteURL       string    `json:"website_url"`
	CreatedDate      time.Time `json:"created_date"`
	UpdatedDate      time.Time `json:"updated_date"`
	Users            []User    `json:"users"`
}

// NewOrganization creates an organization with the store defaults filled in
func NewOrganization(orgID string, in OrganizationCreate) *Organization {
	now := time.Now().UTC()
	return &Organization{
		OrgID:           orgID,
		Name:            in.Name,
		Mail:            in.Mail,
		Contact:         in.Contact,
		Slug:            in.Slug,
		Status:          StatusActive,
		MaxCoordinators: DefaultMaxCoordinators,
		TimezoneCommon:  DefaultTimezoneCommon,
		TimezoneRegion:  DefaultTimezoneRegion,
		Language:        DefaultLanguage,
		CreatedDate:     now,
		UpdatedDate:     now,
		Users:           []User{},
	}
}

// Clone returns a deep copy, including the users slice
func (o *Organization) Clone() *Organization {
	if o == nil {
		return nil
	}
	c := *o
	if o.Users != nil {
		c.Users = make([]User, len(o.Users))
		copy(c.Users, o.Users)
	}
	return &c
}

// Summary projects the organization onto its list row
func (o *Organization) Summary() OrgSummary {
	return OrgSummary{
		OrgID:           o.OrgID,
		Name:            o.Name,
		Status:          o.Status,
		PendingRequests: o.PendingRequests,
	}
}

// FindUser returns the nested user with the given id
func (o *Organization) FindUser(userID string) (User, bool) {
	for _, u := range o.Users {
		if u.UserID == userID {
			return u, true
		}
	}
	return User{}, false
}

// Update builds the full editable document used to replace the organization.
// Server-computed and workflow-owned fields (id, status, pending requests, users) are left out.
func (o *Organization) Update() OrganizationUpdate {
	return OrganizationUpdate{
		Name:             &o.Name,
		Mail:             &o.Mail,
		Contact:          &o.Contact,
		Slug:             &o.Slug,
		PrimaryAdminName: &o.PrimaryAdminName,
		PrimaryAdminMail: &o.PrimaryAdminMail,
		SupportEmail:     &o.SupportEmail,
		Phone:            &o.Phone,
		AltPhone:         &o.AltPhone,
		MaxCoordinators:  &o.MaxCoordinators,
		TimezoneCommon:   &o.TimezoneCommon,
		TimezoneRegion:   &o.TimezoneRegion,
		Language:         &o.Language,
		WebsiteURL:       &o.WebsiteURL,
	}
}

// OrgSummary is a row of the organization list
type OrgSummary struct {
	OrgID           string `json:"org_id"`
	Name            string `json:"org_name"`
	Status          Status `json:"status"`
	PendingRequests int    `json:"pending_requests"`
}

// OrganizationCreate is the body of a create-organization request
type OrganizationCreate struct {
	Name    string `json:"org_name" validate:"required,max=100"`
	Slug    string `json:"org_slug" validate:"max=100"`
	Mail    string `json:"org_mail" validate:"omitempty,email,max=100"`
	Contact string `json:"org_contact" validate:"max=50"`
}

// OrganizationUpdate carries the fields of an update; nil fields are left unchanged
type OrganizationUpdate struct {
	Name             *string `json:"org_name,omitempty" validate:"omitempty,min=1,max=100"`
	Mail             *string `json:"org_mail,omitempty" validate:"omitempty,email,max=100"`
	Contact          *string `json:"org_contact,omitempty" validate:"omitempty,max=50"`
	Slug             *string `json:"org_slug,omitempty" validate:"omitempty,max=100"`
	Status           *Status `json:"status,omitempty"`
	PendingRequests  *int    `json:"pending_requests,omitempty" validate:"omitempty,min=0"`
	PrimaryAdminName *string `json:"primary_admin_name,omitempty" validate:"omitempty,max=100"`
	PrimaryAdminMail *string `json:"primary_admin_mail,omitempty" validate:"omitempty,email,max=100"`
	SupportEmail     *string `json:"support_email,omitempty" validate:"omitempty,email,max=100"`
	Phone            *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	AltPhone         *string `json:"alt_phone,omitempty" validate:"omitempty,max=20"`
	MaxCoordinators  *int    `json:"max_coordinators,omitempty" validate:"omitempty,min=0"`
	TimezoneCommon   *string `json:"timezone_common,omitempty" validate:"omitempty,max=50"`
	TimezoneRegion   *string `json:"timezone_region,omitempty" validate:"omitempty,max=50"`
	Language         *string `json:"language,omitempty" validate:"omitempty,max=50"`
	WebsiteURL       *string `json:"website_url,omitempty" validate:"omitempty,max=200"`
}

// Apply copies every set field onto the organization and bumps its update time
func (u OrganizationUpdate) Apply(o *Organization) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&o.Name, u.Name)
	setString(&o.Mail, u.Mail)
	setString(&o.Contact, u.Contact)
	setString(&o.Slug, u.Slug)
	setString(&o.PrimaryAdminName, u.PrimaryAdminName)
	setString(&o.PrimaryAdminMail, u.PrimaryAdminMail)
	setString(&o.SupportEmail, u.SupportEmail)
	setString(&o.Phone, u.Phone)
	setString(&o.AltPhone, u.AltPhone)
	setString(&o.TimezoneCommon, u.TimezoneCommon)
	setString(&o.TimezoneRegion, u.TimezoneRegion)
	setString(&o.Language, u.Language)
	setString(&o.WebsiteURL, u.WebsiteURL)
	if u.Status != nil {
		o.Status = *u.Status
	}
	if u.PendingRequests != nil {
		o.PendingRequests = *u.PendingRequests
	}
	if u.MaxCoordinators != nil {
		o.MaxCoordinators = *u.MaxCoordinators
	}
	o.UpdatedDate = time.Now().UTC()
}
