package main

import (
	"fmt"
	"strings"

	"github.com/b2b-console/orgconsole/console"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list [--search <term>]",
		Short: "List organizations, optionally filtered by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list := a.console.Organizations()
			if err := list.Load(cmd.Context()); err != nil {
				return err
			}
			list.SetSearchTerm(search)
			return printOrganizations(cmd.OutOrStdout(), list.Filtered())
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive name filter")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <org_id>",
		Short: "Show an organization and its users",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.loadOrganization(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printOrganization(cmd.OutOrStdout(), view.Snapshot().Organization)
		},
	}
}

func newCreateOrgCmd(a *app) *cobra.Command {
	var name, slug, mail, contact string

	cmd := &cobra.Command{
		Use:   "create-org --name <name> [--slug <slug>] [--mail <mail>] [--contact <phone>]",
		Short: "Create an organization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list := a.console.Organizations()
			if err := list.OpenAddOrganization(); err != nil {
				return err
			}
			for field, value := range map[console.Field]string{
				console.FieldName:    name,
				console.FieldSlug:    slug,
				console.FieldMail:    mail,
				console.FieldContact: contact,
			} {
				if err := list.SetOrgInput(field, value); err != nil {
					return err
				}
			}
			if err := list.CommitDialog(cmd.Context()); err != nil {
				return err
			}
			return printOrganizations(cmd.OutOrStdout(), list.Snapshot().Organizations)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "organization name")
	cmd.Flags().StringVar(&slug, "slug", "", "URL slug (derived from the name when empty)")
	cmd.Flags().StringVar(&mail, "mail", "", "organization mail")
	cmd.Flags().StringVar(&contact, "contact", "", "contact number")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <org_id> <field>=<value>...",
		Short: "Edit organization details",
		Long: "Edit organization details. Editable fields: " + editableFieldList() + ".\n" +
			"Status is changed with set-status.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.loadOrganization(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !view.EnterEdit() {
				return fmt.Errorf("organization %s is not loaded", args[0])
			}
			for _, arg := range args[1:] {
				field, value, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("expected <field>=<value>, got %q", arg)
				}
				if err := view.SetField(console.Field(strings.TrimSpace(field)), value); err != nil {
					return err
				}
			}
			if err := view.SaveEdit(cmd.Context()); err != nil {
				return err
			}
			return printOrganization(cmd.OutOrStdout(), view.Snapshot().Organization)
		},
	}
}

func newSetStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <org_id> <Active|Blocked|Inactive>",
		Short: "Change the lifecycle status of an organization",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.loadOrganization(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := view.OpenChangeStatus(); err != nil {
				return err
			}
			if err := view.SetTargetStatus(args[1]); err != nil {
				return err
			}
			if err := view.CommitDialog(cmd.Context()); err != nil {
				return err
			}
			return printOrganization(cmd.OutOrStdout(), view.Snapshot().Organization)
		},
	}
}

func newDeleteOrgCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-org <org_id>",
		Short: "Delete an organization and its users",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list := a.console.Organizations()
			if err := list.DeleteOrganization(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printOrganizations(cmd.OutOrStdout(), list.Snapshot().Organizations)
		},
	}
}

func editableFieldList() string {
	names := make([]string, len(console.EditableFields))
	for i, f := range console.EditableFields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
