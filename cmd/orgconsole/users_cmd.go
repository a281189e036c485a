package main

import (
	"github.com/spf13/cobra"
)

func newAddUserCmd(a *app) *cobra.Command {
	var name, role string

	cmd := &cobra.Command{
		Use:   "add-user <org_id> --name <name> [--role Admin|Co-ordinator]",
		Short: "Add a user to an organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.loadOrganization(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := view.OpenAddUser(); err != nil {
				return err
			}
			if err := view.SetUserName(name); err != nil {
				return err
			}
			if role != "" {
				if err := view.SetUserRole(role); err != nil {
					return err
				}
			}
			if err := view.CommitDialog(cmd.Context()); err != nil {
				return err
			}
			return printOrganization(cmd.OutOrStdout(), view.Snapshot().Organization)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "user name")
	cmd.Flags().StringVar(&role, "role", "", "user role")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newEditUserCmd(a *app) *cobra.Command {
	var name, role string

	cmd := &cobra.Command{
		Use:   "edit-user <org_id> <user_id> [--name <name>] [--role Admin|Co-ordinator]",
		Short: "Change the name or role of a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.loadOrganization(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := view.OpenEditUser(args[1]); err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				if err := view.SetUserName(name); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("role") {
				if err := view.SetUserRole(role); err != nil {
					return err
				}
			}
			if err := view.CommitDialog(cmd.Context()); err != nil {
				return err
			}
			return printOrganization(cmd.OutOrStdout(), view.Snapshot().Organization)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new user name")
	cmd.Flags().StringVar(&role, "role", "", "new user role")
	return cmd
}

func newDeleteUserCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-user <org_id> <user_id>",
		Short: "Remove a user from an organization",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.loadOrganization(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := view.DeleteUser(cmd.Context(), args[1]); err != nil {
				return err
			}
			return printOrganization(cmd.OutOrStdout(), view.Snapshot().Organization)
		},
	}
}
