package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/servicehub/portal/internal/core/domain"
	"github.com/servicehub/portal/internal/core/policy"
)

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Print the role access table",
	RunE: func(cmd *cobra.Command, _ []string) error {
		resolver, err := policy.NewResolver()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ROLE\tPAGES\tEDITS")
		for _, role := range domain.Roles() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", role, join(resolver.AllowedPages(role)), join(resolver.EditableCategories(role)))
		}
		return w.Flush()
	},
}

func join[T fmt.Stringer](items []T) string {
	if len(items) == 0 {
		return "-"
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String()
	}
	return strings.Join(parts, ", ")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the portal version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), Version)
	},
}

