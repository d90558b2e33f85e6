package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/xe-labs/ontoview/modules/ontology/presentation/mappers"
	"github.com/xe-labs/ontoview/modules/ontology/presentation/viewmodels"
	"github.com/xe-labs/ontoview/modules/ontology/services"
)

func newQueryCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run one of the fixed ontology queries",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "projects",
			Short: "List projects",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := openSession(opts)
				if err != nil {
					return err
				}
				ctx := s.localize(cmd.Context(), opts.lang)
				entities, err := s.service.Projects(ctx)
				if err != nil {
					return withCode(exitQuery, err)
				}
				records := mappers.ProjectsToViewModels(entities, mappers.LabelsFromContext(ctx))
				return render(cmd.OutOrStdout(), opts.format, records,
					[]string{"ID", "NAME", "DESCRIPTION", "BUDGET"},
					func(p viewmodels.Project) []string { return []string{p.ID, p.Name, p.Description, p.Budget} })
			},
		},
		&cobra.Command{
			Use:   "employees",
			Short: "List employees and their positions",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := openSession(opts)
				if err != nil {
					return err
				}
				ctx := s.localize(cmd.Context(), opts.lang)
				entities, err := s.service.Employees(ctx)
				if err != nil {
					return withCode(exitQuery, err)
				}
				records := mappers.EmployeesToViewModels(entities, mappers.LabelsFromContext(ctx))
				return render(cmd.OutOrStdout(), opts.format, records,
					[]string{"NAME", "POSITION"},
					func(e viewmodels.Employee) []string { return []string{e.Name, e.Position} })
			},
		},
		&cobra.Command{
			Use:   "workload",
			Short: "List employee workload by project and task",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := openSession(opts)
				if err != nil {
					return err
				}
				entities, err := s.service.Workload(cmd.Context())
				if err != nil {
					return withCode(exitQuery, err)
				}
				return render(cmd.OutOrStdout(), opts.format, mappers.WorkloadToViewModels(entities),
					[]string{"EMPLOYEE", "PROJECT", "TASK"},
					func(w viewmodels.Workload) []string { return []string{w.Employee, w.Project, w.Task} })
			},
		},
		&cobra.Command{
			Use:   "tree <project-id>",
			Short: "Show the task sets and tasks of a project",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := openSession(opts)
				if err != nil {
					return err
				}
				ctx := s.localize(cmd.Context(), opts.lang)
				entities, err := s.service.ProjectTree(ctx, args[0])
				if err != nil {
					if services.IsInvalidProjectID(err) {
						return withCode(exitInvalidID, err)
					}
					return withCode(exitQuery, err)
				}
				tree := mappers.ProjectTreeToViewModel(args[0], entities, mappers.LabelsFromContext(ctx))
				if opts.format == "json" {
					return writeJSON(cmd.OutOrStdout(), tree)
				}
				return writeTree(cmd.OutOrStdout(), tree)
			},
		},
	)
	return cmd
}

func render[T any](w io.Writer, format string, records []T, headers []string, row func(T) []string) error {
	if format == "json" {
		if records == nil {
			records = []T{}
		}
		return writeJSON(w, records)
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, row(r))
	}
	return writeTable(w, headers, rows)
}

func writeTree(w io.Writer, tree viewmodels.ProjectTree) error {
	if _, err := fmt.Fprintln(w, tree.ProjectName); err != nil {
		return err
	}
	for _, g := range tree.Groups {
		if _, err := fmt.Fprintf(w, "  %s\n", g.Name); err != nil {
			return err
		}
		for _, task := range g.Tasks {
			if _, err := fmt.Fprintf(w, "    - %s\n", task); err != nil {
				return err
			}
		}
	}
	return nil
}
