package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/spf13/cobra"

	"github.com/xe-labs/ontoview/modules/ontology/infrastructure/queries"
)

var queryNames = []string{
	queries.ProjectsName,
	queries.EmployeesName,
	queries.WorkloadName,
	queries.ProjectTreeName,
}

func newSourceCmd(opts *globalOptions) *cobra.Command {
	var color bool
	cmd := &cobra.Command{
		Use:       "source <query>",
		Short:     "Print the SPARQL text of a fixed query",
		Args:      cobra.ExactArgs(1),
		ValidArgs: queryNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(queryNames, args[0]) {
				return withCode(exitUsage, fmt.Errorf("unknown query %q (want one of %v)", args[0], queryNames))
			}
			src, err := queries.Source(opts.namespace, args[0])
			if err != nil {
				return withCode(exitQuery, err)
			}
			return writeSource(cmd.OutOrStdout(), src, color)
		},
	}
	cmd.Flags().BoolVar(&color, "color", false, "Highlight the query for a 256-color terminal")
	return cmd
}

func writeSource(w io.Writer, src string, color bool) error {
	if !color {
		_, err := io.WriteString(w, src)
		return err
	}
	return quick.Highlight(w, src, "sparql", "terminal256", "monokai")
}
