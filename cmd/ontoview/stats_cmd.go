package main

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/xe-labs/ontoview/pkg/graph"
)

type statsOutput struct {
	File       string `json:"file"`
	Triples    int    `json:"triples"`
	Subjects   int    `json:"subjects"`
	Predicates int    `json:"predicates"`
	DurationMS int64  `json:"duration_ms"`
}

func newStatsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Load the ontology file and report its size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			g := s.app.Graph()
			subjects := map[string]struct{}{}
			predicates := map[string]struct{}{}
			for _, t := range g.Triples() {
				subjects[graph.TermKey(t.Subj)] = struct{}{}
				predicates[graph.TermKey(t.Pred)] = struct{}{}
			}
			out := statsOutput{
				File:       opts.file,
				Triples:    g.Len(),
				Subjects:   len(subjects),
				Predicates: len(predicates),
				DurationMS: time.Since(start).Milliseconds(),
			}
			if opts.format == "json" {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			return writeTable(cmd.OutOrStdout(), []string{"FILE", "TRIPLES", "SUBJECTS", "PREDICATES"}, [][]string{{
				out.File, strconv.Itoa(out.Triples), strconv.Itoa(out.Subjects), strconv.Itoa(out.Predicates),
			}})
		},
	}
}
