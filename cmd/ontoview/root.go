package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/xe-labs/ontoview/pkg/commands"
)

type globalOptions struct {
	file      string
	namespace string
	format    string
	lang      string
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:           "ontoview",
		Short:         "Run the staff ontology queries from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(stdout)

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.file, "file", "f", envOr("ONTOLOGY_FILE", "lab_1.rdf"), "RDF file to load (.rdf/.owl/.xml, .ttl, .nt)")
	flags.StringVar(&opts.namespace, "namespace", envOr("ONTOLOGY_NAMESPACE", defaultNamespace), "Ontology namespace IRI")
	flags.StringVarP(&opts.format, "format", "o", "table", "Output format: table or json")
	flags.StringVar(&opts.lang, "lang", "en", "Language of fallback texts: en or ru")

	cmd.AddCommand(newQueryCmd(opts))
	cmd.AddCommand(newStatsCmd(opts))
	cmd.AddCommand(newSourceCmd(opts))
	cmd.AddCommand(commands.NewUtilityCommands(translationBundle, logrus.StandardLogger())...)
	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func Execute() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		code := exitCode(err)
		if code == 1 {
			code = exitUsage
		}
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(code)
	}
}
