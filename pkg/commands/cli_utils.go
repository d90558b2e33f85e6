package commands

import (
	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// BundleFunc returns a bundle with every module's locale files registered.
type BundleFunc func() (*i18n.Bundle, error)

// NewUtilityCommands creates the translation maintenance commands
func NewUtilityCommands(bundle BundleFunc, logger *logrus.Logger) []*cobra.Command {
	return []*cobra.Command{
		newCheckTrKeysCmd(bundle, logger),
		newCheckTrUsageCmd(bundle, logger),
	}
}

func newCheckTrKeysCmd(bundle BundleFunc, logger *logrus.Logger) *cobra.Command {
	var languages []string
	cmd := &cobra.Command{
		Use:   "check-tr-keys",
		Short: "Check translation key consistency across all locales",
		Long:  `Validates that every translation key is present in each allowed locale and reports the missing ones.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := bundle()
			if err != nil {
				return err
			}
			return CheckTrKeys(b, languages, logger)
		},
	}
	cmd.Flags().StringSliceVar(&languages, "languages", defaultLanguages, "Locales that must be complete")
	return cmd
}

func newCheckTrUsageCmd(bundle BundleFunc, logger *logrus.Logger) *cobra.Command {
	var (
		languages []string
		root      string
	)
	cmd := &cobra.Command{
		Use:   "check-tr-usage",
		Short: "Check that translation keys used in code exist in every locale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := bundle()
			if err != nil {
				return err
			}
			return CheckTrUsage(root, b, languages, logger)
		},
	}
	cmd.Flags().StringSliceVar(&languages, "languages", defaultLanguages, "Locales that must define every used key")
	cmd.Flags().StringVar(&root, "root", ".", "Directory to scan for Go sources")
	return cmd
}
