package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "maturity",
		Short: "Record an accessibility maturity assessment",
		Long: `maturity keeps a single accessibility maturity assessment: organization
details, a maturity level and notes per dimension, and a proof point checklist.

Every change is saved to the configured storage backend (sqlite by default).
Snapshots can be exported as JSON, imported back, or archived to a blob store.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&a.metricsFile, "metrics-file", "", "write store metrics in Prometheus text format to this file on exit")

	root.AddCommand(
		newShowCmd(a),
		newProgressCmd(a),
		newLevelsCmd(a),
		newCatalogCmd(a),
		newOrgCmd(a),
		newNotesCmd(a),
		newDateCmd(a),
		newDimensionCmd(a),
		newProofCmd(a),
		newResetCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newArchiveCmd(a),
	)
	return root
}
