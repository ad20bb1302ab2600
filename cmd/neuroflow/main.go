// Command neuroflow runs the regression and clustering engines against
// CSV datasets from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PraneethV-cmd/neuroflow-ide/pkg/log"
)

var (
	flagConfig  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "neuroflow",
	Short: "Train regression and clustering models on CSV data",
	Long: `NeuroFlow trains statistical models from the command line.

Supported workflows:
- regress: linear, polynomial and logistic regression with train/test evaluation
- cluster: kmeans, hierarchical and dbscan with label summaries`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "info"
		if flagVerbose {
			level = "debug"
		}
		log.SetDefault(log.New(os.Stderr, level))
		log.InstallWarningSink()
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML config file with default hyperparameters")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(regressCmd)
	rootCmd.AddCommand(clusterCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
