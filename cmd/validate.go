package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/viant/afs"
)

// validateCmd loads the inputs a run would use and reports them without simulating.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the parameter and trace files without running",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		cfg, jobs, err := loadInputs(context.Background(), afs.New(), inputOptionsFromFlags(cmd))
		if err != nil {
			logrus.Fatalf("Invalid inputs: %v", err)
		}
		stages := 0
		for _, j := range jobs {
			stages += len(j.Stages)
		}
		fmt.Printf("servers=%d threshold=%d jobs=%d stages=%d\n", cfg.Servers, cfg.Threshold, len(jobs), stages)
	},
}

func init() {
	registerInputFlags(validateCmd)
	rootCmd.AddCommand(validateCmd)
}
