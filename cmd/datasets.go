package cmd

import (
	"context"
	"dsfetch/internal/provider"
	"dsfetch/pkg/utils"
	"time"

	"github.com/spf13/cobra"
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List dataset archives available from the provider",
	Long: `List the dataset archives available in the configured bucket.
The bucket name is taken from the configuration file unless overridden with --bucket flag.`,
	Example: `  # List datasets in the configured bucket
  dsfetch datasets

  # List datasets in a specific bucket
  dsfetch datasets --bucket my-other-bucket

  # Verbose output
  dsfetch datasets --verbose`,
	Run: func(cmd *cobra.Command, args []string) {
		runDatasets(cmd)
	},
}

func runDatasets(cmd *cobra.Command) {
	cfg.BucketName = getBucketName(cmd)

	client, err := provider.New(cfg)
	if err != nil {
		utils.PrintError(err, "datasets")
		return
	}

	timeout, _ := cmd.Flags().GetInt("timeout")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	if isVerbose(cmd) {
		cmd.Printf("Listing datasets in bucket: %s\n", getBucketName(cmd))
	}

	list, err := client.ListDatasets(ctx)
	if err != nil {
		utils.PrintError(err, "datasets")
		return
	}

	if err := utils.PrintJSON(list); err != nil {
		utils.PrintError(err, "datasets")
		return
	}

	if isVerbose(cmd) {
		cmd.Printf("Found %d datasets\n", list.TotalCount)
	}
}

func init() {
	datasetsCmd.Flags().Int("timeout", 300, "Timeout in seconds for the operation")
}
