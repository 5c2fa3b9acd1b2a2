package cmd

import (
	"context"
	"dsfetch/internal/fetcher"
	"dsfetch/internal/provider"
	"dsfetch/pkg/utils"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [dataset-id]",
	Short: "Download and extract a dataset archive",
	Long: `Download a dataset archive from the configured provider and extract it.

The command downloads <dataset-id>.zip into the destination directory while
showing live progress inferred from the growing file, extracts all members,
removes the archive and prints a JSON report of the extracted files.`,
	Example: `  # Fetch a dataset into the configured download directory
  dsfetch fetch playground-series-s5e8

  # Fetch into a specific destination
  dsfetch fetch playground-series-s5e8 --destination /tmp/datasets/

  # Keep the archive after extraction
  dsfetch fetch playground-series-s5e8 --keep-archive

  # Verbose fetch from a different bucket
  dsfetch fetch census-data --bucket my-other-bucket --verbose`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runFetch(cmd, args)
	},
}

func runFetch(cmd *cobra.Command, args []string) {
	datasetID := args[0]
	destination, _ := cmd.Flags().GetString("destination")
	keepArchive, _ := cmd.Flags().GetBool("keep-archive")
	confirm, _ := cmd.Flags().GetBool("confirm")

	// If destination is empty, use the configured download directory
	if destination == "" {
		destination = cfg.DownloadDir
	}

	// Show operation summary if not in confirm mode
	if !confirm {
		bucketName := getBucketName(cmd)

		fmt.Printf("Fetch operation summary:\n")
		fmt.Printf("Bucket: %s\n", bucketName)
		fmt.Printf("Dataset: %s\n", datasetID)
		fmt.Printf("Destination: %s\n", destination)

		fmt.Print("Continue with fetch? (y/N): ")
		var response string
		_, err := fmt.Scanln(&response)
		if err != nil {
			utils.PrintError(err, "fetch")
			return
		}
		if !slices.Contains([]string{"y", "yes"}, strings.ToLower(response)) {
			fmt.Println("Fetch cancelled.")
			return
		}
	}

	cfg.BucketName = getBucketName(cmd)

	client, err := provider.New(cfg)
	if err != nil {
		utils.PrintError(err, "fetch")
		return
	}

	timeout, _ := cmd.Flags().GetInt("timeout")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	if isVerbose(cmd) {
		cmd.Printf("Starting fetch operation...\n")
		cmd.Printf("  Dataset: %s\n", datasetID)
		cmd.Printf("  Destination: %s\n", destination)
		cmd.Printf("  Keep archive: %t\n", keepArchive)
	}

	f := fetcher.New(client, destination)
	f.KeepArchive = keepArchive

	report, err := f.Run(ctx, datasetID)
	if err != nil {
		utils.PrintError(err, "fetch")
		return
	}

	if err := utils.PrintJSON(report); err != nil {
		utils.PrintError(err, "fetch")
		return
	}

	if isVerbose(cmd) {
		cmd.Println("Fetch operation completed")
		cmd.Printf("Extracted files: %d\n", report.TotalFiles)
	}
}

func init() {
	fetchCmd.Flags().StringP("destination", "d", "", "Local destination directory (default: configured download dir)")
	fetchCmd.Flags().Bool("keep-archive", false, "Keep the downloaded archive after extraction")
	fetchCmd.Flags().Bool("confirm", false, "Skip confirmation prompt")
	fetchCmd.Flags().Int("timeout", 3600, "Timeout in seconds for the operation (default: 1 hour)")

	fetchCmd.SetUsageTemplate(`Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

Aliases:
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}

Available Commands:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasHelpSubCommands}}

Additional help topics:{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`)
}
