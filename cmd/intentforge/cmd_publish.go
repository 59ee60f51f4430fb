package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"intentforge/internal/dataset"
	"intentforge/internal/publish"
)

var (
	publishAccount   string
	publishContainer string
	publishPrefix    string
	publishVerify    bool
)

func newPublishCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish [directory]",
		Short: "Upload run artifacts to Azure Blob Storage",
		Long: `Upload the artifacts of a completed run.

Reads manifest.json from the run directory (default: the profile's
output_dir) and uploads every partition's JSONL artifacts, then the
manifest itself, authenticating with the default Azure credential chain.`,
		Args: cobra.MaximumNArgs(1),
		RunE: publishCommandE,
	}

	cmd.Flags().StringVar(&publishAccount, "account", "", "Storage account URL, e.g. https://myaccount.blob.core.windows.net")
	cmd.Flags().StringVar(&publishContainer, "container", "", "Blob container name")
	cmd.Flags().StringVar(&publishPrefix, "prefix", "", "Optional blob name prefix")
	cmd.Flags().BoolVar(&publishVerify, "verify", false, "Re-read every artifact and check row counts against the manifest before uploading")

	return cmd
}

func publishCommandE(cmd *cobra.Command, args []string) error {
	if publishAccount == "" || publishContainer == "" {
		return fmt.Errorf("--account and --container are required")
	}

	var dir string
	if len(args) > 0 {
		dir = args[0]
	} else {
		profile, err := loadProfile("")
		if err != nil {
			return err
		}
		dir = profile.OutputDir
	}

	if publishVerify {
		if err := dataset.Verify(dir); err != nil {
			return fmt.Errorf("verifying %s: %w", dir, err)
		}
	}

	up, err := publish.NewBlobUploader(publishAccount, publishContainer, publishPrefix)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	results, err := publish.Run(cmd.Context(), up, dir)
	for _, r := range results {
		fmt.Fprintf(w, "Uploaded %s (%s, %d bytes)\n", r.Name, r.ContentType, r.Size) //nolint:errcheck
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%d artifacts published\n", len(results)) //nolint:errcheck
	return nil
}
