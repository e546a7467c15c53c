package cmd

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/spf13/cobra"
)

var validateSkipLocal bool

var validateCmd = &cobra.Command{
	Use:   "validate <invoice.pdf>",
	Short: "Validate a PDF for ZUGFeRD/Factur-X compliance",
	Long: `Upload an existing PDF to the validation endpoint and print the
compliance report.

The file is sanity-checked locally first so that obviously broken
documents do not consume a request; use --skip-local-check to upload
anyway.

Examples:
  envoice validate invoice.pdf
  envoice validate invoice.pdf --skip-local-check`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateSkipLocal, "skip-local-check", false, "Skip the local PDF structure check")
}

func runValidate(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	path := args[0]

	if !validateSkipLocal {
		if err := pdfapi.ValidateFile(path, nil); err != nil {
			return fmt.Errorf("local PDF check failed (use --skip-local-check to upload anyway): %w", err)
		}
		printVerbose("Local PDF structure check passed\n")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	report, err := client.Validate(context.Background(), base64.StdEncoding.EncodeToString(data))
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	return nil
}
