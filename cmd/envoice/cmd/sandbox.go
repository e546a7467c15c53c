package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rezonia/envoice-go/internal/sandbox"
)

var (
	sandboxAddress string
	sandboxQuota   int
	sandboxKey     string
	sandboxDebug   bool
)

var sandboxCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "Run a local stub of the envoice API",
	Long: `Run a local API stub for offline development.

The stub serves the real endpoints with the real error shapes:
  - POST /v1/generate  (422 details, 402 once the quota is used up)
  - POST /v1/validate
  - GET  /v1/account
  - GET  /health

The generated PDF is a fixed stub document. Any non-blank API key is
accepted unless one is pinned with --sandbox-api-key.

Examples:
  envoice sandbox --address :8080
  envoice --api-url http://localhost:8080 --api-key env_sandbox_dev generate invoice.json`,
	RunE: runSandbox,
}

func init() {
	rootCmd.AddCommand(sandboxCmd)

	sandboxCmd.Flags().StringVar(&sandboxAddress, "address", ":8080", "Listen address")
	sandboxCmd.Flags().IntVar(&sandboxQuota, "quota", 100, "Number of generate calls before 402 responses")
	sandboxCmd.Flags().StringVar(&sandboxKey, "sandbox-api-key", "", "Pin the accepted API key (default: accept any non-blank key)")
	sandboxCmd.Flags().BoolVar(&sandboxDebug, "debug", false, "Enable debug mode")
}

func runSandbox(cmd *cobra.Command, args []string) error {
	srv := sandbox.NewServer(&sandbox.Config{
		Address: sandboxAddress,
		APIKey:  sandboxKey,
		Quota:   sandboxQuota,
		Debug:   sandboxDebug,
	})

	return srv.Start()
}
