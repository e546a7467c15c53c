package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rezonia/envoice-go/pkg/envoice"
)

var (
	version = "1.0.0"

	// Global flags
	cfgFile string
	verbose bool
	apiKey  string
	apiURL  string
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "envoice",
	Short: "Generate EN 16931 e-invoices via the envoice.dev API",
	Long: `envoice is a CLI for the envoice.dev invoice-generation API.

It builds an invoice request from a JSON file, validates required fields
locally, submits the request and saves the returned PDF.

Examples:
  # Generate an invoice PDF
  envoice generate invoice.json -o invoice.pdf

  # Validate an existing PDF for ZUGFeRD/Factur-X compliance
  envoice validate invoice.pdf

  # Show remaining quota
  envoice account

  # Draft an invoice file from a plain-text description
  envoice draft "8 hours consulting for Customer AG at 150 EUR" -o draft.json

  # Run a local stub API for offline development
  envoice sandbox --address :8080`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: $HOME/.envoice.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key (env: ENVOICE_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "API base URL (env: ENVOICE_API_URL)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", envoice.DefaultTimeout, "Request timeout")

	cobra.OnInitialize(initConfig)
}

// initConfig resolves settings with the precedence flags > environment >
// config file.
func initConfig() {
	// A local .env is picked up silently when present
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".envoice")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("ENVOICE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		printVerbose("Using config file: %s\n", viper.ConfigFileUsed())
	}

	if apiKey == "" {
		apiKey = viper.GetString("api_key")
	}
	if apiURL == "" {
		apiURL = viper.GetString("api_url")
	}
}

// newClient builds the API client from the resolved configuration
func newClient() (*envoice.Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required (--api-key, ENVOICE_API_KEY or api_key in the config file)")
	}

	opts := []envoice.ClientOption{envoice.WithTimeout(timeout)}
	if apiURL != "" {
		opts = append(opts, envoice.WithBaseURL(apiURL))
	}

	return envoice.NewClient(apiKey, opts...)
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
