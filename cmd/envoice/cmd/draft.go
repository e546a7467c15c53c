package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rezonia/envoice-go/internal/extract"
)

var (
	draftOutput string
	draftLLMKey string
	draftLLMURL string
	draftModel  string
	draftFile   string
)

var draftCmd = &cobra.Command{
	Use:   "draft [description...]",
	Short: "Draft an invoice file from a plain-text description",
	Long: `Use an LLM to turn a plain-text description into an invoice JSON
file that "envoice generate" accepts. The draft is a starting point —
review it before generating.

Requires an OpenAI-compatible API key (env: ENVOICE_LLM_API_KEY).

Examples:
  envoice draft "8 hours consulting for Customer AG at 150 EUR, net 30" -o draft.json
  envoice draft --from-file notes.txt`,
	RunE: runDraft,
}

func init() {
	rootCmd.AddCommand(draftCmd)

	draftCmd.Flags().StringVarP(&draftOutput, "output", "o", "", "Output file (default: stdout)")
	draftCmd.Flags().StringVar(&draftLLMKey, "llm-api-key", "", "LLM API key (env: ENVOICE_LLM_API_KEY)")
	draftCmd.Flags().StringVar(&draftLLMURL, "llm-base-url", "", "LLM API base URL (env: ENVOICE_LLM_BASE_URL)")
	draftCmd.Flags().StringVar(&draftModel, "llm-model", "", "LLM model (env: ENVOICE_LLM_MODEL)")
	draftCmd.Flags().StringVar(&draftFile, "from-file", "", "Read the description from a file instead of arguments")
}

func runDraft(cmd *cobra.Command, args []string) error {
	key := draftLLMKey
	if key == "" {
		key = viper.GetString("llm_api_key")
	}
	if key == "" {
		return fmt.Errorf("LLM API key is required (--llm-api-key or ENVOICE_LLM_API_KEY)")
	}

	text, err := draftText(args)
	if err != nil {
		return err
	}

	var opts []extract.ClientOption
	if url := firstNonEmpty(draftLLMURL, viper.GetString("llm_base_url")); url != "" {
		opts = append(opts, extract.WithBaseURL(url))
	}
	if model := firstNonEmpty(draftModel, viper.GetString("llm_model")); model != "" {
		opts = append(opts, extract.WithModel(model))
	}

	client := extract.NewClient(key, opts...)

	printVerbose("Drafting invoice from %d characters of text\n", len(text))

	invoice, err := client.Draft(context.Background(), text)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(invoice, "", "  ")
	if err != nil {
		return err
	}

	if draftOutput == "" {
		fmt.Println(string(out))
		return nil
	}

	if err := os.WriteFile(draftOutput, append(out, '\n'), 0o644); err != nil {
		return err
	}
	fmt.Printf("Wrote draft to %s — review it, then run: envoice generate %s\n", draftOutput, draftOutput)

	return nil
}

func draftText(args []string) (string, error) {
	if draftFile != "" {
		data, err := os.ReadFile(draftFile)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	if len(args) == 0 {
		return "", fmt.Errorf("provide a description or --from-file")
	}
	return strings.Join(args, " "), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
