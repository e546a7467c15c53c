package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rezonia/envoice-go/internal/money"
	"github.com/rezonia/envoice-go/pkg/envoice"
)

var (
	generateOutput   string
	generateTemplate string
	generateLocale   string
	generateLogo     string
	generateLogoMm   int
	generateFooter   string
	generateAccent   string
	generateSummary  bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <invoice.json>",
	Short: "Generate an invoice PDF",
	Long: `Generate an invoice PDF from a JSON invoice file.

The file holds the invoice payload (number, date, seller, buyer, items,
optional payment/currency); appearance options are set via flags.

Example file:
  {
    "number": "2026-001",
    "date": "2026-01-15",
    "seller": {"name": "Acme GmbH", "vatId": "DE123456789", "city": "Berlin", "country": "DE"},
    "buyer":  {"name": "Customer AG", "city": "München", "country": "DE"},
    "items":  [{"description": "Consulting", "quantity": 8, "unitPrice": 150.0}]
  }

Examples:
  envoice generate invoice.json
  envoice generate invoice.json -o out/invoice.pdf --template classic --locale de
  envoice generate invoice.json --logo logo.png --logo-width 40 --summary`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output PDF path (default: server-suggested filename)")
	generateCmd.Flags().StringVar(&generateTemplate, "template", "", "Template style (minimal, classic, compact)")
	generateCmd.Flags().StringVar(&generateLocale, "locale", "", "Label language (de, en, fr, es, it)")
	generateCmd.Flags().StringVar(&generateLogo, "logo", "", "Logo image file")
	generateCmd.Flags().IntVar(&generateLogoMm, "logo-width", 0, "Logo width in mm")
	generateCmd.Flags().StringVar(&generateFooter, "footer", "", "Footer text")
	generateCmd.Flags().StringVar(&generateAccent, "accent", "", "Accent color (hex code)")
	generateCmd.Flags().BoolVar(&generateSummary, "summary", false, "Print a totals preview after generating")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	invoice, err := readInvoiceFile(args[0])
	if err != nil {
		return err
	}

	builder := client.Invoice().
		Number(invoice.Number).
		Date(invoice.Date).
		Seller(invoice.Seller).
		Buyer(invoice.Buyer).
		Items(invoice.Items)

	if invoice.DueDate != "" {
		builder.DueDate(invoice.DueDate)
	}
	if invoice.Payment != nil {
		builder.Payment(*invoice.Payment)
	}
	if invoice.Currency != "" {
		builder.Currency(invoice.Currency)
	}
	if generateTemplate != "" {
		builder.Template(envoice.Template(generateTemplate))
	}
	if generateLocale != "" {
		builder.Locale(generateLocale)
	}
	if generateFooter != "" {
		builder.FooterText(generateFooter)
	}
	if generateAccent != "" {
		builder.AccentColor(generateAccent)
	}
	if generateLogo != "" {
		if _, err := builder.LogoFile(generateLogo, generateLogoMm); err != nil {
			return fmt.Errorf("read logo: %w", err)
		}
	}

	printVerbose("Submitting invoice %s\n", invoice.Number)

	result, err := builder.Generate(context.Background())
	if err != nil {
		return err
	}

	failure, ok := result.(*envoice.InvoiceFailure)
	if ok {
		fmt.Fprintln(os.Stderr, "Invoice rejected:")
		fmt.Fprintln(os.Stderr, failure.UserMessage())
		return fmt.Errorf("%d validation error(s)", len(failure.Errors))
	}

	success := result.(*envoice.InvoiceSuccess)

	output := generateOutput
	if output == "" {
		output = success.Filename
	}
	if err := success.SavePDF(output); err != nil {
		return err
	}

	fmt.Printf("Saved %s (%s, profile %s)\n", output, success.Validation.Status, success.Validation.Profile)
	for _, warning := range success.Validation.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}
	if success.Account != nil {
		printVerbose("Quota remaining: %d (%s plan)\n", success.Account.Remaining, success.Account.Plan)
	}

	if generateSummary {
		currency := invoice.Currency
		if currency == "" {
			currency = envoice.DefaultCurrency
		}
		printSummary(invoice.Items, currency)
	}

	return nil
}

func readInvoiceFile(path string) (*envoice.InvoiceData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var invoice envoice.InvoiceData
	if err := json.Unmarshal(data, &invoice); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	// The file form gets the same defaults the builder conveniences apply
	for i := range invoice.Items {
		if invoice.Items[i].Unit == "" {
			invoice.Items[i].Unit = envoice.DefaultUnit
		}
		if invoice.Items[i].VATRate == 0 {
			invoice.Items[i].VATRate = envoice.DefaultVATRate
		}
	}

	return &invoice, nil
}

// printSummary shows client-side preview totals. The server remains the
// authority on all amounts printed on the document.
func printSummary(items []envoice.LineItem, currency string) {
	totals := money.Sum(items)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\nDESCRIPTION\tQTY\tUNIT PRICE\tNET")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%g\t%s\t%s\n",
			item.Description,
			item.Quantity,
			money.Format(money.FromFloat(item.UnitPrice), currency),
			money.Format(money.LineNet(item), currency),
		)
	}
	w.Flush()

	fmt.Printf("\nNet total:   %s\n", money.Format(totals.Net, currency))
	fmt.Printf("VAT total:   %s\n", money.Format(totals.VAT, currency))
	fmt.Printf("Gross total: %s\n", money.Format(totals.Gross, currency))
}
