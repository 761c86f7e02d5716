package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"Tickfunds/internal/repository"
	xhttp "Tickfunds/pkg/http"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// cli carries the flags shared by every subcommand.
type cli struct {
	output  string
	catalog *repository.Catalog
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "tickfunds",
		Short: "Offline calculators over the Tickfunds catalog",
		Long: `Run the Tickfunds calculators without the HTTP service.

Available subcommands:
  emi    - Loan EMI and amortization schedule
  risk   - Score a risk questionnaire from a YAML answers file
  screen - Filter and sort mutual funds
  power  - Borrowing power from portfolio and income`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch c.output {
			case "json", "yaml":
			default:
				return fmt.Errorf("--output must be json or yaml, got %q", c.output)
			}
			catalog, err := repository.LoadCatalog()
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}
			c.catalog = catalog
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&c.output, "output", "o", "json", "output format (json or yaml)")

	root.AddCommand(
		c.emiCmd(),
		c.riskCmd(),
		c.screenCmd(),
		c.powerCmd(),
	)
	return root
}

func (c *cli) print(w io.Writer, v interface{}) error {
	if c.output == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// validate applies defaults and validation tags the same way the API does.
func validate(cmd *cobra.Command, req interface{}) error {
	errs := xhttp.ValidateStruct(cmd.Context(), req)
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return fmt.Errorf("invalid input: %s", strings.Join(msgs, "; "))
}

// appError flattens an API error into one line for the terminal.
func appError(err error) error {
	var ae *xhttp.AppError
	if errors.As(err, &ae) {
		if len(ae.Details) > 0 {
			parts := make([]string, len(ae.Details))
			for i, d := range ae.Details {
				parts[i] = fmt.Sprintf("%s: %s", d.Field, d.Message)
			}
			return fmt.Errorf("%s (%s)", ae.Message, strings.Join(parts, "; "))
		}
		return fmt.Errorf("%s", ae.Message)
	}
	return err
}
