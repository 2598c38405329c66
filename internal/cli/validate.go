package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/hightemp/countrydata/internal/currencies"
)

var strict bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Cross-check currencies against ISO 4217 and CLDR region data",
	Long: `Checks every currency record: the code must be a known ISO 4217 currency
and, where CLDR knows the region's tender, it should match.

Findings are advisory. With --strict, unknown currency codes exit with status 5.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := mustLoadApp()
		report := validateCurrencies(a.dir.Currencies())
		if err := report.write(os.Stdout, cfg.JSONOutput); err != nil {
			return err
		}
		if strict && report.Unknown > 0 {
			exitWithCode(ExitValidationFailed, fmt.Sprintf("%d unknown currency codes", report.Unknown))
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when a currency code is not ISO 4217")
}

type finding struct {
	Country string `json:"country"`
	Code    string `json:"code"`
	Problem string `json:"problem"`
}

type validationReport struct {
	Checked  int       `json:"checked"`
	Unknown  int       `json:"unknown"`
	Findings []finding `json:"findings"`
}

func validateCurrencies(list []currencies.Currency) *validationReport {
	failures := currencies.CheckAll(list)

	positions := make([]int, 0, len(failures))
	for i := range failures {
		positions = append(positions, i)
	}
	sort.Ints(positions)

	report := &validationReport{Checked: len(list), Findings: []finding{}}
	for _, i := range positions {
		err := failures[i]
		if errors.Is(err, currencies.ErrUnknownCode) {
			report.Unknown++
		}
		report.Findings = append(report.Findings, finding{
			Country: list[i].Country,
			Code:    list[i].Code,
			Problem: err.Error(),
		})
	}
	return report
}

func (r *validationReport) write(w io.Writer, jsonOutput bool) error {
	if jsonOutput {
		return printJSON(w, r)
	}
	for _, f := range r.Findings {
		fmt.Fprintf(w, "%s\t%s\t%s\n", f.Country, f.Code, f.Problem)
	}
	_, err := fmt.Fprintf(w, "Checked %d currencies: %d findings, %d unknown codes\n",
		r.Checked, len(r.Findings), r.Unknown)
	return err
}
