package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hightemp/countrydata/internal/countries"
	"github.com/hightemp/countrydata/internal/currencies"
	"github.com/hightemp/countrydata/internal/output"
)

var continentFilter string

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List countries with their codes, flags and currencies",
	Long: `Lists every country in dataset order: alpha-2, alpha-3, numeric code,
name, flag and currency code, tab-separated.

Examples:
  countrydata countries
  countrydata countries --continent EU
  countrydata countries --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := mustLoadApp()
		return listCountries(os.Stdout, a.dir.Countries(), continentFilter, cfg.JSONOutput)
	},
}

var currenciesCmd = &cobra.Command{
	Use:   "currencies",
	Short: "List currencies by country",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := mustLoadApp()
		return listCurrencies(os.Stdout, a.dir.Currencies(), cfg.JSONOutput)
	},
}

func init() {
	countriesCmd.Flags().StringVar(&continentFilter, "continent", "", "only list countries on this continent (AF, AN, AS, EU, NA, OC, SA)")
}

func listCountries(w io.Writer, list []countries.Country, continent string, jsonOutput bool) error {
	if continent != "" {
		filtered := list[:0:0]
		for _, c := range list {
			if strings.EqualFold(c.Continent, continent) {
				filtered = append(filtered, c)
			}
		}
		list = filtered
	}

	if jsonOutput {
		return printJSON(w, list)
	}
	if len(list) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(w, output.FormatCountries(list))
	return err
}

func listCurrencies(w io.Writer, list []currencies.Currency, jsonOutput bool) error {
	if jsonOutput {
		return printJSON(w, list)
	}
	if len(list) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(w, output.FormatCurrencies(list))
	return err
}
