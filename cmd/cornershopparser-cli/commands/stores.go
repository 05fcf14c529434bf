package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"cornershopparser/internal/apis/cornershop/usecases"
	"cornershopparser/internal/domain/models"
)

var countriesFlags struct {
	live bool
}

func init() {
	countriesCmd.Flags().BoolVar(&countriesFlags.live, "live", false, "print the storefront's country list instead of the built-in one")
	rootCmd.AddCommand(storesCmd, countriesCmd)
}

var storesCmd = &cobra.Command{
	Use:   "stores",
	Short: "Lists the stores delivering to the configured address.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cur.cfg.Cornershop.Address == "" {
			return fmt.Errorf("address is required (config cornershop.address or --address)")
		}
		svc, err := cur.connect(cmd.Context())
		if err != nil {
			return err
		}

		dir := usecases.NewDirectory(svc, cur.log)
		list, err := dir.ListStores(cmd.Context(), cur.cfg.Cornershop.Address, cur.cfg.Cornershop.Country)
		if err != nil {
			return err
		}
		return cur.emit(cmd.Context(), models.Records(list), cur.cfg.Cornershop.Address+" Stores", flags.save)
	},
}

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "Lists the countries the storefront serves.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !countriesFlags.live {
			return cur.emit(cmd.Context(), models.Records(models.AcceptedCountries), "Countries", flags.save)
		}

		svc, err := cur.connect(cmd.Context())
		if err != nil {
			return err
		}
		raw, err := usecases.NewDirectory(svc, cur.log).Countries(cmd.Context())
		if err != nil {
			return err
		}
		items := make([]models.Record, 0, len(raw))
		for _, m := range raw {
			items = append(items, countryRecord(m))
		}
		return cur.emit(cmd.Context(), items, "Countries", flags.save)
	},
}

// countryRecord keeps the well-known keys in a fixed order, or every key
// sorted when the payload has none of them.
func countryRecord(m map[string]any) models.Fields {
	out := models.Fields{}
	for _, k := range []string{"code", "name", "language", "currency"} {
		if v, ok := m[k]; ok {
			out = append(out, models.Field{Name: k, Value: v})
		}
	}
	if len(out) > 0 {
		return out
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, models.Field{Name: k, Value: m[k]})
	}
	return out
}
