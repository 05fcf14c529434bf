package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"cornershopparser/internal/domain/models"
)

var searchFlags struct {
	allAisles bool
}

func init() {
	searchCmd.Flags().BoolVar(&searchFlags.allAisles, "all-aisles", false, "keep products of every result aisle, not only the main one")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Searches the store and exports the matching products.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q := strings.Join(args, " ")
		st, err := cur.openStore(cmd.Context())
		if err != nil {
			return err
		}
		products, err := st.Search(cmd.Context(), q, !searchFlags.allAisles)
		if err != nil {
			return err
		}
		return cur.emit(cmd.Context(), models.Records(products), st.Catalog().DisplayName()+" "+q, true)
	},
}
