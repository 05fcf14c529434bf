package commands

import (
	"github.com/spf13/cobra"

	"cornershopparser/internal/domain/models"
)

func init() {
	rootCmd.AddCommand(departmentsCmd, aislesCmd, offersCmd)
}

var departmentsCmd = &cobra.Command{
	Use:   "departments",
	Short: "Lists the departments of the store.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := cur.openStore(cmd.Context())
		if err != nil {
			return err
		}
		items := models.Records(st.Catalog().Departments)
		return cur.emit(cmd.Context(), items, st.DepartmentsFileName(), flags.save)
	},
}

var aislesCmd = &cobra.Command{
	Use:   "aisles",
	Short: "Lists every aisle of the store.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := cur.openStore(cmd.Context())
		if err != nil {
			return err
		}
		items := models.Records(st.Catalog().Aisles())
		return cur.emit(cmd.Context(), items, st.AislesFileName(), flags.save)
	},
}

var offersCmd = &cobra.Command{
	Use:   "offers",
	Short: "Lists the featured offers of the store.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := cur.openStore(cmd.Context())
		if err != nil {
			return err
		}
		items := models.Records(st.Catalog().Offers)
		return cur.emit(cmd.Context(), items, st.OffersFileName(), flags.save)
	},
}
