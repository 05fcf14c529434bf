package commands

import (
	"github.com/spf13/cobra"

	"cornershopparser/internal/domain/models"
	"cornershopparser/internal/repository"
)

var productsFlags struct {
	key         string
	splitSheets bool
}

func init() {
	productsCmd.PersistentFlags().StringVar(&productsFlags.key, "key", "id", "lookup key: id|name")
	productsStoreCmd.Flags().BoolVar(&productsFlags.splitSheets, "split-sheets", false, "one worksheet per department (xlsx)")

	productsCmd.AddCommand(productsAisleCmd, productsDepartmentCmd, productsStoreCmd)
	rootCmd.AddCommand(productsCmd)
}

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Fetches and exports products of an aisle, a department or the whole store.",
}

var productsAisleCmd = &cobra.Command{
	Use:   "aisle <id|name>",
	Short: "Products of one aisle.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := models.ParseLookupKey(productsFlags.key)
		if err != nil {
			return err
		}
		st, err := cur.openStore(cmd.Context())
		if err != nil {
			return err
		}
		aisle, err := st.Catalog().FindAisle(args[0], key)
		if err != nil {
			return err
		}
		products, err := st.ProductsOfAisle(cmd.Context(), aisle.ID, models.ByID)
		if err != nil {
			return err
		}
		return cur.emit(cmd.Context(), models.Records(products), st.AisleFileName(aisle.ID), true)
	},
}

var productsDepartmentCmd = &cobra.Command{
	Use:   "department <id|name>",
	Short: "Products of every aisle of one department.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := models.ParseLookupKey(productsFlags.key)
		if err != nil {
			return err
		}
		st, err := cur.openStore(cmd.Context())
		if err != nil {
			return err
		}
		dep, err := st.Catalog().FindDepartment(args[0], key)
		if err != nil {
			return err
		}
		products, err := st.ProductsOfDepartment(cmd.Context(), dep.ID, models.ByID)
		if err != nil {
			return err
		}
		return cur.emit(cmd.Context(), models.Records(products), st.DepartmentFileName(dep.ID), true)
	},
}

var productsStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Products of the whole store.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		st, err := cur.openStore(ctx)
		if err != nil {
			return err
		}

		if !productsFlags.splitSheets {
			products, err := st.ProductsOfStore(ctx)
			if err != nil {
				return err
			}
			return cur.emit(ctx, models.Records(products), st.ProductsFileName(), true)
		}

		groups, err := st.ProductsOfStoreByDepartment(ctx)
		if err != nil {
			return err
		}
		sheets := make([]repository.Sheet, 0, len(groups))
		var all []models.Record
		for _, g := range groups {
			items := models.Records(g.Products)
			sheets = append(sheets, repository.Sheet{Name: g.Department.Name, Items: items})
			all = append(all, items...)
		}

		res, err := cur.exp().ExportSheets(ctx, sheets, st.ProductsFileName(), cur.headers, "")
		if err != nil {
			return err
		}
		cur.log.Info("exported", "format", res.Format, "path", res.Path, "sheets", len(sheets), "count", len(all))

		return cur.emit(ctx, all, st.ProductsFileName(), false)
	},
}
