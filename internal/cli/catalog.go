package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	catalogOwner   string
	catalogAdmin   bool
	catalogName    string
	catalogDesc    string
	catalogColumns string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List, create and delete catalogs",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalogs visible to an owner",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.close()

		svc, err := e.catalogService()
		if err != nil {
			return err
		}
		catalogs, err := svc.List(cmd.Context(), catalogOwner, catalogAdmin)
		if err != nil {
			return err
		}

		for _, c := range catalogs {
			fmt.Printf("%s  %-24s  owner=%s  columns=[%s]  rows=%d\n",
				c.ID, c.Name, c.Owner, strings.Join(c.Columns, ","), len(c.Rows))
		}
		return nil
	},
}

var catalogCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an empty catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.close()

		svc, err := e.catalogService()
		if err != nil {
			return err
		}

		var columns []string
		if catalogColumns != "" {
			columns = strings.Split(catalogColumns, ",")
		}
		c, err := svc.Create(cmd.Context(), catalogName, catalogDesc, catalogOwner, columns)
		if err != nil {
			return err
		}
		fmt.Println(c.ID)
		return nil
	},
}

var catalogDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a catalog (hard delete; uploaded files are kept)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.close()

		svc, err := e.catalogService()
		if err != nil {
			return err
		}
		return svc.Delete(cmd.Context(), args[0])
	},
}

func init() {
	catalogCmd.PersistentFlags().StringVar(&catalogOwner, "owner", "", "owner user id")
	catalogCmd.PersistentFlags().BoolVar(&catalogAdmin, "admin", false, "act as admin (see all catalogs)")
	catalogCreateCmd.Flags().StringVar(&catalogName, "name", "", "catalog name")
	catalogCreateCmd.Flags().StringVar(&catalogDesc, "description", "", "catalog description")
	catalogCreateCmd.Flags().StringVar(&catalogColumns, "columns", "", "comma-separated column names")
	catalogCmd.AddCommand(catalogListCmd, catalogCreateCmd, catalogDeleteCmd)
}
