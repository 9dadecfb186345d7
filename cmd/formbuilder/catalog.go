package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/catalog"
)

func newCatalogCommand(a *app) *cobra.Command {
	var (
		catalogPath string
		format      string
	)
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the field and action palette",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := loadCatalog(catalogPath)
			if err != nil {
				return err
			}
			data, err := catalog.Marshal(c, format)
			if err != nil {
				return err
			}
			return writeOutput(a, "", data)
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog file merged over the built-in palette")
	cmd.Flags().StringVar(&format, "format", "yaml", "output format (yaml|json)")
	return cmd
}
