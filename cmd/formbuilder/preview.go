package main

import (
	"github.com/spf13/cobra"

	formbuilder "github.com/goliatone/go-formbuilder"
	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/compiler"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/widgets"
)

func newPreviewCommand(a *app) *cobra.Command {
	var (
		catalogPath string
		fields      []string
		actions     []string
		flags       exportFlags
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Drop palette entries in order and export the resulting form",
		Example: "  formbuilder preview --fields text,select --actions submit,cancel --export html\n" +
			"  formbuilder preview --fields radio-group --export openapi --schema-format yaml",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := a.logger()
			defer func() { _ = logger.Sync() }()

			palette, err := loadCatalog(catalogPath)
			if err != nil {
				return err
			}
			registry, err := flags.registry(logger)
			if err != nil {
				return err
			}

			kinds := make([]model.ActionKind, len(actions))
			for i, kind := range actions {
				kinds[i] = model.ActionKind(kind)
			}
			b, err := formbuilder.Build(fields, kinds,
				builder.WithCatalog(palette),
				builder.WithCompiler(compiler.New(
					compiler.WithDecorators(widgets.NewRegistry()),
					compiler.WithLogger(logger),
				)),
				builder.WithLogger(logger),
			)
			if err != nil {
				return err
			}
			return flags.export(cmd.Context(), a, registry, b)
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog file merged over the built-in palette")
	cmd.Flags().StringSliceVar(&fields, "fields", nil, "field template names, in drop order")
	cmd.Flags().StringSliceVar(&actions, "actions", []string{string(model.ActionSubmit)}, "action kinds, in drop order")
	flags.register(cmd, "html")
	return cmd
}
