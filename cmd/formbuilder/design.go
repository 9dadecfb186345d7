package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	formbuilder "github.com/goliatone/go-formbuilder"
	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/compiler"
	"github.com/goliatone/go-formbuilder/pkg/openapi"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/html"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
	"github.com/goliatone/go-formbuilder/pkg/widgets"
)

type exportFlags struct {
	format       string
	output       string
	title        string
	themeVariant string
	schemaFormat string
}

func (f *exportFlags) register(cmd *cobra.Command, defaultFormat string) {
	cmd.Flags().StringVar(&f.format, "export", defaultFormat, "export format (html|json|openapi)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "export file (stdout if empty)")
	cmd.Flags().StringVar(&f.title, "title", "", "form title")
	cmd.Flags().StringVar(&f.themeVariant, "theme-variant", "", "preview theme variant (light|dark)")
	cmd.Flags().StringVar(&f.schemaFormat, "schema-format", "json", "openapi encoding (json|yaml)")
}

func (f *exportFlags) registry(logger *zap.Logger) (*render.Registry, error) {
	manifest := html.DefaultManifest()
	return formbuilder.NewRegistry(
		formbuilder.WithTheme(html.NewStaticSelector(manifest), manifest.Name, f.themeVariant),
		formbuilder.WithOpenAPI(openapi.Options{Title: f.title}, f.schemaFormat),
		formbuilder.WithLogger(logger),
	)
}

func (f *exportFlags) export(ctx context.Context, a *app, registry *render.Registry, b *builder.Builder) error {
	out, _, err := formbuilder.Export(ctx, registry, f.format, b, render.RenderOptions{Title: f.title})
	if err != nil {
		return err
	}
	return writeOutput(a, f.output, out)
}

func newDesignCommand(a *app) *cobra.Command {
	var (
		catalogPath string
		submit      string
		flags       exportFlags
	)
	cmd := &cobra.Command{
		Use:   "design",
		Short: "Build a form interactively, then export it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := a.logger()
			defer func() { _ = logger.Sync() }()

			palette, err := loadCatalog(catalogPath)
			if err != nil {
				return err
			}
			format := render.Format(submit)
			if format != render.FormatJSON && format != render.FormatURLEncoded {
				return fmt.Errorf("unsupported submit format %q", submit)
			}
			registry, err := flags.registry(logger)
			if err != nil {
				return err
			}

			driver := a.promptDriver()
			theme := tui.Theme{ErrorPrefix: "! "}
			b := builder.New(
				builder.WithCatalog(palette),
				builder.WithCompiler(compiler.New(
					compiler.WithDecorators(widgets.NewRegistry()),
					compiler.WithLogger(logger),
				)),
				builder.WithNotifier(tui.NewNotifier(driver, theme)),
				builder.WithSubmitFormat(format),
				builder.WithLogger(logger),
			)

			designer := tui.NewDesigner(b,
				tui.WithPromptDriver(driver),
				tui.WithOutputFormat(format),
				tui.WithTheme(theme),
				tui.WithLogger(logger),
			)
			if err := designer.Run(cmd.Context()); err != nil {
				if errors.Is(err, tui.ErrAborted) {
					return errors.New("design aborted")
				}
				return err
			}

			if flags.format == "" {
				return nil
			}
			return flags.export(cmd.Context(), a, registry, b)
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog file merged over the built-in palette")
	cmd.Flags().StringVar(&submit, "submit-format", string(render.FormatJSON), "submission encoding (json|form)")
	flags.register(cmd, "")
	return cmd
}
