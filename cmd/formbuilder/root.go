package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/catalog"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
)

// app carries the process wiring shared by every subcommand. Tests swap the
// prompt driver and the logger factory.
type app struct {
	out       io.Writer
	errOut    io.Writer
	verbose   bool
	driver    tui.PromptDriver
	newLogger func(verbose bool) (*zap.Logger, error)
}

func newApp(out, errOut io.Writer) *app {
	return &app{
		out:       out,
		errOut:    errOut,
		newLogger: defaultLogger,
	}
}

func defaultLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func (a *app) logger() *zap.Logger {
	logger, err := a.newLogger(a.verbose)
	if err != nil {
		fmt.Fprintf(a.errOut, "logger unavailable: %v\n", err)
		return zap.NewNop()
	}
	return logger
}

func (a *app) promptDriver() tui.PromptDriver {
	if a.driver != nil {
		return a.driver
	}
	return tui.NewSurveyDriver(a.errOut)
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "formbuilder",
		Short:         "Design forms from a palette, preview them and export their schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable development logging")

	root.AddCommand(
		newCatalogCommand(a),
		newDesignCommand(a),
		newPreviewCommand(a),
	)

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w\n\n%s", err, cmd.UsageString())
	})
	return root
}

// loadCatalog merges the file at path over the built-in palette.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	loaded, err := catalog.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return catalog.Default().Merge(loaded), nil
}

func writeOutput(a *app, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := a.out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(a.errOut, "Written to %s\n", path)
	return nil
}
