package tui

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/render"
)

// Theme captures optional formatting hints the driver can apply when printing
// messages. Keep minimal to avoid coupling session logic to ANSI specifics.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

type settings struct {
	driver       PromptDriver
	outputFormat render.Format
	theme        Theme
	logger       *zap.Logger
}

func newSettings(options []Option) settings {
	s := settings{
		outputFormat: render.FormatJSON,
		logger:       zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s
}

// Option configures a Filler or a Designer.
type Option func(*settings)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *settings) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutputFormat selects the submission serialization format.
func WithOutputFormat(format render.Format) Option {
	return func(s *settings) {
		if format != "" {
			s.outputFormat = format
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *settings) {
		s.theme = theme
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}
