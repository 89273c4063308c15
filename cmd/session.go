// Package cmd holds the debugging commands of the tyverse CLI
package cmd

import (
	"io"
	"os"

	"github.com/cottand/tyverse/internal/config"
	"github.com/cottand/tyverse/internal/log"
	"github.com/cottand/tyverse/session"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var globalFlags struct {
	configPath   string
	pyCompatible bool
	logLevel     string
	logSections  []string
}

// RegisterGlobalFlags adds the flags every command reads to root
func RegisterGlobalFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.StringVarP(&globalFlags.configPath, "config", "c", "", "path to a YAML config")
	flags.BoolVar(&globalFlags.pyCompatible, "py-compatible", false, "publish the universe for foreign code, overrides the config")
	flags.StringVarP(&globalFlags.logLevel, "log-level", "l", "", "log level, overrides the config")
	flags.StringSliceVar(&globalFlags.logSections, "log-section", nil, "sections to log, overrides the config")
}

// openSession builds a session from the config file and the flags of cmd
func openSession(cmd *cobra.Command) (*session.Session, error) {
	cfg := config.Config{}
	if globalFlags.configPath != "" {
		var err error
		if cfg, err = config.Load(globalFlags.configPath); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("py-compatible") {
		cfg.PyCompatible = globalFlags.pyCompatible
	}
	if globalFlags.logLevel != "" {
		cfg.Log.Level = globalFlags.logLevel
	}
	if len(globalFlags.logSections) > 0 {
		cfg.Log.Sections = globalFlags.logSections
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)
	if len(cfg.Log.Sections) > 0 {
		log.SetSections(cfg.Log.Sections...)
	}
	return session.New(cfg)
}

// colorEnabled is true when w is a terminal and NO_COLOR is unset
func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

const (
	ansiRed   = "\033[31m"
	ansiGreen = "\033[32m"
	ansiBold  = "\033[1m"
	ansiReset = "\033[0m"
)

func paint(w io.Writer, color, s string) string {
	if !colorEnabled(w) {
		return s
	}
	return color + s + ansiReset
}

func verdict(w io.Writer, ok bool) string {
	if ok {
		return paint(w, ansiGreen, "true")
	}
	return paint(w, ansiRed, "false")
}
