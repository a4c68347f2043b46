package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"

	"github.com/db47h/bigfmt"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	okColor   = color.New(color.FgGreen)
	markColor = color.New(color.FgYellow, color.Bold)
)

func setupColor(mode string) error {
	switch mode {
	case "auto":
		color.NoColor = !isTerminal(os.Stdout) || !isTerminal(os.Stderr)
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("unsupported color mode %q (must be auto, on or off)", mode)
	}
	return nil
}

// fileConfig is the layout of configuration and batch files:
//
//	[printer]
//	mode = "Z"
//	separator = " "
//	prec = 113
//
//	[[case]]
//	name = "third"
//	format = "%.10Rf"
//	args = ["1/3"]
//	want = "0.3333333333"
type fileConfig struct {
	Printer printerConfig `toml:"printer"`
	Cases   []caseConfig  `toml:"case"`
}

type printerConfig struct {
	Mode        *bigfmt.RoundingMode `toml:"mode"`
	Separator   string               `toml:"separator"`
	MaxFixedExp int                  `toml:"max_fixed_exp"`
	Prec        uint                 `toml:"prec"`
	NFC         bool                 `toml:"nfc"`
}

type caseConfig struct {
	Name   string   `toml:"name"`
	Format string   `toml:"format"`
	Args   []string `toml:"args"`
	Want   *string  `toml:"want"`
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return fileConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fileConfig{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// settings are the effective formatting options of a command.
type settings struct {
	printer bigfmt.Printer
	prec    uint
	nfc     bool
}

func defaultSettings() *settings {
	return &settings{prec: 53}
}

func (s *settings) apply(cfg printerConfig) {
	if cfg.Mode != nil {
		s.printer.Mode = *cfg.Mode
	}
	if cfg.Separator != "" {
		s.printer.Separator = cfg.Separator
	}
	if cfg.MaxFixedExp > 0 {
		s.printer.MaxFixedExp = cfg.MaxFixedExp
	}
	if cfg.Prec > 0 {
		s.prec = cfg.Prec
	}
	s.nfc = s.nfc || cfg.NFC
}

func modeFromString(s string) (bigfmt.RoundingMode, bool) {
	if len(s) != 1 {
		return 0, false
	}
	return bigfmt.ModeFromLetter(s[0])
}

// text returns s, normalized to NFC if requested.
func (s *settings) text(str string) string {
	if s.nfc {
		return norm.NFC.String(str)
	}
	return str
}

// loadSettings builds the settings of cmd from the --config file, then from
// the flags set on the command line.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	s := defaultSettings()
	flags := cmd.Flags()
	if path, _ := flags.GetString("config"); path != "" {
		cfg, err := loadConfig(path)
		if err != nil {
			return nil, err
		}
		s.apply(cfg.Printer)
	}
	if err := s.applyFlags(cmd); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *settings) applyFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if flags.Changed("mode") {
		m, _ := flags.GetString("mode")
		if err := s.printer.Mode.UnmarshalText([]byte(m)); err != nil {
			return err
		}
	}
	if flags.Changed("sep") {
		s.printer.Separator, _ = flags.GetString("sep")
	}
	if flags.Changed("max-fixed-exp") {
		s.printer.MaxFixedExp, _ = flags.GetInt("max-fixed-exp")
	}
	if flags.Changed("prec") {
		s.prec, _ = flags.GetUint("prec")
		if s.prec == 0 {
			return fmt.Errorf("--prec must be positive")
		}
	}
	if flags.Changed("nfc") {
		s.nfc, _ = flags.GetBool("nfc")
	}
	return nil
}
