package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "bigprintf",
	Short: "Format arbitrary-precision numbers with printf directives",
	Long: `bigprintf renders big floats, integers and rationals through bigfmt
format strings. Operands are typed from the directives that consume them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		mode, _ := cmd.Flags().GetString("color")
		return setupColor(mode)
	},
}

// main registers the subcommands and global flags, then runs the root command.
// Errors are logged and turn into exit status 1.
func main() {
	log.SetFlags(0)
	log.SetPrefix("bigprintf: ")

	rootCmd.Version = version

	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("config", "", "TOML file with [printer] defaults")
	rootCmd.PersistentFlags().String("color", "auto", "colorize diagnostics (auto|on|off)")
	rootCmd.PersistentFlags().Uint("prec", 53, "precision in bits of R and F operands")
	rootCmd.PersistentFlags().String("mode", "", "default rounding letter for R conversions (N|Z|U|D|Y)")
	rootCmd.PersistentFlags().String("sep", "", "digit grouping separator for the ' flag")
	rootCmd.PersistentFlags().Int("max-fixed-exp", 0, "largest binary exponent accepted by %Rf (0: library default)")
	rootCmd.PersistentFlags().Bool("nfc", false, "normalize format strings and text operands to NFC")

	if err := rootCmd.Execute(); err != nil {
		log.Print(errColor.Sprint(err))
		os.Exit(1)
	}
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
