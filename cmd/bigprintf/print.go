package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	printVerbose bool
	printRaw     bool
)

func init() {
	printCmd.Flags().BoolVarP(&printVerbose, "verbose", "v", false, "report the byte count and %n results on stderr")
	printCmd.Flags().BoolVar(&printRaw, "raw", false, "do not interpret backslash escapes in FORMAT")
}

var printCmd = &cobra.Command{
	Use:   "print FORMAT [OPERAND...]",
	Short: "Render FORMAT with operands typed by its directives",
	Long: `print renders FORMAT to stdout. Each operand is read as the type the
directive consuming it expects: R and F operands are decimal or hexadecimal
floats read at --prec bits (or inf, nan), Z operands integers, Q operands
fractions a/b, N operands comma separated hexadecimal limbs, and R* rounding
modes single letters.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		format := s.text(args[0])
		if !printRaw {
			if format, err = unescape(format); err != nil {
				return err
			}
		}
		b, err := buildArgs(s, format, args[1:])
		if err != nil {
			return err
		}
		n, err := s.printer.Fprintf(cmd.OutOrStdout(), format, b.args...)
		if err != nil {
			return err
		}
		if printVerbose {
			w := cmd.ErrOrStderr()
			fmt.Fprintf(w, "%s %d bytes\n", okColor.Sprint("ok"), n)
			for _, c := range b.counts {
				fmt.Fprintf(w, "%s at offset %d: %s\n", markColor.Sprint(c.directive), c.pos, c.read())
			}
		}
		return nil
	},
}

// unescape interprets Go backslash escapes such as \n and \t in s.
func unescape(s string) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}
	u, err := strconv.Unquote(`"` + strings.ReplaceAll(s, `"`, `\"`) + `"`)
	if err != nil {
		return "", fmt.Errorf("invalid escape in format %q", s)
	}
	return u, nil
}
