package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/db47h/bigfmt"
)

var checkCmd = &cobra.Command{
	Use:   "check FORMAT",
	Short: "List the segments and directives of FORMAT",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		return check(cmd.OutOrStdout(), s.text(args[0]))
	},
}

func check(w io.Writer, format string) error {
	for _, seg := range bigfmt.Segments(format) {
		if !seg.Directive {
			fmt.Fprintf(w, "%4d  text       %q\n", seg.Pos, seg.Text)
			continue
		}
		d, err := seg.Parse()
		if err != nil {
			var fe *bigfmt.FormatError
			if errors.As(err, &fe) {
				fmt.Fprintln(w, format)
				fmt.Fprintln(w, strings.Repeat(" ", runewidth.StringWidth(format[:fe.Pos]))+markColor.Sprint("^"))
			}
			return err
		}
		fmt.Fprintf(w, "%4d  directive  %-12s %s\n", d.Pos, d.Raw, describe(d))
	}
	return nil
}

func describe(d *bigfmt.Directive) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "verb=%c type=%s", d.Verb, d.Type)
	if d.Flags != 0 {
		fmt.Fprintf(&sb, " flags=%q", d.Flags.String())
	}
	switch {
	case d.WidthArg:
		sb.WriteString(" width=*")
	case d.Width >= 0:
		fmt.Fprintf(&sb, " width=%d", d.Width)
	}
	switch {
	case d.PrecArg:
		sb.WriteString(" prec=*")
	case d.Prec >= 0:
		fmt.Fprintf(&sb, " prec=%d", d.Prec)
	}
	switch {
	case d.ModeArg:
		sb.WriteString(" mode=*")
	case d.ModeSet:
		fmt.Fprintf(&sb, " mode=%s", d.Mode)
	}
	if d.String() != d.Raw {
		fmt.Fprintf(&sb, " canonical=%s", d.String())
	}
	return sb.String()
}
