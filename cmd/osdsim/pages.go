//go:build !tinygo

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"flightosd/msp"
)

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List the menu pages and their current values",
	RunE:  runPages,
}

var portsCmd = &cobra.Command{
	Use:     "ports",
	Short:   "List serial ports usable with --serial",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ports, err := msp.Ports()
		if err != nil {
			return fmt.Errorf("list ports: %w", err)
		}
		if len(ports) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No serial ports found.")
			return nil
		}
		for _, p := range ports {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

func runPages(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, sessionOptions{quietLog: true})
	if err != nil {
		return err
	}
	defer s.Close()
	printPages(cmd.OutOrStdout(), s)
	return nil
}

func printPages(w io.Writer, s *session) {
	pages := s.sys.Engine.Pages()
	for i := range pages {
		p := &pages[i]
		var titles []string
		for _, c := range p.Columns() {
			if c.Title != "" {
				titles = append(titles, c.Title)
			}
		}
		fmt.Fprintf(w, "%d %s", i, p.Title)
		if len(titles) > 0 {
			fmt.Fprintf(w, " [%s]", strings.Join(titles, " "))
		}
		fmt.Fprintln(w)

		for _, r := range p.Rows() {
			var vals []string
			for col := 0; col < p.ColumnCount(); col++ {
				if v, ok := r.Text(col); ok {
					vals = append(vals, strings.TrimSpace(v))
				}
			}
			fmt.Fprintf(w, "  %-11s %-9s %s\n", r.Title, r.Kind, strings.Join(vals, " "))
		}
	}
}
