package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mmcdole/edtag/internal/navigator"
)

const (
	ansiReset = "\x1b[0m"
	ansiGreen = "\x1b[32m"
	ansiBlue  = "\x1b[34m"
)

func newStatusCmd(opts *rootOptions) *cobra.Command {
	var startedOnly bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show annotation progress per metro",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			s, err := openSession(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderStatus(s.nav, startedOnly, shouldColorize(out)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&startedOnly, "started", false, "only list metros with at least one annotated image")
	return cmd
}

// renderStatus renders the per-metro progress table and an overall summary
func renderStatus(nav *navigator.Navigator, startedOnly, colorize bool) string {
	headers := []string{"Year", "Metro", "Images", "Annotated", "EDs", "Done"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight}

	var rows [][]string
	var edTotal int
	for _, m := range nav.Metros() {
		edTotal += m.EdCount
		if startedOnly && m.Annotated == 0 {
			continue
		}
		rows = append(rows, []string{
			strconv.Itoa(m.Year),
			m.UTPCode,
			strconv.Itoa(m.Count),
			strconv.Itoa(m.Annotated),
			strconv.Itoa(m.EdCount),
			percent(m.Annotated, m.Count),
		})
	}

	annotated, total := nav.Progress()
	footer := []string{"", "Total", strconv.Itoa(total), strconv.Itoa(annotated), strconv.Itoa(edTotal), percent(annotated, total)}

	summary := fmt.Sprintf("%d of %d images annotated (%s)", annotated, total, percent(annotated, total))
	if colorize {
		color := ansiBlue
		if annotated == total {
			color = ansiGreen
		}
		summary = color + summary + ansiReset
	}

	return renderTable(headers, rows, aligns, footer) + "\n" + summary
}

func percent(done, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(done)/float64(total))
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
