package grid

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// WriteText renders v as an aligned plain-text table.
func WriteText(w io.Writer, v View) error {
	switch v.State {
	case Loading:
		_, err := fmt.Fprintln(w, LoadingText)
		return err
	case Empty:
		_, err := fmt.Fprintln(w, EmptyText)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	head := []string{"#", "ID"}
	for _, h := range v.Headers {
		head = append(head, h.Label)
	}
	fmt.Fprintln(tw, strings.Join(head, "\t"))

	for _, r := range v.Rows {
		mark := " "
		if r.Selected {
			mark = "*"
		}
		line := []string{fmt.Sprintf("%s%d", mark, r.Index+1), r.ID}
		for _, c := range r.Cells {
			text := c.Text
			if c.Badge() {
				text = "[" + text + "]"
			}
			line = append(line, text)
		}
		fmt.Fprintln(tw, strings.Join(line, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if v.ShowPagination() {
		if _, err := fmt.Fprintf(w, "Page %d of %d\n", v.Page, v.TotalPages); err != nil {
			return err
		}
	}
	if v.ShowBulkBar() {
		if _, err := fmt.Fprintf(w, "selected : %d\n", v.SelectedCount); err != nil {
			return err
		}
	}
	return nil
}
