package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/kilianp07/jobseq/core/model"
)

// Formats lists the values accepted by Write.
var Formats = []string{"text", "json", "csv"}

// Write dispatches to the writer matching format.
func Write(w io.Writer, format string, plan model.Plan) error {
	switch format {
	case "text", "":
		return WriteText(w, plan)
	case "json":
		return WriteJSON(w, plan)
	case "csv":
		return WriteCSV(w, plan)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// WriteJSON writes the plan to w in JSON format.
func WriteJSON(w io.Writer, plan model.Plan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(plan)
}

// WriteCSV writes one row per assignment in slot order.
func WriteCSV(w io.Writer, plan model.Plan) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"slot", "id", "deadline", "profit"}); err != nil {
		return err
	}
	for _, a := range plan.Assignments {
		rec := []string{
			strconv.Itoa(a.Slot),
			string(a.Job.ID),
			strconv.Itoa(a.Job.Deadline),
			strconv.Itoa(a.Job.Profit),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteText writes an aligned table followed by the total profit.
func WriteText(w io.Writer, plan model.Plan) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SLOT\tID\tDEADLINE\tPROFIT")
	for _, a := range plan.Assignments {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\n", a.Slot, a.Job.ID, a.Job.Deadline, a.Job.Profit)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "strategy=%s jobs=%d profit=%d\n", plan.Strategy, plan.Len(), plan.Profit())
	return err
}
