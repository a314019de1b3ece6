package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/dnng1/gatherly/pkg/model"
)

var csvHeader = []string{"id", "name", "date", "time", "location", "groups", "description"}

// WriteCSV writes events as CSV rows with a header, one row per event, using
// the same display forms for dates and times that the list screens show.
func WriteCSV(w io.Writer, events []model.Event) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range events {
		row := []string{
			strconv.Itoa(e.ID),
			e.Name,
			e.DateRange(),
			e.TimeRange(),
			e.Location,
			e.GroupNames,
			strings.ReplaceAll(e.Description, "\n", " "),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
