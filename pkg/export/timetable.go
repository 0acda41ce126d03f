package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// TimetableHeaders is the column order of a round timetable export.
var TimetableHeaders = []string{"date", "start", "end", "day", "session", "subject", "instructor", "classroom", "quality"}

// TimetableRow is one exported session.
type TimetableRow struct {
	Date         string
	Start        string
	End          string
	DayNumber    int
	Session      int
	SubjectID    string
	Instructor   string
	Classroom    string
	QualityScore int
}

func (r TimetableRow) record() []string {
	return []string{
		r.Date,
		r.Start,
		r.End,
		strconv.Itoa(r.DayNumber),
		strconv.Itoa(r.Session),
		r.SubjectID,
		r.Instructor,
		r.Classroom,
		strconv.Itoa(r.QualityScore),
	}
}

// WriteTimetableCSV renders the header line followed by one line per row.
func WriteTimetableCSV(w io.Writer, rows []TimetableRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(TimetableHeaders); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row.record()); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
