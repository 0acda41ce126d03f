package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTimetableCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTimetableCSV(&buf, []TimetableRow{
		{Date: "2025-03-10", Start: "09:00", End: "12:00", DayNumber: 1, Session: 1, SubjectID: "safety", Instructor: "ins-1", Classroom: "room-1", QualityScore: 100},
		{Date: "2025-03-10", Start: "12:10", End: "14:10", DayNumber: 1, Session: 2, SubjectID: "first-aid, basic", QualityScore: 60},
	})
	require.NoError(t, err)

	expected := "date,start,end,day,session,subject,instructor,classroom,quality\n" +
		"2025-03-10,09:00,12:00,1,1,safety,ins-1,room-1,100\n" +
		"2025-03-10,12:10,14:10,1,2,\"first-aid, basic\",,,60\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteTimetableCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTimetableCSV(&buf, nil))
	assert.Equal(t, "date,start,end,day,session,subject,instructor,classroom,quality\n", buf.String())
}
