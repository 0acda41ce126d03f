package scheduler

import (
	"sort"
	"time"
)

const (
	baseCandidateScore     = 50
	preferredResourceBonus = 50
	sameDayBookingPenalty  = 5
	capacityScoreDivisor   = 10
)

// RankInstructors scores the instructors associated with subjectID for a session on date.
// Instructors with any booking overlapping candidate are excluded outright; the rest start at 50,
// gain 50 when they match preferredID and lose 5 per booking they already hold that day.
func RankInstructors(subjectID string, date time.Time, candidate Interval, directory map[string][]Instructor, bookings *BookingIndex, preferredID string) []InstructorCandidate {
	pool := directory[subjectID]
	ranked := make([]InstructorCandidate, 0, len(pool))
	seen := make(map[string]bool, len(pool))
	for _, instructor := range pool {
		if instructor.ID == "" || seen[instructor.ID] {
			continue
		}
		seen[instructor.ID] = true

		booked := bookings.OnDate(instructor.ID, date)
		if overlapsAny(booked, candidate) {
			continue
		}
		score := baseCandidateScore
		if preferredID != "" && instructor.ID == preferredID {
			score += preferredResourceBonus
		}
		score -= sameDayBookingPenalty * len(booked)
		ranked = append(ranked, InstructorCandidate{ResourceID: instructor.ID, Name: instructor.Name, Score: score})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score == ranked[j].Score {
			return ranked[i].ResourceID < ranked[j].ResourceID
		}
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// RankClassrooms scores classrooms for a session on date. Any room holding a booking that day is
// excluded, regardless of time, so rooms stay single-booked per day. Scores start at 50, gain 50 for
// preferredID and capacity/10 so larger rooms win ties.
func RankClassrooms(date time.Time, classrooms []Classroom, bookings *BookingIndex, preferredID string) []ClassroomCandidate {
	ranked := make([]ClassroomCandidate, 0, len(classrooms))
	seen := make(map[string]bool, len(classrooms))
	for _, room := range classrooms {
		if room.ID == "" || seen[room.ID] {
			continue
		}
		seen[room.ID] = true

		if bookings.CountOnDate(room.ID, date) > 0 {
			continue
		}
		score := baseCandidateScore + room.Capacity/capacityScoreDivisor
		if preferredID != "" && room.ID == preferredID {
			score += preferredResourceBonus
		}
		ranked = append(ranked, ClassroomCandidate{ResourceID: room.ID, Name: room.Name, Capacity: room.Capacity, Score: score})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score == ranked[j].Score {
			return ranked[i].ResourceID < ranked[j].ResourceID
		}
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

func overlapsAny(slots []BookedSlot, candidate Interval) bool {
	for _, slot := range slots {
		if candidate.Overlaps(slot.Interval()) {
			return true
		}
	}
	return false
}
