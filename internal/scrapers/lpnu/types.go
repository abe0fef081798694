package lpnu

import "time"

// GroupPart is the audience a class entry applies to.
type GroupPart int

const (
	FULL_GROUP GroupPart = iota
	SUB_GROUP_1
	SUB_GROUP_2
)

func (p GroupPart) String() string {
	switch p {
	case FULL_GROUP:
		return "FULL_GROUP"
	case SUB_GROUP_1:
		return "SUB_GROUP_1"
	case SUB_GROUP_2:
		return "SUB_GROUP_2"
	}
	return "GroupPart(?)"
}

// Occurrence is the week parity a class entry applies to.
type Occurrence int

const (
	OCCURRENCE_BOTH Occurrence = iota
	OCCURRENCE_ODD_WEEK
	OCCURRENCE_EVEN_WEEK
)

func (o Occurrence) String() string {
	switch o {
	case OCCURRENCE_BOTH:
		return "BOTH"
	case OCCURRENCE_ODD_WEEK:
		return "ODD_WEEK"
	case OCCURRENCE_EVEN_WEEK:
		return "EVEN_WEEK"
	}
	return "Occurrence(?)"
}

// ClassType is the kind of class derived from its label.
type ClassType int

const (
	CLASS_LECTURE ClassType = iota
	CLASS_PRACTICAL
	CLASS_LAB
	CLASS_CONSULTATION
	CLASS_EXAM
	CLASS_UNDEFINED
)

func (t ClassType) String() string {
	switch t {
	case CLASS_LECTURE:
		return "LECTURE"
	case CLASS_PRACTICAL:
		return "PRACTICAL"
	case CLASS_LAB:
		return "LAB"
	case CLASS_CONSULTATION:
		return "CONSULTATION"
	case CLASS_EXAM:
		return "EXAM"
	case CLASS_UNDEFINED:
		return "UNDEFINED"
	}
	return "ClassType(?)"
}

// ParsedScheduleEntry is one class occurrence found under one day/slot pair.
type ParsedScheduleEntry struct {
	Day         string
	ClassNumber string
	Subdivision string
	GroupPart   GroupPart
	Occurrence  Occurrence
	Location    string
	// Auditory and Campus are only set when Location follows the "<auditory> <campus> н.к." layout.
	Auditory       string
	Campus         string
	ClassType      ClassType
	ClassTypeLabel string
	Description    string
	Teacher        string
}

// Weekday resolves the entry's day label.
func (e ParsedScheduleEntry) Weekday() (time.Weekday, error) {
	return DayFromLabel(e.Day)
}
