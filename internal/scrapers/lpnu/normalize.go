package lpnu

import (
	"fmt"
	"strings"
	"time"
)

func OccurrenceFromId(id string) (Occurrence, error) {
	switch {
	case strings.HasSuffix(id, "full"):
		return OCCURRENCE_BOTH, nil
	case strings.HasSuffix(id, "chys"):
		return OCCURRENCE_ODD_WEEK, nil
	case strings.HasSuffix(id, "znam"):
		return OCCURRENCE_EVEN_WEEK, nil
	}
	return 0, &UnrecognizedTokenError{Kind: "occurrence", Token: id}
}

func GroupPartFromId(id string) (GroupPart, error) {
	switch {
	case strings.HasPrefix(id, "sub_1"):
		return SUB_GROUP_1, nil
	case strings.HasPrefix(id, "sub_2"):
		return SUB_GROUP_2, nil
	case strings.HasPrefix(id, "group"):
		return FULL_GROUP, nil
	}
	return 0, &UnrecognizedTokenError{Kind: "group part", Token: id}
}

type classTypeStem struct {
	stem      string
	classType ClassType
}

// order matters, the first stem contained in a label wins
var classTypeStems = []classTypeStem{
	{stem: "ЛЕК", classType: CLASS_LECTURE},
	{stem: "ПРАК", classType: CLASS_PRACTICAL},
	{stem: "ЛАБ", classType: CLASS_LAB},
	{stem: "КОНСУЛЬТ", classType: CLASS_CONSULTATION},
	{stem: "ЕКЗ", classType: CLASS_EXAM},
}

// ClassTypeFromLabel never fails on a non-empty label, labels outside of the known vocabulary
// are CLASS_UNDEFINED.
func ClassTypeFromLabel(label string) (ClassType, error) {
	label = strings.ToUpper(strings.TrimSpace(label))
	if label == "" {
		return 0, &UnrecognizedTokenError{Kind: "class type", Token: label}
	}
	for _, s := range classTypeStems {
		if strings.Contains(label, s.stem) {
			return s.classType, nil
		}
	}
	return CLASS_UNDEFINED, nil
}

var dayLabels = map[string]time.Weekday{
	"ПН": time.Monday,
	"ВТ": time.Tuesday,
	"СР": time.Wednesday,
	"ЧТ": time.Thursday,
	"ПТ": time.Friday,
	"СБ": time.Saturday,
	"НД": time.Sunday,
}

func DayFromLabel(label string) (time.Weekday, error) {
	day, ok := dayLabels[strings.ToUpper(strings.TrimSpace(label))]
	if !ok {
		return 0, &UnrecognizedTokenError{Kind: "day of week", Token: label}
	}
	return day, nil
}

// Subdivision is one of the leaf cell identifiers of a slot, it names the audience and the
// week parity of the class inside it.
type Subdivision struct {
	Id         string
	GroupPart  GroupPart
	Occurrence Occurrence
}

var subdivisionIds = []string{
	"group_full",
	"group_znam",
	"group_chys",
	"sub_1_full",
	"sub_2_full",
	"sub_1_chys",
	"sub_2_chys",
	"sub_1_znam",
	"sub_2_znam",
}

var subdivisions = buildSubdivisions(subdivisionIds)

func buildSubdivisions(ids []string) map[string]Subdivision {
	table := make(map[string]Subdivision, len(ids))
	for _, id := range ids {
		part, err := GroupPartFromId(id)
		if err != nil {
			panic(err)
		}
		occurrence, err := OccurrenceFromId(id)
		if err != nil {
			panic(err)
		}
		table[id] = Subdivision{Id: id, GroupPart: part, Occurrence: occurrence}
	}
	return table
}

// Subdivisions returns every recognized subdivision in selector order.
func Subdivisions() []Subdivision {
	out := make([]Subdivision, len(subdivisionIds))
	for i, id := range subdivisionIds {
		out[i] = subdivisions[id]
	}
	return out
}

func SubdivisionFromId(id string) (Subdivision, error) {
	sub, ok := subdivisions[id]
	if !ok {
		return Subdivision{}, &UnrecognizedTokenError{Kind: "subdivision", Token: id}
	}
	return sub, nil
}

func subdivisionSelector() string {
	selectors := make([]string, len(subdivisionIds))
	for i, id := range subdivisionIds {
		selectors[i] = fmt.Sprintf("#%s", id)
	}
	return strings.Join(selectors, ", ")
}
