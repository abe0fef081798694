package lpnu

import (
	"fmt"
	"regexp"
)

// Fields are the raw values captured from a slot fragment.
type Fields struct {
	Description string
	Teacher     string
	Location    string
	ClassType   string
}

// FieldExtractor turns the inner html of a subdivision cell into its fields.
type FieldExtractor interface {
	Extract(fragment string) (Fields, error)
}

// noBreak matches one rune or tag start that does not begin a <br>.
const noBreak = `(?:[^<]|<[^b]|<b[^r])`

// slotDetailsPattern matches `<desc><br><teacher><br><location>&nbsp;<type>[<br>]`.
//
// The teacher may be empty and the trailing <br> may be missing. Some classes (ex. physical
// education) have no teacher and no location at all. The location/type separator is the last
// non-breaking space, either escaped or literal depending on who rendered the fragment. No field
// spans a <br>, so extra lines or trailing content fail the match.
var slotDetailsPattern = regexp.MustCompile(
	`^(?P<desc>` + noBreak + `+?)\s*<br\s*/?>` +
		`(?P<teacher>` + noBreak + `*?)\s*<br\s*/?>` +
		`(?P<location>` + noBreak + `*)(?:&nbsp;|\x{00a0})` +
		`(?P<type>` + noBreak + `*?)(?:\s*<br\s*/?>)?\s*$`,
)

var requiredGroups = []string{"desc", "teacher", "location", "type"}

// PatternExtractor extracts fields with a single regular expression that must match the whole
// fragment.
type PatternExtractor struct {
	pattern *regexp.Regexp
	groups  map[string]int
}

func NewPatternExtractor(pattern *regexp.Regexp) (PatternExtractor, error) {
	groups := map[string]int{}
	for _, name := range requiredGroups {
		idx := pattern.SubexpIndex(name)
		if idx < 0 {
			return PatternExtractor{}, fmt.Errorf("pattern %q is missing the %q group", pattern.String(), name)
		}
		groups[name] = idx
	}
	return PatternExtractor{pattern: pattern, groups: groups}, nil
}

// DefaultExtractor returns the extractor for the current markup of the schedule site.
func DefaultExtractor() PatternExtractor {
	extractor, err := NewPatternExtractor(slotDetailsPattern)
	if err != nil {
		panic(err)
	}
	return extractor
}

func (e PatternExtractor) Extract(fragment string) (Fields, error) {
	match := e.pattern.FindStringSubmatch(fragment)
	if match == nil {
		return Fields{}, &PatternMismatchError{
			Fragment: fragment,
			Pattern:  e.pattern.String(),
		}
	}
	return Fields{
		Description: match[e.groups["desc"]],
		Teacher:     match[e.groups["teacher"]],
		Location:    match[e.groups["location"]],
		ClassType:   match[e.groups["type"]],
	}, nil
}

var locationPattern = regexp.MustCompile(
	`(?P<auditory>[\dАБВГДЕОПТабвгделопт\\.]+)\s(?P<campus>[XIV]+|Гол.)\sн\.к\.`,
)

type Location struct {
	Auditory string
	Campus   string
}

// SplitLocation splits a location like "202 Гол. н.к." into auditory and campus.
func SplitLocation(location string) (Location, bool) {
	match := locationPattern.FindStringSubmatch(location)
	if match == nil {
		return Location{}, false
	}
	return Location{
		Auditory: match[locationPattern.SubexpIndex("auditory")],
		Campus:   match[locationPattern.SubexpIndex("campus")],
	}, true
}
