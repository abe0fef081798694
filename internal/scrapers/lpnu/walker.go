package lpnu

import (
	"fmt"
	"lpnu-schedule/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	scheduleContainerSelector = ".view-content"
	dayHeaderSelector         = ".view-grouping-header"
	dayContentSelector        = ".view-grouping-content"
	slotDetailsSelector       = ".group_content"
	classNumberTag            = "h3"
)

var leafSelector = subdivisionSelector()

// scheduleContext is the position of the walk, it is passed by value so that every level of
// the walk owns its own copy.
type scheduleContext struct {
	source      string
	day         string
	classNumber string
}

// Walker walks the day -> slot group -> subdivision tree of a group's schedule page.
type Walker struct {
	extractor FieldExtractor
}

func NewWalker(extractor FieldExtractor) Walker {
	if extractor == nil {
		extractor = DefaultExtractor()
	}
	return Walker{extractor: extractor}
}

// Walk returns every entry under the schedule container `root` in document order. `source`
// is only used for error context.
func (w Walker) Walk(root *goquery.Selection, source string) ([]ParsedScheduleEntry, error) {
	if root == nil || root.Length() == 0 {
		return nil, &PageStructureError{Url: source, Reason: "could not find schedule table at the page"}
	}
	days := root.First().Children()
	if days.Length() == 0 {
		return nil, &PageStructureError{Url: source, Reason: "schedule table has no days"}
	}

	var result []ParsedScheduleEntry
	for i := range days.Nodes {
		dayElement := days.Eq(i)
		pos := scheduleContext{
			source: source,
			day:    htmlutil.CleanText(dayElement.Find(dayHeaderSelector).First().Text()),
		}
		entries, err := w.walkDay(pos, dayElement)
		if err != nil {
			return nil, err
		}
		result = append(result, entries...)
	}
	return result, nil
}

func (w Walker) walkDay(pos scheduleContext, dayElement *goquery.Selection) ([]ParsedScheduleEntry, error) {
	// a day without a content block simply has no classes
	content := dayElement.Find(dayContentSelector).First()

	children := content.Children()

	var result []ParsedScheduleEntry
	for i, node := range children.Nodes {
		if node.Data == classNumberTag {
			pos.classNumber = htmlutil.CleanText(htmlutil.GetText(node))
			continue
		}
		entries, err := w.walkSlotGroup(pos, children.Eq(i))
		if err != nil {
			return nil, err
		}
		result = append(result, entries...)
	}
	return result, nil
}

func (w Walker) walkSlotGroup(pos scheduleContext, slotGroup *goquery.Selection) ([]ParsedScheduleEntry, error) {
	leaves := slotGroup.Find(leafSelector)

	result := make([]ParsedScheduleEntry, 0, leaves.Length())
	for i := range leaves.Nodes {
		entry, err := w.buildEntry(pos, leaves.Eq(i))
		if err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, nil
}

func (w Walker) buildEntry(pos scheduleContext, leaf *goquery.Selection) (ParsedScheduleEntry, error) {
	wrap := func(err error) error {
		return fmt.Errorf("%s (day %q, class %q): %w", pos.source, pos.day, pos.classNumber, err)
	}

	if pos.day == "" {
		return ParsedScheduleEntry{}, &PageStructureError{Url: pos.source, Reason: "class entry outside of a day"}
	}
	if pos.classNumber == "" {
		return ParsedScheduleEntry{}, &PageStructureError{
			Url:    pos.source,
			Reason: fmt.Sprintf("class entry without a class number on %q", pos.day),
		}
	}

	sub, err := SubdivisionFromId(leaf.AttrOr("id", ""))
	if err != nil {
		return ParsedScheduleEntry{}, wrap(err)
	}

	details := leaf.Find(slotDetailsSelector).First()
	if details.Length() == 0 {
		details = leaf
	}
	fragment, err := details.Html()
	if err != nil {
		return ParsedScheduleEntry{}, wrap(fmt.Errorf("render slot details: %w", err))
	}

	fields, err := w.extractor.Extract(fragment)
	if err != nil {
		return ParsedScheduleEntry{}, wrap(err)
	}
	return newEntry(pos, sub, fields)
}

func newEntry(pos scheduleContext, sub Subdivision, fields Fields) (ParsedScheduleEntry, error) {
	typeLabel := htmlutil.CleanText(fields.ClassType)
	classType, err := ClassTypeFromLabel(typeLabel)
	if err != nil {
		return ParsedScheduleEntry{}, fmt.Errorf("%s (day %q, class %q): %w", pos.source, pos.day, pos.classNumber, err)
	}

	entry := ParsedScheduleEntry{
		Day:            htmlutil.Trim(pos.day),
		ClassNumber:    htmlutil.Trim(pos.classNumber),
		Subdivision:    sub.Id,
		GroupPart:      sub.GroupPart,
		Occurrence:     sub.Occurrence,
		Location:       htmlutil.CleanText(fields.Location),
		ClassType:      classType,
		ClassTypeLabel: typeLabel,
		Description:    htmlutil.CleanText(fields.Description),
		Teacher:        htmlutil.CleanText(fields.Teacher),
	}
	if loc, ok := SplitLocation(entry.Location); ok {
		entry.Auditory = loc.Auditory
		entry.Campus = loc.Campus
	}
	return entry, nil
}
