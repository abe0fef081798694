package lpnu

import (
	"fmt"
	"lpnu-schedule/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	institutesSelector = "#edit-institutecode-selective option"
	groupsSelector     = "#edit-edugrupabr-selective option"
)

func documentSource(doc *goquery.Document) string {
	if doc.Url == nil {
		return ""
	}
	return doc.Url.String()
}

// parseOptions returns the trimmed values of a dropdown, dropping the leading "all" option.
func parseOptions(doc *goquery.Document, selector, name string) ([]string, error) {
	options := doc.Find(selector)
	if options.Length() <= 1 {
		return nil, &PageStructureError{
			Url:    documentSource(doc),
			Reason: fmt.Sprintf("could not find any entries in %s dropdown", name),
		}
	}

	options = options.Slice(1, options.Length())
	result := make([]string, options.Length())
	options.Each(func(i int, option *goquery.Selection) {
		result[i] = htmlutil.Trim(option.AttrOr("value", ""))
	})
	return result, nil
}

// ParseInstitutesDocument returns the institute codes listed on a schedule page.
func ParseInstitutesDocument(doc *goquery.Document) ([]string, error) {
	return parseOptions(doc, institutesSelector, "institutes")
}

// ParseGroupsDocument returns the group identifiers listed on a schedule page.
func ParseGroupsDocument(doc *goquery.Document) ([]string, error) {
	return parseOptions(doc, groupsSelector, "groups")
}

// ParseScheduleDocument returns every class entry on a group's schedule page.
func ParseScheduleDocument(doc *goquery.Document, walker Walker) ([]ParsedScheduleEntry, error) {
	return walker.Walk(doc.Find(scheduleContainerSelector).First(), documentSource(doc))
}
