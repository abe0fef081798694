package lpnu

import (
	"bytes"
	"errors"
	"net/url"
	"testing"

	_ "embed"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/schedule.html
var schedulePage []byte

//go:embed testdata/no_container.html
var noContainerPage []byte

//go:embed testdata/broken_fragment.html
var brokenFragmentPage []byte

func loadDocument(t testing.TB, page []byte) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(page))
	if err != nil {
		t.Fatal(err)
	}
	doc.Url, err = url.Parse("https://student.lpnu.ua/students_schedule?edugrupabr_selective=КН-101")
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

var expectedSchedule = []ParsedScheduleEntry{
	{
		Day:            "Пн",
		ClassNumber:    "1",
		Subdivision:    "group_full",
		GroupPart:      FULL_GROUP,
		Occurrence:     OCCURRENCE_BOTH,
		Location:       "202 Гол. н.к.",
		Auditory:       "202",
		Campus:         "Гол.",
		ClassType:      CLASS_LECTURE,
		ClassTypeLabel: "Лекція",
		Description:    "Вища математика",
		Teacher:        "Іванов І.І.",
	},
	{
		Day:            "Пн",
		ClassNumber:    "2",
		Subdivision:    "sub_1_chys",
		GroupPart:      SUB_GROUP_1,
		Occurrence:     OCCURRENCE_ODD_WEEK,
		Location:       "305 V н.к.",
		Auditory:       "305",
		Campus:         "V",
		ClassType:      CLASS_LAB,
		ClassTypeLabel: "Лабораторна",
		Description:    "Програмування",
		Teacher:        "Петренко П.П.",
	},
	{
		Day:            "Пн",
		ClassNumber:    "2",
		Subdivision:    "sub_2_znam",
		GroupPart:      SUB_GROUP_2,
		Occurrence:     OCCURRENCE_EVEN_WEEK,
		Location:       "306 V н.к.",
		Auditory:       "306",
		Campus:         "V",
		ClassType:      CLASS_LAB,
		ClassTypeLabel: "Лабораторна",
		Description:    "Програмування",
		Teacher:        "Петренко П.П.",
	},
	{
		Day:            "Вт",
		ClassNumber:    "3",
		Subdivision:    "group_chys",
		GroupPart:      FULL_GROUP,
		Occurrence:     OCCURRENCE_ODD_WEEK,
		ClassType:      CLASS_UNDEFINED,
		ClassTypeLabel: "Фізичне виховання",
		Description:    "Фізичне виховання",
	},
}

func TestParseScheduleDocument(t *testing.T) {
	doc := loadDocument(t, schedulePage)

	entries, err := ParseScheduleDocument(doc, NewWalker(nil))
	require.NoError(t, err)

	diff := cmp.Diff(expectedSchedule, entries)
	if diff != "" {
		t.Fatal(diff)
	}

	for _, e := range entries {
		_, err := e.Weekday()
		require.NoError(t, err)
	}
}

func TestParseScheduleDocumentNoContainer(t *testing.T) {
	doc := loadDocument(t, noContainerPage)

	_, err := ParseScheduleDocument(doc, NewWalker(nil))
	var structureErr *PageStructureError
	require.True(t, errors.As(err, &structureErr))
	require.Contains(t, structureErr.Url, "students_schedule")
}

func TestParseScheduleDocumentEmptyContainer(t *testing.T) {
	doc := loadDocument(t, []byte(`<html><body><div class="view-content"></div></body></html>`))

	_, err := ParseScheduleDocument(doc, NewWalker(nil))
	var structureErr *PageStructureError
	require.True(t, errors.As(err, &structureErr))
}

func TestParseScheduleDocumentBrokenFragment(t *testing.T) {
	doc := loadDocument(t, brokenFragmentPage)

	entries, err := ParseScheduleDocument(doc, NewWalker(nil))
	require.Nil(t, entries)

	var mismatch *PatternMismatchError
	require.True(t, errors.As(err, &mismatch))
	require.Equal(t, "Заняття перенесено", mismatch.Fragment)
	require.Contains(t, err.Error(), `day "Чт"`)
}

func TestWalkSlotWithoutClassNumber(t *testing.T) {
	doc := loadDocument(t, []byte(`<div class="view-content"><div>
		<span class="view-grouping-header">Пт</span>
		<div class="view-grouping-content">
			<div><div id="group_full"><div class="group_content">Історія<br>Коваль О.<br>101&nbsp;IV н.к.&nbsp;Практична</div></div></div>
		</div>
	</div></div>`))

	_, err := ParseScheduleDocument(doc, NewWalker(nil))
	var structureErr *PageStructureError
	require.True(t, errors.As(err, &structureErr))
}

func TestWalkKeepsDocumentOrder(t *testing.T) {
	doc := loadDocument(t, []byte(`<div class="view-content"><div>
		<span class="view-grouping-header">Ср</span>
		<div class="view-grouping-content">
			<h3>1</h3>
			<div>
				<div><div id="sub_2_znam"><div class="group_content">Фізика<br>Бондар Б.<br>110&nbsp;IV н.к.&nbsp;Лабораторна</div></div></div>
				<div><div id="group_full"><div class="group_content">Історія<br>Коваль О.<br>101&nbsp;IV н.к.&nbsp;Лекція</div></div></div>
				<div><div id="sub_1_chys"><div class="group_content">Хімія<br>Мельник М.<br>111&nbsp;IV н.к.&nbsp;Практична</div></div></div>
			</div>
		</div>
	</div></div>`))

	entries, err := ParseScheduleDocument(doc, NewWalker(nil))
	require.NoError(t, err)

	var order []string
	for _, e := range entries {
		order = append(order, e.Subdivision+" "+e.Description)
	}
	require.Equal(t, []string{"sub_2_znam Фізика", "group_full Історія", "sub_1_chys Хімія"}, order)
}

type stubExtractor struct {
	calls []string
}

func (s *stubExtractor) Extract(fragment string) (Fields, error) {
	s.calls = append(s.calls, fragment)
	return Fields{Description: " stub ", ClassType: "лекція"}, nil
}

func TestWalkerUsesExtractor(t *testing.T) {
	doc := loadDocument(t, schedulePage)
	stub := &stubExtractor{}

	entries, err := ParseScheduleDocument(doc, NewWalker(stub))
	require.NoError(t, err)
	require.Len(t, stub.calls, len(expectedSchedule))
	require.Len(t, entries, len(expectedSchedule))

	for i, e := range entries {
		require.Equal(t, "stub", e.Description)
		require.Equal(t, CLASS_LECTURE, e.ClassType)
		require.Equal(t, expectedSchedule[i].Subdivision, e.Subdivision)
	}
}
