package openmensa

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func intp(i int) *int    { return &i }
func boolp(b bool) *bool { return &b }

func TestSerialize_RootAttributes(t *testing.T) {
	doc := &Document{Version: "2.1"}
	out, err := doc.Serialize()
	require.NoError(t, err)

	require.Contains(t, out, `<openmensa`)
	require.Contains(t, out, `xmlns="http://openmensa.org/open-mensa-v2"`)
	require.Contains(t, out, `xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"`)
	require.Contains(t, out, `xsi:schemaLocation="http://openmensa.org/open-mensa-v2 http://openmensa.org/open-mensa-v2.xsd"`)
	require.Contains(t, out, `version="2.1"`)
}

func TestSerialize_ParserVersionElement(t *testing.T) {
	doc := &Document{Version: "2.1", ParserVersion: "0.3.0"}
	out, err := doc.Serialize()
	require.NoError(t, err)
	require.Contains(t, out, "<version>0.3.0</version>")

	doc.ParserVersion = ""
	out, err = doc.Serialize()
	require.NoError(t, err)
	require.NotContains(t, out, "<version>")
}

func TestSerialize_OmitsAbsentCanteenFields(t *testing.T) {
	doc := &Document{Version: "2.1", Canteen: Canteen{Name: "Mensa Stadtmitte"}}
	out, err := doc.Serialize()
	require.NoError(t, err)

	require.Contains(t, out, "<name>Mensa Stadtmitte</name>")
	for _, absent := range []string{"<address", "<city", "<phone", "<email", "<location", "<availability", "<times", "<feed", "<day"} {
		require.NotContains(t, out, absent)
	}
}

func TestSerialize_Times(t *testing.T) {
	doc := &Document{
		Version: "2.1",
		Canteen: Canteen{
			Times: &Times{
				Monday:   &Weekday{Open: "11:00-14:30"},
				Saturday: &Weekday{Closed: boolp(true)},
				Sunday:   &Weekday{},
			},
		},
	}
	out, err := doc.Serialize()
	require.NoError(t, err)

	require.Contains(t, out, `<times type="opening">`)
	require.Contains(t, out, `<monday open="11:00-14:30"></monday>`)
	require.Contains(t, out, `<saturday closed="true"></saturday>`)
	// a weekday with neither open nor closed renders without attributes
	require.Contains(t, out, `<sunday></sunday>`)
	require.NotContains(t, out, "<tuesday")
}

func TestSerialize_FeedAndSchedule(t *testing.T) {
	doc := &Document{
		Version: "2.1",
		Canteen: Canteen{
			Feeds: []Feed{
				{
					Name:     "full",
					Priority: intp(1),
					URL:      "https://feeds.example.org/mensa/full.xml",
					Schedule: &Schedule{
						Hour:       "6-16",
						DayOfWeek:  "*",
						DayOfMonth: "*",
						Retry:      "60 5 1440",
					},
				},
				{Name: "today", URL: "https://feeds.example.org/mensa/today.xml"},
			},
		},
	}
	out, err := doc.Serialize()
	require.NoError(t, err)

	require.Contains(t, out, `<feed name="full" priority="1">`)
	require.Contains(t, out, "<url>https://feeds.example.org/mensa/full.xml</url>")
	require.Contains(t, out, `<schedule hour="6-16" dayOfWeek="*" dayOfMonth="*" retry="60 5 1440">`)
	// absent optionals are omitted entirely
	require.NotContains(t, out, "minute=")
	require.NotContains(t, out, "month=")
	require.Contains(t, out, `<feed name="today">`)
	require.NotContains(t, out, "<source>")
	require.Equal(t, 1, strings.Count(out, "<schedule"))
}

func TestSerialize_DayChoiceExclusivity(t *testing.T) {
	open := NewOpenDay("2024-01-15", Category{
		Name: "Mensa",
		Meals: []Meal{{
			Name:  "Linsencurry",
			Notes: []string{"Vegan"},
			Prices: []Price{
				{Value: 2.5, Role: RoleStudent},
				{Value: 4.8, Role: RoleOther},
			},
		}},
	})
	closed := NewClosedDay("2024-01-16")

	doc := &Document{Version: "2.1", Canteen: Canteen{Days: []Day{open, closed}}}
	out, err := doc.Serialize()
	require.NoError(t, err)

	openPart := out[strings.Index(out, `<day date="2024-01-15">`):strings.Index(out, `<day date="2024-01-16">`)]
	closedPart := out[strings.Index(out, `<day date="2024-01-16">`):]

	require.Contains(t, openPart, `<category name="Mensa">`)
	require.NotContains(t, openPart, "<closed")
	require.Contains(t, closedPart, "<closed></closed>")
	require.NotContains(t, closedPart, "<category")
}

func TestSerialize_MealAndPrices(t *testing.T) {
	day := NewOpenDay("2024-01-15", Category{
		Name: "Mensa",
		Meals: []Meal{{
			Name:  "Käsespätzle",
			Notes: []string{"Vegetarisch", "Milch und Milcherzeugnisse"},
			Prices: []Price{
				{Value: 2.95, Role: RoleStudent},
				{Value: 5.1, Role: RoleOther},
			},
		}},
	})
	doc := &Document{Version: "2.1", Canteen: Canteen{Days: []Day{day}}}
	out, err := doc.Serialize()
	require.NoError(t, err)

	require.Contains(t, out, "<name>Käsespätzle</name>")
	require.Contains(t, out, "<note>Vegetarisch</note>")
	require.Contains(t, out, "<note>Milch und Milcherzeugnisse</note>")
	require.Contains(t, out, `<price role="student">2.95</price>`)
	require.Contains(t, out, `<price role="other">5.1</price>`)
}

// minimal read-back structs, only used to check that serialization loses
// nothing for populated fields
type parsedDoc struct {
	Version string `xml:"version,attr"`
	Canteen struct {
		Feeds []struct {
			Name string `xml:"name,attr"`
			URL  string `xml:"url"`
		} `xml:"feed"`
		Days []struct {
			Date       string `xml:"date,attr"`
			Closed     *struct{} `xml:"closed"`
			Categories []struct {
				Name  string `xml:"name,attr"`
				Meals []struct {
					Name   string   `xml:"name"`
					Notes  []string `xml:"note"`
					Prices []struct {
						Role  string  `xml:"role,attr"`
						Value float32 `xml:",chardata"`
					} `xml:"price"`
				} `xml:"meal"`
			} `xml:"category"`
		} `xml:"day"`
	} `xml:"canteen"`
}

func TestSerialize_RoundTrip(t *testing.T) {
	doc := &Document{
		Version:       "2.1",
		ParserVersion: "0.3.0",
		Canteen: Canteen{
			Feeds: []Feed{{Name: "full", URL: "https://feeds.example.org/1/full.xml"}},
			Days: []Day{
				NewOpenDay("2024-01-15", Category{
					Name: "Mensa",
					Meals: []Meal{{
						Name:   "Linsencurry",
						Notes:  []string{"Vegan", "Sellerie und Sellerieerzeugnisse"},
						Prices: []Price{{Value: 2.5, Role: RoleStudent}, {Value: 4.8, Role: RoleOther}},
					}},
				}),
				NewClosedDay("2024-01-16"),
			},
		},
	}
	out, err := doc.Serialize()
	require.NoError(t, err)

	var got parsedDoc
	require.NoError(t, xml.Unmarshal([]byte(out), &got))

	require.Equal(t, "2.1", got.Version)
	require.Len(t, got.Canteen.Feeds, 1)
	require.Equal(t, "full", got.Canteen.Feeds[0].Name)
	require.Len(t, got.Canteen.Days, 2)

	open := got.Canteen.Days[0]
	require.Equal(t, "2024-01-15", open.Date)
	require.Nil(t, open.Closed)
	require.Len(t, open.Categories, 1)
	require.Equal(t, "Mensa", open.Categories[0].Name)
	meal := open.Categories[0].Meals[0]
	require.Equal(t, "Linsencurry", meal.Name)
	require.Equal(t, []string{"Vegan", "Sellerie und Sellerieerzeugnisse"}, meal.Notes)
	require.Len(t, meal.Prices, 2)
	require.Equal(t, "student", meal.Prices[0].Role)
	require.InDelta(t, 2.5, meal.Prices[0].Value, 1e-6)

	closed := got.Canteen.Days[1]
	require.Equal(t, "2024-01-16", closed.Date)
	require.NotNil(t, closed.Closed)
	require.Empty(t, closed.Categories)
}
