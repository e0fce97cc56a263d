package parser

import (
	"errors"
	"testing"
	"time"

	"github.com/mensa-darmstadt/openmensa-parser/internal/mensa"
	"github.com/stretchr/testify/require"
)

func ts(date string) int64 {
	t, err := time.Parse("2006-01-02 15:04", date)
	if err != nil {
		panic(err)
	}
	return t.UTC().Unix()
}

func TestGroupByDate_SortsAscendingWithoutDuplicates(t *testing.T) {
	items := []mensa.MenuItem{
		{Date: ts("2024-01-16 11:00"), Dish: mensa.Dish{Name: "c"}},
		{Date: ts("2024-01-15 11:00"), Dish: mensa.Dish{Name: "a"}},
		{Date: ts("2024-01-15 12:30"), Dish: mensa.Dish{Name: "b"}},
	}

	groups, err := groupByDate(items)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	require.Equal(t, "2024-01-15", groups[0].date)
	require.Equal(t, "2024-01-16", groups[1].date)
	// insertion order within a bucket is preserved
	require.Equal(t, "a", groups[0].dishes[0].Name)
	require.Equal(t, "b", groups[0].dishes[1].Name)
	require.Equal(t, "c", groups[1].dishes[0].Name)
}

func TestGroupByDate_UsesUTCCalendarDate(t *testing.T) {
	// 2024-01-15T23:30 UTC is already the 16th in Europe/Berlin; grouping
	// must stay on the UTC date
	items := []mensa.MenuItem{{Date: ts("2024-01-15 23:30"), Dish: mensa.Dish{Name: "late"}}}
	groups, err := groupByDate(items)
	require.NoError(t, err)
	require.Equal(t, "2024-01-15", groups[0].date)
}

func TestGroupByDate_DateDecodeErrorAbortsTranslation(t *testing.T) {
	items := []mensa.MenuItem{
		{Date: ts("2024-01-15 11:00"), Dish: mensa.Dish{Name: "fine"}},
		{Date: 1 << 62, Dish: mensa.Dish{Name: "broken"}},
	}
	_, err := groupByDate(items)
	require.Error(t, err)
	var dde *DateDecodeError
	require.True(t, errors.As(err, &dde))
	require.Equal(t, int64(1<<62), dde.Timestamp)
}

func TestDishNotes_Order(t *testing.T) {
	dish := &mensa.Dish{
		Name:        "Hähnchencurry",
		Type:        mensa.DishPoultry,
		Allergics:   []string{"G", "I"},
		Additionals: []string{"4", "2"},
	}
	require.Equal(t, []string{
		"Geflügel",
		"Milch und Milcherzeugnisse",
		"Sellerie und Sellerieerzeugnisse",
		"Geschmacksverstärker",
		"Konservierungsstoffe",
	}, dishNotes(dish))
}

func TestDishNotes_SpecificAllergenSuffix(t *testing.T) {
	dish := &mensa.Dish{
		Type:              mensa.DishType("SOUP"),
		Allergics:         []string{"A"},
		SpecificAllergics: []string{"A1", "A2", "B1"},
	}
	// B1 is not prefixed by "A" and must be filtered out
	require.Equal(t, []string{"Glutenhaltiges Getreide (Weizen, Dinkel)"}, dishNotes(dish))
}

func TestDishNotes_NoSpecificsNoParentheses(t *testing.T) {
	dish := &mensa.Dish{
		Type:      mensa.DishVegan,
		Allergics: []string{"A"},
	}
	require.Equal(t, []string{"Vegan", "Glutenhaltiges Getreide"}, dishNotes(dish))
}

func TestDishNotes_UnknownAllergenKeepsGoing(t *testing.T) {
	dish := &mensa.Dish{
		Type:      mensa.DishFish,
		Allergics: []string{"Z9", "D"},
	}
	require.Equal(t, []string{"Fisch", "", "Fisch und Fischerzeugnisse"}, dishNotes(dish))
}
