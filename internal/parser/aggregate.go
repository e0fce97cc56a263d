package parser

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mensa-darmstadt/openmensa-parser/internal/mensa"
)

// DateDecodeError reports a raw menu item whose timestamp could not be
// turned into a calendar date. It aborts the whole translation; a feed with
// a silently dropped day would be worse than no feed.
type DateDecodeError struct {
	Timestamp int64
}

func (e *DateDecodeError) Error() string {
	return fmt.Sprintf("parser: cannot decode item date from timestamp %d", e.Timestamp)
}

type dayGroup struct {
	date   string
	dishes []mensa.Dish
}

// groupByDate buckets menu items by their UTC calendar date and returns the
// groups in ascending date order. Items sharing a date keep their original
// relative order.
func groupByDate(items []mensa.MenuItem) ([]dayGroup, error) {
	buckets := make(map[string][]mensa.Dish)
	for _, item := range items {
		date, err := dateOf(item.Date)
		if err != nil {
			return nil, err
		}
		buckets[date] = append(buckets[date], item.Dish)
	}

	dates := make([]string, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}
	// ISO dates sort chronologically as strings
	sort.Strings(dates)

	groups := make([]dayGroup, 0, len(dates))
	for _, date := range dates {
		groups = append(groups, dayGroup{date: date, dishes: buckets[date]})
	}
	return groups, nil
}

func dateOf(ts int64) (string, error) {
	t := time.Unix(ts, 0).UTC()
	if y := t.Year(); y < 1 || y > 9999 {
		return "", &DateDecodeError{Timestamp: ts}
	}
	return t.Format("2006-01-02"), nil
}

// dishNotes builds the human-readable annotation list for a dish: the dish
// type first, then one entry per allergen (with matching specific allergens
// parenthesised), then one entry per additive. Order is fixed, nothing is
// deduplicated.
func dishNotes(dish *mensa.Dish) []string {
	var notes []string

	if label, ok := dishTypeDescription(dish.Type); ok {
		notes = append(notes, label)
	}

	for _, allergen := range dish.Allergics {
		descriptive := allergenDescription(allergen)

		var specifics []string
		for _, v := range dish.SpecificAllergics {
			if strings.HasPrefix(v, allergen) {
				specifics = append(specifics, allergenDescription(v))
			}
		}
		if len(specifics) > 0 {
			descriptive += fmt.Sprintf(" (%s)", strings.Join(specifics, ", "))
		}

		notes = append(notes, descriptive)
	}

	for _, additive := range dish.Additionals {
		notes = append(notes, additiveDescription(additive))
	}

	return notes
}
