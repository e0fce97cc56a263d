package parser

import (
	"context"
	"time"

	"github.com/mensa-darmstadt/openmensa-parser/internal/mensa"
	"github.com/mensa-darmstadt/openmensa-parser/internal/openmensa"
)

// Version is the parser build version embedded in generated documents as the
// informational parserVersion element.
const Version = "0.3.0"

// categoryName is the single category this pipeline produces. The model
// supports more, the backend does not distinguish any.
const categoryName = "Mensa"

// MenuSource is the external data-fetch collaborator. Date bounds are
// "YYYY-MM-DD" strings; a nil bound leaves the range open on that side.
type MenuSource interface {
	MenuItems(ctx context.Context, canteenID string, minDate, maxDate *string) ([]mensa.MenuItem, error)
}

// Parser translates raw canteen menu data into OpenMensa documents.
type Parser struct {
	source MenuSource
}

func New(source MenuSource) *Parser {
	return &Parser{source: source}
}

// FeedForRange fetches the canteen's menu for [from, to] and builds the
// OpenMensa document for it. Either bound may be nil. Transport and date
// decoding failures propagate unchanged; no partial document is returned.
// The returned document carries only days; callers may fill in canteen
// metadata or append feed entries before serializing.
func (p *Parser) FeedForRange(ctx context.Context, canteenID string, from, to *time.Time) (*openmensa.Document, error) {
	items, err := p.source.MenuItems(ctx, canteenID, formatDate(from), formatDate(to))
	if err != nil {
		return nil, err
	}

	groups, err := groupByDate(items)
	if err != nil {
		return nil, err
	}

	days := make([]openmensa.Day, 0, len(groups))
	for _, group := range groups {
		meals := make([]openmensa.Meal, 0, len(group.dishes))
		for i := range group.dishes {
			dish := &group.dishes[i]
			meals = append(meals, openmensa.Meal{
				Name:  dish.Name,
				Notes: dishNotes(dish),
				Prices: []openmensa.Price{
					{Value: float32(dish.StudentPrice), Role: openmensa.RoleStudent},
					{Value: float32(dish.GuestPrice), Role: openmensa.RoleOther},
				},
			})
		}
		days = append(days, openmensa.NewOpenDay(group.date, openmensa.Category{
			Name:  categoryName,
			Meals: meals,
		}))
	}

	return &openmensa.Document{
		Version:       "2.1",
		ParserVersion: Version,
		Canteen:       openmensa.Canteen{Days: days},
	}, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
