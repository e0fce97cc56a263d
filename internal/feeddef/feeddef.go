package feeddef

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mensa-darmstadt/openmensa-parser/internal/openmensa"
)

// Package feeddef parses the semicolon-separated feed definitions the batch
// exporter accepts on the command line:
//
//	canteenId;name;priority;url;hour[;minute[;dayOfWeek[;dayOfMonth[;month[;retry]]]]]
//
// The trailing schedule fields are optional and may be left empty to skip a
// position, e.g. "1;full;1;https://x/full.xml;4;;*;*".

// Definition binds a Feed entry to the canteen it belongs to.
type Definition struct {
	CanteenID string
	Feed      openmensa.Feed
}

// Parse parses a single feed definition string.
func Parse(s string) (*Definition, error) {
	parts := strings.Split(s, ";")
	if len(parts) < 5 {
		return nil, fmt.Errorf("feeddef: %q: need at least canteenId;name;priority;url;hour", s)
	}
	if len(parts) > 10 {
		return nil, fmt.Errorf("feeddef: %q: too many fields", s)
	}

	canteenID := parts[0]
	if canteenID == "" {
		return nil, fmt.Errorf("feeddef: %q: empty canteen id", s)
	}
	name := parts[1]
	if name == "" {
		return nil, fmt.Errorf("feeddef: %q: empty feed name", s)
	}

	var priority *int
	if parts[2] != "" {
		p, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, fmt.Errorf("feeddef: %q: invalid priority: %w", s, err)
		}
		priority = &p
	}

	url := parts[3]
	if url == "" {
		return nil, fmt.Errorf("feeddef: %q: empty url", s)
	}
	hour := parts[4]
	if hour == "" {
		return nil, fmt.Errorf("feeddef: %q: empty schedule hour", s)
	}

	schedule := &openmensa.Schedule{Hour: hour}
	optional := []*string{&schedule.Minute, &schedule.DayOfWeek, &schedule.DayOfMonth, &schedule.Month, &schedule.Retry}
	for i, field := range parts[5:] {
		*optional[i] = field
	}

	return &Definition{
		CanteenID: canteenID,
		Feed: openmensa.Feed{
			Name:     name,
			Priority: priority,
			URL:      url,
			Schedule: schedule,
		},
	}, nil
}

// ParseAll parses a list of definitions and groups the resulting feeds by
// canteen ID, preserving input order per canteen.
func ParseAll(defs []string) (map[string][]openmensa.Feed, error) {
	byCanteen := make(map[string][]openmensa.Feed)
	for _, s := range defs {
		d, err := Parse(s)
		if err != nil {
			return nil, err
		}
		byCanteen[d.CanteenID] = append(byCanteen[d.CanteenID], d.Feed)
	}
	return byCanteen, nil
}
