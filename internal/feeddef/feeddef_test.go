package feeddef

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_Minimal(t *testing.T) {
	d, err := Parse("1;full;1;https://feeds.example.org/1/full.xml;4")
	require.NoError(t, err)

	require.Equal(t, "1", d.CanteenID)
	require.Equal(t, "full", d.Feed.Name)
	require.NotNil(t, d.Feed.Priority)
	require.Equal(t, 1, *d.Feed.Priority)
	require.Equal(t, "https://feeds.example.org/1/full.xml", d.Feed.URL)
	require.NotNil(t, d.Feed.Schedule)
	require.Equal(t, "4", d.Feed.Schedule.Hour)
	require.Empty(t, d.Feed.Schedule.Minute)
	require.Empty(t, d.Feed.Schedule.Retry)
}

func TestParse_AllFields(t *testing.T) {
	d, err := Parse("2;today;0;https://feeds.example.org/2/today.xml;6-16;30;*;*;*;30 1")
	require.NoError(t, err)

	s := d.Feed.Schedule
	require.Equal(t, "6-16", s.Hour)
	require.Equal(t, "30", s.Minute)
	require.Equal(t, "*", s.DayOfWeek)
	require.Equal(t, "*", s.DayOfMonth)
	require.Equal(t, "*", s.Month)
	require.Equal(t, "30 1", s.Retry)
}

func TestParse_EmptyOptionalPositions(t *testing.T) {
	d, err := Parse("1;full;;https://feeds.example.org/1/full.xml;4;;*")
	require.NoError(t, err)
	require.Nil(t, d.Feed.Priority)
	require.Empty(t, d.Feed.Schedule.Minute)
	require.Equal(t, "*", d.Feed.Schedule.DayOfWeek)
}

func TestParse_Invalid(t *testing.T) {
	for _, s := range []string{
		"",
		"1;full;1;https://x",                // missing hour
		"1;full;one;https://x/full.xml;4",   // bad priority
		";full;1;https://x/full.xml;4",      // empty canteen
		"1;;1;https://x/full.xml;4",         // empty name
		"1;full;1;;4",                       // empty url
		"1;full;1;https://x/full.xml;",      // empty hour
		"1;full;1;https://x;4;;;;;;too;far", // too many fields
	} {
		_, err := Parse(s)
		require.Error(t, err, "input %q", s)
	}
}

func TestParseAll_GroupsByCanteen(t *testing.T) {
	feeds, err := ParseAll([]string{
		"1;full;1;https://feeds.example.org/1/full.xml;4",
		"1;today;0;https://feeds.example.org/1/today.xml;6-16",
		"2;full;1;https://feeds.example.org/2/full.xml;4",
	})
	require.NoError(t, err)
	require.Len(t, feeds["1"], 2)
	require.Equal(t, "full", feeds["1"][0].Name)
	require.Equal(t, "today", feeds["1"][1].Name)
	require.Len(t, feeds["2"], 1)
}
