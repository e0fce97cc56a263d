package openmensa

// Package openmensa holds the canonical in-memory representation of an
// OpenMensa v2 document (http://openmensa.org/open-mensa-v2) and its XML
// serialization. A Document is built once per translation request and is
// read-only after it is handed to the serializer.

// Document is the root of an OpenMensa feed. Version must be "2.0" or "2.1".
// ParserVersion is informational and omitted from output when empty.
type Document struct {
	Version       string
	ParserVersion string
	Canteen       Canteen
}

// Canteen metadata. All fields except Days/Feeds are optional; the menu
// pipeline leaves them at their zero value and callers may fill them in
// before serialization.
type Canteen struct {
	Name         string
	Address      string
	City         string
	Phone        string
	Email        string
	Location     *Location
	Availability Availability
	Times        *Times
	Feeds        []Feed
	Days         []Day
}

// Location is a WGS84 coordinate pair. The schema uses 32-bit floats.
type Location struct {
	Latitude  float32 `xml:"latitude,attr"`
	Longitude float32 `xml:"longitude,attr"`
}

type Availability string

const (
	AvailabilityPublic     Availability = "public"
	AvailabilityRestricted Availability = "restricted"
)

// Times holds opening hours, one optional entry per weekday.
type Times struct {
	Monday    *Weekday
	Tuesday   *Weekday
	Wednesday *Weekday
	Thursday  *Weekday
	Friday    *Weekday
	Saturday  *Weekday
	Sunday    *Weekday
}

// Weekday is either open during "HH:mm-HH:mm", explicitly closed, or
// unspecified (both fields absent).
type Weekday struct {
	Open   string `xml:"open,attr,omitempty"`
	Closed *bool  `xml:"closed,attr,omitempty"`
}

// Feed is a link to another variant of this canteen's data (e.g. "full" or
// "today") together with a refresh schedule.
type Feed struct {
	Name     string    `xml:"name,attr"`
	Priority *int      `xml:"priority,attr,omitempty"`
	URL      string    `xml:"url"`
	Source   string    `xml:"source,omitempty"`
	Schedule *Schedule `xml:"schedule,omitempty"`
}

// Schedule is a cron-like refresh policy. Hour is required and may be a
// range ("6-16") or wildcard ("*"). Retry is an opaque space-separated retry
// policy string consumed by feed readers, not interpreted here.
type Schedule struct {
	Hour       string `xml:"hour,attr"`
	Minute     string `xml:"minute,attr,omitempty"`
	DayOfWeek  string `xml:"dayOfWeek,attr,omitempty"`
	DayOfMonth string `xml:"dayOfMonth,attr,omitempty"`
	Month      string `xml:"month,attr,omitempty"`
	Retry      string `xml:"retry,attr,omitempty"`
}

// Day is one calendar date of a canteen. Its content is an xs:choice: the
// day is either open with one or more categories, or closed. The fields are
// unexported so a Day can only be built through NewOpenDay/NewClosedDay and
// can never carry both variants.
type Day struct {
	Date string

	categories []Category
	closed     bool
}

// NewOpenDay returns an open Day serving the given categories.
func NewOpenDay(date string, categories ...Category) Day {
	return Day{Date: date, categories: categories}
}

// NewClosedDay returns a Day marked closed.
func NewClosedDay(date string) Day {
	return Day{Date: date, closed: true}
}

// IsClosed reports whether the day is the closed variant.
func (d Day) IsClosed() bool { return d.closed }

// Categories returns the day's categories. Empty for closed days.
func (d Day) Categories() []Category { return d.categories }

// Category groups meals under a display name (attribute in the wire format).
type Category struct {
	Name  string
	Meals []Meal
}

// Meal is a single dish with human-readable notes and a price list.
type Meal struct {
	Name   string
	Notes  []string
	Prices []Price
}

type PriceRole string

const (
	RolePupil    PriceRole = "pupil"
	RoleStudent  PriceRole = "student"
	RoleEmployee PriceRole = "employee"
	RoleOther    PriceRole = "other"
)

// Price is a currency amount for one payer role.
type Price struct {
	Value float32
	Role  PriceRole
}
