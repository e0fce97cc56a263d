package openmensa

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
)

const (
	namespace      = "http://openmensa.org/open-mensa-v2"
	xsiNamespace   = "http://www.w3.org/2001/XMLSchema-instance"
	schemaLocation = "http://openmensa.org/open-mensa-v2 http://openmensa.org/open-mensa-v2.xsd"
)

// SerializationError wraps any encoder fault. Serialization either succeeds
// completely or fails with this error; no partial document is ever returned.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string { return "openmensa: serialize: " + e.Err.Error() }
func (e *SerializationError) Unwrap() error { return e.Err }

// Serialize renders the document as a UTF-8 OpenMensa v2 XML string.
func (d *Document) Serialize() (string, error) {
	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Write streams the XML document to w.
func (d *Document) Write(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return &SerializationError{err}
	}
	if err := d.encode(w); err != nil {
		return &SerializationError{err}
	}
	return nil
}

func (d *Document) encode(w io.Writer) error {
	enc := xml.NewEncoder(w)
	root := xml.StartElement{
		Name: xml.Name{Local: "openmensa"},
		Attr: []xml.Attr{
			attr("xmlns", namespace),
			attr("xmlns:xsi", xsiNamespace),
			attr("xsi:schemaLocation", schemaLocation),
			attr("version", d.Version),
		},
	}
	if err := enc.EncodeToken(root); err != nil {
		return err
	}
	if d.ParserVersion != "" {
		if err := enc.EncodeElement(d.ParserVersion, elem("version")); err != nil {
			return err
		}
	}
	if err := enc.EncodeElement(&d.Canteen, elem("canteen")); err != nil {
		return err
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return err
	}
	return enc.Flush()
}

func (c *Canteen) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	// simple optional text children, in schema order
	texts := []struct {
		name  string
		value string
	}{
		{"name", c.Name},
		{"address", c.Address},
		{"city", c.City},
		{"phone", c.Phone},
		{"email", c.Email},
	}
	for _, t := range texts {
		if t.value == "" {
			continue
		}
		if err := e.EncodeElement(t.value, elem(t.name)); err != nil {
			return err
		}
	}
	if c.Location != nil {
		if err := e.EncodeElement(c.Location, elem("location")); err != nil {
			return err
		}
	}
	if c.Availability != "" {
		if err := e.EncodeElement(string(c.Availability), elem("availability")); err != nil {
			return err
		}
	}
	if c.Times != nil {
		if err := e.EncodeElement(c.Times, elem("times")); err != nil {
			return err
		}
	}
	for i := range c.Feeds {
		if err := e.EncodeElement(&c.Feeds[i], elem("feed")); err != nil {
			return err
		}
	}
	for i := range c.Days {
		if err := e.EncodeElement(c.Days[i], elem("day")); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

func (t *Times) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = append(start.Attr, attr("type", "opening"))
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	weekdays := []struct {
		name string
		day  *Weekday
	}{
		{"monday", t.Monday},
		{"tuesday", t.Tuesday},
		{"wednesday", t.Wednesday},
		{"thursday", t.Thursday},
		{"friday", t.Friday},
		{"saturday", t.Saturday},
		{"sunday", t.Sunday},
	}
	for _, wd := range weekdays {
		if wd.day == nil {
			continue
		}
		if err := e.EncodeElement(wd.day, elem(wd.name)); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// MarshalXML renders the xs:choice between an open day (category children)
// and a closed day (single empty closed element).
func (d Day) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = append(start.Attr, attr("date", d.Date))
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if d.closed {
		if err := e.EncodeElement("", elem("closed")); err != nil {
			return err
		}
	} else {
		for i := range d.categories {
			if err := e.EncodeElement(&d.categories[i], elem("category")); err != nil {
				return err
			}
		}
	}
	return e.EncodeToken(start.End())
}

func (c *Category) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = append(start.Attr, attr("name", c.Name))
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for i := range c.Meals {
		if err := e.EncodeElement(&c.Meals[i], elem("meal")); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

func (m *Meal) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := e.EncodeElement(m.Name, elem("name")); err != nil {
		return err
	}
	for _, n := range m.Notes {
		if err := e.EncodeElement(n, elem("note")); err != nil {
			return err
		}
	}
	for i := range m.Prices {
		if err := e.EncodeElement(m.Prices[i], elem("price")); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

func (p Price) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = append(start.Attr, attr("role", string(p.Role)))
	value := strconv.FormatFloat(float64(p.Value), 'f', -1, 32)
	return e.EncodeElement(value, start)
}

func elem(name string) xml.StartElement {
	return xml.StartElement{Name: xml.Name{Local: name}}
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}
