// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

package police

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/policemap/policemap/spatial"
)

// Defaults used when a record lacks a value.
const (
	Unknown   = "Unknown"
	None      = "None"
	NoOutcome = "No outcome available"
)

// Value is a scalar attribute as sent by the API. Attributes are usually
// strings, but some of them are booleans or numbers and any of them may be
// null or missing. Value keeps the textual form and whether it was present.
type Value struct {
	text  string
	valid bool
}

// NewValue returns a present Value holding s.
func NewValue(s string) Value {
	return Value{text: s, valid: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		*v = Value{}
	case bytes.Equal(data, []byte("true")):
		*v = NewValue("True")
	case bytes.Equal(data, []byte("false")):
		*v = NewValue("False")
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		*v = NewValue(s)
	case len(data) > 0 && (data[0] == '-' || (data[0] >= '0' && data[0] <= '9')):
		*v = NewValue(string(data))
	default:
		return fmt.Errorf("unsupported attribute value %s", data)
	}

	return nil
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.valid {
		return []byte("null"), nil
	}

	return json.Marshal(v.text)
}

// Valid reports whether the attribute was present and not null.
func (v Value) Valid() bool {
	return v.valid
}

// Or returns the attribute, or def if it's missing.
func (v Value) Or(def string) string {
	if !v.valid {
		return def
	}

	return v.text
}

// String returns the attribute, or Unknown if it's missing.
func (v Value) String() string {
	return v.Or(Unknown)
}

// Street is the anonymised street a record is snapped to.
type Street struct {
	ID   Value `json:"id"`
	Name Value `json:"name"`
}

// Location is where a record happened. Coordinates come as strings.
type Location struct {
	Latitude  Value   `json:"latitude"`
	Longitude Value   `json:"longitude"`
	Street    *Street `json:"street"`
}

// Point parses the coordinates. It returns false when either of them is
// missing or not a number.
func (l *Location) Point() (spatial.Point, bool) {
	if l == nil || !l.Latitude.Valid() || !l.Longitude.Valid() {
		return spatial.Point{}, false
	}

	lat, err := strconv.ParseFloat(l.Latitude.text, 64)
	if err != nil {
		return spatial.Point{}, false
	}

	lng, err := strconv.ParseFloat(l.Longitude.text, 64)
	if err != nil {
		return spatial.Point{}, false
	}

	return spatial.Point{Lat: lat, Lng: lng}, true
}

// StreetID returns the street id, or Unknown.
func (l *Location) StreetID() string {
	if l == nil || l.Street == nil {
		return Unknown
	}

	return l.Street.ID.String()
}

// StreetName returns the street name, or Unknown.
func (l *Location) StreetName() string {
	if l == nil || l.Street == nil {
		return Unknown
	}

	return l.Street.Name.String()
}

// StopAndSearch is a stop and search event, see
// https://data.police.uk/docs/method/stops-street/
//
// Every attribute defaults to Unknown when missing, except Operation and
// OperationName which default to None. Booleans read as "True" or "False".
type StopAndSearch struct {
	Type                           Value     `json:"type"`
	InvolvedPerson                 Value     `json:"involved_person"`
	Datetime                       Value     `json:"datetime"`
	Operation                      Value     `json:"operation"`
	OperationName                  Value     `json:"operation_name"`
	Gender                         Value     `json:"gender"`
	AgeRange                       Value     `json:"age_range"`
	SelfDefinedEthnicity           Value     `json:"self_defined_ethnicity"`
	OfficerDefinedEthnicity        Value     `json:"officer_defined_ethnicity"`
	Legislation                    Value     `json:"legislation"`
	ObjectOfSearch                 Value     `json:"object_of_search"`
	Outcome                        Value     `json:"outcome"`
	OutcomeLinkedToObjectOfSearch  Value     `json:"outcome_linked_to_object_of_search"`
	RemovalOfMoreThanOuterClothing Value     `json:"removal_of_more_than_outer_clothing"`
	Location                       *Location `json:"location"`
}

// Point returns the location of the event. Some events are published
// without one.
func (s *StopAndSearch) Point() (spatial.Point, bool) {
	return s.Location.Point()
}

// OutcomeStatus is the latest outcome of a street crime.
type OutcomeStatus struct {
	Category Value `json:"category"`
	Date     Value `json:"date"`
}

// StreetCrime is a street level crime, see
// https://data.police.uk/docs/method/crime-street/
//
// Attributes default to Unknown when missing; a missing outcome reads as
// NoOutcome.
type StreetCrime struct {
	ID              Value          `json:"id"`
	PersistentID    Value          `json:"persistent_id"`
	Category        Value          `json:"category"`
	LocationType    Value          `json:"location_type"`
	LocationSubtype Value          `json:"location_subtype"`
	Context         Value          `json:"context"`
	Month           Value          `json:"month"`
	Location        *Location      `json:"location"`
	OutcomeStatus   *OutcomeStatus `json:"outcome_status"`
}

// Point returns the location of the crime.
func (c *StreetCrime) Point() (spatial.Point, bool) {
	return c.Location.Point()
}

// Outcome returns the outcome category, or NoOutcome.
func (c *StreetCrime) Outcome() string {
	if c.OutcomeStatus == nil {
		return NoOutcome
	}

	return c.OutcomeStatus.Category.Or(NoOutcome)
}
