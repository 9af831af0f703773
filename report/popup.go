// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"strings"

	"github.com/policemap/policemap/police"
	"golang.org/x/net/html"
)

// Field is one labelled row of a marker popup.
type Field struct {
	Label string
	Value string
}

// PopupHTML renders fields in order as "<b>Label:</b> value<br>" lines.
func PopupHTML(fields []Field) string {
	var sb strings.Builder

	for _, f := range fields {
		sb.WriteString("<b>")
		sb.WriteString(html.EscapeString(f.Label))
		sb.WriteString(":</b> ")
		sb.WriteString(html.EscapeString(f.Value))
		sb.WriteString("<br>\n")
	}

	return sb.String()
}

// StopAndSearchFields returns the popup rows of a stop and search.
func StopAndSearchFields(s *police.StopAndSearch) []Field {
	return []Field{
		{"Type", s.Type.String()},
		{"Involved Person", s.InvolvedPerson.String()},
		{"Date & Time", s.Datetime.String()},
		{"Operation", s.Operation.Or(police.None)},
		{"Operation Name", s.OperationName.Or(police.None)},
		{"Street Name", s.Location.StreetName()},
		{"Gender", s.Gender.String()},
		{"Age Range", s.AgeRange.String()},
		{"Self-defined Ethnicity", s.SelfDefinedEthnicity.String()},
		{"Officer-defined Ethnicity", s.OfficerDefinedEthnicity.String()},
		{"Legislation", s.Legislation.String()},
		{"Object of Search", s.ObjectOfSearch.String()},
		{"Outcome", s.Outcome.String()},
		{"Outcome Linked to Object of Search", s.OutcomeLinkedToObjectOfSearch.String()},
		{"Removal of More Than Outer Clothing", s.RemovalOfMoreThanOuterClothing.String()},
	}
}

// StreetCrimeFields returns the popup rows of a street crime.
func StreetCrimeFields(c *police.StreetCrime) []Field {
	return []Field{
		{"Category", CategoryTitle(c.Category.String())},
		{"Location Type", Title(c.LocationType.String())},
		{"Street ID", c.Location.StreetID()},
		{"Street Name", c.Location.StreetName()},
		{"Outcome", c.Outcome()},
		{"Month", c.Month.String()},
	}
}
