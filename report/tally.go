// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"github.com/policemap/policemap/police"
)

// Chart sizing, in pixels.
const (
	chartRowHeight   = 300
	chartSliceHeight = 100
)

// Series is the distribution of one attribute. Labels keep the order in which
// values were first seen, not their frequency.
type Series struct {
	Field  string
	Title  string
	Labels []string
	Counts []int
}

// Total returns the sum of the counts.
func (s *Series) Total() int {
	total := 0
	for _, c := range s.Counts {
		total += c
	}

	return total
}

// Tally counts attribute values per field.
type Tally struct {
	fields []string
	series map[string]*Series
	index  map[string]map[string]int // field -> label -> position in Labels
}

// NewTally creates an empty tally tracking fields, in that order.
func NewTally(fields ...string) *Tally {
	t := &Tally{
		fields: fields,
		series: make(map[string]*Series, len(fields)),
		index:  make(map[string]map[string]int, len(fields)),
	}

	for _, f := range fields {
		t.series[f] = &Series{Field: f, Title: FieldTitle(f)}
		t.index[f] = make(map[string]int)
	}

	return t
}

// Add counts one occurrence of v for field. Missing values count as
// police.Unknown. Fields the tally doesn't track are ignored.
func (t *Tally) Add(field string, v police.Value) {
	s, ok := t.series[field]
	if !ok {
		return
	}

	label := v.String()

	pos, seen := t.index[field][label]
	if !seen {
		pos = len(s.Labels)
		t.index[field][label] = pos
		s.Labels = append(s.Labels, label)
		s.Counts = append(s.Counts, 0)
	}

	s.Counts[pos]++
}

// Series returns the distributions in field order.
func (t *Tally) Series() []Series {
	ret := make([]Series, 0, len(t.fields))
	for _, f := range t.fields {
		ret = append(ret, *t.series[f])
	}

	return ret
}

// MaxSlices returns the number of distinct values of the busiest field.
func (t *Tally) MaxSlices() int {
	maxSlices := 0
	for _, s := range t.series {
		maxSlices = max(maxSlices, len(s.Labels))
	}

	return maxSlices
}

// ChartHeight returns the height of a page stacking one pie per field. Fields
// with many values get extra room so labels don't overlap.
func (t *Tally) ChartHeight() int {
	return chartRowHeight*len(t.fields) + chartSliceHeight*t.MaxSlices()
}

// StopAndSearchChart is an attribute of stop and searches that gets a pie.
type StopAndSearchChart struct {
	Field string
	Value func(*police.StopAndSearch) police.Value
}

// StopAndSearchCharts lists the charted attributes, in page order.
var StopAndSearchCharts = []StopAndSearchChart{
	{"gender", func(s *police.StopAndSearch) police.Value { return s.Gender }},
	{"age_range", func(s *police.StopAndSearch) police.Value { return s.AgeRange }},
	{"self_defined_ethnicity", func(s *police.StopAndSearch) police.Value { return s.SelfDefinedEthnicity }},
	{"officer_defined_ethnicity", func(s *police.StopAndSearch) police.Value { return s.OfficerDefinedEthnicity }},
	{"legislation", func(s *police.StopAndSearch) police.Value { return s.Legislation }},
	{"object_of_search", func(s *police.StopAndSearch) police.Value { return s.ObjectOfSearch }},
	{"outcome", func(s *police.StopAndSearch) police.Value { return s.Outcome }},
	{"outcome_linked_to_object_of_search", func(s *police.StopAndSearch) police.Value {
		return s.OutcomeLinkedToObjectOfSearch
	}},
	{"removal_of_more_than_outer_clothing", func(s *police.StopAndSearch) police.Value {
		return s.RemovalOfMoreThanOuterClothing
	}},
}

// NewStopAndSearchTally creates an empty tally over StopAndSearchCharts.
func NewStopAndSearchTally() *Tally {
	fields := make([]string, len(StopAndSearchCharts))
	for i, c := range StopAndSearchCharts {
		fields[i] = c.Field
	}

	return NewTally(fields...)
}

// AddStopAndSearch counts every charted attribute of s.
func (t *Tally) AddStopAndSearch(s *police.StopAndSearch) {
	for _, c := range StopAndSearchCharts {
		t.Add(c.Field, c.Value(s))
	}
}
