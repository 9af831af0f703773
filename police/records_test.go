// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

package police

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/policemap/policemap/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture[T any](t *testing.T, name string) []T {
	t.Helper()

	data, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)

	var ret []T
	require.NoError(t, json.Unmarshal(data, &ret))

	return ret
}

func TestValue_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input string
		text  string
		valid bool
	}{
		{`"Male"`, "Male", true},
		{`""`, "", true},
		{`true`, "True", true},
		{`false`, "False", true},
		{`1673994`, "1673994", true},
		{`-0.45`, "-0.45", true},
		{`null`, Unknown, false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			var v Value
			require.NoError(t, json.Unmarshal([]byte(tc.input), &v))
			assert.Equal(t, tc.valid, v.Valid())
			assert.Equal(t, tc.text, v.String())
		})
	}

	var v Value
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &v))
}

func TestValue_Or(t *testing.T) {
	assert.Equal(t, None, Value{}.Or(None))
	assert.Equal(t, "x", NewValue("x").Or(None))

	data, err := json.Marshal(struct {
		A Value `json:"a"`
		B Value `json:"b"`
	}{A: NewValue("x")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"x","b":null}`, string(data))
}

func TestStopAndSearch_Decode(t *testing.T) {
	stops := loadFixture[StopAndSearch](t, "stops-street.json")
	require.Len(t, stops, 3)

	first := stops[0]
	assert.Equal(t, "Person search", first.Type.String())
	assert.Equal(t, "True", first.InvolvedPerson.String())
	assert.Equal(t, "False", first.Operation.Or(None))
	assert.Equal(t, None, first.OperationName.Or(None))
	assert.Equal(t, Unknown, first.OutcomeLinkedToObjectOfSearch.String())
	assert.Equal(t, "False", first.RemovalOfMoreThanOuterClothing.String())
	assert.Equal(t, "On or near Bath Road", first.Location.StreetName())
	assert.Equal(t, "1673994", first.Location.StreetID())

	p, ok := first.Point()
	require.True(t, ok)

	if diff := cmp.Diff(spatial.Point{Lat: 51.47062, Lng: -0.45193}, p); diff != "" {
		t.Errorf("unexpected point (-want +got):\n%s", diff)
	}

	// absent and null read the same
	second := stops[1]
	assert.False(t, second.AgeRange.Valid())
	assert.False(t, second.RemovalOfMoreThanOuterClothing.Valid())
	assert.Equal(t, None, second.Operation.Or(None))

	third := stops[2]
	_, ok = third.Point()
	assert.False(t, ok)
	assert.Equal(t, Unknown, third.Location.StreetName())
	assert.Equal(t, Unknown, third.Gender.String())
}

func TestStreetCrime_Decode(t *testing.T) {
	crimes := loadFixture[StreetCrime](t, "crimes-street.json")
	require.Len(t, crimes, 3)

	assert.Equal(t, "anti-social-behaviour", crimes[0].Category.String())
	assert.Equal(t, NoOutcome, crimes[0].Outcome())
	assert.Equal(t, "Investigation complete; no suspect identified", crimes[1].Outcome())
	assert.Equal(t, "BTP", crimes[2].LocationType.String())
	assert.Equal(t, Unknown, crimes[2].Location.StreetID())
	assert.Equal(t, "2025-02", crimes[2].Month.String())

	for _, c := range crimes {
		p, ok := c.Point()
		require.True(t, ok)
		assert.Equal(t, spatial.Point{Lat: 51.0, Lng: 0.0}, p)
	}
}

func TestLocation_Point(t *testing.T) {
	tests := []struct {
		name     string
		location *Location
		ok       bool
	}{
		{"nil", nil, false},
		{"missing latitude", &Location{Longitude: NewValue("1")}, false},
		{"garbage", &Location{Latitude: NewValue("north"), Longitude: NewValue("1")}, false},
		{"garbage longitude", &Location{Latitude: NewValue("1"), Longitude: NewValue("east")}, false},
		{"valid", &Location{Latitude: NewValue("1.5"), Longitude: NewValue("-2")}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := tc.location.Point()
			assert.Equal(t, tc.ok, ok)
		})
	}
}

func TestStreetCrime_OutcomeWithoutCategory(t *testing.T) {
	c := StreetCrime{OutcomeStatus: &OutcomeStatus{}}
	assert.Equal(t, NoOutcome, c.Outcome())
}
