// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Title upper-cases the first letter of every word and lower-cases the rest.
func Title(s string) string {
	return titleCaser.String(s)
}

// CategoryTitle turns an API slug such as "anti-social-behaviour" into
// "Anti Social Behaviour".
func CategoryTitle(slug string) string {
	return Title(strings.ReplaceAll(slug, "-", " "))
}

// FieldTitle turns an attribute name such as "age_range" into "Age Range".
func FieldTitle(name string) string {
	return Title(strings.ReplaceAll(name, "_", " "))
}
