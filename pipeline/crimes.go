// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/policemap/policemap/police"
	"github.com/policemap/policemap/report"
)

// StreetCrime maps the street-level crimes of a month around the configured
// point.
func StreetCrime(ctx context.Context, src Source, options *Options) (*Result, error) {
	category := strings.TrimSpace(options.Category)
	if category == "" {
		category = police.AllCrime
	}

	title := fmt.Sprintf("Street crime (%s), %s", report.CategoryTitle(category), options.Month)

	r, err := newRun(options, title, report.ColorStreetCrime)
	if err != nil {
		return nil, err
	}

	crimes, err := src.CrimesStreet(ctx, category, options.Month, r.area)
	if err != nil {
		return nil, fmt.Errorf("fetching street crimes: %w", err)
	}

	r.start(len(crimes), "Placing street crimes")

	for i := range crimes {
		c := &crimes[i]

		p, ok := c.Point()
		r.place(p, ok, report.StreetCrimeFields(c))
	}

	if err := r.finishMap(); err != nil {
		return nil, err
	}

	r.lastUpdated(ctx, src)

	return &r.result, nil
}
