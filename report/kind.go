// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"io"

	"github.com/policemap/policemap/utils/htmlutils"
)

// Kinds of generated document, as tagged in their head.
const (
	KindMap    = "map"
	KindCharts = "charts"
)

const documentMetaName = "policemap-document"

// DocumentKind returns the kind of a document written by this package, or ""
// when the page carries no tag.
func DocumentKind(r io.Reader) (string, error) {
	kind, _, err := htmlutils.MetaContent(r, documentMetaName)

	return kind, err
}
