// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

// Package htmlutils provides utility functions for working with HTML.
package htmlutils

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// MetaContent returns the content of the first <meta name=...> in the head of
// the page, and whether it was found. Reading stops at the end of the head.
func MetaContent(r io.Reader, name string) (string, bool, error) {
	z := html.NewTokenizer(r)

	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return "", false, nil
			}

			return "", false, z.Err()
		case html.EndTagToken:
			if tag, _ := z.TagName(); atom.Lookup(tag) == atom.Head {
				return "", false, nil
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			tag, hasAttr := z.TagName()
			if atom.Lookup(tag) == atom.Body {
				return "", false, nil
			}

			if atom.Lookup(tag) != atom.Meta || !hasAttr {
				continue
			}

			if content, ok := metaAttrs(z, name); ok {
				return content, true, nil
			}
		}
	}
}

func metaAttrs(z *html.Tokenizer, name string) (string, bool) {
	var metaName, content string

	for more := true; more; {
		var key, val []byte
		key, val, more = z.TagAttr()

		switch string(key) {
		case "name":
			metaName = string(val)
		case "content":
			content = string(val)
		}
	}

	return content, strings.EqualFold(metaName, name)
}
