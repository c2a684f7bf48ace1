// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citekey

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedKey is returned for keys that are not author:yy:page.
var ErrMalformedKey = errors.New("malformed citation key")

// pivotYear splits two-digit years: above it is 19xx, at or below is 20xx.
// Keys for 1900-1920 or after 2020 expand to the wrong century.
const pivotYear = 20

// Key is a parsed author:yy:page citation key.
type Key struct {
	Author string
	Year   int // four-digit year after pivot expansion
	Page   string
}

// Parse splits an author:yy:page key and expands the year.
func Parse(raw string) (Key, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 3 {
		return Key{}, fmt.Errorf("%w: %q has %d components, want 3", ErrMalformedKey, raw, len(parts))
	}

	author, yy, page := parts[0], parts[1], parts[2]
	if author == "" {
		return Key{}, fmt.Errorf("%w: %q has an empty author", ErrMalformedKey, raw)
	}
	if page == "" {
		return Key{}, fmt.Errorf("%w: %q has an empty page", ErrMalformedKey, raw)
	}

	n, err := strconv.Atoi(yy)
	if err != nil || n < 0 || n > 99 {
		return Key{}, fmt.Errorf("%w: %q has year %q, want two digits", ErrMalformedKey, raw, yy)
	}

	return Key{Author: author, Year: ExpandYear(n), Page: page}, nil
}

// ExpandYear turns a two-digit year into a four-digit one.
func ExpandYear(yy int) int {
	if yy > pivotYear {
		return 1900 + yy
	}
	return 2000 + yy
}

// Short renders the key as author:yy:page with a zero-padded two-digit year.
func (k Key) Short() string {
	return fmt.Sprintf("%s:%02d:%s", k.Author, k.Year%100, k.Page)
}

func (k Key) String() string { return k.Short() }
