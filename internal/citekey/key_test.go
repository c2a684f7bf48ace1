// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citekey

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	k, err := Parse(" robitaille:08:2413 ")
	require.NoError(t, err)
	assert.Equal(t, Key{Author: "robitaille", Year: 2008, Page: "2413"}, k)
	assert.Equal(t, "robitaille:08:2413", k.Short())

	k, err = Parse("whitney:3:L12")
	require.NoError(t, err)
	assert.Equal(t, 2003, k.Year)
	assert.Equal(t, "whitney:03:L12", k.Short())
}

func TestParseMalformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"smith",
		"smith:99",
		"smith:99:12:3",
		":99:12",
		"smith:99:",
		"smith:xx:12",
		"smith:-1:12",
		"smith:2008:12",
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := Parse(raw)
			assert.ErrorIs(t, err, ErrMalformedKey)
		})
	}
}

func TestExpandYearPivot(t *testing.T) {
	for yy := 0; yy <= 99; yy++ {
		want := 1900 + yy
		if yy <= 20 {
			want = 2000 + yy
		}
		k, err := Parse(fmt.Sprintf("author:%02d:1", yy))
		require.NoError(t, err)
		assert.Equal(t, want, k.Year, "yy=%02d", yy)
		assert.Equal(t, fmt.Sprintf("author:%02d:1", yy), k.Short())
	}
}
