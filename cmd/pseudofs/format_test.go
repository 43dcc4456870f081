package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSizeSuffixes(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"1000", 1000},
		{"5KB", 5_000},
		{"2MB", 2_000_000},
		{"1GB", 1_000_000_000},
	}
	for _, c := range cases {
		got, err := parseSize(c.in)
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}
}

func TestParseSizeRejectsGarbage(t *testing.T) {
	_, err := parseSize("notasize")
	assert.Error(t, err)
}
