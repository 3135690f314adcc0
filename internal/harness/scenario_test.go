package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cutoff/internal/sum"
)

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", "fixture_large_sum.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "fixture_large_sum", s.Name)
	assert.Equal(t, Items{25, 50, 75, 100}, s.Items)
	assert.Equal(t, sum.DefaultThreshold, s.ThresholdOrDefault())
	require.NotNil(t, s.Expect)
	require.NotNil(t, s.Expect.Total)
	assert.Equal(t, int64(150), *s.Expect.Total)
	require.NotNil(t, s.Expect.Consumed)
	assert.Equal(t, 3, *s.Expect.Consumed)
	assert.Equal(t, []int64{25, 75, 150}, s.Expect.Trace)
}

func TestLoadScenario_CustomThreshold(t *testing.T) {
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", "custom_threshold.yaml"))
	require.NoError(t, err)
	assert.Equal(t, int64(10), s.ThresholdOrDefault())
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_AllTestdataValid(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		t.Run(filepath.Base(f), func(t *testing.T) {
			_, err := LoadScenario(f)
			require.NoError(t, err)
		})
	}
}

func TestParseScenario_EmptyItems(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: e
description: d
items: []
expect: {total: 0}
`))
	require.NoError(t, err)
	assert.NotNil(t, s.Items)
	assert.Empty(t, s.Items)
}

func TestParseScenario_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		msg  string
	}{
		{"missing_name", "description: d\nitems: [1]\nexpect: {total: 1}\n", "name is required"},
		{"missing_description", "name: n\nitems: [1]\nexpect: {total: 1}\n", "description is required"},
		{"missing_items", "name: n\ndescription: d\nexpect: {total: 1}\n", "items is required"},
		{"missing_expect", "name: n\ndescription: d\nitems: [1]\n", "expect is required"},
		{"missing_total", "name: n\ndescription: d\nitems: [1]\nexpect: {consumed: 1}\n", "expect.total is required"},
		{"negative_consumed", "name: n\ndescription: d\nitems: [1]\nexpect: {total: 1, consumed: -1}\n", "must be non-negative"},
		{"unknown_field", "name: n\ndescription: d\nitem: [1]\nexpect: {total: 1}\n", "field item not found"},
		{"malformed", "name: [\n", "failed to parse YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestParseScenario_InvalidItems(t *testing.T) {
	tests := []struct {
		name  string
		items string
		index int
		value string
	}{
		{"float", "[1, 2.5]", 1, "2.5"},
		{"quoted_number", `[1, 2, "3"]`, 2, "3"},
		{"word", "[ten]", 0, "ten"},
		{"nested_list", "[[1]]", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "name: n\ndescription: d\nitems: " + tt.items + "\nexpect: {total: 1}\n"
			_, err := ParseScenario([]byte(src))
			require.Error(t, err)

			var ie *sum.InvalidInputError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, tt.index, ie.Index)
			assert.Equal(t, tt.value, ie.Value)
			assert.Equal(t, "line 3", ie.Source)
		})
	}
}

func TestParseScenario_SumOutOfRange(t *testing.T) {
	src := "name: n\ndescription: d\nitems: [-9223372036854775807, -10, 5]\nexpect: {total: 1}\n"
	_, err := ParseScenario([]byte(src))
	require.Error(t, err)

	var ie *sum.InvalidInputError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "items", ie.Source)
	assert.Equal(t, 1, ie.Index)
	assert.Equal(t, "sum out of int64 range", ie.Reason)
}

func TestParseScenario_RangeUsesScenarioThreshold(t *testing.T) {
	src := "name: n\ndescription: d\nthreshold: 10\nitems: [9223372036854775807, 1]\nexpect: {total: 9223372036854775807}\n"
	s, err := ParseScenario([]byte(src))
	require.NoError(t, err, "the scan stops before the overflowing item")
	assert.True(t, Run(s).Pass)
}

func TestParseScenario_ItemsNotList(t *testing.T) {
	_, err := ParseScenario([]byte("name: n\ndescription: d\nitems: 5\nexpect: {total: 1}\n"))
	require.Error(t, err)
	assert.True(t, sum.IsInvalidInput(err))
	assert.Contains(t, err.Error(), "items must be a list")
}

func TestLoadScenario_FromTempFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tmp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: tmp\ndescription: d\nitems: [101]\nexpect: {total: 101, crossed: true}\n"), 0644))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "tmp", s.Name)
	require.NotNil(t, s.Expect.Crossed)
	assert.True(t, *s.Expect.Crossed)
}
