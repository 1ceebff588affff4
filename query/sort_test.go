package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderByAcceptsColumnWithOptionalDirection(t *testing.T) {
	cases := map[string]string{
		"LAST_NAME":      " ORDER BY LAST_NAME ASC",
		"LAST_NAME DESC": " ORDER BY LAST_NAME DESC",
		"LAST_NAME+ASC":  " ORDER BY LAST_NAME ASC",
		"last_name desc": " ORDER BY last_name DESC",
	}
	for input, want := range cases {
		got, err := OrderBy(input, "id")
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}
}

func TestOrderByRejectsAnythingElse(t *testing.T) {
	rejected := []string{
		"LAST_NAME; DROP TABLE person",
		"last_name desc extra",
		"last_name,first_name",
		"last_name 'asc'",
		"1; --",
	}
	for _, input := range rejected {
		_, err := OrderBy(input, "id")
		assert.Error(t, err, "input %q", input)
	}
}

func TestOrderByEmptyFallsBackToDefault(t *testing.T) {
	got, err := OrderBy("   ", "last_name, first_name")
	require.NoError(t, err)
	assert.Equal(t, " ORDER BY last_name, first_name", got)

	got, err = OrderBy("", "")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}
