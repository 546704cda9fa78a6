//go:build !wasm

package regexmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DropsInvalidPatternButKeepsOthers(t *testing.T) {
	m, errs := New([]Source{
		{Index: 0, Pattern: `(?P<num>\d+)px`},
		{Index: 1, Pattern: `(unclosed`},
	})
	require.Len(t, errs, 1)
	defer m.Close()

	detected := m.Find("width: 42px")
	require.Len(t, detected, 1)
	assert.Equal(t, 0, detected[0].Index)
	assert.Equal(t, "42px", detected[0].Trigger)
	assert.Equal(t, "42", detected[0].Args["num"])
}

func TestFind_NoMatchReturnsEmpty(t *testing.T) {
	m, errs := New([]Source{{Index: 0, Pattern: `^hello$`}})
	require.Empty(t, errs)
	defer m.Close()

	assert.Empty(t, m.Find("goodbye"))
}
