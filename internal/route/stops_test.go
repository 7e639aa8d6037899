package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStops_OrderedAndUnique(t *testing.T) {
	stops := Stops()
	require.Len(t, stops, 7)

	seenIDs := map[string]bool{}
	for i, s := range stops {
		assert.Equal(t, i+1, s.Order, "orders must be 1-based and ascending")
		assert.NotEmpty(t, s.ID)
		assert.NotEmpty(t, s.Name)
		assert.NotEmpty(t, s.SearchName)
		assert.False(t, seenIDs[s.ID], "stop ID %q duplicated", s.ID)
		seenIDs[s.ID] = true
	}
}

func TestDirection_SplitAtOrderThree(t *testing.T) {
	for order := 1; order <= 3; order++ {
		assert.Equal(t, TerminusSouth, Direction(order))
	}
	for order := 4; order <= 7; order++ {
		assert.Equal(t, TerminusNorth, Direction(order))
	}
}
