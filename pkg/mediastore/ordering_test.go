package mediastore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/contentadmin/mediastore/pkg/mediastore"
)

func TestAssignOnCreate(t *testing.T) {
	var policy mediastore.OrderingPolicy

	t.Run("three assets", func(t *testing.T) {
		positions, primary := policy.AssignOnCreate(3)
		assert.Equal(t, []int{0, 1, 2}, positions)
		assert.Equal(t, 0, primary)
	})

	t.Run("single asset", func(t *testing.T) {
		positions, primary := policy.AssignOnCreate(1)
		assert.Equal(t, []int{0}, positions)
		assert.Equal(t, 0, primary)
	})

	t.Run("zero assets", func(t *testing.T) {
		positions, primary := policy.AssignOnCreate(0)
		assert.Empty(t, positions)
		assert.Equal(t, -1, primary)
	})
}

func TestAssignOnAppend(t *testing.T) {
	var policy mediastore.OrderingPolicy

	t.Run("continues numbering after max", func(t *testing.T) {
		positions := policy.AssignOnAppend(4, 3)
		assert.Equal(t, []int{5, 6, 7}, positions)
	})

	t.Run("zero new assets", func(t *testing.T) {
		assert.Empty(t, policy.AssignOnAppend(4, 0))
	})
}

func TestRecomputeAfterRemoval(t *testing.T) {
	var policy mediastore.OrderingPolicy

	// Survivors keep their positions; gaps are tolerated.
	remaining := []int{1, 3, 4}
	assert.Equal(t, []int{1, 3, 4}, policy.RecomputeAfterRemoval(remaining))
}
