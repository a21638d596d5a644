package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewState(t *testing.T) {
	t.Parallel()

	s := NewState(11)

	assert.Equal(t, 11, s.Total())
	assert.Equal(t, []int{1}, s.Expanded())
	assert.Empty(t, s.Completed())
	assert.Equal(t, StatusInProgress, s.Status(1))
	assert.Equal(t, StatusIncomplete, s.Status(2))
}

func TestNewState_NoSteps(t *testing.T) {
	t.Parallel()

	s := NewState(0)
	assert.Empty(t, s.Expanded())
	assert.Equal(t, 0, s.Percent())
	assert.False(t, s.Done())

	assert.Equal(t, 0, NewState(-3).Total())
}

func TestZeroState_IsUsable(t *testing.T) {
	t.Parallel()

	var s State
	assert.Equal(t, StatusIncomplete, s.Status(1))
	assert.Equal(t, s, Reduce(s, Toggle{Step: 1}))
}

func TestStatus_CompletedTakesPrecedence(t *testing.T) {
	t.Parallel()

	s := NewState(3)
	s = Reduce(s, Complete{Step: 2})
	assert.Equal(t, StatusComplete, s.Status(2))

	// Re-expanding a completed step keeps it complete.
	s = Reduce(s, Toggle{Step: 2})
	assert.True(t, s.IsExpanded(2))
	assert.Equal(t, StatusComplete, s.Status(2))

	s = Reduce(s, Toggle{Step: 2})
	assert.False(t, s.IsExpanded(2))
	assert.Equal(t, StatusComplete, s.Status(2))
}

func TestStatus_CompletedForEveryStep(t *testing.T) {
	t.Parallel()

	const total = 5
	for n := 1; n <= total; n++ {
		s := NewState(total)
		s = Reduce(s, Complete{Step: n})
		for _, toggled := range []bool{false, true} {
			if toggled {
				s = Reduce(s, Toggle{Step: n})
			}
			assert.Equal(t, StatusComplete, s.Status(n), "step %d toggled=%v", n, toggled)
		}
	}
}

func TestPercent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		total    int
		complete []int
		expected int
	}{
		{"none", 4, nil, 0},
		{"quarter", 4, []int{1}, 25},
		{"half", 4, []int{1, 2}, 50},
		{"all", 4, []int{1, 2, 3, 4}, 100},
		{"third rounds down", 3, []int{1}, 33},
		{"two thirds rounds up", 3, []int{1, 2}, 67},
		{"one of eleven", 11, []int{1}, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := NewState(tt.total)
			for _, n := range tt.complete {
				s = Reduce(s, Complete{Step: n})
			}
			assert.Equal(t, tt.expected, s.Percent())
			assert.Equal(t, len(tt.complete), s.CompletedCount())
		})
	}
}

func TestDone(t *testing.T) {
	t.Parallel()

	s := NewState(2)
	assert.False(t, s.Done())
	s = Reduce(s, Complete{Step: 1})
	assert.False(t, s.Done())
	s = Reduce(s, Complete{Step: 2})
	assert.True(t, s.Done())
}
