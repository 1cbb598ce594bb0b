package enum_test

import (
	"testing"

	"github.com/quartzlab/tipboard/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
)

func TestNextUpvoteState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current enum.VoteState
		want    enum.VoteState
	}{
		{"none becomes up", enum.VoteStateNone, enum.VoteStateUp},
		{"up toggles off", enum.VoteStateUp, enum.VoteStateNone},
		{"down switches to up", enum.VoteStateDown, enum.VoteStateUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, enum.NextUpvoteState(tt.current))
		})
	}
}

func TestNextDownvoteState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current enum.VoteState
		want    enum.VoteState
	}{
		{"none becomes down", enum.VoteStateNone, enum.VoteStateDown},
		{"down toggles off", enum.VoteStateDown, enum.VoteStateNone},
		{"up switches to down", enum.VoteStateUp, enum.VoteStateDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, enum.NextDownvoteState(tt.current))
		})
	}
}

func TestDoubleToggleReturnsToNone(t *testing.T) {
	t.Parallel()

	state := enum.VoteStateNone
	state = enum.NextUpvoteState(state)
	state = enum.NextUpvoteState(state)
	assert.Equal(t, enum.VoteStateNone, state)

	state = enum.NextDownvoteState(state)
	state = enum.NextDownvoteState(state)
	assert.Equal(t, enum.VoteStateNone, state)
}

// Every reachable state is a single value, so a voter can never hold an
// upvote and a downvote at the same time regardless of the toggle sequence.
func TestVoteStateSequences(t *testing.T) {
	t.Parallel()

	type op func(enum.VoteState) enum.VoteState

	up, down := enum.NextUpvoteState, enum.NextDownvoteState

	sequences := []struct {
		name string
		ops  []op
		want enum.VoteState
	}{
		{"up then down", []op{up, down}, enum.VoteStateDown},
		{"down then up", []op{down, up}, enum.VoteStateUp},
		{"up down up", []op{up, down, up}, enum.VoteStateUp},
		{"down down up up", []op{down, down, up, up}, enum.VoteStateNone},
	}

	for _, tt := range sequences {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			state := enum.VoteStateNone
			for _, apply := range tt.ops {
				state = apply(state)
			}

			assert.Equal(t, tt.want, state)
		})
	}
}

func TestVoteStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "none", enum.VoteStateNone.String())
	assert.Equal(t, "up", enum.VoteStateUp.String())
	assert.Equal(t, "down", enum.VoteStateDown.String())
}
