package enum

// VoteState represents a voter's current stance on a single tip.
// Each (tip, voter) pair is always in exactly one state.
type VoteState int

const (
	VoteStateNone VoteState = iota
	VoteStateUp
	VoteStateDown
)

// String returns the lowercase name of the vote state.
func (s VoteState) String() string {
	switch s {
	case VoteStateUp:
		return "up"
	case VoteStateDown:
		return "down"
	default:
		return "none"
	}
}

// NextUpvoteState returns the state after an upvote request.
// Upvoting toggles: an existing upvote is withdrawn, anything else
// becomes an upvote.
func NextUpvoteState(current VoteState) VoteState {
	if current == VoteStateUp {
		return VoteStateNone
	}
	return VoteStateUp
}

// NextDownvoteState returns the state after a downvote request.
// Downvoting toggles: an existing downvote is withdrawn, anything else
// becomes a downvote.
func NextDownvoteState(current VoteState) VoteState {
	if current == VoteStateDown {
		return VoteStateNone
	}
	return VoteStateDown
}
