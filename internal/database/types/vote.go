package types

// Vote weights applied to the author's reputation tally.
const (
	UpvoteWeight   = 5
	DownvoteWeight = 2
)

// VoteTally holds the vote counts for a single tip.
type VoteTally struct {
	TipID     int64 `bun:"tip_id"`
	Upvotes   int64 `bun:"upvotes"`
	Downvotes int64 `bun:"downvotes"`
}

// ReputationScore derives a reputation score from the vote tallies of a
// user's tips. Each upvote adds 5, each downvote subtracts 2, and the
// total is clamped at a minimum of 0. An empty tally set yields 0.
func ReputationScore(tallies []VoteTally) int64 {
	var score int64
	for _, t := range tallies {
		score += t.Upvotes*UpvoteWeight - t.Downvotes*DownvoteWeight
	}

	if score < 0 {
		return 0
	}

	return score
}
