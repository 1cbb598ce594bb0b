package types

import (
	"time"

	"github.com/quartzlab/tipboard/internal/database/types/enum"
)

// Tip is a single user-authored text post, the unit of content on the board.
type Tip struct {
	ID        int64     `bun:",pk,autoincrement" json:"id"`
	Content   string    `bun:",notnull"          json:"content"`
	AuthorID  int64     `bun:",notnull"          json:"authorId"`
	CreatedAt time.Time `bun:",notnull"          json:"createdAt"`

	Author *User `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
}

// CanBeDownvotedBy reports whether the given user may downvote this tip.
// Authors may always downvote their own tips; everyone else needs the
// downvote privilege. Upvoting is deliberately ungated.
func (t *Tip) CanBeDownvotedBy(u *User) bool {
	return u.ID == t.AuthorID || u.CanDownvote()
}

// CanBeDeletedBy reports whether the given user may delete this tip.
func (t *Tip) CanBeDeletedBy(u *User) bool {
	return u.ID == t.AuthorID || u.CanDeleteTips()
}

// TipUpvoter marks a user as an upvoter of a tip.
type TipUpvoter struct {
	TipID  int64 `bun:",pk" json:"tipId"`
	UserID int64 `bun:",pk" json:"userId"`
}

// TipDownvoter marks a user as a downvoter of a tip.
// A user never appears in both vote tables for the same tip.
type TipDownvoter struct {
	TipID  int64 `bun:",pk" json:"tipId"`
	UserID int64 `bun:",pk" json:"userId"`
}

// TipListing pairs a tip with the aggregates the board view renders.
type TipListing struct {
	Tip `bun:",extend"`

	Upvotes   int64 `bun:"upvotes,scanonly"   json:"upvotes"`
	Downvotes int64 `bun:"downvotes,scanonly" json:"downvotes"`

	// ViewerVote is the requesting user's current vote on this tip.
	// Always VoteStateNone for anonymous viewers.
	ViewerVote enum.VoteState `bun:"-" json:"viewerVote"`
}
