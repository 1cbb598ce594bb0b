package types

import "time"

// Reputation thresholds for moderation privileges.
const (
	// DownvoteThreshold is the minimum reputation required to downvote
	// tips authored by other users.
	DownvoteThreshold = 15
	// DeleteTipsThreshold is the minimum reputation required to delete
	// tips authored by other users.
	DeleteTipsThreshold = 30
)

// User represents a registered account on the board.
// Reputation is derived from votes on the user's tips and is never set
// directly by a client action.
type User struct {
	ID           int64     `bun:",pk,autoincrement"      json:"id"`
	Username     string    `bun:",notnull,unique"        json:"username"`
	PasswordHash string    `bun:",notnull"               json:"-"`
	Reputation   int64     `bun:",notnull,default:0"     json:"reputation"`
	IsSuperuser  bool      `bun:",notnull,default:false" json:"isSuperuser"`
	CreatedAt    time.Time `bun:",notnull"               json:"createdAt"`
}

// CanDownvote reports whether the user may downvote tips they do not own.
func (u *User) CanDownvote() bool {
	return u.Reputation >= DownvoteThreshold || u.IsSuperuser
}

// CanDeleteTips reports whether the user may delete tips they do not own.
func (u *User) CanDeleteTips() bool {
	return u.Reputation >= DeleteTipsThreshold || u.IsSuperuser
}
