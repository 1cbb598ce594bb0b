package types_test

import (
	"testing"

	"github.com/quartzlab/tipboard/internal/database/types"
	"github.com/stretchr/testify/assert"
)

func TestUserCanDownvote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		user types.User
		want bool
	}{
		{"below threshold", types.User{Reputation: 14}, false},
		{"at threshold", types.User{Reputation: 15}, true},
		{"above threshold", types.User{Reputation: 100}, true},
		{"zero reputation", types.User{Reputation: 0}, false},
		{"superuser bypasses threshold", types.User{Reputation: 0, IsSuperuser: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.user.CanDownvote())
		})
	}
}

func TestUserCanDeleteTips(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		user types.User
		want bool
	}{
		{"below threshold", types.User{Reputation: 29}, false},
		{"at threshold", types.User{Reputation: 30}, true},
		{"downvote threshold is not enough", types.User{Reputation: 15}, false},
		{"superuser bypasses threshold", types.User{Reputation: 0, IsSuperuser: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.user.CanDeleteTips())
		})
	}
}
