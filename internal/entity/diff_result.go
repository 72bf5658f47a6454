package entity

import "time"

// The nine named result lists of a diff run.
const (
	ListMutual          = "mutual"
	ListOnlyInFollowing = "only_in_following"
	ListOnlyInFollowers = "only_in_followers"
	ListNewFollowers    = "new_followers"
	ListUnfollowers     = "unfollowers"
	ListNewFollowing    = "new_following"
	ListUnfollowedByYou = "unfollowed_by_you"
	ListNewMutuals      = "new_mutuals"
	ListLostMutuals     = "lost_mutuals"
)

// ListNames holds the fixed presentation and export order of the lists.
var ListNames = []string{
	ListMutual,
	ListOnlyInFollowing,
	ListOnlyInFollowers,
	ListNewFollowers,
	ListUnfollowers,
	ListNewFollowing,
	ListUnfollowedByYou,
	ListNewMutuals,
	ListLostMutuals,
}

// IsListName reports whether name is one of the nine fixed list names.
func IsListName(name string) bool {
	for _, n := range ListNames {
		if n == name {
			return true
		}
	}
	return false
}

// DiffResult is the cached outcome of the latest diff run for a user.
// Every list is sorted ascending. The entry is replaced wholesale on each
// successful run and lost on process restart, unlike snapshots.
type DiffResult struct {
	Lists      map[string][]string
	ComputedAt time.Time
}
