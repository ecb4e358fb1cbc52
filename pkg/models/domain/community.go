package domain

// UnknownCommunityName is assigned to transactions whose counterpart user
// matches none of the configured community markers.
const UnknownCommunityName = "OTHER"

// Community is the resolved player segment a transaction belongs to.
// It is a classification result, not free text.
type Community struct {
	Name  string
	Known bool
}

func UnknownCommunity() Community {
	return Community{Name: UnknownCommunityName}
}
