package model

// Role is a club-wide role held by a user.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleBoardMember   Role = "board_member"
	RoleMember        Role = "member"
)

// Actor identifies the acting user on every mutating call. It is produced
// by the identity provider (see pkg/identity); the services never look at
// raw credentials.
type Actor struct {
	UserID string
	Roles  []Role
	// CaptainOf lists the team ids the user is captain of.
	CaptainOf []string
}

// HasRole reports whether the actor holds the given role.
func (a Actor) HasRole(role Role) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsClubOfficial reports whether the actor is an administrator or a board
// member. Officials bypass captain deadline gating.
func (a Actor) IsClubOfficial() bool {
	return a.HasRole(RoleAdministrator) || a.HasRole(RoleBoardMember)
}

// IsCaptainOf reports whether the actor captains the given team.
func (a Actor) IsCaptainOf(teamID string) bool {
	for _, id := range a.CaptainOf {
		if id == teamID {
			return true
		}
	}
	return false
}
