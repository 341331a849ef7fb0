package state

const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
)

type Tier int

const (
	TierMember Tier = iota
	TierModerator
	TierAdmin
	TierSuperAdmin
)

func (t Tier) String() string {
	switch t {
	case TierSuperAdmin:
		return "superadmin"
	case TierAdmin:
		return "admin"
	case TierModerator:
		return "moderator"
	default:
		return "member"
	}
}

// ChatMember is the capability set the platform reports for one
// conversation member. Absent capabilities are explicit false.
type ChatMember struct {
	UserID  int64
	IsAdmin bool
	IsOwner bool
}

// MemberSource is the external admin/owner query. An error means "no
// admin evidence", never a denied operation.
type MemberSource interface {
	ChatAdministrators(chatID int64) ([]ChatMember, error)
}

type Resolver struct {
	superAdmins map[int64]uint8
	members     MemberSource
	manager     *Manager
}

func NewResolver(superAdmins []int64, members MemberSource, manager *Manager) *Resolver {
	r := &Resolver{
		superAdmins: make(map[int64]uint8, len(superAdmins)),
		members:     members,
		manager:     manager,
	}
	for _, id := range superAdmins {
		r.superAdmins[id] = 0
	}
	return r
}

// Members exposes the raw administrator source for callers that list
// admins instead of resolving a single user.
func (r *Resolver) Members() MemberSource {
	return r.members
}

// Resolve answers what tier the user holds in this chat, most to least
// privileged. Policy (self-target, global bans) is the caller's job.
// The member query runs before any chat lock is taken.
func (r *Resolver) Resolve(chatID, userID int64) Tier {
	if _, ok := r.superAdmins[userID]; ok {
		return TierSuperAdmin
	}
	if r.members != nil {
		members, err := r.members.ChatAdministrators(chatID)
		if err == nil {
			for _, member := range members {
				if member.UserID == userID && (member.IsAdmin || member.IsOwner) {
					return TierAdmin
				}
			}
		}
	}
	if r.manager.UserHasRole(chatID, RoleAdmin, userID) {
		return TierAdmin
	}
	if r.manager.UserHasRole(chatID, RoleModerator, userID) {
		return TierModerator
	}
	return TierMember
}
