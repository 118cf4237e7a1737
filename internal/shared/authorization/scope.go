package authorization

// AccessScope describes which tickets a request may see. It is computed once
// per request from the authenticated principal and passed into the query
// layer, instead of branching on role strings inside query builders.
type AccessScope struct {
	all    bool
	userID uint
}

// ScopeAll grants visibility over every record (admins).
func ScopeAll() AccessScope {
	return AccessScope{all: true}
}

// ScopeOwn restricts visibility to records reported by the given user.
func ScopeOwn(userID uint) AccessScope {
	return AccessScope{userID: userID}
}

// ScopeFor derives the scope from a role.
func ScopeFor(role UserRole, userID uint) AccessScope {
	if role.IsAdmin() {
		return ScopeAll()
	}
	return ScopeOwn(userID)
}

func (s AccessScope) IsAll() bool {
	return s.all
}

// OwnerID returns the restricting user id and whether the scope is restricted.
func (s AccessScope) OwnerID() (uint, bool) {
	if s.all {
		return 0, false
	}
	return s.userID, true
}
