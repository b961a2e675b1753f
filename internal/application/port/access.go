package port

// AccessContext carries the acting user's identity and scoping into the
// services. It is passed explicitly per call rather than read from ambient
// state so the engines are testable without a live identity provider.
type AccessContext struct {
	UserID string
	TeamID string
	Admin  bool
}

// Authenticated reports whether the context names an acting user.
func (a AccessContext) Authenticated() bool {
	return a.UserID != ""
}
