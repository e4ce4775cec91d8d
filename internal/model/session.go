package model

// Role enumerates the account roles known to the platform. The
// upstream API reports the role as a plain string in login and
// profile payloads; everything in the gateway that branches on a
// role goes through this type so the valid set lives in one place.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleUser       Role = "user"

	// RoleOperator is not an account role; it appears only in the
	// routing table to mark operator-only screens. A user-role
	// session reaches those screens through the operator grant,
	// never by carrying this value as its role.
	RoleOperator Role = "operator"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperadmin, RoleAdmin, RoleUser:
		return true
	}
	return false
}

// OperatorState describes one state an operator is assigned to.
// Mirrors the upstream `operator_states` objects.
type OperatorState struct {
	Title string `json:"state_title"`
	Code  string `json:"state_code"`
	Flag  string `json:"state_flag"`
}

// Principal is the authenticated user's identity as carried in a
// session: who they are, their role, and the operator grant.
//
// Fields:
//  SubjectID      - upstream user identifier.
//  FullName       - display name.
//  Email          - account email.
//  Role           - base role (superadmin, admin, user).
//  Avatar         - avatar URL, may be empty.
//  IsOperator     - true when a user-role account holds the operator grant.
//  OperatorStates - states the operator is scoped to, nil otherwise.
type Principal struct {
	SubjectID      string          `json:"user_id"`
	FullName       string          `json:"fullname"`
	Email          string          `json:"email"`
	Role           Role            `json:"user_type"`
	Avatar         string          `json:"avatar,omitempty"`
	IsOperator     bool            `json:"is_operator"`
	OperatorStates []OperatorState `json:"operator_states,omitempty"`
}

// Session is the full per-device authentication state owned by the
// session store. Authenticated must be true exactly when both the
// principal and the access token are present; the store maintains
// that invariant on every mutation.
type Session struct {
	ID            string     `json:"-"` // opaque device session id, never serialized
	Principal     *Principal `json:"user,omitempty"`
	AccessToken   string     `json:"access_token,omitempty"`
	CSRFToken     string     `json:"csrf_token,omitempty"`
	Authenticated bool       `json:"isAuthenticated"`
}

// LoginResult is the payload the upstream API returns from a
// successful login or OTP verification. The session store applies
// principal and token from it as a single unit.
type LoginResult struct {
	User           Principal       `json:"user"`
	AccessToken    string          `json:"access_token"`
	CSRFToken      string          `json:"csrf_token,omitempty"`
	IsOperator     bool            `json:"is_operator"`
	OperatorStates []OperatorState `json:"operator_states,omitempty"`
}
