package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/kipidap/myngo-gateway/internal/model"
	"github.com/kipidap/myngo-gateway/internal/notify"
	"github.com/kipidap/myngo-gateway/internal/upstream"
)

// StateAdminForm carries a state admin assignment or update.
type StateAdminForm struct {
	StateID    string `json:"stateId"`
	AdminName  string `json:"adminName"`
	AdminEmail string `json:"adminEmail"`
}

// States manages the Malaysian state directory and its admin
// assignments: the public listing for dropdowns, the admin-scoped
// listing with assignment columns, and the assignment CRUD.
type States struct {
	state
	api    *upstream.Client
	notify notify.Notifier

	states []model.State
}

func NewStates(api *upstream.Client, n notify.Notifier) *States {
	return &States{api: api, notify: n}
}

// List returns the cached states.
func (st *States) List() []model.State {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.states
}

// Fetch loads the public state listing (no admin columns).
func (st *States) Fetch(ctx context.Context, s *model.Session) ([]model.State, error) {
	return st.fetch(ctx, s, "/states", "Failed to fetch states")
}

// FetchWithAdmins loads the listing including admin assignments.
func (st *States) FetchWithAdmins(ctx context.Context, s *model.Session) ([]model.State, error) {
	return st.fetch(ctx, s, "/states/admin", "Failed to fetch state admins")
}

func (st *States) fetch(ctx context.Context, s *model.Session, path, fallback string) ([]model.State, error) {
	seq := st.beginLoad()
	defer st.endLoad()

	var resp struct {
		Data model.StateList `json:"data"`
	}
	if err := st.api.Get(ctx, s.ID, path, &resp); err != nil {
		msg := upstream.ErrorMessage(err, fallback)
		st.setErr(msg)
		st.notify.Error(ctx, s, "states", msg)
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if !st.latest(seq) {
		return resp.Data.States, nil
	}
	st.states = resp.Data.States
	return st.states, nil
}

func (f StateAdminForm) check() *ValidationError {
	switch {
	case strings.TrimSpace(f.StateID) == "":
		return &ValidationError{Field: "stateId", Message: "State is required"}
	case strings.TrimSpace(f.AdminName) == "":
		return &ValidationError{Field: "adminName", Message: "Admin name is required"}
	case strings.TrimSpace(f.AdminEmail) == "":
		return &ValidationError{Field: "adminEmail", Message: "Admin email is required"}
	}
	return nil
}

// AssignAdmin attaches an admin to a state and patches the cached
// row in place.
func (st *States) AssignAdmin(ctx context.Context, s *model.Session, form StateAdminForm) error {
	if verr := form.check(); verr != nil {
		st.setErr(verr.Message)
		st.notify.Error(ctx, s, "states", verr.Message)
		return verr
	}

	st.beginSubmit()
	defer st.endSubmit()

	var resp struct {
		Data struct {
			State model.State `json:"state"`
		} `json:"data"`
	}
	if err := st.api.Post(ctx, s.ID, "/states/admin/assign", form, &resp); err != nil {
		msg := upstream.ErrorMessage(err, "Failed to assign state admin")
		st.setErr(msg)
		st.notify.Error(ctx, s, "states", msg)
		return err
	}

	st.patch(resp.Data.State)
	st.notify.Success(ctx, s, "states", "State admin assigned successfully")
	return nil
}

// UpdateAdmin changes an existing assignment.
func (st *States) UpdateAdmin(ctx context.Context, s *model.Session, id string, form StateAdminForm) error {
	if verr := form.check(); verr != nil {
		st.setErr(verr.Message)
		st.notify.Error(ctx, s, "states", verr.Message)
		return verr
	}

	st.beginSubmit()
	defer st.endSubmit()

	var resp struct {
		Data struct {
			State model.State `json:"state"`
		} `json:"data"`
	}
	if err := st.api.Put(ctx, s.ID, "/states/admin/"+url.PathEscape(id), form, &resp); err != nil {
		msg := upstream.ErrorMessage(err, "Failed to update state admin")
		st.setErr(msg)
		st.notify.Error(ctx, s, "states", msg)
		return err
	}

	st.patch(resp.Data.State)
	st.notify.Success(ctx, s, "states", "State admin updated successfully")
	return nil
}

// RemoveAdmin clears a state's assignment. The cached row keeps its
// state identity but loses the admin columns.
func (st *States) RemoveAdmin(ctx context.Context, s *model.Session, id string) error {
	st.beginSubmit()
	defer st.endSubmit()

	if err := st.api.Delete(ctx, s.ID, "/states/admin/"+url.PathEscape(id), nil); err != nil {
		msg := upstream.ErrorMessage(err, "Failed to remove state admin")
		st.setErr(msg)
		st.notify.Error(ctx, s, "states", msg)
		return err
	}

	st.mu.Lock()
	for i := range st.states {
		if st.states[i].ID == id {
			st.states[i].AdminID = ""
			st.states[i].AdminName = ""
			st.states[i].AdminEmail = ""
			break
		}
	}
	st.mu.Unlock()

	st.notify.Success(ctx, s, "states", "State admin removed successfully")
	return nil
}

// StateUsers lists the members registered under a state, for the
// state admin's user management screen.
func (st *States) StateUsers(ctx context.Context, s *model.Session, id string) ([]model.Member, error) {
	var resp struct {
		Data struct {
			Users []model.Member `json:"users"`
		} `json:"data"`
	}
	if err := st.api.Get(ctx, s.ID, "/states/admin/"+url.PathEscape(id)+"/users", &resp); err != nil {
		msg := upstream.ErrorMessage(err, "Failed to fetch state users")
		st.setErr(msg)
		st.notify.Error(ctx, s, "states", msg)
		return nil, err
	}
	return resp.Data.Users, nil
}

// RemoveStateUser detaches one member from a state.
func (st *States) RemoveStateUser(ctx context.Context, s *model.Session, id, userID string) error {
	if err := st.api.Delete(ctx, s.ID, "/states/admin/"+url.PathEscape(id)+"/"+url.PathEscape(userID), nil); err != nil {
		msg := upstream.ErrorMessage(err, "Failed to remove user from state")
		st.setErr(msg)
		st.notify.Error(ctx, s, "states", msg)
		return err
	}
	st.notify.Success(ctx, s, "states", "User removed from state")
	return nil
}

// Reset drops the cache and flags.
func (st *States) Reset() {
	st.reset()
	st.mu.Lock()
	st.states = nil
	st.mu.Unlock()
}

func (st *States) patch(updated model.State) {
	st.mu.Lock()
	defer st.mu.Unlock()
	for i := range st.states {
		if st.states[i].ID == updated.ID {
			st.states[i] = updated
			return
		}
	}
	st.states = append(st.states, updated)
}
