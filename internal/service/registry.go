package service

import (
	"sync"

	"github.com/kipidap/myngo-gateway/internal/notify"
	"github.com/kipidap/myngo-gateway/internal/upstream"
)

// Set is one session's worth of domain services. Each screen-backed
// service keeps its own cache, so the whole set lives and dies with
// the session.
type Set struct {
	Members    *Members
	Businesses *Businesses
	States     *States
	Dashboard  *Dashboard
	Profile    *Profile
	Products   *Products
}

// Registry hands out the Set for a session id, creating it on first
// use. Drop is hooked into the session store's clear path so a
// logout (or a 401) discards every cache at once.
type Registry struct {
	api    *upstream.Client
	notify notify.Notifier

	mu   sync.Mutex
	sets map[string]*Set
}

func NewRegistry(api *upstream.Client, n notify.Notifier) *Registry {
	return &Registry{api: api, notify: n, sets: make(map[string]*Set)}
}

// For returns the session's service set, creating it if needed.
func (r *Registry) For(sid string) *Set {
	r.mu.Lock()
	defer r.mu.Unlock()
	if set, ok := r.sets[sid]; ok {
		return set
	}
	set := &Set{
		Members:    NewMembers(r.api, r.notify),
		Businesses: NewBusinesses(r.api, r.notify),
		States:     NewStates(r.api, r.notify),
		Dashboard:  NewDashboard(r.api, r.notify),
		Profile:    NewProfile(r.api, r.notify),
		Products:   NewProducts(r.api, r.notify),
	}
	r.sets[sid] = set
	return set
}

// Drop discards the session's service set.
func (r *Registry) Drop(sid string) {
	r.mu.Lock()
	delete(r.sets, sid)
	r.mu.Unlock()
}
