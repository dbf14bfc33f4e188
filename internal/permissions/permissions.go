// Package permissions resolves what a caller may do. A PermissionSet is
// resolved once at the boundary (HTTP middleware or CLI start-up) and passed
// explicitly to whatever gates an action.
package permissions

import (
	"context"
	"sort"
	"strings"

	"github.com/hasnain-nisan/admindash/internal/db/models"
)

// Action is the kind of access a scope grants
type Action string

// Actions
const (
	Read  Action = "read"
	Write Action = "write"
)

// Resources that scopes apply to
const (
	Users        = "users"
	Clients      = "clients"
	Projects     = "projects"
	Stakeholders = "stakeholders"
	Interviews   = "interviews"
	Configs      = "configs"
)

// Resources lists every resource name
var Resources = []string{Users, Clients, Projects, Stakeholders, Interviews, Configs}

// Scope returns the scope string for resource and action, e.g. "clients:write"
func Scope(resource string, action Action) string {
	return resource + ":" + string(action)
}

// IsKnownScope reports whether s names a resource and an action
func IsKnownScope(s string) bool {
	resource, action, ok := strings.Cut(s, ":")
	if !ok || (Action(action) != Read && Action(action) != Write) {
		return false
	}
	for _, r := range Resources {
		if r == resource {
			return true
		}
	}
	return false
}

// PermissionSet is the set of scopes granted to a subject
type PermissionSet struct {
	Subject string
	scopes  map[string]struct{}
}

// New returns a permission set for subject holding the scopes granted by
// role plus any extra scopes. Unknown scopes are ignored.
func New(subject string, role models.UserRole, extra ...string) PermissionSet {
	p := PermissionSet{Subject: subject, scopes: make(map[string]struct{})}
	for _, r := range Resources {
		p.scopes[Scope(r, Read)] = struct{}{}
		switch {
		case role >= models.UserRoleAdmin:
			p.scopes[Scope(r, Write)] = struct{}{}
		case role == models.UserRoleEditor && r != Users:
			p.scopes[Scope(r, Write)] = struct{}{}
		}
	}
	for _, s := range extra {
		if IsKnownScope(s) {
			p.scopes[s] = struct{}{}
		}
	}
	return p
}

// AllowAll returns a permission set holding every scope. It is used when
// authorization is disabled.
func AllowAll() PermissionSet {
	return New("", models.UserRoleAdmin)
}

// Can reports whether scope is granted. Write implies read.
func (p PermissionSet) Can(scope string) bool {
	if _, ok := p.scopes[scope]; ok {
		return true
	}
	if resource, action, ok := strings.Cut(scope, ":"); ok && Action(action) == Read {
		_, ok := p.scopes[Scope(resource, Write)]
		return ok
	}
	return false
}

// CanRead reports whether resource may be listed and read
func (p PermissionSet) CanRead(resource string) bool { return p.Can(Scope(resource, Read)) }

// CanWrite reports whether resource may be created, updated and deleted
func (p PermissionSet) CanWrite(resource string) bool { return p.Can(Scope(resource, Write)) }

// Scopes returns the granted scopes, sorted
func (p PermissionSet) Scopes() []string {
	out := make([]string, 0, len(p.scopes))
	for s := range p.scopes {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying p
func NewContext(ctx context.Context, p PermissionSet) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext returns the permission set stored in ctx, or an empty set
func FromContext(ctx context.Context) PermissionSet {
	p, _ := ctx.Value(contextKey{}).(PermissionSet)
	return p
}
