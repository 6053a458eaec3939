package store

import (
	"sync"

	"github.com/saltpay/stencil/internal/model"
)

// Policies holds the abilities of the current user keyed by subject id
// (the team id or a collection id). Abilities for collections arrive with
// each fetched page of collections.
type Policies struct {
	user model.User

	mu        sync.RWMutex
	abilities map[string]model.Abilities
	version   uint64
}

// NewPolicies creates an empty policy set for user.
func NewPolicies(user model.User) *Policies {
	return &Policies{
		user:      user,
		abilities: make(map[string]model.Abilities),
	}
}

// Abilities returns the abilities recorded for subjectID. Unknown subjects
// grant nothing.
func (p *Policies) Abilities(subjectID string) model.Abilities {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.abilities[subjectID]
}

// Version changes every time the policy set changes.
func (p *Policies) Version() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.version
}

// AddTeam records the team-level abilities of the current user.
func (p *Policies) AddTeam(team model.Team) {
	p.set(map[string]model.Abilities{team.ID: TeamAbilities(p.user)})
}

// AddCollections records collection-level abilities.
func (p *Policies) AddCollections(collections ...model.Collection) {
	if len(collections) == 0 {
		return
	}
	next := make(map[string]model.Abilities, len(collections))
	for _, c := range collections {
		next[c.ID] = CollectionAbilities(p.user, c)
	}
	p.set(next)
}

// Evaluate computes the abilities on c without recording them.
func (p *Policies) Evaluate(c model.Collection) model.Abilities {
	return CollectionAbilities(p.user, c)
}

func (p *Policies) set(entries map[string]model.Abilities) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, a := range entries {
		p.abilities[id] = a
	}
	p.version++
}

// TeamAbilities is the team-level policy: everyone reads, admins update,
// viewers cannot create documents at the workspace root.
func TeamAbilities(user model.User) model.Abilities {
	return model.Abilities{
		Read:           true,
		Update:         user.Role == model.RoleAdmin,
		CreateDocument: user.Role != model.RoleViewer,
	}
}

// CollectionAbilities resolves the effective permission of user on c. A
// membership overrides the collection default; admins are raised to
// read_write on any collection they can read; viewers never write.
func CollectionAbilities(user model.User, c model.Collection) model.Abilities {
	permission := c.Permission
	if p, ok := c.Memberships[user.ID]; ok {
		permission = p
	}

	switch user.Role {
	case model.RoleAdmin:
		if permission == model.PermissionRead {
			permission = model.PermissionReadWrite
		}
	case model.RoleViewer:
		if permission == model.PermissionReadWrite {
			permission = model.PermissionRead
		}
	}

	write := permission == model.PermissionReadWrite
	return model.Abilities{
		Read:           permission != model.PermissionNone,
		Update:         write && user.Role == model.RoleAdmin,
		CreateDocument: write,
	}
}
