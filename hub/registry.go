package hub

import (
	"sort"
	"sync"
)

// GroupRegistry is the process-wide mapping from group name to the set of
// member connection identifiers. Groups come into existence on first join
// and are pruned when the last member leaves; a query against an absent
// group behaves the same as against an empty one. All access goes through
// one mutex, since every live connection shares the single instance.
type GroupRegistry struct {
	mu     sync.Mutex
	groups map[string]map[string]struct{}
}

func NewGroupRegistry() *GroupRegistry {
	return &GroupRegistry{
		groups: make(map[string]map[string]struct{}),
	}
}

// AddToGroup adds a connection to a group, creating the group if absent.
// Re-adding an existing member is a no-op.
func (r *GroupRegistry) AddToGroup(connectionID, group string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.groups[group]
	if !ok {
		members = make(map[string]struct{})
		r.groups[group] = members
	}
	members[connectionID] = struct{}{}
}

// RemoveFromGroup removes a connection from a group and prunes the group
// once it is empty.
func (r *GroupRegistry) RemoveFromGroup(connectionID, group string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.groups[group]
	if !ok {
		return
	}
	delete(members, connectionID)
	if len(members) == 0 {
		delete(r.groups, group)
	}
}

// FindGroupsContaining returns every group the connection is currently a
// member of, sorted by name. Used on disconnect to synthesize the leave
// broadcasts for all groups at once.
func (r *GroupRegistry) FindGroupsContaining(connectionID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var names []string
	for name, members := range r.groups {
		if _, ok := members[connectionID]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Members returns the connection identifiers currently in a group.
func (r *GroupRegistry) Members(group string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	members := make([]string, 0, len(r.groups[group]))
	for id := range r.groups[group] {
		members = append(members, id)
	}
	return members
}
