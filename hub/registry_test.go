package hub

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddToGroupIsIdempotent(t *testing.T) {
	r := NewGroupRegistry()

	r.AddToGroup("conn-1", "team")
	r.AddToGroup("conn-1", "team")

	assert.Equal(t, []string{"conn-1"}, r.Members("team"))
}

func TestRemoveFromGroupPrunesEmptyGroup(t *testing.T) {
	r := NewGroupRegistry()

	r.AddToGroup("conn-1", "team")
	r.RemoveFromGroup("conn-1", "team")

	assert.Empty(t, r.Members("team"))
	assert.Empty(t, r.FindGroupsContaining("conn-1"))
}

func TestRemoveFromGroupAbsentGroupIsNoOp(t *testing.T) {
	r := NewGroupRegistry()

	r.RemoveFromGroup("conn-1", "never-created")
	assert.Empty(t, r.Members("never-created"))
}

func TestFindGroupsContainingReturnsSortedNames(t *testing.T) {
	r := NewGroupRegistry()

	r.AddToGroup("conn-1", "zeta")
	r.AddToGroup("conn-1", "alpha")
	r.AddToGroup("conn-2", "alpha")

	assert.Equal(t, []string{"alpha", "zeta"}, r.FindGroupsContaining("conn-1"))
	assert.Equal(t, []string{"alpha"}, r.FindGroupsContaining("conn-2"))
}

func TestMembersIsolatedPerGroup(t *testing.T) {
	r := NewGroupRegistry()

	r.AddToGroup("conn-1", "a")
	r.AddToGroup("conn-2", "b")

	assert.Equal(t, []string{"conn-1"}, r.Members("a"))
	assert.Equal(t, []string{"conn-2"}, r.Members("b"))
}
