package alternator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoles(t *testing.T) {
	assert.Equal(t, [2]Role{RoleA, RoleB}, Roles(RoleA))
	assert.Equal(t, [2]Role{RoleB, RoleA}, Roles(RoleB))
	assert.PanicsWithError(t, `alternator: invalid role: "C"`, func() { Roles(`C`) })
}

func TestRole_Peer(t *testing.T) {
	for _, tc := range [...]struct {
		role  Role
		peer  Role
		valid bool
	}{
		{RoleA, RoleB, true},
		{RoleB, RoleA, true},
		{``, ``, false},
		{`a`, ``, false},
		{`AB`, ``, false},
	} {
		t.Run(string(tc.role), func(t *testing.T) {
			assert.Equal(t, tc.valid, tc.role.Valid())
			assert.Equal(t, tc.peer, tc.role.Peer())
		})
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole(`B`)
	require.NoError(t, err)
	assert.Equal(t, RoleB, r)
	assert.Equal(t, `B`, r.String())

	r, err = ParseRole(`b`)
	assert.EqualError(t, err, `alternator: invalid role: "b"`)
	assert.Equal(t, Role(``), r)
}
