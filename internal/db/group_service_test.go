package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmthang/awaybot/internal/models"
)

func TestRegisterGroup(t *testing.T) {
	svc := NewGroupService(testDB(t), "")

	ok, err := svc.IsRegistered("g1")
	require.NoError(t, err)
	assert.False(t, ok)

	group, err := svc.Register("g1", "Night Shift", "boss")
	require.NoError(t, err)
	assert.True(t, group.Registered)
	assert.Equal(t, "g1", group.ReportTarget)

	ok, err = svc.IsRegistered("g1")
	require.NoError(t, err)
	assert.True(t, ok)

	// the registering user became superadmin
	role, err := svc.RoleOf("boss", "g1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleSuperAdmin, role)

	// re-registering renames without clobbering the report target
	require.NoError(t, svc.SetReportTarget("g1", "reports-channel"))
	group, err = svc.Register("g1", "Day Shift", "")
	require.NoError(t, err)
	assert.Equal(t, "Day Shift", group.Name)
	assert.Equal(t, "reports-channel", group.ReportTarget)
}

func TestSetReportTargetRequiresRegistration(t *testing.T) {
	svc := NewGroupService(testDB(t), "")
	err := svc.SetReportTarget("nope", "anywhere")
	assert.ErrorContains(t, err, "not registered")
}

func TestRoleLifecycle(t *testing.T) {
	svc := NewGroupService(testDB(t), "")
	_, err := svc.Register("g1", "Shift", "boss")
	require.NoError(t, err)

	role, err := svc.RoleOf("nobody", "g1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleNone, role)
	assert.False(t, role.IsAdmin())

	require.NoError(t, svc.AddAdmin("g1", "an"))
	role, err = svc.RoleOf("an", "g1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, role)
	assert.True(t, role.IsAdmin())

	assert.Error(t, svc.AddAdmin("g1", "an"), "already an admin")

	// promote to superadmin, then admin removal must refuse
	require.NoError(t, svc.AddSuperAdmin("g1", "an"))
	assert.Error(t, svc.RemoveAdmin("g1", "an"))

	// two superadmins now, so one may leave
	require.NoError(t, svc.RemoveSuperAdmin("g1", "an"))
	role, err = svc.RoleOf("an", "g1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleNone, role)

	// boss is the last superadmin and cannot be removed
	err = svc.RemoveSuperAdmin("g1", "boss")
	assert.ErrorContains(t, err, "last superadmin")
}

func TestRemoveAdminDemotes(t *testing.T) {
	svc := NewGroupService(testDB(t), "")
	_, err := svc.Register("g1", "Shift", "boss")
	require.NoError(t, err)

	require.NoError(t, svc.AddAdmin("g1", "an"))
	require.NoError(t, svc.RemoveAdmin("g1", "an"))

	role, err := svc.RoleOf("an", "g1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleNone, role)

	assert.Error(t, svc.RemoveAdmin("g1", "an"), "not an admin")
}

func TestInitialSuperadminIsAlwaysSuperadmin(t *testing.T) {
	svc := NewGroupService(testDB(t), "root")

	role, err := svc.RoleOf("root", "any-group-at-all")
	require.NoError(t, err)
	assert.Equal(t, models.RoleSuperAdmin, role)
}

func TestMembersAndGroupsListings(t *testing.T) {
	svc := NewGroupService(testDB(t), "")
	_, err := svc.Register("g2", "Two", "boss")
	require.NoError(t, err)
	_, err = svc.Register("g1", "One", "boss")
	require.NoError(t, err)
	require.NoError(t, svc.AddAdmin("g1", "an"))

	members, err := svc.Members("g1")
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "an", members[0].UserID)
	assert.Equal(t, "boss", members[1].UserID)

	groups, err := svc.Groups()
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "g1", groups[0].GroupID)
	assert.Equal(t, "g2", groups[1].GroupID)
}
