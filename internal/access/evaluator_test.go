package access

import (
	"errors"
	"testing"

	"courtflow/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Permission{}))
	return db
}

func userWithRole(id uint, role models.UserRole) models.User {
	return models.User{Model: gorm.Model{ID: id}, Role: role}
}

func TestAuthorizeAdminBypassesGrid(t *testing.T) {
	db := testDB(t)
	admin := userWithRole(1, models.RoleAdmin)

	// a stored all-false row must not matter for an administrator
	require.NoError(t, db.Create(&models.Permission{
		UserID: 1, Module: "cases", Enabled: false,
	}).Error)

	for _, action := range []Action{ActionView, ActionAdd, ActionEdit, ActionDelete} {
		assert.True(t, NewEvaluator(db).Authorize(admin, "cases", action))
	}

	// and a missing row must not matter either
	assert.True(t, NewEvaluator(db).Authorize(admin, "audit", ActionDelete))
}

func TestAuthorizeDeniesWithoutRow(t *testing.T) {
	db := testDB(t)
	lawyer := userWithRole(2, models.RoleSeniorLawyer)

	ev := NewEvaluator(db)
	for _, action := range []Action{ActionView, ActionAdd, ActionEdit, ActionDelete} {
		assert.False(t, ev.Authorize(lawyer, "cases", action))
	}
}

func TestAuthorizeFlagPerAction(t *testing.T) {
	db := testDB(t)
	clerk := userWithRole(3, models.RoleClerk)

	require.NoError(t, db.Create(&models.Permission{
		UserID: 3, Module: "sessions", Enabled: true,
		View: true, Add: true, Edit: false, Delete: false,
	}).Error)

	ev := NewEvaluator(db)
	assert.True(t, ev.Authorize(clerk, "sessions", ActionView))
	assert.True(t, ev.Authorize(clerk, "sessions", ActionAdd))
	assert.False(t, ev.Authorize(clerk, "sessions", ActionEdit))
	assert.False(t, ev.Authorize(clerk, "sessions", ActionDelete))
}

func TestAuthorizeDisabledModuleDeniesEverything(t *testing.T) {
	db := testDB(t)
	lawyer := userWithRole(4, models.RoleTraineeLawyer)

	require.NoError(t, db.Create(&models.Permission{
		UserID: 4, Module: "cases", Enabled: false,
		View: true, Add: true, Edit: true, Delete: true,
	}).Error)

	ev := NewEvaluator(db)
	for _, action := range []Action{ActionView, ActionAdd, ActionEdit, ActionDelete} {
		assert.False(t, ev.Authorize(lawyer, "cases", action))
	}
}

func TestAuthorizeFailsClosed(t *testing.T) {
	db := testDB(t)
	lawyer := userWithRole(5, models.RoleSeniorLawyer)

	require.NoError(t, db.Create(&models.Permission{
		UserID: 5, Module: "cases", Enabled: true, View: true,
	}).Error)

	ev := NewEvaluator(db)
	assert.False(t, ev.Authorize(lawyer, "cases", Action("export")), "unknown action denies")
	assert.False(t, ev.Authorize(lawyer, "", ActionView), "empty module denies")
	assert.True(t, ev.Authorize(lawyer, "cases", Action("")), "empty action means view")
}

func TestReplacePermissionsAppliesDefaults(t *testing.T) {
	db := testDB(t)
	ev := NewEvaluator(db)

	v := true
	require.NoError(t, ev.ReplacePermissions(7, map[string]FlagsInput{
		"cases": {View: &v},
	}))

	grid, err := ev.ListPermissions(7)
	require.NoError(t, err)
	require.Contains(t, grid, "cases")
	assert.Equal(t, Flags{Enabled: true, View: true, Add: false, Edit: false, Delete: false}, grid["cases"])
}

func TestReplacePermissionsUpserts(t *testing.T) {
	db := testDB(t)
	ev := NewEvaluator(db)

	v := true
	f := false
	require.NoError(t, ev.ReplacePermissions(8, map[string]FlagsInput{
		"cases": {View: &v, Add: &v},
	}))
	require.NoError(t, ev.ReplacePermissions(8, map[string]FlagsInput{
		"cases": {View: &v, Add: &f, Edit: &v},
	}))

	// never two rows for one (user, module) pair
	var count int64
	require.NoError(t, db.Model(&models.Permission{}).
		Where("user_id = ? AND module = ?", 8, "cases").
		Count(&count).Error)
	assert.EqualValues(t, 1, count)

	grid, err := ev.ListPermissions(8)
	require.NoError(t, err)
	assert.Equal(t, Flags{Enabled: true, View: true, Add: false, Edit: true}, grid["cases"])
}

func TestReplacePermissionsLeavesOtherModulesAlone(t *testing.T) {
	db := testDB(t)
	ev := NewEvaluator(db)

	v := true
	require.NoError(t, ev.ReplacePermissions(9, map[string]FlagsInput{
		"cases": {View: &v, Edit: &v},
	}))
	require.NoError(t, ev.ReplacePermissions(9, map[string]FlagsInput{
		"documents": {View: &v},
	}))

	grid, err := ev.ListPermissions(9)
	require.NoError(t, err)
	assert.Len(t, grid, 2)
	assert.True(t, grid["cases"].Edit, "untouched module keeps its flags")
	assert.True(t, grid["documents"].View)
}

func TestReplacePermissionsUnknownModule(t *testing.T) {
	db := testDB(t)
	ev := NewEvaluator(db)

	v := true
	err := ev.ReplacePermissions(10, map[string]FlagsInput{
		"cases":     {View: &v},
		"smuggling": {View: &v},
	})
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "smuggling", vErr.Module)

	// the valid entry was still applied; entries are independent
	grid, lerr := ev.ListPermissions(10)
	require.NoError(t, lerr)
	assert.Len(t, grid, 1)
	assert.True(t, grid["cases"].View)
}
