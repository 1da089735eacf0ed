package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"education-backend-go/internal/apperrors"
	"education-backend-go/internal/models"
	"education-backend-go/internal/store"
)

func TestUserCreateLoadsRole(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, teacher, _ := seedRoles(t, f)

	user, err := f.Users.Create(ctx, models.User{
		FirstName: "Ion",
		LastName:  "Ionescu",
		RoleID:    teacher.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, user.Role)
	assert.Equal(t, "teacher", user.Role.Name)
}

func TestUserCreateUnknownRole(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedRoles(t, f)

	_, err := f.Users.Create(ctx, models.User{FirstName: "Ion", RoleID: 99})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	// Nothing was persisted.
	_, err = f.Users.GetAll(ctx)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestUserUpdate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, teacher, student := seedRoles(t, f)

	user, err := f.Users.Create(ctx, models.User{FirstName: "Ana", RoleID: student.ID})
	require.NoError(t, err)

	user.FirstName = "Maria"
	user.RoleID = teacher.ID
	updated, err := f.Users.Update(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "Maria", updated.FirstName)
	require.NotNil(t, updated.Role)
	assert.Equal(t, teacher.ID, updated.Role.ID)
}

func TestUserDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, _, student := seedRoles(t, f)

	user, err := f.Users.Create(ctx, models.User{FirstName: "Ana", RoleID: student.ID})
	require.NoError(t, err)
	require.NoError(t, f.Users.Delete(ctx, user.ID))

	_, err = f.Users.Get(ctx, store.Where("id", user.ID))
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestRoleWellKnownAccessors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedRoles(t, f)

	admin, err := f.Roles.AdminRole(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Name)

	student, err := f.Roles.StudentRole(ctx)
	require.NoError(t, err)
	assert.Equal(t, "student", student.Name)
}
