package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_BeforeSave_HashesPassword(t *testing.T) {
	// Arrange
	user := &User{Username: "ivan", Password: "secret123"}

	// Act
	require.NoError(t, user.BeforeSave(nil))

	// Assert
	assert.NotEqual(t, "secret123", user.Password, "Пароль должен быть захеширован")
	assert.True(t, user.HasValidPasswordHash())
	assert.True(t, user.CheckPassword("secret123"))
	assert.False(t, user.CheckPassword("wrong"))
}

func TestUser_BeforeSave_DoesNotRehash(t *testing.T) {
	// Arrange
	user := &User{Username: "ivan", Password: "secret123"}
	require.NoError(t, user.BeforeSave(nil))
	hashed := user.Password

	// Act: повторное сохранение не должно менять хеш
	require.NoError(t, user.BeforeSave(nil))

	// Assert
	assert.Equal(t, hashed, user.Password, "Bcrypt-хеш не должен хешироваться повторно")
	assert.True(t, user.CheckPassword("secret123"))
}

func TestUser_HasValidPasswordHash(t *testing.T) {
	malformed := &User{Password: "plaintext-left-by-migration"}
	assert.False(t, malformed.HasValidPasswordHash())
	assert.False(t, malformed.CheckPassword("plaintext-left-by-migration"),
		"Поврежденный хеш не должен пропускать даже совпадающий текст")
}

func TestUser_DisplayName(t *testing.T) {
	withName := &User{Username: "ivan", FirstName: "Иван", LastName: "Петров"}
	assert.Equal(t, "Иван Петров", withName.DisplayName())

	withoutName := &User{Username: "ivan"}
	assert.Equal(t, "ivan", withoutName.DisplayName())
}

func TestUser_HasDepartment(t *testing.T) {
	assert.False(t, (&User{}).HasDepartment())
	assert.False(t, (&User{Department: "  "}).HasDepartment())
	assert.True(t, (&User{Department: "Networks"}).HasDepartment())
}
