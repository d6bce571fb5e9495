package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/secaware-api/internal/domain/entity"
	apperrors "github.com/yourusername/secaware-api/internal/pkg/errors"
	"github.com/yourusername/secaware-api/internal/repository/memory"
	"github.com/yourusername/secaware-api/pkg/auth"
)

// createTestAuthService собирает AuthService на моках с блокировками в памяти
func createTestAuthService(t *testing.T, userRepo *MockUserRepository) (*AuthService, *LoginThrottle) {
	t.Helper()

	jwtService, err := auth.NewJWTService("test-secret", 1)
	require.NoError(t, err)

	throttle, err := NewLoginThrottle(memory.NewThrottleStore(), 15*time.Minute)
	require.NoError(t, err)

	svc, err := NewAuthService(userRepo, jwtService, throttle)
	require.NoError(t, err)
	return svc, throttle
}

// hashedUser строит пользователя с захешированным паролем
func hashedUser(t *testing.T, username, password string) *entity.User {
	t.Helper()

	user := &entity.User{ID: 1, Username: username, Password: password, Role: "user"}
	require.NoError(t, user.BeforeSave(nil))
	return user
}

func TestAuthService_Register_Success(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	userRepo.On("GetByUsername", "ivan").Return(nil, apperrors.ErrNotFound)
	userRepo.On("Create", mock.AnythingOfType("*entity.User")).Return(nil)

	svc, _ := createTestAuthService(t, userRepo)

	// Act
	user, err := svc.Register(RegisterInput{Username: "Ivan", Password: "secret123"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "ivan", user.Username, "Имя приводится к нижнему регистру")
	assert.Equal(t, "user", user.Role)
	userRepo.AssertExpectations(t)
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	userRepo.On("GetByUsername", "ivan").Return(&entity.User{ID: 1, Username: "ivan"}, nil)

	svc, _ := createTestAuthService(t, userRepo)

	// Act
	user, err := svc.Register(RegisterInput{Username: "ivan", Password: "secret123"})

	// Assert
	assert.Nil(t, user)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	userRepo.AssertNotCalled(t, "Create")
}

func TestAuthService_Login_Success(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	userRepo.On("GetByUsername", "ivan").Return(hashedUser(t, "ivan", "secret123"), nil)

	svc, _ := createTestAuthService(t, userRepo)

	// Act
	result, err := svc.Login("ivan", "secret123")

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "ivan", result.User.Username)
}

func TestAuthService_Login_WrongPasswordLocksAccount(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	userRepo.On("GetByUsername", "ivan").Return(hashedUser(t, "ivan", "secret123"), nil)

	svc, throttle := createTestAuthService(t, userRepo)

	// Act
	result, err := svc.Login("ivan", "wrong-password")

	// Assert
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)

	locked, remaining, lockErr := throttle.IsLocked("ivan")
	require.NoError(t, lockErr)
	assert.True(t, locked, "Одна неудачная попытка блокирует учетную запись")
	assert.Positive(t, remaining)
}

func TestAuthService_Login_UnknownUsernameAlsoLocks(t *testing.T) {
	// Arrange: несуществующее имя неотличимо от неверного пароля
	userRepo := new(MockUserRepository)
	userRepo.On("GetByUsername", "ghost").Return(nil, apperrors.ErrNotFound)

	svc, throttle := createTestAuthService(t, userRepo)

	// Act
	_, err := svc.Login("ghost", "whatever")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)
	locked, _, lockErr := throttle.IsLocked("ghost")
	require.NoError(t, lockErr)
	assert.True(t, locked)
}

func TestAuthService_Login_LockedAccountRejected(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	userRepo.On("GetByUsername", "ivan").Return(hashedUser(t, "ivan", "secret123"), nil)

	svc, throttle := createTestAuthService(t, userRepo)
	require.NoError(t, throttle.RecordFailure("ivan"))

	// Act: даже верный пароль не проходит во время блокировки
	result, err := svc.Login("ivan", "secret123")

	// Assert
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrAccountLocked)
	// Учетные данные не проверялись
	userRepo.AssertNotCalled(t, "GetByUsername")
}

func TestAuthService_Login_SuccessClearsLockout(t *testing.T) {
	// Arrange: блокировка истекла, но запись о ней осталась бы без очистки
	userRepo := new(MockUserRepository)
	userRepo.On("GetByUsername", "ivan").Return(hashedUser(t, "ivan", "secret123"), nil)

	svc, throttle := createTestAuthService(t, userRepo)
	past := time.Now().Add(-20 * time.Minute)
	throttle.now = func() time.Time { return past }
	require.NoError(t, throttle.RecordFailure("ivan"))
	throttle.now = time.Now

	// Act
	_, err := svc.Login("ivan", "secret123")

	// Assert
	require.NoError(t, err)
	locked, _, lockErr := throttle.IsLocked("ivan")
	require.NoError(t, lockErr)
	assert.False(t, locked)
}

func TestAuthService_Login_MalformedHashRejected(t *testing.T) {
	// Arrange: запись с паролем, не являющимся bcrypt-хешем
	userRepo := new(MockUserRepository)
	userRepo.On("GetByUsername", "ivan").Return(&entity.User{ID: 1, Username: "ivan", Password: "not-a-hash"}, nil)

	svc, throttle := createTestAuthService(t, userRepo)

	// Act: даже точное совпадение текста не пропускается
	result, err := svc.Login("ivan", "not-a-hash")

	// Assert
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)
	locked, _, lockErr := throttle.IsLocked("ivan")
	require.NoError(t, lockErr)
	assert.True(t, locked, "Попытка входа с поврежденным хешем считается неудачной")
}
