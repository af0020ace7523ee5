package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"locallibrary/internal/config"
	"locallibrary/internal/entities"
)

type fakeUserStore struct {
	users  map[string]*entities.User
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*entities.User)}
}

func (s *fakeUserStore) CreateUser(user *entities.User) error {
	s.nextID++
	user.ID = s.nextID
	s.users[user.Username] = user
	return nil
}

func (s *fakeUserStore) GetUserByID(id uint) (*entities.User, error) {
	for _, user := range s.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) GetUserByUsername(username string) (*entities.User, error) {
	if user, ok := s.users[username]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) GetUserByUsernameOrEmail(username, email string) (*entities.User, error) {
	for _, user := range s.users {
		if user.Username == username || user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) CountUsers() (int64, error) {
	return int64(len(s.users)), nil
}

func newTestService() (*Service, *fakeUserStore) {
	store := newFakeUserStore()
	// Min bcrypt cost keeps the tests fast
	return NewService(store, config.Auth{BcryptCost: 4}), store
}

func TestCreateUser(t *testing.T) {
	service, _ := newTestService()

	user, err := service.CreateUser("alice", "alice@example.com", "correct horse battery", entities.UserRoleMember)

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, entities.UserRoleMember, user.Role)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)
}

func TestCreateUser_Validation(t *testing.T) {
	service, _ := newTestService()

	cases := []struct {
		name     string
		username string
		email    string
		password string
		role     entities.UserRole
		wantErr  error
	}{
		{"missing username", "", "a@example.com", "long enough password", entities.UserRoleMember, ErrUsernameRequired},
		{"missing email", "alice", "", "long enough password", entities.UserRoleMember, ErrEmailRequired},
		{"missing password", "alice", "a@example.com", "", entities.UserRoleMember, ErrPasswordRequired},
		{"username too short", "ab", "a@example.com", "long enough password", entities.UserRoleMember, ErrUsernameInvalid},
		{"bad email", "alice", "not-an-email", "long enough password", entities.UserRoleMember, ErrEmailInvalid},
		{"short password", "alice", "a@example.com", "short", entities.UserRoleMember, ErrPasswordTooShort},
		{"unknown role", "alice", "a@example.com", "long enough password", "admin", ErrInvalidRole},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.CreateUser(tc.username, tc.email, tc.password, tc.role)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestCreateUser_Duplicate(t *testing.T) {
	service, _ := newTestService()

	_, err := service.CreateUser("alice", "alice@example.com", "correct horse battery", entities.UserRoleMember)
	require.NoError(t, err)

	_, err = service.CreateUser("alice", "other@example.com", "correct horse battery", entities.UserRoleMember)
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = service.CreateUser("bob", "alice@example.com", "correct horse battery", entities.UserRoleMember)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestAuthenticate(t *testing.T) {
	service, _ := newTestService()

	created, err := service.CreateUser("alice", "alice@example.com", "correct horse battery", entities.UserRoleLibrarian)
	require.NoError(t, err)

	user, err := service.Authenticate("alice", "correct horse battery")

	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.True(t, user.IsLibrarian())
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	service, _ := newTestService()

	_, err := service.CreateUser("alice", "alice@example.com", "correct horse battery", entities.UserRoleMember)
	require.NoError(t, err)

	_, err = service.Authenticate("alice", "wrong password here")

	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestAuthenticate_UnknownUserSameError(t *testing.T) {
	service, _ := newTestService()

	// Unknown usernames must be indistinguishable from wrong passwords
	_, err := service.Authenticate("nobody", "whatever password")

	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestHasUsers(t *testing.T) {
	service, _ := newTestService()

	hasUsers, err := service.HasUsers()
	require.NoError(t, err)
	assert.False(t, hasUsers)

	_, err = service.CreateUser("alice", "alice@example.com", "correct horse battery", entities.UserRoleMember)
	require.NoError(t, err)

	hasUsers, err = service.HasUsers()
	require.NoError(t, err)
	assert.True(t, hasUsers)
}
