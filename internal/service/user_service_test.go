package service

import (
	"context"
	"testing"

	"github.com/notevault/note-vault-service/internal/domain"
	"github.com/notevault/note-vault-service/internal/dto"
	"github.com/notevault/note-vault-service/pkg/app"
	"github.com/notevault/note-vault-service/pkg/code"
	"github.com/notevault/note-vault-service/pkg/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockUserRepo struct {
	domain.UserRepository
	users  map[int64]*domain.User
	nextID int64
}

func (m *mockUserRepo) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	u, ok := m.users[uid]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) GetByDocument(ctx context.Context, document string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Document == document {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m.nextID++
	user.UID = m.nextID
	m.users[user.UID] = user
	return user, nil
}

func newTestTokenManager() app.TokenManager {
	return app.NewTokenManager(app.TokenConfig{SecretKey: "test-secret"})
}

func TestUserService_Register(t *testing.T) {
	userRepo := &mockUserRepo{users: map[int64]*domain.User{}}
	svc := NewUserService(userRepo, newTestTokenManager(), zap.NewNop(), &AppServiceConfig{RegisterEnabled: true})

	result, err := svc.Register(context.Background(), &dto.UserCreateRequest{
		Email:    "a@b.com",
		Nickname: "alice",
		Password: "secret123",
	}, "127.0.0.1")

	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "a@b.com", result.Email)

	// 明文密码不落库
	stored := userRepo.users[result.UID]
	assert.NotEqual(t, "secret123", stored.Password)
	assert.True(t, util.CheckPasswordHash(stored.Password, "secret123"))
}

func TestUserService_Register_EmailExists(t *testing.T) {
	userRepo := &mockUserRepo{users: map[int64]*domain.User{
		1: {UID: 1, Email: "a@b.com"},
	}}
	svc := NewUserService(userRepo, newTestTokenManager(), zap.NewNop(), &AppServiceConfig{RegisterEnabled: true})

	_, err := svc.Register(context.Background(), &dto.UserCreateRequest{
		Email:    "a@b.com",
		Nickname: "dup",
		Password: "secret123",
	}, "127.0.0.1")

	assert.ErrorIs(t, err, code.ErrorUserEmailExists)
}

func TestUserService_Register_Disabled(t *testing.T) {
	userRepo := &mockUserRepo{users: map[int64]*domain.User{}}
	svc := NewUserService(userRepo, newTestTokenManager(), zap.NewNop(), &AppServiceConfig{RegisterEnabled: false})

	_, err := svc.Register(context.Background(), &dto.UserCreateRequest{
		Email:    "a@b.com",
		Nickname: "alice",
		Password: "secret123",
	}, "127.0.0.1")

	assert.ErrorIs(t, err, code.ErrorUserRegisterDisabled)
}

func TestUserService_Login(t *testing.T) {
	hashed, err := util.GeneratePasswordHash("secret123")
	require.NoError(t, err)

	userRepo := &mockUserRepo{users: map[int64]*domain.User{
		1: {UID: 1, Email: "a@b.com", Nickname: "alice", Password: hashed},
	}}
	svc := NewUserService(userRepo, newTestTokenManager(), zap.NewNop(), nil)

	result, err := svc.Login(context.Background(), &dto.UserLoginRequest{
		Email:    "a@b.com",
		Password: "secret123",
	}, "127.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	// 错误密码与未注册邮箱返回同一错误
	_, err = svc.Login(context.Background(), &dto.UserLoginRequest{
		Email:    "a@b.com",
		Password: "wrong",
	}, "127.0.0.1")
	assert.ErrorIs(t, err, code.ErrorUserPasswordIncorrect)

	_, err = svc.Login(context.Background(), &dto.UserLoginRequest{
		Email:    "nobody@b.com",
		Password: "secret123",
	}, "127.0.0.1")
	assert.ErrorIs(t, err, code.ErrorUserPasswordIncorrect)
}
