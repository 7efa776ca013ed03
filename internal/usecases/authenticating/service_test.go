package authenticating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	repositorymocks "github.com/vfg2006/branch-insights-api/infrastructure/repository/mocks"
	"github.com/vfg2006/branch-insights-api/internal/config"
	"github.com/vfg2006/branch-insights-api/internal/domain"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) (Authenticator, *repositorymocks.MockUserRepository) {
	ctrl := gomock.NewController(t)
	userRepo := repositorymocks.NewMockUserRepository(ctrl)

	return NewService(userRepo, &config.Config{SecretKey: "segredo-de-teste"}), userRepo
}

func hashOf(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestCreateUser(t *testing.T) {
	tests := []struct {
		name     string
		user     *domain.User
		setup    func(userRepo *repositorymocks.MockUserRepository)
		validate func(t *testing.T, created *domain.User, err error)
	}{
		{
			name: "Dados obrigatórios ausentes",
			user: &domain.User{Email: "a@b.com"},
			validate: func(t *testing.T, created *domain.User, err error) {
				assert.ErrorIs(t, err, ErrMissingRequiredData)
			},
		},
		{
			name: "Perfil desconhecido",
			user: &domain.User{Name: "Ana", Email: "a@b.com", PasswordHash: "senha", Role: "waiter"},
			validate: func(t *testing.T, created *domain.User, err error) {
				assert.ErrorIs(t, err, ErrInvalidRole)
			},
		},
		{
			name: "Gerente sem filial",
			user: &domain.User{Name: "Ana", Email: "a@b.com", PasswordHash: "senha", Role: domain.RoleManager},
			validate: func(t *testing.T, created *domain.User, err error) {
				assert.ErrorIs(t, err, ErrMissingRequiredData)
			},
		},
		{
			name: "Email já cadastrado",
			user: &domain.User{Name: "Ana", Email: "a@b.com", PasswordHash: "senha", Role: domain.RoleAdmin},
			setup: func(userRepo *repositorymocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByEmail("a@b.com").Return(&domain.User{ID: 1}, nil)
			},
			validate: func(t *testing.T, created *domain.User, err error) {
				assert.ErrorIs(t, err, ErrUserAlreadyExists)
			},
		},
		{
			name: "Usuário criado com email normalizado e senha com hash",
			user: &domain.User{Name: "Ana", Email: " Ana@Example.COM ", PasswordHash: "senha-forte", Role: domain.RoleChef, BranchID: "B1"},
			setup: func(userRepo *repositorymocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByEmail("ana@example.com").Return(nil, nil)
				userRepo.EXPECT().CreateUser(gomock.Any()).DoAndReturn(func(user *domain.User) (*domain.User, error) {
					user.ID = 42
					return user, nil
				})
			},
			validate: func(t *testing.T, created *domain.User, err error) {
				require.NoError(t, err)
				assert.Equal(t, 42, created.ID)
				assert.Equal(t, "ana@example.com", created.Email)
				assert.True(t, created.Active)

				// A senha nunca é armazenada em texto puro
				assert.NotEqual(t, "senha-forte", created.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("senha-forte")))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, userRepo := newAuthService(t)
			if tt.setup != nil {
				tt.setup(userRepo)
			}

			created, err := service.CreateUser(tt.user)
			tt.validate(t, created, err)
		})
	}
}

func TestLoginUser(t *testing.T) {
	activeManager := func(t *testing.T) *domain.User {
		return &domain.User{
			ID:           7,
			Name:         "Ana",
			Email:        "ana@example.com",
			PasswordHash: hashOf(t, "senha-forte"),
			Role:         domain.RoleManager,
			BranchID:     "B1",
			Active:       true,
		}
	}

	tests := []struct {
		name     string
		email    string
		password string
		setup    func(t *testing.T, userRepo *repositorymocks.MockUserRepository)
		validate func(t *testing.T, token string, err error)
	}{
		{
			name:  "Credenciais ausentes",
			email: "ana@example.com",
			validate: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrMissingRequiredData)
			},
		},
		{
			name:     "Usuário não encontrado",
			email:    "ninguem@example.com",
			password: "senha",
			setup: func(t *testing.T, userRepo *repositorymocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByEmail("ninguem@example.com").Return(nil, nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrUserNotFound)
			},
		},
		{
			name:     "Conta desativada",
			email:    "ana@example.com",
			password: "senha-forte",
			setup: func(t *testing.T, userRepo *repositorymocks.MockUserRepository) {
				user := activeManager(t)
				user.Active = false
				userRepo.EXPECT().GetUserByEmail("ana@example.com").Return(user, nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrUserDisabled)
			},
		},
		{
			name:     "Senha incorreta",
			email:    "ana@example.com",
			password: "senha-errada",
			setup: func(t *testing.T, userRepo *repositorymocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByEmail("ana@example.com").Return(activeManager(t), nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				assert.True(t, IsCredentialsError(err))
			},
		},
		{
			name:     "Login com sucesso emite token com as claims da sessão",
			email:    " Ana@Example.com ",
			password: "senha-forte",
			setup: func(t *testing.T, userRepo *repositorymocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByEmail("ana@example.com").Return(activeManager(t), nil)
			},
			validate: func(t *testing.T, token string, err error) {
				require.NoError(t, err)
				require.NotEmpty(t, token)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, userRepo := newAuthService(t)
			if tt.setup != nil {
				tt.setup(t, userRepo)
			}

			token, err := service.LoginUser(tt.email, tt.password)
			tt.validate(t, token, err)
		})
	}
}

func TestLoginAndValidateTokenRoundTrip(t *testing.T) {
	service, userRepo := newAuthService(t)

	userRepo.EXPECT().GetUserByEmail("ana@example.com").Return(&domain.User{
		ID:           7,
		Name:         "Ana",
		Email:        "ana@example.com",
		PasswordHash: hashOf(t, "senha-forte"),
		Role:         domain.RoleManager,
		BranchID:     "B1",
		Active:       true,
	}, nil)

	token, err := service.LoginUser("ana@example.com", "senha-forte")
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "Ana", claims.UserName)
	assert.Equal(t, domain.RoleManager, claims.Role)
	assert.Equal(t, "B1", claims.BranchID)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	service, userRepo := newAuthService(t)

	userRepo.EXPECT().GetUserByEmail("ana@example.com").Return(&domain.User{
		ID:           7,
		Email:        "ana@example.com",
		PasswordHash: hashOf(t, "senha-forte"),
		Role:         domain.RoleAdmin,
		Active:       true,
	}, nil)

	token, err := service.LoginUser("ana@example.com", "senha-forte")
	require.NoError(t, err)

	other := NewService(repositorymocks.NewMockUserRepository(gomock.NewController(t)), &config.Config{SecretKey: "outro-segredo"})

	claims, err := other.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestGetUserProfile(t *testing.T) {
	service, userRepo := newAuthService(t)

	userRepo.EXPECT().GetUserByID(7).Return(&domain.User{
		ID:           7,
		Name:         "Ana",
		PasswordHash: "hash-que-nao-pode-vazar",
	}, nil)

	user, err := service.GetUserProfile(7)
	require.NoError(t, err)

	assert.Equal(t, "Ana", user.Name)
	assert.Empty(t, user.PasswordHash)
}

func TestGetUserProfileNotFound(t *testing.T) {
	service, userRepo := newAuthService(t)

	userRepo.EXPECT().GetUserByID(99).Return(nil, nil)

	user, err := service.GetUserProfile(99)

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Nil(t, user)
}
