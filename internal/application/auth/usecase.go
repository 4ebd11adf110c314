package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/dto"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/policy"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/entity"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/repository"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login e identidad fresca.
type AuthUseCase struct {
	accounts repository.AccountRepository
	cache    IdentityCache
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth. cache puede ser nil.
func NewAuthUseCase(accounts repository.AccountRepository, cache IdentityCache, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{accounts: accounts, cache: cache, jwtCfg: jwtCfg}
}

// Register crea una cuenta opticien con status pending: hashea password con
// bcrypt y persiste. Las cuentas admin no se registran por aquí, se siembran.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.AccountResponse, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.accounts.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	account := &entity.Account{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         entity.RoleOpticien,
		Status:       entity.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.accounts.Create(account); err != nil {
		return nil, err
	}
	return dto.ToAccountResponse(account), nil
}

// Login verifica email/password y genera un JWT con role y status.
// Una cuenta pending o rejected sí puede autenticarse: la política la manda
// a su página de estado, no se le niega la sesión.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	account, err := uc.accounts.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, account.ID, string(account.Role), string(account.Status), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	decision := policy.Decide(account.Role, account.Status)
	return &dto.LoginResponse{
		Token:        token,
		Account:      *dto.ToAccountResponse(account),
		LandingRoute: string(decision.Landing),
	}, nil
}

// CurrentIdentity devuelve el snapshot fresco {id, role, status} de la cuenta,
// pasando por el cache si está configurado. Es el punto de re-fetch tras una
// mutación o un fallo ambiguo: nunca se adivina el estado nuevo.
func (uc *AuthUseCase) CurrentIdentity(ctx context.Context, accountID string) (*entity.Identity, error) {
	if uc.cache != nil {
		if id, err := uc.cache.Get(ctx, accountID); err == nil && id != nil {
			return id, nil
		}
	}
	account, err := uc.accounts.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrUserNotFound
	}
	id := entity.IdentityOf(account)
	if uc.cache != nil {
		_ = uc.cache.Set(ctx, id)
	}
	return &id, nil
}
