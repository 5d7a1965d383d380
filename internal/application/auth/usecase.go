package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jmkadima/facturier-api/internal/application/dto"
	"github.com/jmkadima/facturier-api/internal/domain"
	"github.com/jmkadima/facturier-api/internal/domain/entity"
	"github.com/jmkadima/facturier-api/internal/domain/repository"
	"github.com/jmkadima/facturier-api/pkg/config"
	"github.com/jmkadima/facturier-api/pkg/jwt"
)

// AuthUseCase connexion et création de comptes.
type AuthUseCase struct {
	repo repository.UtilisateurRepository
	cfg  config.JWTConfig
}

// NewAuthUseCase construit le cas d'usage.
func NewAuthUseCase(repo repository.UtilisateurRepository, cfg config.JWTConfig) *AuthUseCase {
	return &AuthUseCase{repo: repo, cfg: cfg}
}

// Login vérifie les identifiants et renvoie un token JWT. Email inconnu et
// mot de passe faux renvoient la même erreur.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	utilisateur, err := uc.repo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if utilisateur == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(utilisateur.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.cfg.Secret, utilisateur.ID, utilisateur.Nom, uc.cfg.Issuer, uc.cfg.Expiration)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:       token,
		Utilisateur: toUtilisateurResponse(utilisateur),
	}, nil
}

// Register crée un compte ; email déjà pris = ErrDuplicate.
func (uc *AuthUseCase) Register(nom, email, password string) (*dto.UtilisateurResponse, error) {
	if nom == "" || email == "" || len(password) < 6 {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	utilisateur := &entity.Utilisateur{
		ID:           uuid.New().String(),
		Nom:          nom,
		Email:        email,
		PasswordHash: string(hash),
		DateCreation: time.Now(),
	}
	if err := uc.repo.Create(utilisateur); err != nil {
		return nil, err
	}
	resp := toUtilisateurResponse(utilisateur)
	return &resp, nil
}

func toUtilisateurResponse(u *entity.Utilisateur) dto.UtilisateurResponse {
	return dto.UtilisateurResponse{
		ID:           u.ID,
		Nom:          u.Nom,
		Email:        u.Email,
		DateCreation: u.DateCreation,
	}
}
