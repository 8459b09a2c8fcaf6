package service

import (
	"elearn_backend/internal/config"
	"elearn_backend/internal/model"
	"elearn_backend/internal/repository"
	"elearn_backend/internal/util"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (s *AuthService) Register(user *model.User) error {
	_, err := s.UserRepo.FindByEmail(user.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	return s.UserRepo.Create(user)
}

func (s *AuthService) Login(email, password string) (*TokenPair, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := util.ParseJWT(refreshToken, s.Cfg.JWT.Secret)
	if err != nil || claims.TokenType != util.TokenTypeRefresh {
		return nil, util.ErrInvalidToken
	}

	user, err := s.UserRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, util.ErrInvalidToken
	}

	return s.issueTokens(user)
}

func (s *AuthService) issueTokens(user *model.User) (*TokenPair, error) {
	access, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, util.TokenTypeAccess, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	refresh, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, util.TokenTypeRefresh, s.Cfg.JWT.RefreshExpireTime)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
