package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nurpe/tourbook/internal/model"
)

var ErrInvalidToken = errors.New("invalid session token")

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Session is the outcome of validating a session token.
type Session struct {
	Valid     bool
	Principal model.Principal
}

// Parser verifies HS256 session tokens issued by the identity service.
type Parser struct {
	secret []byte
}

func NewParser(secret string) *Parser {
	return &Parser{secret: []byte(secret)}
}

func (p *Parser) Parse(token string) (model.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return model.Principal{}, ErrInvalidToken
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !parsed.Valid {
		return model.Principal{}, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.Principal{}, ErrInvalidToken
	}

	role := model.Role(strings.ToLower(strings.TrimSpace(claims.Role)))
	switch role {
	case model.RoleAdmin, model.RoleUser:
	default:
		return model.Principal{}, ErrInvalidToken
	}

	return model.Principal{UserID: userID, Role: role}, nil
}

// GetSession never fails; an unusable token yields an invalid session.
func (p *Parser) GetSession(token string) Session {
	principal, err := p.Parse(token)
	if err != nil {
		return Session{}
	}
	return Session{Valid: true, Principal: principal}
}
