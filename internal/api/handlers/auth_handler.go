package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/markdave123-py/Retriva/internal/config"
)

type AuthHandler struct {
	cfg *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks the env-configured service credential and issues a token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", 400)
		return
	}

	if h.cfg.AuthEmail == "" || h.cfg.AuthPasswordHash == "" {
		http.Error(w, "login disabled", http.StatusServiceUnavailable)
		return
	}

	if req.Email != h.cfg.AuthEmail ||
		bcrypt.CompareHashAndPassword([]byte(h.cfg.AuthPasswordHash), []byte(req.Password)) != nil {
		http.Error(w, "invalid credentials", 401)
		return
	}

	token := generateJWT(req.Email, h.cfg.JWTSecret)
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// generateJWT creates a signed token with a subject claim
func generateJWT(subject, secret string) string {
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, _ := tok.SignedString([]byte(secret))
	return token
}
