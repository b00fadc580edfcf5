package handlers

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/rogerio-castellano/inventory-insights/internal/auth"
	"github.com/rogerio-castellano/inventory-insights/pkg/logger"
)

// LoginHandler godoc
// @Summary Authenticate an operator and return a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body UserLogin true "username and password"
// @Success 200 {object} LoginResult
// @Failure 400 {string} string "Invalid input"
// @Failure 401 {string} string "Unauthorized"
// @Router /login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var credentials UserLogin
	if err := readJSON(w, r, &credentials); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	user, err := userRepo.GetByUsername(credentials.Username)
	if err != nil {
		logger.Log.Info().Str("username", credentials.Username).Msg("login rejected: unknown user")
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credentials.Password)) != nil {
		logger.Log.Info().Str("username", credentials.Username).Msg("login rejected: wrong password")
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}

	// Insights are only produced for an authenticated dashboard.
	if refresher != nil {
		refresher.Trigger()
	}

	respond(w, http.StatusOK, LoginResult{Token: token})
}
