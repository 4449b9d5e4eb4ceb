package handler

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/wonwonleywon/roster-api/pkg/config"
	"github.com/wonwonleywon/roster-api/pkg/core/domain"
	"github.com/wonwonleywon/roster-api/pkg/ports"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type AuthHandler struct {
	service        ports.AuthService
	oauthConfig    *oauth2.Config
	frontendURL    string
	allowedEmails  []string
	cookieName     string
	cookieSameSite http.SameSite
	isProduction   bool
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type GoogleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

func NewAuthHandler(cfg *config.Config, service ports.AuthService) *AuthHandler {
	return &AuthHandler{
		service: service,
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		frontendURL:    cfg.FrontendURL,
		allowedEmails:  cfg.AllowedEmails,
		cookieName:     cfg.CookieName,
		cookieSameSite: cfg.CookieSameSite,
		isProduction:   cfg.IsProduction(),
	}
}

// Login verifies a username/password pair. Token mode returns the JWT in
// the body (the frontend sends it back as a bearer header); session mode
// sets the opaque session cookie instead.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	proof, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			errorJSON(w, http.StatusBadRequest, "Username and password required")
		case errors.Is(err, domain.ErrInvalidCredentials):
			errorJSON(w, http.StatusUnauthorized, "Invalid credentials")
		default:
			errorJSON(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	if h.service.Mode() == config.AuthModeSession {
		h.setAuthCookie(w, proof)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Logged in"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": proof})
}

// Logout destroys the server-side session and clears the cookie.
// Always reports success once the store call went through.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var proof string
	if c, err := r.Cookie(h.cookieName); err == nil {
		proof = c.Value
	}

	if err := h.service.Logout(r.Context(), proof); err != nil {
		errorJSON(w, http.StatusInternalServerError, "Failed to log out")
		return
	}

	h.clearAuthCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Register creates an admin credential. The route is only mounted when
// REGISTRATION_OPEN is set; otherwise credentials are seeded via the CLI.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	admin, err := h.service.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			errorJSON(w, http.StatusBadRequest, "Username and password required")
		case errors.Is(err, domain.ErrUsernameTaken):
			errorJSON(w, http.StatusConflict, "Username already taken")
		default:
			errorJSON(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, admin)
}

// GoogleLogin starts the OAuth flow for admins signing in with a Google
// account instead of a password.
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	state := h.generateStateOauthCookie(w)
	url := h.oauthConfig.AuthCodeURL(state)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	oauthState, err := r.Cookie("oauthstate")
	if err != nil {
		log.Printf("Callback error: missing oauthstate cookie: %v", err)
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
		return
	}

	if r.FormValue("state") != oauthState.Value {
		log.Printf("Callback error: invalid oauth state")
		errorJSON(w, http.StatusBadRequest, "Invalid oauth state")
		return
	}

	token, err := h.oauthConfig.Exchange(context.Background(), r.FormValue("code"))
	if err != nil {
		log.Printf("Callback error: code exchange failed: %v", err)
		errorJSON(w, http.StatusInternalServerError, "Code exchange failed")
		return
	}

	response, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + token.AccessToken)
	if err != nil {
		log.Printf("Callback error: failed getting user info: %v", err)
		errorJSON(w, http.StatusInternalServerError, "Failed getting user info")
		return
	}
	defer response.Body.Close()

	var googleUser GoogleUser
	if err := json.NewDecoder(response.Body).Decode(&googleUser); err != nil {
		log.Printf("Callback error: failed decoding user info: %v", err)
		errorJSON(w, http.StatusInternalServerError, "Failed decoding user info")
		return
	}

	// Email allowlist check: no allowlisted emails means no OAuth access.
	isAllowed := false
	for _, email := range h.allowedEmails {
		if email == googleUser.Email {
			isAllowed = true
			break
		}
	}
	if !isAllowed {
		log.Printf("Callback error: email %s not in allowlist", googleUser.Email)
		errorJSON(w, http.StatusForbidden, "Access denied: your email is not in the allowlist")
		return
	}

	// Verified Google identity gets the same proof as a password login.
	proof, err := h.service.Issue(r.Context(), googleUser.Email)
	if err != nil {
		log.Printf("Callback error: failed issuing proof: %v", err)
		errorJSON(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	h.setAuthCookie(w, proof)

	log.Printf("Login successful for admin: %s", googleUser.Email)
	http.Redirect(w, r, h.frontendURL, http.StatusTemporaryRedirect)
}

// --- cookie helpers ---

func (h *AuthHandler) setAuthCookie(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.isProduction,
		SameSite: h.cookieSameSite,
		Expires:  time.Now().Add(2 * time.Hour),
	})
}

func (h *AuthHandler) clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.isProduction,
		SameSite: h.cookieSameSite,
		MaxAge:   -1,
	})
}

func (h *AuthHandler) generateStateOauthCookie(w http.ResponseWriter) string {
	b := make([]byte, 16)
	rand.Read(b)
	state := base64.URLEncoding.EncodeToString(b)
	http.SetCookie(w, &http.Cookie{
		Name:     "oauthstate",
		Value:    state,
		Expires:  time.Now().Add(20 * time.Minute),
		Path:     "/",
		HttpOnly: true,
		Secure:   h.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	return state
}
