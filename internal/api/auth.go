package api

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/fuelpos/fuelpos/internal/store"
	"github.com/fuelpos/fuelpos/internal/validate"
)

const minPasswordLen = 6

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		token := strings.TrimSpace(header[len("Bearer "):])
		if token == "" {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		_, err := h.store.Queries().SessionByToken(r.Context(), token)
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if err != nil {
			log.Printf("auth check failed: %v", err)
			respondError(w, http.StatusInternalServerError, "Auth check failed")
			return
		}
		ctx := context.WithValue(r.Context(), ctxToken, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// newSession issues an opaque bearer token for the user inside q.
func (h *Handler) newSession(ctx context.Context, q *store.Queries, userID int64) (sessionResponse, error) {
	token := uuid.NewString()
	expiresAt := time.Now().UTC().Add(h.sessionTTL)
	if err := q.InsertSession(ctx, token, userID, expiresAt); err != nil {
		return sessionResponse{}, err
	}
	return sessionResponse{Token: token, ExpiresAt: expiresAt.Format(time.RFC3339)}, nil
}

func (h *Handler) authSetup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Password) < minPasswordLen {
		respondError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}
	email, err := validate.Email(req.Email)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	var session sessionResponse
	err = h.store.WithTx(r.Context(), func(q *store.Queries) error {
		if _, err := q.AuthUserByEmail(r.Context(), email); err == nil {
			return errEmailTaken
		} else if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		userID, err := q.CreateAuthUser(r.Context(), email, string(hash))
		if err != nil {
			return err
		}
		session, err = h.newSession(r.Context(), q, userID)
		return err
	})
	if errors.Is(err, errEmailTaken) {
		respondError(w, http.StatusConflict, "Email already registered")
		return
	}
	if err != nil {
		log.Printf("POST /api/auth/setup failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}
	respondJSON(w, http.StatusOK, session)
}

var errEmailTaken = errors.New("email already registered")

func (h *Handler) authLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "Email required")
		return
	}
	if len(req.Password) < minPasswordLen {
		respondError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}
	email, err := validate.Email(req.Email)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.store.Queries().AuthUserByEmail(r.Context(), email)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		log.Printf("POST /api/auth/login failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to login")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	session, err := h.newSession(r.Context(), h.store.Queries(), user.ID)
	if err != nil {
		log.Printf("POST /api/auth/login failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to login")
		return
	}
	respondJSON(w, http.StatusOK, session)
}

func (h *Handler) authLogout(w http.ResponseWriter, r *http.Request) {
	token, _ := r.Context().Value(ctxToken).(string)
	if err := h.store.Queries().DeleteSession(r.Context(), token); err != nil {
		log.Printf("POST /api/auth/logout failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to logout")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
