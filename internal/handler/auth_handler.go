package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"clinic-management-api/internal/auth"
	"clinic-management-api/internal/middleware"
	"clinic-management-api/internal/model"
)

const refreshTokenTTL = 7 * 24 * time.Hour

type registerPatientRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Password string `json:"password"`
}

func (h *Handler) RegisterPatient(w http.ResponseWriter, r *http.Request) {
	var req registerPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "name, email, phone and password required")
		return
	}
	if len(req.Password) < 8 {
		respondError(w, http.StatusBadRequest, "password too short")
		return
	}

	if exists, err := h.store.PatientExists(r.Context(), req.Email, req.Phone); err != nil {
		schedulingError(w, err)
		return
	} else if exists {
		respondError(w, http.StatusConflict, "patient already registered")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	p := &model.Patient{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		PasswordHash: hash,
	}
	if err := h.store.CreatePatient(r.Context(), p); err != nil {
		// unique violation lost a race with another signup
		respondError(w, http.StatusConflict, "patient already registered")
		return
	}

	tok, err := auth.MakeToken(p.Email, auth.RolePatient, h.secret)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respond(w, http.StatusCreated, map[string]string{"patientId": p.ID, "token": tok})
}

type loginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) LoginPatient(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password required")
		return
	}
	p, err := h.store.PatientByEmail(r.Context(), req.Email)
	if err != nil || !auth.CheckPassword(p.PasswordHash, req.Password) {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	h.issueTokens(w, r, p.Email, auth.RolePatient, map[string]string{
		"patientId": p.ID, "name": p.Name,
	})
}

func (h *Handler) LoginDoctor(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password required")
		return
	}
	d, err := h.store.DoctorByEmail(r.Context(), req.Email)
	if err != nil || !auth.CheckPassword(d.PasswordHash, req.Password) {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	h.issueTokens(w, r, d.Email, auth.RoleDoctor, map[string]string{
		"doctorId": d.ID, "name": d.Name,
	})
}

func (h *Handler) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "username and password required")
		return
	}
	a, err := h.store.AdminByUsername(r.Context(), req.Username)
	if err != nil || !auth.CheckPassword(a.PasswordHash, req.Password) {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	h.issueTokens(w, r, a.Username, auth.RoleAdmin, map[string]string{
		"adminId": a.ID,
	})
}

// issueTokens writes the login response: an access token plus a rotating
// refresh token persisted by hash only.
func (h *Handler) issueTokens(w http.ResponseWriter, r *http.Request, identity, role string, extra map[string]string) {
	tok, err := auth.MakeToken(identity, role, h.secret)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	rawRefresh, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if _, err := h.store.CreateRefreshToken(r.Context(), identity, role, hash, time.Now().Add(refreshTokenTTL)); err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	body := map[string]string{"token": tok, "refreshToken": rawRefresh}
	for k, v := range extra {
		body[k] = v
	}
	respond(w, http.StatusOK, body)
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		respondError(w, http.StatusBadRequest, "refreshToken required")
		return
	}
	rt, err := h.store.RefreshTokenByHash(r.Context(), auth.HashRefreshToken(req.RefreshToken))
	if err != nil || rt.Revoked || time.Now().After(rt.ExpiresAt) {
		respondError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	rawRefresh, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	newID := uuid.New().String()
	if err := h.store.RotateRefreshToken(r.Context(), rt.ID, newID, rt.UserID, rt.Role, hash, time.Now().Add(refreshTokenTTL)); err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	tok, err := auth.MakeToken(rt.UserID, rt.Role, h.secret)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respond(w, http.StatusOK, map[string]string{"token": tok, "refreshToken": rawRefresh})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ac, ok := middleware.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "no token")
		return
	}
	if err := h.store.RevokeAllRefreshTokens(r.Context(), ac.Identity); err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "logged out"})
}
