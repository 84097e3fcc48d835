package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"clinic-management-api/internal/auth"
	"clinic-management-api/internal/middleware"
	"clinic-management-api/internal/scheduling"
	"clinic-management-api/internal/store"
)

type Handler struct {
	store   *store.Store
	sched   *scheduling.Service
	history *scheduling.HistoryFilter
	secret  string
}

func New(st *store.Store, secret string, opts ...scheduling.Option) *Handler {
	return &Handler{
		store:   st,
		sched:   scheduling.NewService(st, opts...),
		history: scheduling.NewHistoryFilter(st),
		secret:  secret,
	}
}

// Router binds every operation to its route. Credential endpoints are rate
// limited; everything else behind bearer auth with per-role guards.
func (h *Handler) Router(rl *middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()
	limited := middleware.RateLimit(rl)

	// public
	r.With(limited).Post("/auth/patients/register", h.RegisterPatient)
	r.With(limited).Post("/auth/patients/login", h.LoginPatient)
	r.With(limited).Post("/auth/doctors/login", h.LoginDoctor)
	r.With(limited).Post("/auth/admin/login", h.LoginAdmin)
	r.Post("/auth/refresh", h.Refresh)
	r.Get("/doctors", h.ListDoctors)
	r.Get("/doctors/filter", h.FilterDoctors)

	// authenticated
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(h.secret))

		r.Post("/auth/logout", h.Logout)
		r.Get("/doctors/{id}/availability", h.DoctorAvailability)

		admin := r.With(middleware.RequireRole(auth.RoleAdmin))
		admin.Post("/doctors", h.CreateDoctor)
		admin.Delete("/doctors/{id}", h.DeleteDoctor)

		doctor := r.With(middleware.RequireRole(auth.RoleDoctor))
		doctor.Get("/doctors/me/appointments", h.DoctorDayAppointments)
		doctor.Post("/prescriptions", h.SavePrescription)
		doctor.Get("/prescriptions/{appointmentID}", h.GetPrescriptions)

		patient := r.With(middleware.RequireRole(auth.RolePatient))
		patient.Post("/appointments", h.BookAppointment)
		patient.Put("/appointments/{id}", h.UpdateAppointment)
		patient.Delete("/appointments/{id}", h.CancelAppointment)
		patient.Get("/patients/me", h.PatientDetails)
		patient.Get("/patients/me/appointments", h.PatientHistory)
	})

	return r
}

func respond(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, code int, msg string) {
	respond(w, code, map[string]string{"error": msg})
}

// schedulingError maps a core failure kind to its HTTP status. Anything
// unrecognized is an internal persistence failure.
func schedulingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, scheduling.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, scheduling.ErrInvalidDoctor):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, scheduling.ErrSlotTaken):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, scheduling.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, scheduling.ErrUnauthorized):
		respondError(w, http.StatusForbidden, err.Error())
	default:
		log.Printf("internal: %v", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
