package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"clinic-management-api/internal/middleware"
	"clinic-management-api/internal/model"
	"clinic-management-api/internal/scheduling"
)

// patientFromContext resolves the authenticated patient record.
func (h *Handler) patientFromContext(w http.ResponseWriter, r *http.Request) (*model.Patient, bool) {
	ac, _ := middleware.FromContext(r.Context())
	p, err := h.store.PatientByEmail(r.Context(), ac.Identity)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "patient not found")
		return nil, false
	}
	return p, true
}

type bookAppointmentRequest struct {
	DoctorID string    `json:"doctorId"`
	Time     time.Time `json:"time"`
}

func (h *Handler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	p, ok := h.patientFromContext(w, r)
	if !ok {
		return
	}
	var req bookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}

	id, err := h.sched.Book(r.Context(), req.DoctorID, p.ID, req.Time)
	if err != nil {
		schedulingError(w, err)
		return
	}
	respond(w, http.StatusCreated, map[string]string{"appointmentId": id})
}

type updateAppointmentRequest struct {
	DoctorID string     `json:"doctorId"`
	Time     *time.Time `json:"time"`
	Status   *int       `json:"status"`
}

func (h *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	p, ok := h.patientFromContext(w, r)
	if !ok {
		return
	}
	var req updateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}

	patch := scheduling.Patch{
		DoctorID:  req.DoctorID,
		StartTime: req.Time,
		Status:    req.Status,
	}
	if err := h.sched.Update(r.Context(), chi.URLParam(r, "id"), patch, p.ID); err != nil {
		schedulingError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "OK"})
}

func (h *Handler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	p, ok := h.patientFromContext(w, r)
	if !ok {
		return
	}
	deleted, err := h.sched.Cancel(r.Context(), chi.URLParam(r, "id"), p.ID)
	if err != nil {
		schedulingError(w, err)
		return
	}
	if !deleted {
		respond(w, http.StatusForbidden, map[string]bool{"deleted": false})
		return
	}
	respond(w, http.StatusOK, map[string]bool{"deleted": true})
}
