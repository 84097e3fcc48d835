package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"clinic-management-api/internal/auth"
	"clinic-management-api/internal/middleware"
	"clinic-management-api/internal/model"
	"clinic-management-api/internal/scheduling"
	"clinic-management-api/internal/store"
)

const dateLayout = "2006-01-02"

type doctorResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Specialty      string   `json:"specialty"`
	Phone          string   `json:"phone"`
	AvailableSlots []string `json:"availableSlots"`
}

func toDoctorResponse(d *model.Doctor) doctorResponse {
	return doctorResponse{
		ID:             d.ID,
		Name:           d.Name,
		Email:          d.Email,
		Specialty:      d.Specialty,
		Phone:          d.Phone,
		AvailableSlots: d.AvailableSlots,
	}
}

func (h *Handler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	docs, err := h.store.ListDoctors(r.Context())
	if err != nil {
		schedulingError(w, err)
		return
	}
	out := make([]doctorResponse, len(docs))
	for i := range docs {
		out[i] = toDoctorResponse(&docs[i])
	}
	respond(w, http.StatusOK, map[string]any{"doctors": out})
}

// FilterDoctors narrows doctors by name, specialty and slot period (am/pm).
func (h *Handler) FilterDoctors(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	specialty := r.URL.Query().Get("specialty")
	period := strings.ToLower(r.URL.Query().Get("period"))
	if period != "" && period != "am" && period != "pm" {
		respondError(w, http.StatusBadRequest, "period must be am or pm")
		return
	}

	docs, err := h.store.FilterDoctors(r.Context(), name, specialty)
	if err != nil {
		schedulingError(w, err)
		return
	}

	out := make([]doctorResponse, 0, len(docs))
	for i := range docs {
		if period != "" && !offersPeriod(&docs[i], period) {
			continue
		}
		out = append(out, toDoctorResponse(&docs[i]))
	}
	respond(w, http.StatusOK, map[string]any{"doctors": out})
}

func offersPeriod(d *model.Doctor, period string) bool {
	for _, slot := range d.AvailableSlots {
		if p, ok := scheduling.SlotPeriod(slot); ok && p == period {
			return true
		}
	}
	return false
}

type createDoctorRequest struct {
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Password       string   `json:"password"`
	Specialty      string   `json:"specialty"`
	Phone          string   `json:"phone"`
	AvailableSlots []string `json:"availableSlots"`
}

func (h *Handler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req createDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "name, email and password required")
		return
	}
	if len(req.Password) < 8 {
		respondError(w, http.StatusBadRequest, "password too short")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	d := &model.Doctor{
		ID:             uuid.New().String(),
		Name:           req.Name,
		Email:          req.Email,
		PasswordHash:   hash,
		Specialty:      req.Specialty,
		Phone:          req.Phone,
		AvailableSlots: req.AvailableSlots,
	}
	if err := h.store.CreateDoctor(r.Context(), d); err != nil {
		if errors.Is(err, store.ErrDuplicateDoctor) {
			respondError(w, http.StatusConflict, "doctor with email already exists")
			return
		}
		schedulingError(w, err)
		return
	}
	respond(w, http.StatusCreated, map[string]string{"doctorId": d.ID})
}

func (h *Handler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.DeleteDoctor(r.Context(), id); err != nil {
		if errors.Is(err, scheduling.ErrInvalidDoctor) {
			respondError(w, http.StatusNotFound, "doctor not found")
			return
		}
		schedulingError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "doctor deleted"})
}

func (h *Handler) DoctorAvailability(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	date, err := time.Parse(dateLayout, r.URL.Query().Get("date"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	slots, err := h.sched.Availability().ListAvailable(r.Context(), id, date)
	if err != nil {
		schedulingError(w, err)
		return
	}
	if slots == nil {
		slots = []string{}
	}
	respond(w, http.StatusOK, map[string]any{"available": slots})
}

type appointmentResponse struct {
	ID        string    `json:"id"`
	DoctorID  string    `json:"doctorId"`
	PatientID string    `json:"patientId"`
	Time      time.Time `json:"time"`
	Status    int       `json:"status"`
}

func toAppointmentResponse(a *model.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:        a.ID,
		DoctorID:  a.DoctorID,
		PatientID: a.PatientID,
		Time:      a.StartTime,
		Status:    a.Status,
	}
}

// DoctorDayAppointments lists the authenticated doctor's appointments for a
// date, optionally filtered by patient name substring.
func (h *Handler) DoctorDayAppointments(w http.ResponseWriter, r *http.Request) {
	ac, _ := middleware.FromContext(r.Context())
	d, err := h.store.DoctorByEmail(r.Context(), ac.Identity)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "doctor not found")
		return
	}
	date, err := time.Parse(dateLayout, r.URL.Query().Get("date"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	appts, err := h.sched.DayAppointments(r.Context(), d.ID, date, r.URL.Query().Get("patient"))
	if err != nil {
		schedulingError(w, err)
		return
	}
	out := make([]appointmentResponse, len(appts))
	for i := range appts {
		out[i] = toAppointmentResponse(&appts[i])
	}
	respond(w, http.StatusOK, map[string]any{"appointments": out})
}
