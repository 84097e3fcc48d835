package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"clinic-management-api/internal/middleware"
	"clinic-management-api/internal/model"
	"clinic-management-api/internal/store"
)

// doctorFromContext resolves the authenticated doctor record.
func (h *Handler) doctorFromContext(w http.ResponseWriter, r *http.Request) (*model.Doctor, bool) {
	ac, _ := middleware.FromContext(r.Context())
	d, err := h.store.DoctorByEmail(r.Context(), ac.Identity)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "doctor not found")
		return nil, false
	}
	return d, true
}

// ownedAppointment loads an appointment and checks the doctor owns it.
func (h *Handler) ownedAppointment(w http.ResponseWriter, r *http.Request, appointmentID string, doctor *model.Doctor) (*model.Appointment, bool) {
	appt, err := h.store.AppointmentByID(r.Context(), appointmentID)
	if err != nil {
		schedulingError(w, err)
		return nil, false
	}
	if appt.DoctorID != doctor.ID {
		respondError(w, http.StatusForbidden, "not authorized for this appointment")
		return nil, false
	}
	return appt, true
}

type savePrescriptionRequest struct {
	AppointmentID string `json:"appointmentId"`
	PatientName   string `json:"patientName"`
	Medication    string `json:"medication"`
	Dosage        string `json:"dosage"`
	DoctorNotes   string `json:"doctorNotes"`
}

// SavePrescription records a prescription for an appointment the doctor owns
// and marks the appointment completed.
func (h *Handler) SavePrescription(w http.ResponseWriter, r *http.Request) {
	d, ok := h.doctorFromContext(w, r)
	if !ok {
		return
	}
	var req savePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.AppointmentID == "" || req.Medication == "" {
		respondError(w, http.StatusBadRequest, "appointmentId and medication required")
		return
	}
	if _, ok := h.ownedAppointment(w, r, req.AppointmentID, d); !ok {
		return
	}

	p := &model.Prescription{
		ID:            uuid.New().String(),
		AppointmentID: req.AppointmentID,
		PatientName:   req.PatientName,
		Medication:    req.Medication,
		Dosage:        req.Dosage,
		DoctorNotes:   req.DoctorNotes,
	}
	if err := h.store.CreatePrescription(r.Context(), p); err != nil {
		if errors.Is(err, store.ErrDuplicatePrescription) {
			respondError(w, http.StatusConflict, "prescription already exists for appointment")
			return
		}
		schedulingError(w, err)
		return
	}

	// clinical record finalized: the appointment is done
	if _, err := h.sched.ChangeStatus(r.Context(), req.AppointmentID, model.StatusCompleted); err != nil {
		schedulingError(w, err)
		return
	}
	respond(w, http.StatusCreated, map[string]string{"prescriptionId": p.ID})
}

type prescriptionResponse struct {
	ID            string `json:"id"`
	AppointmentID string `json:"appointmentId"`
	PatientName   string `json:"patientName"`
	Medication    string `json:"medication"`
	Dosage        string `json:"dosage"`
	DoctorNotes   string `json:"doctorNotes"`
}

func (h *Handler) GetPrescriptions(w http.ResponseWriter, r *http.Request) {
	d, ok := h.doctorFromContext(w, r)
	if !ok {
		return
	}
	appointmentID := chi.URLParam(r, "appointmentID")
	if _, ok := h.ownedAppointment(w, r, appointmentID, d); !ok {
		return
	}

	list, err := h.store.PrescriptionsByAppointment(r.Context(), appointmentID)
	if err != nil {
		schedulingError(w, err)
		return
	}
	out := make([]prescriptionResponse, len(list))
	for i, p := range list {
		out[i] = prescriptionResponse{
			ID:            p.ID,
			AppointmentID: p.AppointmentID,
			PatientName:   p.PatientName,
			Medication:    p.Medication,
			Dosage:        p.Dosage,
			DoctorNotes:   p.DoctorNotes,
		}
	}
	respond(w, http.StatusOK, map[string]any{"prescriptions": out})
}
