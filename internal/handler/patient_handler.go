package handler

import (
	"net/http"
	"time"

	"clinic-management-api/internal/model"
)

type patientResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (h *Handler) PatientDetails(w http.ResponseWriter, r *http.Request) {
	p, ok := h.patientFromContext(w, r)
	if !ok {
		return
	}
	respond(w, http.StatusOK, patientResponse{
		ID:      p.ID,
		Name:    p.Name,
		Email:   p.Email,
		Phone:   p.Phone,
		Address: p.Address,
	})
}

type appointmentViewResponse struct {
	ID             string    `json:"id"`
	DoctorID       string    `json:"doctorId"`
	DoctorName     string    `json:"doctorName"`
	PatientID      string    `json:"patientId"`
	PatientName    string    `json:"patientName"`
	PatientEmail   string    `json:"patientEmail"`
	PatientPhone   string    `json:"patientPhone"`
	PatientAddress string    `json:"patientAddress"`
	Time           time.Time `json:"time"`
	Status         int       `json:"status"`
}

func toViewResponse(v *model.AppointmentView) appointmentViewResponse {
	return appointmentViewResponse{
		ID:             v.ID,
		DoctorID:       v.DoctorID,
		DoctorName:     v.DoctorName,
		PatientID:      v.PatientID,
		PatientName:    v.PatientName,
		PatientEmail:   v.PatientEmail,
		PatientPhone:   v.PatientPhone,
		PatientAddress: v.PatientAddress,
		Time:           v.StartTime,
		Status:         v.Status,
	}
}

// PatientHistory returns the authenticated patient's appointment history,
// optionally narrowed by condition (past/future) and doctor name.
func (h *Handler) PatientHistory(w http.ResponseWriter, r *http.Request) {
	p, ok := h.patientFromContext(w, r)
	if !ok {
		return
	}
	views, err := h.history.Filter(r.Context(),
		p.ID,
		r.URL.Query().Get("condition"),
		r.URL.Query().Get("doctor"),
	)
	if err != nil {
		schedulingError(w, err)
		return
	}

	out := make([]appointmentViewResponse, len(views))
	for i := range views {
		out[i] = toViewResponse(&views[i])
	}
	respond(w, http.StatusOK, map[string]any{"appointments": out})
}
