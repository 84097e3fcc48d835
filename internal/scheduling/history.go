package scheduling

import (
	"context"
	"strings"

	"clinic-management-api/internal/model"
)

// Condition filter values for patient history queries.
const (
	ConditionPast   = "past"
	ConditionFuture = "future"
)

// HistoryFilter composes the optional condition and doctor-name filters over
// a patient's appointment history. Each filter combination resolves to its
// own store query.
type HistoryFilter struct {
	store Store
}

func NewHistoryFilter(st Store) *HistoryFilter {
	return &HistoryFilter{store: st}
}

// conditionStatus maps a condition filter to a status code. ok is false for
// unrecognized conditions.
func conditionStatus(condition string) (int, bool) {
	switch strings.ToLower(condition) {
	case ConditionPast:
		return model.StatusCompleted, true
	case ConditionFuture:
		return model.StatusScheduled, true
	}
	return 0, false
}

// Filter returns the patient's appointment views narrowed by the given
// filters. An unrecognized condition yields an empty result, not an error.
// With no filters the full history comes back in store order; condition
// queries are ordered by appointment time.
func (hf *HistoryFilter) Filter(ctx context.Context, patientID, condition, doctorName string) ([]model.AppointmentView, error) {
	condition = strings.TrimSpace(condition)
	doctorName = strings.TrimSpace(doctorName)

	switch {
	case condition == "" && doctorName == "":
		return hf.store.HistoryByPatient(ctx, patientID)
	case condition == "":
		return hf.store.HistoryByPatientAndDoctorName(ctx, patientID, doctorName)
	case doctorName == "":
		status, ok := conditionStatus(condition)
		if !ok {
			return []model.AppointmentView{}, nil
		}
		return hf.store.HistoryByPatientAndStatus(ctx, patientID, status)
	default:
		status, ok := conditionStatus(condition)
		if !ok {
			return []model.AppointmentView{}, nil
		}
		return hf.store.HistoryByPatientAndDoctorNameAndStatus(ctx, patientID, doctorName, status)
	}
}
