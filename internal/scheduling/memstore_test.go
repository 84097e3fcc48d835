package scheduling_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"clinic-management-api/internal/model"
	"clinic-management-api/internal/scheduling"
)

// memStore is an in-memory scheduling.Store. Appointment creation enforces
// the same doctor/start-time uniqueness the database constraint provides, so
// concurrency properties hold here too.
type memStore struct {
	mu       sync.Mutex
	doctors  map[string]*model.Doctor
	patients map[string]*model.Patient
	appts    map[string]*model.Appointment
	order    []string
}

func newMemStore() *memStore {
	return &memStore{
		doctors:  make(map[string]*model.Doctor),
		patients: make(map[string]*model.Patient),
		appts:    make(map[string]*model.Appointment),
	}
}

func (m *memStore) addDoctor(id, name string, slots ...string) {
	m.doctors[id] = &model.Doctor{ID: id, Name: name, AvailableSlots: slots}
}

func (m *memStore) addPatient(id, name string) {
	m.patients[id] = &model.Patient{
		ID: id, Name: name,
		Email: name + "@test.com", Phone: "555-" + id, Address: "1 Main St",
	}
}

func (m *memStore) DoctorByID(_ context.Context, id string) (*model.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.doctors[id]
	if !ok {
		return nil, scheduling.ErrInvalidDoctor
	}
	cp := *d
	return &cp, nil
}

func (m *memStore) AppointmentByID(_ context.Context, id string) (*model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appts[id]
	if !ok {
		return nil, scheduling.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memStore) CreateAppointment(_ context.Context, a *model.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.appts {
		if other.DoctorID == a.DoctorID && other.StartTime.Equal(a.StartTime) {
			return scheduling.ErrSlotTaken
		}
	}
	cp := *a
	m.appts[a.ID] = &cp
	m.order = append(m.order, a.ID)
	return nil
}

func (m *memStore) UpdateAppointment(_ context.Context, a *model.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.appts[a.ID]; !ok {
		return scheduling.ErrNotFound
	}
	for _, other := range m.appts {
		if other.ID != a.ID && other.DoctorID == a.DoctorID && other.StartTime.Equal(a.StartTime) {
			return scheduling.ErrSlotTaken
		}
	}
	cp := *a
	m.appts[a.ID] = &cp
	return nil
}

func (m *memStore) DeleteAppointment(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.appts, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memStore) SetAppointmentStatus(_ context.Context, id string, status int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appts[id]
	if !ok {
		return scheduling.ErrNotFound
	}
	a.Status = status
	return nil
}

func (m *memStore) AppointmentsIntersecting(_ context.Context, doctorID string, from, to time.Time) ([]model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Appointment
	for _, id := range m.order {
		a := m.appts[id]
		if a.DoctorID == doctorID && a.StartTime.Before(to) && from.Before(a.EndTime()) {
			out = append(out, *a)
		}
	}
	sortByTime(out)
	return out, nil
}

func (m *memStore) DayAppointments(_ context.Context, doctorID string, from, to time.Time) ([]model.Appointment, error) {
	return m.dayAppointments(doctorID, "", from, to), nil
}

func (m *memStore) DayAppointmentsByPatientName(_ context.Context, doctorID, patientName string, from, to time.Time) ([]model.Appointment, error) {
	return m.dayAppointments(doctorID, patientName, from, to), nil
}

func (m *memStore) dayAppointments(doctorID, patientName string, from, to time.Time) []model.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Appointment
	for _, id := range m.order {
		a := m.appts[id]
		if a.DoctorID != doctorID || a.StartTime.Before(from) || !a.StartTime.Before(to) {
			continue
		}
		if patientName != "" && !m.patientNameMatches(a.PatientID, patientName) {
			continue
		}
		out = append(out, *a)
	}
	sortByTime(out)
	return out
}

func (m *memStore) patientNameMatches(patientID, filter string) bool {
	p, ok := m.patients[patientID]
	return ok && strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter))
}

func (m *memStore) HistoryByPatient(_ context.Context, patientID string) ([]model.AppointmentView, error) {
	return m.history(patientID, "", nil), nil
}

func (m *memStore) HistoryByPatientAndStatus(_ context.Context, patientID string, status int) ([]model.AppointmentView, error) {
	return m.history(patientID, "", &status), nil
}

func (m *memStore) HistoryByPatientAndDoctorName(_ context.Context, patientID, doctorName string) ([]model.AppointmentView, error) {
	return m.history(patientID, doctorName, nil), nil
}

func (m *memStore) HistoryByPatientAndDoctorNameAndStatus(_ context.Context, patientID, doctorName string, status int) ([]model.AppointmentView, error) {
	return m.history(patientID, doctorName, &status), nil
}

func (m *memStore) history(patientID, doctorName string, status *int) []model.AppointmentView {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.AppointmentView
	for _, id := range m.order {
		a := m.appts[id]
		if a.PatientID != patientID {
			continue
		}
		if status != nil && a.Status != *status {
			continue
		}
		doc := m.doctors[a.DoctorID]
		if doctorName != "" {
			if doc == nil || !strings.Contains(strings.ToLower(doc.Name), strings.ToLower(doctorName)) {
				continue
			}
		}
		v := model.AppointmentView{
			ID:        a.ID,
			DoctorID:  a.DoctorID,
			PatientID: a.PatientID,
			StartTime: a.StartTime,
			Status:    a.Status,
		}
		if doc != nil {
			v.DoctorName = doc.Name
		}
		if p := m.patients[a.PatientID]; p != nil {
			v.PatientName = p.Name
			v.PatientEmail = p.Email
			v.PatientPhone = p.Phone
			v.PatientAddress = p.Address
		}
		out = append(out, v)
	}
	if status != nil {
		sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	}
	return out
}

func sortByTime(appts []model.Appointment) {
	sort.Slice(appts, func(i, j int) bool { return appts[i].StartTime.Before(appts[j].StartTime) })
}
