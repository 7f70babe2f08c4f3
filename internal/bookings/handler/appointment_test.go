package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	apperrors "github.com/anshif14/petzify-sub001/pkg/errors"
	"github.com/anshif14/petzify-sub001/pkg/logger"
	"github.com/anshif14/petzify-sub001/pkg/model"
)

type mockAppointmentService struct {
	createFunc  func(ctx context.Context, a *model.Appointment) error
	getByIDFunc func(ctx context.Context, id string) (*model.Appointment, error)
	updateFunc  func(ctx context.Context, id string, updates *model.AppointmentUpdate) error
}

func (m *mockAppointmentService) Create(ctx context.Context, a *model.Appointment) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, a)
	}
	return nil
}

func (m *mockAppointmentService) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockAppointmentService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Appointment, int64, error) {
	return []*model.Appointment{}, 0, nil
}

func (m *mockAppointmentService) Update(ctx context.Context, id string, updates *model.AppointmentUpdate) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, updates)
	}
	return nil
}

func (m *mockAppointmentService) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockAppointmentService) Search(ctx context.Context, customerEmail, status string, day *time.Time, limit int, offset int64) ([]*model.Appointment, int64, error) {
	return []*model.Appointment{}, 0, nil
}

func testHandler(svc *mockAppointmentService) *AppointmentHandler {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	return NewAppointmentHandler(svc, log)
}

func newRouter(h *AppointmentHandler) *httprouter.Router {
	router := httprouter.New()
	h.RegisterRoutes(router)
	return router
}

func TestCreate_MalformedBodyReturns400(t *testing.T) {
	router := newRouter(testHandler(&mockAppointmentService{}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCreate_ValidationErrorReturns422(t *testing.T) {
	svc := &mockAppointmentService{
		createFunc: func(ctx context.Context, a *model.Appointment) error {
			return apperrors.Validation("Appointment validation failed", nil)
		},
	}
	router := newRouter(testHandler(svc))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(`{"pet_name":"Bruno"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestGetByID_NotFoundReturns404(t *testing.T) {
	svc := &mockAppointmentService{
		getByIDFunc: func(ctx context.Context, id string) (*model.Appointment, error) {
			return nil, apperrors.NotFoundWithID("Appointment", id)
		},
	}
	router := newRouter(testHandler(svc))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/id/64f1b2a3c4d5e6f7a8b9c0d1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestGetByID_ReturnsAppointment(t *testing.T) {
	stored := &model.Appointment{
		ID:              "64f1b2a3c4d5e6f7a8b9c0d1",
		ServiceType:     model.ServiceGrooming,
		PetName:         "Bruno",
		CustomerName:    "Asha Nair",
		CustomerEmail:   "asha@example.com",
		AppointmentDate: time.Date(2026, time.September, 4, 0, 0, 0, 0, time.UTC),
		StartTime:       "14:30",
		EndTime:         "15:30",
		Status:          model.StatusConfirmed,
	}
	svc := &mockAppointmentService{
		getByIDFunc: func(ctx context.Context, id string) (*model.Appointment, error) {
			return stored, nil
		},
	}
	router := newRouter(testHandler(svc))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/id/64f1b2a3c4d5e6f7a8b9c0d1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var got struct {
		Data model.Appointment `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Data.PetName != "Bruno" || got.Data.StartTime != "14:30" {
		t.Errorf("unexpected body: %+v", got.Data)
	}
}

func TestUpdate_PassesParsedUpdateToService(t *testing.T) {
	var received *model.AppointmentUpdate
	svc := &mockAppointmentService{
		updateFunc: func(ctx context.Context, id string, updates *model.AppointmentUpdate) error {
			received = updates
			return nil
		},
	}
	router := newRouter(testHandler(svc))

	body := `{"start_time":"09:00","end_time":"10:00"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/appointments/id/64f1b2a3c4d5e6f7a8b9c0d1", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if received == nil || received.StartTime != "09:00" || received.EndTime != "10:00" {
		t.Errorf("service received %+v", received)
	}
}
