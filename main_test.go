package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"attendance-be/internal/controllers"
	"attendance-be/internal/entities"
	"attendance-be/internal/jwt"
	"attendance-be/internal/metrics"
	"attendance-be/internal/middleware"
	"attendance-be/internal/repository"
	"attendance-be/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

// memoryUsers and memoryEntries are in-process stand-ins for the Postgres repositories.
type memoryUsers struct {
	mu    sync.Mutex
	users []*entities.User
}

func (m *memoryUsers) Create(_ context.Context, user *entities.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email || u.PhoneNumber == user.PhoneNumber {
			return repository.ErrDuplicate
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	m.users = append(m.users, &stored)
	return nil
}

func (m *memoryUsers) find(match func(*entities.User) bool) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			found := *u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	return m.find(func(u *entities.User) bool { return u.Email == email })
}

func (m *memoryUsers) FindByPhoneNumber(_ context.Context, phone string) (*entities.User, error) {
	return m.find(func(u *entities.User) bool { return u.PhoneNumber == phone })
}

func (m *memoryUsers) FindByID(_ context.Context, id string) (*entities.User, error) {
	return m.find(func(u *entities.User) bool { return u.ID == id })
}

type memoryEntries struct {
	mu      sync.Mutex
	entries []*entities.Entry
}

func (m *memoryEntries) Create(_ context.Context, entry *entities.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.ID = uuid.NewString()
	stored := *entry
	m.entries = append(m.entries, &stored)
	return nil
}

func (m *memoryEntries) CloseEntry(_ context.Context, id, userID string, checkOut entities.CheckOut) (*entities.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.ID == id && e.UserID == userID {
			e.CheckOutTime = &checkOut.CheckOutTime
			e.CheckoutLocation = &checkOut.CheckoutLocation
			e.TotalHours = checkOut.TotalHours
			closed := *e
			return &closed, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryEntries) matching(filter repository.EntryFilter) []*entities.Entry {
	var out []*entities.Entry
	for _, e := range m.entries {
		if filter.UserID == "" || e.UserID == filter.UserID {
			out = append(out, e)
		}
	}
	return out
}

func (m *memoryEntries) List(_ context.Context, filter repository.EntryFilter, offset, limit int) ([]*entities.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.matching(filter)
	if offset >= len(all) {
		return []*entities.Entry{}, nil
	}
	return all[offset:min(offset+limit, len(all))], nil
}

func (m *memoryEntries) Count(_ context.Context, filter repository.EntryFilter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.matching(filter)), nil
}

type stubGeocoder struct{}

func (stubGeocoder) ReverseGeocode(context.Context, float64, float64) ([]byte, error) {
	return []byte(`{"city":"Bengaluru"}`), nil
}

type testServer struct {
	handler http.Handler
	tokens  *jwt.JWTService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := jwt.NewJWTService("test-secret", time.Hour)

	authService := service.NewAuthService(&memoryUsers{}, service.NewBcryptHasher(bcrypt.MinCost), tokens)
	attendanceService := service.NewAttendanceService(&memoryEntries{}, 100)
	locationService := service.NewLocationService(stubGeocoder{}, nil, time.Hour)

	router := newRouter(routerDeps{
		logger:         logger,
		tokens:         tokens,
		registry:       metrics.NewRegistry(),
		auth:           controllers.NewAuthController(authService, 0, logger),
		attendance:     controllers.NewAttendanceController(attendanceService, logger),
		location:       controllers.NewLocationController(locationService, logger),
		qrcode:         controllers.NewQRCodeController(logger),
		generalLimiter: middleware.NewRateLimiter(ctx, rate.Inf, 0),
		authLimiter:    middleware.NewRateLimiter(ctx, rate.Inf, 0),
	})

	return &testServer{handler: router, tokens: tokens}
}

func (s *testServer) do(t *testing.T, method, target, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(data))
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)

	var decoded map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func (s *testServer) register(t *testing.T, name, email, phone string) map[string]any {
	t.Helper()
	w, body := s.do(t, http.MethodPost, "/register", "", map[string]string{
		"userName": name, "password": "p", "email": email, "phoneNumber": phone,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return body
}

func TestAttendanceFlow(t *testing.T) {
	s := newTestServer(t)

	registered := s.register(t, "A", "a@x.com", "111")
	assert.NotEmpty(t, registered["token"])
	assert.Equal(t, "user registered successfully", registered["message"])
	assert.NotContains(t, registered, "password")
	assert.NotContains(t, registered, "passwordHash")

	w, body := s.do(t, http.MethodPost, "/register", "", map[string]string{
		"userName": "A2", "password": "p", "email": "a@x.com", "phoneNumber": "222",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already exists", body["message"])

	w, body = s.do(t, http.MethodPost, "/login", "", map[string]string{"email": "111", "password": "p"})
	require.Equal(t, http.StatusCreated, w.Code)
	token := body["token"].(string)
	claims, err := s.tokens.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, registered["id"], claims.Subject)

	w, body = s.do(t, http.MethodPost, "/login", "", map[string]string{"email": "111", "password": "wrong"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid password", body["message"])

	w, body = s.do(t, http.MethodPost, "/checkIn", token, map[string]string{
		"checkInTime": "09:00", "checkInLocation": "Office",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, body, "checkOutTime")
	entryID := body["id"].(string)

	w, body = s.do(t, http.MethodPost, "/checkOut?checkInId="+entryID, token, map[string]string{
		"checkOutTime": "17:00", "checkoutLocation": "Office", "totalHurs": "8",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "17:00", data["checkOutTime"])
	assert.Equal(t, "8", data["totalHurs"])
}

func TestCheckOut_OtherUsersEntryIsNotFound(t *testing.T) {
	s := newTestServer(t)
	owner := s.register(t, "A", "a@x.com", "111")["token"].(string)
	intruder := s.register(t, "B", "b@x.com", "222")["token"].(string)

	_, body := s.do(t, http.MethodPost, "/checkIn", owner, map[string]string{
		"checkInTime": "09:00", "checkInLocation": "Office",
	})
	entryID := body["id"].(string)

	w, body := s.do(t, http.MethodPost, "/checkOut?checkInId="+entryID, intruder, map[string]string{
		"checkOutTime": "17:00", "checkoutLocation": "Home",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No check-in found", body["message"])

	_, listed := s.do(t, http.MethodGet, "/allEntry", owner, nil)
	entry := listed["data"].([]any)[0].(map[string]any)
	assert.NotContains(t, entry, "checkOutTime")
}

func TestListEntries_Pagination(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "A", "a@x.com", "111")["token"].(string)

	for i := range 15 {
		w, _ := s.do(t, http.MethodPost, "/checkIn", token, map[string]string{
			"checkInTime": fmt.Sprintf("%02d:00", i), "checkInLocation": "Office",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, body := s.do(t, http.MethodGet, "/allEntry?page=1&limit=10", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["data"], 10)
	assert.Equal(t, map[string]any{
		"total": 15.0, "totalPages": 2.0, "currentPage": 1.0, "hasMore": true, "limit": 10.0,
	}, body["pagination"])

	_, body = s.do(t, http.MethodGet, "/allEntry?page=3&limit=10", token, nil)
	assert.Empty(t, body["data"])
	assert.Equal(t, false, body["pagination"].(map[string]any)["hasMore"])

	// Another user sees none of them.
	other := s.register(t, "B", "b@x.com", "222")["token"].(string)
	_, body = s.do(t, http.MethodGet, "/allEntry", other, nil)
	assert.Equal(t, 0.0, body["pagination"].(map[string]any)["total"])
}

func TestListEntries_AdminSeesAllUsers(t *testing.T) {
	s := newTestServer(t)
	for _, u := range []struct{ name, email, phone string }{{"A", "a@x.com", "111"}, {"B", "b@x.com", "222"}} {
		token := s.register(t, u.name, u.email, u.phone)["token"].(string)
		w, _ := s.do(t, http.MethodPost, "/checkIn", token, map[string]string{
			"checkInTime": "09:00", "checkInLocation": "Office",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	adminToken, err := s.tokens.GenerateToken(uuid.NewString(), "root@x.com", entities.RoleAdmin)
	require.NoError(t, err)

	_, body := s.do(t, http.MethodGet, "/allEntry", adminToken, nil)
	assert.Len(t, body["data"], 2)
	assert.Equal(t, 2.0, body["pagination"].(map[string]any)["total"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/checkIn"},
		{http.MethodPost, "/checkOut?checkInId=x"},
		{http.MethodGet, "/allEntry"},
	} {
		w, body := s.do(t, route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, route.path)
		assert.Equal(t, "UNAUTHENTICATED", body["kind"])
	}
}

func TestPublicRoutes(t *testing.T) {
	s := newTestServer(t)

	w, body := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])

	w, body = s.do(t, http.MethodGet, "/getLocation?latitude=12.97&longitude=77.59", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Bengaluru", body["city"])

	w, _ = s.do(t, http.MethodGet, "/getLocation?latitude=12.97", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "attendance_http_requests_total")
}
