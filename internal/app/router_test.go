package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"hailsim/internal/clock"
	"hailsim/internal/config"
	"hailsim/internal/dispatch"
	"hailsim/internal/domain"
	"hailsim/internal/geocode"
	"hailsim/internal/handler"
	"hailsim/internal/identity"
	"hailsim/internal/lifecycle"
	"hailsim/internal/location"
	"hailsim/internal/session"
)

var testRegion = domain.Region{
	Center:         domain.Coordinates{Latitude: 3.1390, Longitude: 101.6869},
	LatitudeDelta:  0.0922,
	LongitudeDelta: 0.0421,
}

func testSim() config.SimConfig {
	return config.SimConfig{
		DispatchDelay:        2 * time.Second,
		PaymentGatewayDelay:  1500 * time.Millisecond,
		PaymentAdvanceDelay:  2 * time.Second,
		PickupCountdown:      10,
		DestinationCountdown: 20,
		TickInterval:         time.Second,
	}
}

type testServer struct {
	router *gin.Engine
	clk    *clock.Manual
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.NewManual()

	gate := session.NewGate(identity.NewMemoryStore(), logger)
	if err := gate.EnsureSeedDriverAccounts(context.Background()); err != nil {
		t.Fatalf("failed to seed drivers: %v", err)
	}

	machine := lifecycle.NewMachine(clk, testSim(), &lifecycle.LogSink{Logger: logger}, logger)
	simulator := dispatch.NewSimulator(clk, testSim(), logger)
	geocoder := geocode.NewChain(geocode.NewStatic())
	locator := location.NewStatic(testRegion.Center)

	router := NewRouter(RouterDeps{
		AuthHandler:    handler.NewAuthHandler(gate),
		RideHandler:    handler.NewRideHandler(machine, geocoder),
		DriverHandler:  handler.NewDriverHandler(simulator, locator, testRegion, logger),
		MapViewHandler: handler.NewMapViewHandler(machine, simulator, testRegion, ""),
	})
	return &testServer{router: router, clk: clk}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestLoginSeededDriver(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/v1/auth/login",
		`{"email":"driver1@test.com","password":"driver123"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.SessionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if resp.Role != "driver" {
		t.Errorf("expected driver role, got %q", resp.Role)
	}
	if resp.EntryScreen != "driver_dashboard" {
		t.Errorf("expected driver_dashboard entry, got %q", resp.EntryScreen)
	}
}

func TestLoginBadPassword(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/v1/auth/login",
		`{"email":"driver1@test.com","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestEstimateResolvesLandmarks(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/v1/estimate",
		`{"pickup":{"label":"Sunway University"},"destination":{"label":"KLCC"}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.EstimateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if resp.Route.DistanceKm <= 0 {
		t.Errorf("expected positive distance, got %f", resp.Route.DistanceKm)
	}
	if len(resp.Prices) != 3 {
		t.Errorf("expected a price per ride type, got %d", len(resp.Prices))
	}
	for id, price := range resp.Prices {
		if !strings.HasPrefix(price, "RM") {
			t.Errorf("price for %s not in ringgit: %q", id, price)
		}
	}
}

func TestEstimateUnknownAddress(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/v1/estimate",
		`{"pickup":{"label":"Nowhere Street 99"},"destination":{"label":"KLCC"}}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unresolvable address, got %d", w.Code)
	}
}

func TestBookingAndPaymentFlow(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/v1/ride/book",
		`{"pickup":{"label":"Sunway University"},"destination":{"label":"KLCC"},"ride_type":"PREMIUM"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = s.do(t, http.MethodPost, "/v1/ride/payment-method", `{"method":"CARD"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = s.do(t, http.MethodPost, "/v1/ride/pay", "")
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", w.Code, w.Body.String())
	}

	// Gateway round trip plus the success-screen pause.
	s.clk.Advance(1500 * time.Millisecond)
	s.clk.Advance(2 * time.Second)

	w = s.do(t, http.MethodGet, "/v1/ride", "")
	var snap lifecycle.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("invalid snapshot: %v", err)
	}
	if snap.State != lifecycle.StateDriverAssigned {
		t.Fatalf("expected DRIVER_ASSIGNED, got %s", snap.State)
	}
	if snap.Driver == nil || snap.Driver.Name != "Ahmad Rahman" {
		t.Errorf("expected the assigned driver card, got %+v", snap.Driver)
	}

	w = s.do(t, http.MethodPost, "/v1/ride/cancel", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on cancel, got %d", w.Code)
	}

	w = s.do(t, http.MethodPost, "/v1/ride/cancel", "")
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 cancelling at home, got %d", w.Code)
	}
}

func TestBookUnknownRideType(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/v1/ride/book",
		`{"pickup":{"label":"KLCC"},"destination":{"label":"KL Sentral"},"ride_type":"LUXURY"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestDriverSessionFlow(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/v1/driver/online", `{"latitude":3.0,"longitude":101.0}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Mock requests arrive after the dispatch delay.
	s.clk.Advance(2 * time.Second)

	w = s.do(t, http.MethodGet, "/v1/driver", "")
	var snap dispatch.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("invalid snapshot: %v", err)
	}
	if snap.State != dispatch.StateRequestsPending {
		t.Fatalf("expected pending requests, got %s", snap.State)
	}
	if len(snap.Pending) != 2 {
		t.Fatalf("expected 2 mock requests, got %d", len(snap.Pending))
	}

	w = s.do(t, http.MethodPost, "/v1/driver/accept", `{"id":"req-1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = s.do(t, http.MethodPost, "/v1/driver/accept", `{"id":"req-2"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 with a ride in progress, got %d", w.Code)
	}

	w = s.do(t, http.MethodPost, "/v1/driver/offline", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	w = s.do(t, http.MethodPost, "/v1/driver/offline", "")
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 when already offline, got %d", w.Code)
	}
}

func TestDriverOnlineFallsBackToDeviceLocation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/v1/driver/online", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with locator fallback, got %d: %s", w.Code, w.Body.String())
	}

	var snap dispatch.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("invalid snapshot: %v", err)
	}
	if snap.Location != testRegion.Center {
		t.Errorf("expected device position, got %+v", snap.Location)
	}
}

func TestMapViewFormats(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/v1/mapview", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "geo+json") {
		t.Errorf("expected GeoJSON content type, got %q", ct)
	}

	w = s.do(t, http.MethodGet, "/v1/mapview?format=static", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.HasPrefix(w.Body.String(), "https://maps.googleapis.com/") {
		t.Errorf("expected a static map URL, got %q", w.Body.String())
	}
}
