package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"netpulse.xyz/switch-health-service/pkg/netmon/mocks"
	_ "netpulse.xyz/switch-health-service/pkg/testing"

	"netpulse.xyz/switch-health-service/pkg/common"
	"netpulse.xyz/switch-health-service/pkg/db"
	"netpulse.xyz/switch-health-service/pkg/models"
	"netpulse.xyz/switch-health-service/pkg/netmon"
)

func setupTestServer() *RestfulServer {
	mon := netmon.NetMon{
		Db:           *db.GetInstance(db.UseMemorySqliteDialector()),
		ProbeTimeout: netmon.DefaultProbeTimeout,
	}
	mon.WithServices(netmon.ServiceOpts{
		Prober:      mon.GetIProber(),
		Maintenance: mon.GetIMaintenance(),
		Alert:       mon.GetIAlert(),
		Reconciler:  mon.GetIReconciler(),
		Inventory:   mon.GetIInventory(),
	})

	rs := &RestfulServer{
		Server: gin.Default(),
		Mon:    &mon,
		// default we use no limiter, if need, later assign it rs.RateLimiterStore = netmon.NewRateLimiterStore(...)
	}

	rs.Setup()

	return rs
}

// stubProber answers reachable for every address so cycles triggered over
// HTTP never shell out to the real ping binary.
func stubProber(t *testing.T, rs *RestfulServer) *gomock.Controller {
	ctrl := gomock.NewController(t)
	mockProber := mocks.NewMockIProber(ctrl)
	latency := int64(4)
	mockProber.EXPECT().
		Probe(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.ProbeResult{Reachable: true, LatencyMs: &latency}).
		AnyTimes()
	rs.Mon.Prober = mockProber
	return ctrl
}

func postJSON(rs *RestfulServer, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	rs := setupTestServer()

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()

	rs.Server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestLiveStatusGroupsByBuilding(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()
	ctrl := stubProber(t, rs)
	defer ctrl.Finish()

	buildingName := "bld-" + uuid.NewString()[:8]
	w := postJSON(rs, "/buildings", BuildingRequest{Name: buildingName, Location: "Basement"})
	require.Equal(t, http.StatusOK, w.Code)

	var building models.Building
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &building))

	deviceName := "sw-" + uuid.NewString()[:8]
	w = postJSON(rs, "/devices", DeviceRequest{
		Name:       deviceName,
		IPAddress:  "192.0.2.10",
		BuildingID: int(building.ID),
	})
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest("GET", "/switches/live-status", nil)
	statusW := httptest.NewRecorder()
	rs.Server.ServeHTTP(statusW, req)

	assert.Equal(t, http.StatusOK, statusW.Code)

	var payload struct {
		Success bool                   `json:"success"`
		Data    []netmon.BuildingGroup `json:"data"`
	}
	require.NoError(t, json.Unmarshal(statusW.Body.Bytes(), &payload))
	assert.True(t, payload.Success)

	var found *netmon.DeviceView
	for _, group := range payload.Data {
		if group.BuildingName != buildingName {
			continue
		}
		for i := range group.Devices {
			if group.Devices[i].Name == deviceName {
				found = &group.Devices[i]
			}
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, models.StatusActive, found.Status)
	assert.Equal(t, "Online - 4ms", found.Reason)
}

func TestCreateDevice_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()

	{
		// empty payload should be rejected
		req := httptest.NewRequest("POST", "/devices", bytes.NewReader([]byte("{}")))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	{
		// a name that is not an IP address should be rejected
		w := postJSON(rs, "/devices", DeviceRequest{Name: "sw", IPAddress: "not-an-ip"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestDeviceLifecycleOverHTTP(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()

	w := postJSON(rs, "/devices", DeviceRequest{Name: "sw-" + uuid.NewString()[:8], IPAddress: "192.0.2.20"})
	require.Equal(t, http.StatusOK, w.Code)

	var device models.Device
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &device))

	{
		body, _ := json.Marshal(DeviceRequest{Name: device.Name + "-renamed", IPAddress: "192.0.2.21"})
		req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/devices/%d", device.ID), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		putW := httptest.NewRecorder()
		rs.Server.ServeHTTP(putW, req)
		assert.Equal(t, http.StatusOK, putW.Code)
	}

	{
		req := httptest.NewRequest("GET", fmt.Sprintf("/devices/%d/history?limit=5", device.ID), nil)
		histW := httptest.NewRecorder()
		rs.Server.ServeHTTP(histW, req)
		assert.Equal(t, http.StatusOK, histW.Code)
	}

	{
		req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/devices/%d", device.ID), nil)
		delW := httptest.NewRecorder()
		rs.Server.ServeHTTP(delW, req)
		assert.Equal(t, http.StatusOK, delW.Code)
	}

	{
		// updating a deleted device should 404
		body, _ := json.Marshal(DeviceRequest{Name: "ghost", IPAddress: "192.0.2.22"})
		req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/devices/%d", device.ID), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		putW := httptest.NewRecorder()
		rs.Server.ServeHTTP(putW, req)
		assert.Equal(t, http.StatusNotFound, putW.Code)
	}
}

func TestResolveAlertOverHTTP(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()

	device, err := rs.Mon.Inventory.CreateDevice("sw-"+uuid.NewString()[:8], "192.0.2.30", nil)
	require.NoError(t, err)

	require.NoError(t, rs.Mon.Alert.OpenAlert(device.ID, "Device Down: "+device.Name, "unreachable", time.Now()))

	var alertID uint
	{
		req := httptest.NewRequest("GET", "/alerts", nil)
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var alerts []models.AlertWithDevice
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &alerts))
		for _, alert := range alerts {
			if alert.DeviceID == device.ID {
				alertID = alert.ID
			}
		}
		require.NotZero(t, alertID)
	}

	{
		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/alerts/%d/resolve", alertID), nil)
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	{
		// the alert is gone from the active ledger, so a second resolve 404s
		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/alerts/%d/resolve", alertID), nil)
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	}

	{
		req := httptest.NewRequest("GET", "/alerts/resolved", nil)
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var alerts []models.AlertWithDevice
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &alerts))
		resolved := false
		for _, alert := range alerts {
			if alert.ID == alertID {
				resolved = alert.Status == models.AlertStatusResolved
			}
		}
		assert.True(t, resolved)
	}
}

func TestGetAlerts_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockIAlert := mocks.NewMockIAlert(ctrl)
	rs.Mon.Alert = mockIAlert
	mockIAlert.EXPECT().
		GetActiveAlerts().
		Return(nil, fmt.Errorf("just causing error")).
		Times(1)

	req := httptest.NewRequest("GET", "/alerts", nil)
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestMaintenanceOverHTTP(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()

	device, err := rs.Mon.Inventory.CreateDevice("sw-"+uuid.NewString()[:8], "192.0.2.40", nil)
	require.NoError(t, err)

	now := time.Now()

	{
		// end before start should be rejected
		w := postJSON(rs, fmt.Sprintf("/devices/%d/maintenance", device.ID), MaintenanceRequest{
			StartTime: now.Add(time.Hour),
			EndTime:   now,
			CreatedBy: "netops",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	var window models.MaintenanceWindow
	{
		w := postJSON(rs, fmt.Sprintf("/devices/%d/maintenance", device.ID), MaintenanceRequest{
			StartTime: now,
			EndTime:   now.Add(time.Hour),
			CreatedBy: "netops",
		})
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &window))
		assert.Equal(t, defaultMaintenanceReason, window.Reason)
	}

	{
		req := httptest.NewRequest("GET", "/maintenance-windows", nil)
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var windows []models.WindowWithDevice
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &windows))
		found := false
		for _, candidate := range windows {
			if candidate.ID == window.ID {
				found = candidate.DeviceName == device.Name
			}
		}
		assert.True(t, found)
	}

	{
		req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/maintenance-windows/%d", window.ID), nil)
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	{
		req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/maintenance-windows/%d", window.ID), nil)
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	}

	{
		// scheduling against a device that does not exist should 404
		w := postJSON(rs, "/devices/999999/maintenance", MaintenanceRequest{
			StartTime: now,
			EndTime:   now.Add(time.Hour),
			CreatedBy: "netops",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	}
}

func TestDashboardStatsAndLogs(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()

	_, err := rs.Mon.Inventory.CreateDevice("sw-"+uuid.NewString()[:8], "192.0.2.50", nil)
	require.NoError(t, err)

	{
		req := httptest.NewRequest("GET", "/dashboard/stats", nil)
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var stats netmon.DashboardStats
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		assert.GreaterOrEqual(t, stats.TotalDevices, int64(1))
	}

	{
		req := httptest.NewRequest("GET", "/logs?limit=10", nil)
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var entries []models.AuditLog
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
		assert.NotEmpty(t, entries)
		assert.LessOrEqual(t, len(entries), 10)
	}
}

func setupTestServerWithLimiter(limiter *netmon.RateLimiterStore) *RestfulServer {
	mon := netmon.NetMon{
		Db:           *db.GetInstance(db.UseMemorySqliteDialector()),
		ProbeTimeout: netmon.DefaultProbeTimeout,
	}
	mon.WithServices(netmon.ServiceOpts{
		Prober:      mon.GetIProber(),
		Maintenance: mon.GetIMaintenance(),
		Alert:       mon.GetIAlert(),
		Reconciler:  mon.GetIReconciler(),
		Inventory:   mon.GetIInventory(),
	})

	rs := &RestfulServer{
		Server:           gin.Default(),
		Mon:              &mon,
		RateLimiterStore: limiter,
	}

	rs.Setup()

	return rs
}

func TestLiveStatusWithLimiter(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServerWithLimiter(netmon.NewRateLimiterStore(2, 2)) // 3 req/sec, burst 2
	ctrl := stubProber(t, rs)
	defer ctrl.Finish()

	// Simulate 3 requests in quick succession — only 2 should be allowed
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/switches/live-status", nil)
		w := httptest.NewRecorder()

		rs.Server.ServeHTTP(w, req)

		if i < 2 {
			require.Equal(t, http.StatusOK, w.Code, "request %d should be allowed", i+1)
		} else {
			require.Equal(t, http.StatusTooManyRequests, w.Code, "request %d should be rate limited", i+1)
		}
	}

	// httptest requests share a remote address, so bump that client's budget
	limiterReq := LimiterRequest{
		Rate:  2,
		Burst: 2,
	}
	body, _ := json.Marshal(limiterReq)
	req := httptest.NewRequest(http.MethodPost, "/clients/192.0.2.1/limiter", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	rs.Server.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, "limiter request should be allowed")

	req = httptest.NewRequest("GET", "/switches/live-status", nil)
	w = httptest.NewRecorder()

	rs.Server.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, "request after raising the limit should be allowed")
}

func TestPostLimiter_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServerWithLimiter(netmon.NewRateLimiterStore(2, 2))

	// empty payload should be rejected
	payload := []byte("{}")
	req := httptest.NewRequest("POST", "/clients/"+uuid.NewString()+"/limiter", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLimiter(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServerWithLimiter(netmon.NewRateLimiterStore(0, 0))

	// nothing should pass below
	{
		req := httptest.NewRequest("GET", "/switches/live-status", nil)
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	}

	{
		req := httptest.NewRequest("GET", "/devices/1/history", nil)
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	}

	{
		req := httptest.NewRequest("GET", "/alerts", nil)
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	}
}

func TestSetLimiter_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer() // default without limiter store

	{
		// without limiter store setup limiter should be allowed and just return ok (but no effect)
		limiterReq := LimiterRequest{
			Rate:  2,
			Burst: 2,
		}
		body, _ := json.Marshal(limiterReq)
		req := httptest.NewRequest(http.MethodPost, "/clients/"+uuid.NewString()+"/limiter", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		rs.Server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, "limiter request should be allowed")
	}

	{
		// and request to alerts should return empty alerts instead of too many requests
		req := httptest.NewRequest("GET", "/alerts", nil)
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
