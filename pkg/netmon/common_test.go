package netmon

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"netpulse.xyz/switch-health-service/pkg/db"
	"netpulse.xyz/switch-health-service/pkg/models"
	"netpulse.xyz/switch-health-service/pkg/netmon/mocks"
)

func GetMockNetMonWithMemorySqliteDialector(t *testing.T, useMockProber, useMockMaintenance, useMockAlert bool) (
	*gomock.Controller,
	*NetMon,
	*mocks.MockIProber,
	*mocks.MockIMaintenance,
	*mocks.MockIAlert,
) {
	ctrl := gomock.NewController(t)

	mockProber := mocks.NewMockIProber(ctrl)
	mockMaintenance := mocks.NewMockIMaintenance(ctrl)
	mockAlert := mocks.NewMockIAlert(ctrl)
	dialector := db.UseMemorySqliteDialector()
	dbInstance := db.GetInstance(dialector) // ensure migrations
	mon := &NetMon{Db: *dbInstance}

	proberService := mon.GetIProber()
	if useMockProber {
		proberService = mockProber
	}

	maintenanceService := mon.GetIMaintenance()
	if useMockMaintenance {
		maintenanceService = mockMaintenance
	}

	alertService := mon.GetIAlert()
	if useMockAlert {
		alertService = mockAlert
	}

	mon.WithServices(ServiceOpts{
		Prober:      proberService,
		Maintenance: maintenanceService,
		Alert:       alertService,
		Reconciler:  mon.GetIReconciler(),
		Inventory:   mon.GetIInventory(),
	})

	return ctrl, mon, mockProber, mockMaintenance, mockAlert
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}

// seedDevice inserts a device row with a unique name and address so tests
// sharing the in-memory database never collide.
func seedDevice(t *testing.T, mon *NetMon, status models.DeviceStatus, reason string, failedCount int, buildingID *uint) models.Device {
	t.Helper()

	device := models.Device{
		Name:            "switch-" + uuid.NewString()[:8],
		IPAddress:       uuid.NewString(),
		BuildingID:      buildingID,
		Status:          status,
		Reason:          reason,
		FailedPingCount: failedCount,
	}
	require.NoError(t, mon.Db.Conn.Create(&device).Error)
	return device
}

func seedBuilding(t *testing.T, mon *NetMon) models.Building {
	t.Helper()

	building := models.Building{
		Name:     "building-" + uuid.NewString()[:8],
		Location: "basement",
	}
	require.NoError(t, mon.Db.Conn.Create(&building).Error)
	return building
}

func getDevice(t *testing.T, mon *NetMon, deviceID uint) models.Device {
	t.Helper()

	var device models.Device
	require.NoError(t, mon.Db.Conn.First(&device, deviceID).Error)
	return device
}

// stubProbe makes the mock prober answer from an address-keyed table.
// Unknown addresses, i.e. devices seeded by other tests, probe reachable
// so they stay quiet.
func stubProbe(m *mocks.MockIProber, results map[string]models.ProbeResult) {
	m.EXPECT().
		Probe(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, address string, _ time.Duration) models.ProbeResult {
			if r, ok := results[address]; ok {
				return r
			}
			return models.ProbeResult{Reachable: true}
		}).
		AnyTimes()
}

func unreachable() models.ProbeResult {
	return models.ProbeResult{Reachable: false}
}

func reachableWithLatency(ms int64) models.ProbeResult {
	return models.ProbeResult{Reachable: true, LatencyMs: &ms}
}

func findDeviceView(t *testing.T, result *CycleResult, deviceID uint) DeviceView {
	t.Helper()

	for _, group := range result.Groups {
		for _, view := range group.Devices {
			if view.ID == deviceID {
				return view
			}
		}
	}
	t.Fatalf("device %d not found in cycle result", deviceID)
	return DeviceView{}
}
