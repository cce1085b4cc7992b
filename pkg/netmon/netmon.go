package netmon

import (
	"context"
	"time"

	"netpulse.xyz/switch-health-service/pkg/db"
	"netpulse.xyz/switch-health-service/pkg/models"
)

// DefaultProbeTimeout bounds a single reachability probe.
const DefaultProbeTimeout = time.Second

// MaintenanceReason is the reason string forced onto devices inside an
// active maintenance window.
const MaintenanceReason = "In Maintenance"

type IProber interface {
	Probe(ctx context.Context, address string, timeout time.Duration) models.ProbeResult
}

type IMaintenance interface {
	ActiveWindowExists(deviceID uint, now time.Time) (bool, error)
}

type IAlert interface {
	OpenAlert(deviceID uint, title string, description string, now time.Time) error
	ResolveDeviceAlerts(deviceID uint, now time.Time) (int64, error)
	ResolveAlertByID(alertID uint, now time.Time) error
	GetActiveAlerts() ([]models.AlertWithDevice, error)
	GetResolvedAlerts() ([]models.AlertWithDevice, error)
}

type IReconciler interface {
	RunCycle(ctx context.Context) (*CycleResult, error)
}

type IInventory interface {
	CreateBuilding(name string, location string) (*models.Building, error)
	ListBuildings() ([]models.Building, error)
	CreateDevice(name string, address string, buildingID *uint) (*models.Device, error)
	UpdateDevice(deviceID uint, name string, address string, buildingID *uint) error
	DeleteDevice(deviceID uint) error
	DeviceHistory(deviceID uint, limit int) ([]models.PingLog, error)
	DashboardStats() (*DashboardStats, error)
	ListAuditLogs(limit int) ([]models.AuditLog, error)
	ScheduleWindow(deviceID uint, start time.Time, end time.Time, reason string, createdBy string) (*models.MaintenanceWindow, error)
	ListWindows() ([]models.WindowWithDevice, error)
	DeleteWindow(windowID uint) error
}

type NetMon struct {
	Db           db.DB
	ProbeTimeout time.Duration

	Prober      IProber
	Maintenance IMaintenance
	Alert       IAlert
	Reconciler  IReconciler
	Inventory   IInventory
}

type ServiceOpts struct {
	Prober      IProber
	Maintenance IMaintenance
	Alert       IAlert
	Reconciler  IReconciler
	Inventory   IInventory
}

func (n *NetMon) WithServices(opts ServiceOpts) *NetMon {
	if opts.Prober != nil {
		n.Prober = opts.Prober
	}
	if opts.Maintenance != nil {
		n.Maintenance = opts.Maintenance
	}
	if opts.Alert != nil {
		n.Alert = opts.Alert
	}
	if opts.Reconciler != nil {
		n.Reconciler = opts.Reconciler
	}
	if opts.Inventory != nil {
		n.Inventory = opts.Inventory
	}
	return n
}
