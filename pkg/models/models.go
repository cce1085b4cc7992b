package models

import "time"

type DeviceStatus int

const (
	StatusInactive    DeviceStatus = 0
	StatusActive      DeviceStatus = 1
	StatusMaintenance DeviceStatus = 2
)

type AlertStatus string

const (
	AlertStatusActive   AlertStatus = "active"
	AlertStatusResolved AlertStatus = "resolved"
)

const (
	ChangeTypeStatusChange         string = "status_change"
	ChangeTypeDeviceAdded          string = "device_added"
	ChangeTypeDeviceUpdated        string = "device_updated"
	ChangeTypeDeviceDeleted        string = "device_deleted"
	ChangeTypeMaintenanceScheduled string = "maintenance_scheduled"
	ChangeTypeMaintenanceDeleted   string = "maintenance_deleted"
)

type Building struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"size:120;uniqueIndex"`
	Location string `gorm:"size:255"`

	Devices []Device `gorm:"foreignKey:BuildingID;references:ID"`
}

type Device struct {
	ID              uint         `gorm:"primaryKey"`
	Name            string       `gorm:"size:120"`
	IPAddress       string       `gorm:"size:45;index"`
	BuildingID      *uint        `gorm:"index"`
	Status          DeviceStatus `gorm:"default:1"`
	Reason          string       `gorm:"size:255"`
	FailedPingCount int          `gorm:"default:0"`
}

type MaintenanceWindow struct {
	ID        uint      `gorm:"primaryKey"`
	DeviceID  uint      `gorm:"index"`
	StartTime time.Time `gorm:"index"`
	EndTime   time.Time `gorm:"index"`
	Reason    string    `gorm:"size:255"`
	CreatedBy string    `gorm:"size:120"`
}

type Alert struct {
	ID          uint        `gorm:"primaryKey"`
	DeviceID    uint        `gorm:"index"`
	Title       string      `gorm:"size:255"`
	Description string      `gorm:"size:1000"`
	Severity    string      `gorm:"size:20"`
	Status      AlertStatus `gorm:"type:varchar(20);index;check:status IN ('active','resolved')"`
	CreatedAt   time.Time
	ResolvedAt  *time.Time
}

// PingLog is append-only, one row per probe attempt. LatencyMs is nil when
// the device was unreachable or the latency could not be measured.
type PingLog struct {
	ID        uint `gorm:"primaryKey"`
	DeviceID  uint `gorm:"index"`
	LatencyMs *int64
	Reachable bool
	Timestamp time.Time `gorm:"index"`
}

// AuditLog records state transitions and administrative mutations.
// DeviceID is nil for events that outlive the device row, e.g. deletion.
type AuditLog struct {
	ID         uint      `gorm:"primaryKey"`
	DeviceID   *uint     `gorm:"index"`
	ChangeType string    `gorm:"size:40"`
	OldValue   string    `gorm:"size:255"`
	NewValue   string    `gorm:"size:255"`
	Timestamp  time.Time `gorm:"index"`
}

// ProbeResult is the outcome of a single reachability probe.
type ProbeResult struct {
	Reachable bool
	LatencyMs *int64
}

// AlertWithDevice is the read model for alert listings.
type AlertWithDevice struct {
	Alert
	DeviceName   string
	BuildingName string
}

// WindowWithDevice is the read model for maintenance window listings.
type WindowWithDevice struct {
	MaintenanceWindow
	DeviceName string
}
