package netmon

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"netpulse.xyz/switch-health-service/pkg/common"
	"netpulse.xyz/switch-health-service/pkg/models"
)

// NewDeviceReason is the stored reason for a device that has not been
// probed yet.
const NewDeviceReason = "Newly added - Pending first check"

const defaultListLimit = 50

type DashboardStats struct {
	TotalBuildings     int64 `json:"total_buildings"`
	TotalDevices       int64 `json:"total_devices"`
	ActiveDevices      int64 `json:"active_devices"`
	InactiveDevices    int64 `json:"inactive_devices"`
	MaintenanceDevices int64 `json:"maintenance_devices"`
}

func (n *NetMon) inventoryLogger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameNetMonCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryInventory),
	)
}

func (n *NetMon) createBuilding(name string, location string) (*models.Building, error) {
	building := models.Building{Name: name, Location: location}
	if err := n.Db.Conn.Create(&building).Error; err != nil {
		return nil, err
	}
	n.inventoryLogger().Info("Building created", zap.Reflect("building", building))
	return &building, nil
}

func (n *NetMon) listBuildings() ([]models.Building, error) {
	var buildings []models.Building
	err := n.Db.Conn.Order("name ASC").Find(&buildings).Error
	return buildings, err
}

func (n *NetMon) createDevice(name string, address string, buildingID *uint) (*models.Device, error) {
	device := models.Device{
		Name:       name,
		IPAddress:  address,
		BuildingID: buildingID,
		Status:     models.StatusActive,
		Reason:     NewDeviceReason,
	}

	err := n.Db.Conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&device).Error; err != nil {
			return err
		}
		deviceID := device.ID
		return tx.Create(&models.AuditLog{
			DeviceID:   &deviceID,
			ChangeType: models.ChangeTypeDeviceAdded,
			NewValue:   name,
			Timestamp:  time.Now(),
		}).Error
	})
	if err != nil {
		return nil, err
	}

	n.inventoryLogger().Info("Device created", zap.Reflect("device", device))
	return &device, nil
}

// updateDevice touches only name, address and building assignment. Status
// and the failure counter belong to the reconciler.
func (n *NetMon) updateDevice(deviceID uint, name string, address string, buildingID *uint) error {
	return n.Db.Conn.Transaction(func(tx *gorm.DB) error {
		var device models.Device
		if err := tx.First(&device, deviceID).Error; err != nil {
			return err
		}

		updates := map[string]any{
			"name":        name,
			"ip_address":  address,
			"building_id": buildingID,
		}
		if err := tx.Model(&models.Device{}).Where("id = ?", deviceID).Updates(updates).Error; err != nil {
			return err
		}

		return tx.Create(&models.AuditLog{
			DeviceID:   &device.ID,
			ChangeType: models.ChangeTypeDeviceUpdated,
			OldValue:   device.Name,
			NewValue:   name,
			Timestamp:  time.Now(),
		}).Error
	})
}

// deleteDevice removes the device and everything hanging off it. The audit
// entry keeps a nil device reference since the row is gone.
func (n *NetMon) deleteDevice(deviceID uint) error {
	return n.Db.Conn.Transaction(func(tx *gorm.DB) error {
		var device models.Device
		if err := tx.First(&device, deviceID).Error; err != nil {
			return err
		}

		if err := tx.Where("device_id = ?", deviceID).Delete(&models.MaintenanceWindow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("device_id = ?", deviceID).Delete(&models.Alert{}).Error; err != nil {
			return err
		}
		if err := tx.Where("device_id = ?", deviceID).Delete(&models.PingLog{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Device{}, deviceID).Error; err != nil {
			return err
		}

		return tx.Create(&models.AuditLog{
			ChangeType: models.ChangeTypeDeviceDeleted,
			OldValue:   device.Name,
			Timestamp:  time.Now(),
		}).Error
	})
}

func (n *NetMon) deviceHistory(deviceID uint, limit int) ([]models.PingLog, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	var history []models.PingLog
	err := n.Db.Conn.
		Where("device_id = ?", deviceID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&history).Error
	return history, err
}

func (n *NetMon) dashboardStats() (*DashboardStats, error) {
	stats := DashboardStats{}

	if err := n.Db.Conn.Model(&models.Building{}).Count(&stats.TotalBuildings).Error; err != nil {
		return nil, err
	}

	var devices []models.Device
	if err := n.Db.Conn.Find(&devices).Error; err != nil {
		return nil, err
	}

	stats.TotalDevices = int64(len(devices))
	stats.ActiveDevices = common.Reducer(devices, func(acc int64, d models.Device) int64 {
		if d.Status == models.StatusActive {
			acc++
		}
		return acc
	}, 0)
	stats.InactiveDevices = common.Reducer(devices, func(acc int64, d models.Device) int64 {
		if d.Status == models.StatusInactive {
			acc++
		}
		return acc
	}, 0)
	stats.MaintenanceDevices = stats.TotalDevices - stats.ActiveDevices - stats.InactiveDevices

	return &stats, nil
}

func (n *NetMon) listAuditLogs(limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	var entries []models.AuditLog
	err := n.Db.Conn.Order("timestamp DESC").Limit(limit).Find(&entries).Error
	return entries, err
}

// scheduleWindow records a maintenance window for a device. The caller has
// already validated that end is after start.
func (n *NetMon) scheduleWindow(deviceID uint, start time.Time, end time.Time, reason string, createdBy string) (*models.MaintenanceWindow, error) {
	window := models.MaintenanceWindow{
		DeviceID:  deviceID,
		StartTime: start,
		EndTime:   end,
		Reason:    reason,
		CreatedBy: createdBy,
	}

	err := n.Db.Conn.Transaction(func(tx *gorm.DB) error {
		var device models.Device
		if err := tx.First(&device, deviceID).Error; err != nil {
			return err
		}
		if err := tx.Create(&window).Error; err != nil {
			return err
		}
		return tx.Create(&models.AuditLog{
			DeviceID:   &device.ID,
			ChangeType: models.ChangeTypeMaintenanceScheduled,
			NewValue:   reason,
			Timestamp:  time.Now(),
		}).Error
	})
	if err != nil {
		return nil, err
	}

	n.inventoryLogger().Info("Maintenance window scheduled", zap.Reflect("window", window))
	return &window, nil
}

func (n *NetMon) listWindows() ([]models.WindowWithDevice, error) {
	var windows []models.WindowWithDevice
	err := n.Db.Conn.Model(&models.MaintenanceWindow{}).
		Select("maintenance_windows.*, devices.name AS device_name").
		Joins("LEFT JOIN devices ON devices.id = maintenance_windows.device_id").
		Order("maintenance_windows.start_time DESC").
		Scan(&windows).Error
	return windows, err
}

func (n *NetMon) deleteWindow(windowID uint) error {
	return n.Db.Conn.Transaction(func(tx *gorm.DB) error {
		var window models.MaintenanceWindow
		if err := tx.First(&window, windowID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.MaintenanceWindow{}, windowID).Error; err != nil {
			return err
		}
		return tx.Create(&models.AuditLog{
			DeviceID:   &window.DeviceID,
			ChangeType: models.ChangeTypeMaintenanceDeleted,
			OldValue:   window.Reason,
			Timestamp:  time.Now(),
		}).Error
	})
}

type IInventoryImpl struct {
	mon *NetMon
}

func (ii *IInventoryImpl) CreateBuilding(name string, location string) (*models.Building, error) {
	return ii.mon.createBuilding(name, location)
}

func (ii *IInventoryImpl) ListBuildings() ([]models.Building, error) {
	return ii.mon.listBuildings()
}

func (ii *IInventoryImpl) CreateDevice(name string, address string, buildingID *uint) (*models.Device, error) {
	return ii.mon.createDevice(name, address, buildingID)
}

func (ii *IInventoryImpl) UpdateDevice(deviceID uint, name string, address string, buildingID *uint) error {
	return ii.mon.updateDevice(deviceID, name, address, buildingID)
}

func (ii *IInventoryImpl) DeleteDevice(deviceID uint) error {
	return ii.mon.deleteDevice(deviceID)
}

func (ii *IInventoryImpl) DeviceHistory(deviceID uint, limit int) ([]models.PingLog, error) {
	return ii.mon.deviceHistory(deviceID, limit)
}

func (ii *IInventoryImpl) DashboardStats() (*DashboardStats, error) {
	return ii.mon.dashboardStats()
}

func (ii *IInventoryImpl) ListAuditLogs(limit int) ([]models.AuditLog, error) {
	return ii.mon.listAuditLogs(limit)
}

func (ii *IInventoryImpl) ScheduleWindow(deviceID uint, start time.Time, end time.Time, reason string, createdBy string) (*models.MaintenanceWindow, error) {
	return ii.mon.scheduleWindow(deviceID, start, end, reason, createdBy)
}

func (ii *IInventoryImpl) ListWindows() ([]models.WindowWithDevice, error) {
	return ii.mon.listWindows()
}

func (ii *IInventoryImpl) DeleteWindow(windowID uint) error {
	return ii.mon.deleteWindow(windowID)
}

func (n *NetMon) GetIInventory() IInventory {
	return &IInventoryImpl{mon: n}
}
