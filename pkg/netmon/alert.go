package netmon

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"netpulse.xyz/switch-health-service/pkg/common"
	"netpulse.xyz/switch-health-service/pkg/models"
)

// SeverityCritical is the severity assigned to device-down alerts.
const SeverityCritical = "critical"

// openAlert creates a new active alert for the device. A device carries at
// most one active alert, so any stale active rows are resolved in the same
// transaction before the new one is created.
func (n *NetMon) openAlert(deviceID uint, title string, description string, now time.Time) error {
	logger := common.GetLoggerWith(
		common.LoggerNameNetMonCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryAlert),
	)

	return n.Db.Conn.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Alert{}).
			Where("device_id = ? AND status = ?", deviceID, models.AlertStatusActive).
			Updates(map[string]any{"status": models.AlertStatusResolved, "resolved_at": now}).Error
		if err != nil {
			return err
		}

		alert := models.Alert{
			DeviceID:    deviceID,
			Title:       title,
			Description: description,
			Severity:    SeverityCritical,
			Status:      models.AlertStatusActive,
			CreatedAt:   now,
		}
		if err := tx.Create(&alert).Error; err != nil {
			return err
		}

		logger.Info("Alert opened", zap.Reflect("alert", alert))
		return nil
	})
}

// resolveDeviceAlerts resolves every active alert for the device and
// returns how many rows it closed. Zero is not an error: recovery of a
// device that never alerted is a normal steady-state path.
func (n *NetMon) resolveDeviceAlerts(deviceID uint, now time.Time) (int64, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameNetMonCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryAlert),
	)

	result := n.Db.Conn.Model(&models.Alert{}).
		Where("device_id = ? AND status = ?", deviceID, models.AlertStatusActive).
		Updates(map[string]any{"status": models.AlertStatusResolved, "resolved_at": now})
	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected > 0 {
		logger.Info("Alerts resolved",
			zap.Uint("device_id", deviceID),
			zap.Int64("count", result.RowsAffected))
	}
	return result.RowsAffected, nil
}

// resolveAlertByID resolves one alert by id, for the manual resolve action.
// Returns gorm.ErrRecordNotFound when the alert is missing or already
// resolved.
func (n *NetMon) resolveAlertByID(alertID uint, now time.Time) error {
	result := n.Db.Conn.Model(&models.Alert{}).
		Where("id = ? AND status = ?", alertID, models.AlertStatusActive).
		Updates(map[string]any{"status": models.AlertStatusResolved, "resolved_at": now})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (n *NetMon) getAlertsByStatus(status models.AlertStatus) ([]models.AlertWithDevice, error) {
	var alerts []models.AlertWithDevice
	err := n.Db.Conn.Model(&models.Alert{}).
		Select("alerts.*, devices.name AS device_name, buildings.name AS building_name").
		Joins("LEFT JOIN devices ON devices.id = alerts.device_id").
		Joins("LEFT JOIN buildings ON buildings.id = devices.building_id").
		Where("alerts.status = ?", status).
		Order("alerts.created_at DESC").
		Scan(&alerts).Error
	return alerts, err
}

var errAlertServiceMissing = errors.New("alert service not available")

type IAlertImpl struct {
	mon *NetMon
}

func (ia *IAlertImpl) OpenAlert(deviceID uint, title string, description string, now time.Time) error {
	return ia.mon.openAlert(deviceID, title, description, now)
}

func (ia *IAlertImpl) ResolveDeviceAlerts(deviceID uint, now time.Time) (int64, error) {
	return ia.mon.resolveDeviceAlerts(deviceID, now)
}

func (ia *IAlertImpl) ResolveAlertByID(alertID uint, now time.Time) error {
	return ia.mon.resolveAlertByID(alertID, now)
}

func (ia *IAlertImpl) GetActiveAlerts() ([]models.AlertWithDevice, error) {
	return ia.mon.getAlertsByStatus(models.AlertStatusActive)
}

func (ia *IAlertImpl) GetResolvedAlerts() ([]models.AlertWithDevice, error) {
	return ia.mon.getAlertsByStatus(models.AlertStatusResolved)
}

func (n *NetMon) GetIAlert() IAlert {
	return &IAlertImpl{mon: n}
}
