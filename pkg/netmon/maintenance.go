package netmon

import (
	"time"

	"netpulse.xyz/switch-health-service/pkg/models"
)

// activeWindowExists reports whether any maintenance window for the device
// covers now. Overlapping windows are allowed; only existence matters.
func (n *NetMon) activeWindowExists(deviceID uint, now time.Time) (bool, error) {
	var count int64
	err := n.Db.Conn.Model(&models.MaintenanceWindow{}).
		Where("device_id = ? AND start_time <= ? AND end_time >= ?", deviceID, now, now).
		Count(&count).Error
	return count > 0, err
}

type IMaintenanceImpl struct {
	mon *NetMon
}

func (im *IMaintenanceImpl) ActiveWindowExists(deviceID uint, now time.Time) (bool, error) {
	return im.mon.activeWindowExists(deviceID, now)
}

func (n *NetMon) GetIMaintenance() IMaintenance {
	return &IMaintenanceImpl{mon: n}
}
