package netmon

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"netpulse.xyz/switch-health-service/pkg/common"
	"netpulse.xyz/switch-health-service/pkg/models"
)

// FailureThreshold is how many consecutive failed probes a device gets
// before it is declared down. Single dropped probes are common noise.
const FailureThreshold = 3

// DeviceView is the per-device slice of the grouped read view. Reason may
// carry a transient warning annotation that is never persisted.
type DeviceView struct {
	ID              uint                `json:"id"`
	Name            string              `json:"name"`
	IPAddress       string              `json:"ip_address"`
	BuildingID      *uint               `json:"building_id"`
	Status          models.DeviceStatus `json:"device_status"`
	Reason          string              `json:"reason"`
	FailedPingCount int                 `json:"failed_ping_count"`
}

type BuildingGroup struct {
	BuildingName     string       `json:"building_name"`
	BuildingLocation string       `json:"building_location"`
	Devices          []DeviceView `json:"devices"`
}

// PersistFailure reports a device whose state could not be persisted this
// cycle. The cycle keeps going; the caller decides whether to retry.
type PersistFailure struct {
	DeviceID uint   `json:"device_id"`
	Error    string `json:"error"`
}

type CycleResult struct {
	Groups          []BuildingGroup  `json:"data"`
	PersistFailures []PersistFailure `json:"persist_failures,omitempty"`
}

// UnassignedGroupName labels the synthetic group holding devices without a
// building, or whose building row no longer exists.
const UnassignedGroupName = "Unassigned Devices"

type statusChange struct {
	Old string
	New string
}

// transitionPlan is the computed next state for one device. StoredReason
// empty means the persisted reason is left as is.
type transitionPlan struct {
	Status          models.DeviceStatus
	StoredReason    string
	ViewReason      string
	FailedPingCount int
	Audit           *statusChange
	OpenAlert       bool
	ResolveAlerts   bool
}

var reasonAnnotationPattern = regexp.MustCompile(`\s*\(.*\)`)

// planTransition applies the failure-hysteresis rules to one device's
// previous persisted record and the probe outcome. Pure function, no
// side effects.
func planTransition(dev models.Device, res models.ProbeResult) transitionPlan {
	if res.Reachable {
		reason := "Online - Response received"
		if res.LatencyMs != nil {
			reason = fmt.Sprintf("Online - %dms", *res.LatencyMs)
		}
		plan := transitionPlan{
			Status:          models.StatusActive,
			StoredReason:    reason,
			ViewReason:      reason,
			FailedPingCount: 0,
		}
		if dev.Status != models.StatusActive {
			plan.Audit = &statusChange{Old: "Inactive", New: "Active"}
			plan.ResolveAlerts = true
		}
		return plan
	}

	failedCount := dev.FailedPingCount + 1

	switch {
	case failedCount >= FailureThreshold && dev.Status != models.StatusInactive:
		reason := fmt.Sprintf("Ping failed (x%d): Host unreachable", failedCount)
		return transitionPlan{
			Status:          models.StatusInactive,
			StoredReason:    reason,
			ViewReason:      reason,
			FailedPingCount: failedCount,
			Audit:           &statusChange{Old: "Active", New: "Inactive"},
			OpenAlert:       true,
		}
	case dev.Status != models.StatusInactive:
		// still within tolerance: persist only the counter, annotate the
		// view with a warning that is never written to storage
		base := reasonAnnotationPattern.ReplaceAllString(dev.Reason, "")
		return transitionPlan{
			Status:          dev.Status,
			ViewReason:      fmt.Sprintf("%s (Warning: Ping Failed x%d)", base, failedCount),
			FailedPingCount: failedCount,
		}
	default:
		// already down: the alert from the original transition stays open
		return transitionPlan{
			Status:          models.StatusInactive,
			ViewReason:      dev.Reason,
			FailedPingCount: failedCount,
		}
	}
}

// runCycle is one full reconciliation pass: snapshot devices, gate on
// maintenance windows, probe the rest in parallel, then apply transitions
// serially per device. Store-level failures abort the cycle; per-device
// persistence failures are collected and the cycle keeps going.
func (n *NetMon) runCycle(ctx context.Context) (*CycleResult, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameNetMonCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryReconciler),
	)

	if n.Prober == nil {
		return nil, fmt.Errorf("prober service not available")
	}
	if n.Maintenance == nil {
		return nil, fmt.Errorf("maintenance service not available")
	}
	if n.Alert == nil {
		return nil, errAlertServiceMissing
	}

	now := time.Now()

	var devices []models.Device
	if err := n.Db.Conn.Order("id ASC").Find(&devices).Error; err != nil {
		return nil, fmt.Errorf("load devices: %w", err)
	}

	var buildings []models.Building
	if err := n.Db.Conn.Order("name ASC").Find(&buildings).Error; err != nil {
		return nil, fmt.Errorf("load buildings: %w", err)
	}

	type outcome struct {
		underMaintenance bool
		probe            models.ProbeResult
	}
	outcomes := make([]outcome, len(devices))

	var probeTargets []int
	for i, dev := range devices {
		under, err := n.Maintenance.ActiveWindowExists(dev.ID, now)
		if err != nil {
			return nil, fmt.Errorf("maintenance check for device %d: %w", dev.ID, err)
		}
		if under {
			outcomes[i].underMaintenance = true
		} else {
			probeTargets = append(probeTargets, i)
		}
	}

	timeout := n.ProbeTimeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	// probes share no state and are each bounded by the timeout, so the
	// whole fan-out costs one timeout in the worst case
	var wg sync.WaitGroup
	for _, idx := range probeTargets {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcomes[i].probe = n.Prober.Probe(ctx, devices[i].IPAddress, timeout)
		}(idx)
	}
	wg.Wait()

	result := &CycleResult{}
	views := make([]DeviceView, len(devices))
	for i, dev := range devices {
		var view DeviceView
		var err error
		if outcomes[i].underMaintenance {
			view, err = n.applyMaintenance(dev)
		} else {
			view, err = n.applyProbe(dev, outcomes[i].probe, now, logger)
		}
		if err != nil {
			logger.Error("Failed to persist device state",
				zap.Uint("device_id", dev.ID), zap.Error(err))
			result.PersistFailures = append(result.PersistFailures, PersistFailure{
				DeviceID: dev.ID,
				Error:    err.Error(),
			})
			view = deviceView(dev)
		}
		views[i] = view
	}

	result.Groups = groupByBuilding(buildings, views)
	return result, nil
}

// applyMaintenance forces the device into Maintenance. The failure counter
// is deliberately left untouched so hysteresis resumes where it left off
// once the window ends. No probe, no ping log, no alert change.
func (n *NetMon) applyMaintenance(dev models.Device) (DeviceView, error) {
	err := n.Db.Conn.Model(&models.Device{}).
		Where("id = ?", dev.ID).
		Updates(map[string]any{
			"status": models.StatusMaintenance,
			"reason": MaintenanceReason,
		}).Error
	if err != nil {
		return DeviceView{}, err
	}

	view := deviceView(dev)
	view.Status = models.StatusMaintenance
	view.Reason = MaintenanceReason
	return view, nil
}

// applyProbe persists one device's transition. The alert lifecycle goes
// through the ledger first; the device row, ping log append and audit
// entry commit afterwards in one transaction. Ordering matters: when the
// ledger call fails, the row stays untouched, so the next cycle replays
// the same transition instead of stranding a down device with no alert.
func (n *NetMon) applyProbe(dev models.Device, res models.ProbeResult, now time.Time, logger *zap.Logger) (DeviceView, error) {
	plan := planTransition(dev, res)

	if plan.ResolveAlerts {
		if _, err := n.Alert.ResolveDeviceAlerts(dev.ID, now); err != nil {
			return DeviceView{}, err
		}
	}
	if plan.OpenAlert {
		title := fmt.Sprintf("Device Down: %s", dev.Name)
		if err := n.Alert.OpenAlert(dev.ID, title, plan.StoredReason, now); err != nil {
			return DeviceView{}, err
		}
	}

	err := n.Db.Conn.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{"failed_ping_count": plan.FailedPingCount}
		if plan.Status != dev.Status {
			updates["status"] = plan.Status
		}
		if plan.StoredReason != "" {
			updates["reason"] = plan.StoredReason
		}
		if err := tx.Model(&models.Device{}).Where("id = ?", dev.ID).Updates(updates).Error; err != nil {
			return err
		}

		pingLog := models.PingLog{
			DeviceID:  dev.ID,
			LatencyMs: res.LatencyMs,
			Reachable: res.Reachable,
			Timestamp: now,
		}
		if err := tx.Create(&pingLog).Error; err != nil {
			return err
		}

		if plan.Audit != nil {
			deviceID := dev.ID
			entry := models.AuditLog{
				DeviceID:   &deviceID,
				ChangeType: models.ChangeTypeStatusChange,
				OldValue:   plan.Audit.Old,
				NewValue:   plan.Audit.New,
				Timestamp:  now,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return DeviceView{}, err
	}

	if plan.Audit != nil {
		logger.Info("Device status changed",
			zap.Uint("device_id", dev.ID),
			zap.String("old", plan.Audit.Old),
			zap.String("new", plan.Audit.New),
			zap.String("reason", plan.ViewReason))
	}

	view := deviceView(dev)
	view.Status = plan.Status
	view.Reason = plan.ViewReason
	view.FailedPingCount = plan.FailedPingCount
	return view, nil
}

func deviceView(dev models.Device) DeviceView {
	return DeviceView{
		ID:              dev.ID,
		Name:            dev.Name,
		IPAddress:       dev.IPAddress,
		BuildingID:      dev.BuildingID,
		Status:          dev.Status,
		Reason:          dev.Reason,
		FailedPingCount: dev.FailedPingCount,
	}
}

// groupByBuilding projects the reconciled views into the building-grouped
// list, buildings in name order, with the synthetic unassigned group last.
func groupByBuilding(buildings []models.Building, devices []DeviceView) []BuildingGroup {
	groups := common.Mapper(buildings, func(b models.Building) BuildingGroup {
		return BuildingGroup{
			BuildingName:     b.Name,
			BuildingLocation: b.Location,
			Devices:          []DeviceView{},
		}
	})

	index := make(map[uint]int, len(buildings))
	for i, b := range buildings {
		index[b.ID] = i
	}

	var unassigned []DeviceView
	for _, d := range devices {
		if d.BuildingID != nil {
			if i, ok := index[*d.BuildingID]; ok {
				groups[i].Devices = append(groups[i].Devices, d)
				continue
			}
		}
		unassigned = append(unassigned, d)
	}

	if len(unassigned) > 0 {
		groups = append(groups, BuildingGroup{
			BuildingName: UnassignedGroupName,
			Devices:      unassigned,
		})
	}
	return groups
}

type IReconcilerImpl struct {
	mon *NetMon
}

func (ir *IReconcilerImpl) RunCycle(ctx context.Context) (*CycleResult, error) {
	return ir.mon.runCycle(ctx)
}

func (n *NetMon) GetIReconciler() IReconciler {
	return &IReconcilerImpl{mon: n}
}
