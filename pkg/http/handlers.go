package http

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"

	"netpulse.xyz/switch-health-service/pkg/common"
	"netpulse.xyz/switch-health-service/pkg/models"
)

const defaultMaintenanceReason = "Scheduled Maintenance"

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(value), true
}

func (rs *RestfulServer) GetLiveStatus(c *gin.Context) {
	if !rs.CheckClientLimiter(c.ClientIP()) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	result, err := rs.Mon.Reconciler.RunCycle(c.Request.Context())
	if err != nil {
		common.GetLoggerWith(common.LoggerNameRestfulServer).
			Error("Reconcile cycle failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "reconciliation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"data":             result.Groups,
		"persist_failures": result.PersistFailures,
	})
}

type BuildingRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

var buildingRequestSchema = z.Struct(z.Shape{
	"Name":     z.String().Required(),
	"Location": z.String(),
})

func (rs *RestfulServer) CreateBuilding(c *gin.Context) {
	var req BuildingRequest
	if err := buildingRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	building, err := rs.Mon.Inventory.CreateBuilding(req.Name, req.Location)
	if err != nil {
		c.JSON(http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, building)
}

func (rs *RestfulServer) GetBuildings(c *gin.Context) {
	buildings, err := rs.Mon.Inventory.ListBuildings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, buildings)
}

type DeviceRequest struct {
	Name       string `json:"name"`
	IPAddress  string `json:"ip_address"`
	BuildingID int    `json:"building_id"`
}

var deviceRequestSchema = z.Struct(z.Shape{
	"Name":       z.String().Required(),
	"IPAddress":  z.String().Required(),
	"BuildingID": z.Int(),
})

func (req *DeviceRequest) buildingRef() *uint {
	if req.BuildingID <= 0 {
		return nil
	}
	id := uint(req.BuildingID)
	return &id
}

func (rs *RestfulServer) CreateDevice(c *gin.Context) {
	var req DeviceRequest
	if err := deviceRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if net.ParseIP(req.IPAddress) == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a valid IP address is required"})
		return
	}

	device, err := rs.Mon.Inventory.CreateDevice(req.Name, req.IPAddress, req.buildingRef())
	if err != nil {
		c.JSON(http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, device)
}

func (rs *RestfulServer) UpdateDevice(c *gin.Context) {
	deviceID, ok := parseUintParam(c, "device_id")
	if !ok {
		return
	}

	var req DeviceRequest
	if err := deviceRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if net.ParseIP(req.IPAddress) == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a valid IP address is required"})
		return
	}

	if err := rs.Mon.Inventory.UpdateDevice(deviceID, req.Name, req.IPAddress, req.buildingRef()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "device not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, err)
		return
	}

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) DeleteDevice(c *gin.Context) {
	deviceID, ok := parseUintParam(c, "device_id")
	if !ok {
		return
	}

	if err := rs.Mon.Inventory.DeleteDevice(deviceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "device not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, err)
		return
	}

	c.Status(http.StatusOK)
}

type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	LatencyMs *int64    `json:"latency_ms"`
	Reachable bool      `json:"status"`
}

func (rs *RestfulServer) GetDeviceHistory(c *gin.Context) {
	if !rs.CheckClientLimiter(c.ClientIP()) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	deviceID, ok := parseUintParam(c, "device_id")
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	history, err := rs.Mon.Inventory.DeviceHistory(deviceID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, common.Mapper(history, func(entry models.PingLog) HistoryEntry {
		return HistoryEntry{
			Timestamp: entry.Timestamp,
			LatencyMs: entry.LatencyMs,
			Reachable: entry.Reachable,
		}
	}))
}

func (rs *RestfulServer) GetActiveAlerts(c *gin.Context) {
	if !rs.CheckClientLimiter(c.ClientIP()) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	alerts, err := rs.Mon.Alert.GetActiveAlerts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func (rs *RestfulServer) GetResolvedAlerts(c *gin.Context) {
	if !rs.CheckClientLimiter(c.ClientIP()) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	alerts, err := rs.Mon.Alert.GetResolvedAlerts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func (rs *RestfulServer) ResolveAlert(c *gin.Context) {
	alertID, ok := parseUintParam(c, "alert_id")
	if !ok {
		return
	}

	if err := rs.Mon.Alert.ResolveAlertByID(alertID, time.Now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "alert not found or already resolved"})
			return
		}
		c.JSON(http.StatusInternalServerError, err)
		return
	}

	c.Status(http.StatusOK)
}

type MaintenanceRequest struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Reason    string    `json:"reason"`
	CreatedBy string    `json:"created_by"`
}

var maintenanceRequestSchema = z.Struct(z.Shape{
	"StartTime": z.Time().Required(),
	"EndTime":   z.Time().Required(),
	"Reason":    z.String(),
	"CreatedBy": z.String(),
})

func (rs *RestfulServer) ScheduleMaintenance(c *gin.Context) {
	deviceID, ok := parseUintParam(c, "device_id")
	if !ok {
		return
	}

	var req MaintenanceRequest
	if err := maintenanceRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if !req.EndTime.After(req.StartTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end time must be after start time"})
		return
	}

	reason := req.Reason
	if reason == "" {
		reason = defaultMaintenanceReason
	}

	window, err := rs.Mon.Inventory.ScheduleWindow(deviceID, req.StartTime, req.EndTime, reason, req.CreatedBy)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "device not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, window)
}

func (rs *RestfulServer) GetMaintenanceWindows(c *gin.Context) {
	windows, err := rs.Mon.Inventory.ListWindows()
	if err != nil {
		c.JSON(http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, windows)
}

func (rs *RestfulServer) DeleteMaintenanceWindow(c *gin.Context) {
	windowID, ok := parseUintParam(c, "window_id")
	if !ok {
		return
	}

	if err := rs.Mon.Inventory.DeleteWindow(windowID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "maintenance window not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, err)
		return
	}

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) GetDashboardStats(c *gin.Context) {
	stats, err := rs.Mon.Inventory.DashboardStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (rs *RestfulServer) GetAuditLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	entries, err := rs.Mon.Inventory.ListAuditLogs(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().Required(),
	"burst": z.Int().Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	clientID := c.Param("client_id")

	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	rs.SetLimiter(clientID, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
