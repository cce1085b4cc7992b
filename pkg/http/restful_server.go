package http

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"netpulse.xyz/switch-health-service/pkg/netmon"
)

type RestfulServer struct {
	Server           *gin.Engine
	Mon              *netmon.NetMon
	RateLimiterStore *netmon.RateLimiterStore
}

func (rs *RestfulServer) GetLimiter(clientID string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(clientID)
	}
}

func (rs *RestfulServer) CheckClientLimiter(clientID string) bool {
	limiter := rs.GetLimiter(clientID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(clientID string, clientRate float64, clientBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(clientID, rate.Limit(clientRate), clientBurst)
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)
	rs.Server.GET("/switches/live-status", rs.GetLiveStatus)
	rs.Server.GET("/dashboard/stats", rs.GetDashboardStats)
	rs.Server.GET("/logs", rs.GetAuditLogs)

	buildings := rs.Server.Group("/buildings")
	{
		buildings.POST("", rs.CreateBuilding)
		buildings.GET("", rs.GetBuildings)
	}

	devices := rs.Server.Group("/devices")
	{
		devices.POST("", rs.CreateDevice)
		devices.PUT("/:device_id", rs.UpdateDevice)
		devices.DELETE("/:device_id", rs.DeleteDevice)
		devices.GET("/:device_id/history", rs.GetDeviceHistory)
		devices.POST("/:device_id/maintenance", rs.ScheduleMaintenance)
	}

	alerts := rs.Server.Group("/alerts")
	{
		alerts.GET("", rs.GetActiveAlerts)
		alerts.GET("/resolved", rs.GetResolvedAlerts)
		alerts.POST("/:alert_id/resolve", rs.ResolveAlert)
	}

	rs.Server.GET("/maintenance-windows", rs.GetMaintenanceWindows)
	rs.Server.DELETE("/maintenance-windows/:window_id", rs.DeleteMaintenanceWindow)

	rs.Server.POST("/clients/:client_id/limiter", rs.PostLimiter)
}
