package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"netpulse.xyz/switch-health-service/pkg/common"
	"netpulse.xyz/switch-health-service/pkg/db"
	netmonHttp "netpulse.xyz/switch-health-service/pkg/http"
	"netpulse.xyz/switch-health-service/pkg/netmon"
)

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	var dbInstance *db.DB
	netmonDbType := os.Getenv(common.EnvKeyNetMonDBType)
	switch netmonDbType {
	case "file":
		dbInstance = db.GetInstance(db.UseSqliteDialector())
	case "memory":
		dbInstance = db.GetInstance(db.UseMemorySqliteDialector())
	case "postgres":
		dbInstance = db.GetInstance(db.UsePostgresDialector())
	default:
		log.Fatal("Unknown NETMON_DB_TYPE: " + netmonDbType)
	}

	httpHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyNetMonHttpHostPort))

	var defaultRate float64
	var defaultBurst int64

	if defaultRate, err = strconv.ParseFloat(os.Getenv(common.EnvKeyNetMonDefaultRate), 64); err != nil {
		log.Fatal("Invalid NETMON_DEFAULT_RATE, or not set in .env, should be a float64 value")
	}

	if defaultBurst, err = strconv.ParseInt(os.Getenv(common.EnvKeyNetMonDefaultBurst), 10, 64); err != nil {
		log.Fatal("Invalid NETMON_DEFAULT_BURST, or not set in .env, should be an int value")
	}

	probeTimeout := netmon.DefaultProbeTimeout
	if raw := strings.TrimSpace(os.Getenv(common.EnvKeyNetMonProbeTimeoutSeconds)); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			log.Fatal("Invalid NETMON_PROBE_TIMEOUT_SECONDS, should be a positive int value")
		}
		probeTimeout = time.Duration(seconds) * time.Second
	}

	// interval 0 (or unset) disables the background sweep; status is then
	// only refreshed when /switches/live-status is hit
	probeInterval := 0
	if raw := strings.TrimSpace(os.Getenv(common.EnvKeyNetMonProbeIntervalSeconds)); raw != "" {
		probeInterval, err = strconv.Atoi(raw)
		if err != nil || probeInterval < 0 {
			log.Fatal("Invalid NETMON_PROBE_INTERVAL_SECONDS, should be a non-negative int value")
		}
	}

	logger := common.GetLogger()

	monCore := netmon.NetMon{
		Db:           *dbInstance,
		ProbeTimeout: probeTimeout,
	}
	monCore.WithServices(netmon.ServiceOpts{
		Prober:      monCore.GetIProber(),
		Maintenance: monCore.GetIMaintenance(),
		Alert:       monCore.GetIAlert(),
		Reconciler:  monCore.GetIReconciler(),
		Inventory:   monCore.GetIInventory(),
	})

	if probeInterval > 0 {
		logger.Info("Starting background reconcile sweep",
			zap.Int("interval_seconds", probeInterval))
		go func() {
			ticker := time.NewTicker(time.Duration(probeInterval) * time.Second)
			defer ticker.Stop()

			// skip a tick instead of stacking cycles when one runs long
			var inFlight atomic.Bool
			for range ticker.C {
				if !inFlight.CompareAndSwap(false, true) {
					logger.Warn("Skipping reconcile tick, previous cycle still running")
					continue
				}
				go func() {
					defer inFlight.Store(false)
					if _, err := monCore.Reconciler.RunCycle(context.Background()); err != nil {
						logger.Error("Background reconcile cycle failed", zap.Error(err))
					}
				}()
			}
		}()
	}

	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":1080"
	}

	rs := &netmonHttp.RestfulServer{
		Server:           gin.Default(),
		Mon:              &monCore,
		RateLimiterStore: netmon.NewRateLimiterStore(rate.Limit(defaultRate), int(defaultBurst)),
	}
	rs.Setup()

	logger.Info("http server created with:",
		zap.String("default_limiter",
			fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", defaultRate, defaultBurst)))

	logger.Info("Starting HTTP server on: " + httpHostPort)
	if err := rs.Server.Run(httpHostPort); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}
