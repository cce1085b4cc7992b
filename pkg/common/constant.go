package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyNetMonDBType string = "NETMON_DB_TYPE"
	EnvKeyNetMonDBPath string = "NETMON_DB_PATH"
	EnvKeyNetMonDBDSN  string = "NETMON_DB_DSN"

	EnvKeyNetMonHttpHostPort string = "NETMON_HTTP_HOST_PORT"

	EnvKeyNetMonProbeTimeoutSeconds  string = "NETMON_PROBE_TIMEOUT_SECONDS"
	EnvKeyNetMonProbeIntervalSeconds string = "NETMON_PROBE_INTERVAL_SECONDS"

	EnvKeyNetMonDefaultRate  string = "NETMON_DEFAULT_RATE"
	EnvKeyNetMonDefaultBurst string = "NETMON_DEFAULT_BURST"

	LoggerNameNetMonCore    string = "netmon_core"
	LoggerNameRestfulServer string = "restful_server"

	LoggerFieldCategory       string = "category"
	LoggerCategoryProber      string = "prober"
	LoggerCategoryReconciler  string = "reconciler"
	LoggerCategoryMaintenance string = "maintenance"
	LoggerCategoryAlert       string = "alert"
	LoggerCategoryInventory   string = "inventory"
)
