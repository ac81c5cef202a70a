package constants

const (
	EnvPrefix = "DEMOSTATS"

	ViperLogLevel       = "log.level"
	ViperLogDevelopment = "log.development"

	ViperSourceBaseURL        = "source.base_url"
	ViperSourcePageSize       = "source.page_size"
	ViperSourceRequestTimeout = "source.request_timeout"
	ViperSourceMaxRetries     = "source.max_retries"
	ViperSourceRetryInterval  = "source.retry_interval"

	ViperCollectorStartYear = "collector.start_year"
	ViperCollectorEndYear   = "collector.end_year"
	ViperCollectorOutputDir = "collector.output_dir"
	ViperCollectorWorkers   = "collector.workers"

	ViperServerAddr            = "server.addr"
	ViperServerAllowOrigins    = "server.allow_origins"
	ViperServerCollectSchedule = "server.collect_schedule"

	ViperDashboardDefaultIndicator = "dashboard.default_indicator"
	ViperDashboardDefaultYear      = "dashboard.default_year"
	ViperDashboardTopN             = "dashboard.top_n"
	ViperDashboardCountries        = "dashboard.countries"
	ViperDashboardNotableEntities  = "dashboard.notable_entities"

	ViperIndicators = "indicators"
)

const (
	CtxKeyRunID     = "run_id"
	CtxKeyRequestID = "request_id"

	HeaderRequestID = "X-Request-ID"

	TableExt = ".csv"
)
