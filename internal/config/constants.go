package config

const (
	// DefaultHistoryPath is where the run-history database lives when
	// history is enabled without an explicit path.
	DefaultHistoryPath = "./history.db"

	// DefaultWatchSchedule polls the watch directory every 10 minutes.
	DefaultWatchSchedule = "*/10 * * * *"

	// DefaultBaseName names output artifacts when the caller gives none.
	DefaultBaseName = "timeline"
)
