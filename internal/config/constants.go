package config

import "time"

// Application constants
const (
	AppName = "aeroreduce"

	// EnvPrefix namespaces every environment variable, e.g. AERO_SERVER_PORT
	EnvPrefix = "AERO"

	DefaultRateLimit      = 20 // requests per second
	DefaultBurstSize      = 40
	DefaultMaxConcurrency = 4
	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxBodyBytes   = 8 << 20

	// Output file names written by the sweep command
	CoefficientsFileName = "coefficients.csv"
	PressureFileName     = "cp.csv"
	WakeFileName         = "wake.csv"
	WorkbookFileName     = "sweep.xlsx"
)
