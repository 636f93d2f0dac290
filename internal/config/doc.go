// Package config loads the aeroreduce configuration.
//
// # Configuration Sources
//
// Configuration is assembled from the following sources, later ones winning:
//
//  1. Default values (Default)
//  2. A YAML file: AERO_CONFIG_FILE, or aeroreduce.yaml / configs/aeroreduce.yaml
//  3. Environment variables
//
// # Environment Variables
//
// Every variable is namespaced with AERO_ and follows the struct layout:
//
//	AERO_SERVER_PORT=8080
//	AERO_LOGGING_LEVEL=debug
//	AERO_SWEEP_MAX_CONCURRENCY=8
//	AERO_TUNNEL_CHORD=0.1
//	AERO_TUNNEL_COORDINATES_FILE=data/clark_y.csv
//	AERO_TUNNEL_RAKE_PORTS_CM=0,1.67,3.33,5,6,7,8,9,10,11,12,13,14,15,16.67,18.33,20
//
// # Tunnel
//
// TunnelConfig holds the experiment constants and tap stations. AeroConfig
// resolves the tap geometry from the coordinate file (or explicit ordinates),
// scales it by the chord and returns a validated aero.Config.
package config
