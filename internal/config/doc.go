// Package config loads the ragdesk client configuration.
//
// # Resolution order
//
//  1. Built-in defaults
//  2. The config file: the -config path, or ~/.config/ragdesk/config.toml.
//     A missing file is not an error.
//  3. A .env file in the working directory (values already in the
//     environment win)
//  4. RAGDESK_API_URL, RAGDESK_LOG_FILE and RAGDESK_LOG_LEVEL
//
// Files ending in .yaml or .yml are parsed as YAML, anything else as TOML.
//
// # Fields
//
//	api_url = "127.0.0.1:5000"              # backend base URL, scheme optional
//	log_file = "~/.local/state/ragdesk/ragdesk.log"
//	log_level = "info"
//	request_timeout = 0                     # seconds, 0 = none
//	status_poll = 10                        # seconds between /status probes
//	chunk_size = 1000                       # prefilled ingest chunk size
//	chunk_count = 5                         # prefilled chat chunk count
//	page_size = 10                          # explore rows per page
//
// Empty or non-positive values fall back to the defaults. Tilde paths are
// expanded.
package config
