// Package config provides configuration structures and utilities for
// modcheck. It defines the options controlling the reconciliation run,
// the optional .modcheck configuration file, and the XDG paths used for
// the local history database.
package config
