package firestorefake

import "firestore-fake/internal/firestore/config"

// Config holds runtime tunables for a store instance.
type Config = config.Config

// LoadConfig reads configuration from the environment, applying defaults.
var LoadConfig = config.Load

// DefaultConfig returns the built-in defaults.
var DefaultConfig = config.Default
