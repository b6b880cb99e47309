package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagSeed     = flag.Int64("seed", 0, "Random seed (0 = from config)")
	flagWidth    = flag.Int("width", 0, "Terrain width in cells")
	flagHeight   = flag.Int("height", 0, "Terrain depth in cells")
	flagNoise    = flag.String("noise", "", "Noise backend: perlin, simplex or classic")
	flagDatabase = flag.String("db", "", "Scene database path")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments left after the global flags.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSeed != 0 {
		cfg.Terrain.Seed = *flagSeed
	}
	if *flagWidth > 0 {
		cfg.Terrain.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Terrain.Height = *flagHeight
	}
	if *flagNoise != "" {
		cfg.Noise.Backend = *flagNoise
	}
	if *flagDatabase != "" {
		cfg.Store.Path = *flagDatabase
	}
}
