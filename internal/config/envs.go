package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Ko-stant/gridmaze/internal/geometry"
	"github.com/Ko-stant/gridmaze/internal/protocol"
	"github.com/Ko-stant/gridmaze/internal/session"
)

// Config holds the application's configuration values.
type Config struct {
	Port    int    // Port for the HTTP server
	GinMode string // Mode for the Gin framework (release, debug, test)
	Session session.Options
	// SessionIdleTTL closes sessions no socket watches after this long
	// without use. Zero disables expiry.
	SessionIdleTTL time.Duration
}

const DefaultSessionIdleTTL = 2 * time.Minute

// Load reads an optional .env file and then the environment. Unset variables
// take their defaults; malformed values are errors.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (Config, error) {
	p := &parser{}
	opts := session.DefaultOptions()

	mode, err := session.ParseMode(getEnvWithDefault("GRIDMAZE_MODE", string(opts.Mode)))
	if err != nil {
		return Config{}, err
	}
	opts.Mode = mode

	cells := p.intVar("GRIDMAZE_CELLS", opts.Tile.Columns)
	opts.Tile.Columns, opts.Tile.Rows = cells, cells
	opts.Tiles = p.intVar("GRIDMAZE_TILES", opts.Tiles)
	opts.CellSize = p.intVar("GRIDMAZE_CELL_PIXELS", opts.CellSize)
	opts.Tile.WallProbability = p.floatVar("GRIDMAZE_WALL_PROBABILITY", opts.Tile.WallProbability)
	opts.Tile.Image = getEnvWithDefault("GRIDMAZE_IMAGE", opts.Tile.Image)
	opts.Seed = p.int64Var("GRIDMAZE_SEED", opts.Seed)
	opts.SweepSteps = p.intVar("GRIDMAZE_SWEEP_STEPS", opts.SweepSteps)
	opts.SweepInterval = p.durationVar("GRIDMAZE_SWEEP_INTERVAL", opts.SweepInterval)
	opts.Palette = protocol.Palette{
		Background:  getEnvWithDefault("GRIDMAZE_BACKGROUND_COLOR", opts.Palette.Background),
		Floor:       getEnvWithDefault("GRIDMAZE_FLOOR_COLOR", opts.Palette.Floor),
		Wall:        getEnvWithDefault("GRIDMAZE_WALL_COLOR", opts.Palette.Wall),
		Missing:     getEnvWithDefault("GRIDMAZE_MISSING_WALL_COLOR", opts.Palette.Missing),
		Unreachable: getEnvWithDefault("GRIDMAZE_UNREACHABLE_COLOR", opts.Palette.Unreachable),
	}

	if path := getEnvWithDefault("GRIDMAZE_BOARD_FILE", ""); path != "" {
		board, err := geometry.LoadBoardFromFile(path)
		if err != nil {
			return Config{}, err
		}
		presets, err := board.WallGrids()
		if err != nil {
			return Config{}, err
		}
		opts.Tile.Columns, opts.Tile.Rows = board.Dimensions.Columns, board.Dimensions.Rows
		opts.Tile.Presets = presets
	}

	cfg := Config{
		Port:    p.intVar("APP_PORT", 8080),
		GinMode: getEnvWithDefault("GIN_MODE", "release"),
		Session: opts,

		SessionIdleTTL: p.durationVar("GRIDMAZE_SESSION_IDLE_TTL", DefaultSessionIdleTTL),
	}
	if p.err != nil {
		return Config{}, p.err
	}
	if err := opts.Validate(); err != nil {
		return Config{}, err
	}
	if cfg.SessionIdleTTL < 0 {
		return Config{}, fmt.Errorf("GRIDMAZE_SESSION_IDLE_TTL must not be negative, got %v", cfg.SessionIdleTTL)
	}
	if opts.Tile.WallProbability < 0 || opts.Tile.WallProbability > 1 {
		return Config{}, fmt.Errorf("GRIDMAZE_WALL_PROBABILITY must be within [0,1], got %v", opts.Tile.WallProbability)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

// parser keeps the first conversion error so callers can read every variable
// and check once.
type parser struct {
	err error
}

func (p *parser) fail(key, value string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("environment variable %s=%q: %w", key, value, err)
	}
}

func (p *parser) intVar(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return n
}

func (p *parser) int64Var(key string, def int64) int64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return n
}

func (p *parser) floatVar(key string, def float64) float64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return f
}

func (p *parser) durationVar(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return d
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
