package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	mb "github.com/saeidalz13/battleship-engine/models/battleship"
)

const (
	StageProd = "prod"
	StageDev  = "dev"

	PlacementRandom = "random"
	PlacementManual = "manual"
)

type Config struct {
	Stage                string
	SpectatorPort        int
	DatabaseUrl          string
	MigrationDir         string
	Placement            string
	Fleet                mb.Fleet
	PlacementSeed        int64
	PlacementMaxAttempts int
}

// LoadConfig reads the environment, loading .env first outside prod.
// A missing .env file is fine.
func LoadConfig(envFiles ...string) (Config, error) {
	if os.Getenv("STAGE") != StageProd {
		if len(envFiles) == 0 {
			envFiles = []string{".env"}
		}
		if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	cfg := Config{
		Stage:                envOrDefault("STAGE", StageDev),
		DatabaseUrl:          os.Getenv("DATABASE_URL"),
		MigrationDir:         envOrDefault("MIGRATION_DIR", "file://db/migration"),
		Placement:            strings.ToLower(envOrDefault("PLACEMENT", PlacementRandom)),
		PlacementMaxAttempts: mb.DefaultMaxRandomAttempts,
	}

	if cfg.Stage != StageDev && cfg.Stage != StageProd {
		return Config{}, fmt.Errorf("stage must be either dev or prod, got: %s", cfg.Stage)
	}
	if cfg.Placement != PlacementRandom && cfg.Placement != PlacementManual {
		return Config{}, fmt.Errorf("placement must be either random or manual, got: %s", cfg.Placement)
	}

	var err error
	if cfg.SpectatorPort, err = envInt("SPECTATOR_PORT", 0); err != nil {
		return Config{}, err
	}
	if cfg.SpectatorPort < 0 || cfg.SpectatorPort > 65535 {
		return Config{}, fmt.Errorf("invalid SPECTATOR_PORT: %d", cfg.SpectatorPort)
	}

	if cfg.PlacementMaxAttempts, err = envInt("PLACEMENT_MAX_ATTEMPTS", mb.DefaultMaxRandomAttempts); err != nil {
		return Config{}, err
	}
	if cfg.PlacementMaxAttempts < 1 {
		return Config{}, fmt.Errorf("PLACEMENT_MAX_ATTEMPTS must be positive, got: %d", cfg.PlacementMaxAttempts)
	}

	seed, err := envInt("PLACEMENT_SEED", 0)
	if err != nil {
		return Config{}, err
	}
	cfg.PlacementSeed = int64(seed)

	cfg.Fleet = mb.NewReferenceFleet()
	if rawFleet := os.Getenv("FLEET"); rawFleet != "" {
		if cfg.Fleet, err = mb.ParseFleet(rawFleet); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

// Rand returns the placement randomness; seed 0 means time based.
func (c Config) Rand() *rand.Rand {
	seed := c.PlacementSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}
