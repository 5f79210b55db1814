package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every variable, e.g. BOARD_SERVER_ADDR.
const Prefix = "board"

const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"
)

type Configuration struct {
	Server struct {
		Addr string `envconfig:"ADDR" default:":8080"`
	}
	Store struct {
		Backend    string        `envconfig:"BACKEND" default:"memory"`
		MongoURI   string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
		Database   string        `envconfig:"MONGO_DATABASE" default:"chessboard"`
		Collection string        `envconfig:"MONGO_COLLECTION" default:"games"`
		Timeout    time.Duration `envconfig:"TIMEOUT" default:"5s"`
	}
	Generator struct {
		FriendlyCapture bool `envconfig:"FRIENDLY_CAPTURE" default:"true"`
		SlidingPieces   bool `envconfig:"SLIDING_PIECES" default:"false"`
	}
	Render struct {
		SquareSize int `envconfig:"SQUARE_SIZE" default:"60"`
	}
}

// Load reads the configuration from the environment.
func Load() (*Configuration, error) {
	var c Configuration
	if err := envconfig.Process(Prefix, &c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Configuration) Validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendMongo:
	default:
		return fmt.Errorf("config: unknown store backend %q", c.Store.Backend)
	}
	if c.Render.SquareSize <= 0 {
		return fmt.Errorf("config: square size must be > 0, got %d", c.Render.SquareSize)
	}
	if c.Store.Timeout <= 0 {
		return fmt.Errorf("config: store timeout must be > 0, got %s", c.Store.Timeout)
	}
	return nil
}
