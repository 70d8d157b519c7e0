package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/danielhkuo/rangepoll/models"
)

type Config struct {
	Port             int
	PollsDir         string
	VotersDir        string
	SecretFile       string
	DefaultAlgorithm models.VotingAlgorithm
	BaseURL          string

	// Template generation: write an example record and exit.
	GenPoll  string
	GenVoter string
}

// ParseFlags validates flags, with environment variables as fallback
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var algorithm string

	fs := flag.NewFlagSet("rangepoll", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.PollsDir, "polls", "", "Directory of poll records")
	fs.StringVar(&cfg.VotersDir, "voters", "", "Directory of voter records")
	fs.StringVar(&cfg.SecretFile, "secret", "", "File holding the token signing secret")
	fs.StringVar(&algorithm, "algorithm", "", "Voting algorithm for polls that name none")
	fs.StringVar(&cfg.BaseURL, "base-url", "", "Public base URL used in invitation links")
	fs.StringVar(&cfg.GenPoll, "gen-poll", "", "Write an example poll record to this path and exit")
	fs.StringVar(&cfg.GenVoter, "gen-voter", "", "Write an example voter record to this path and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8000 // default
		}
	}
	if cfg.PollsDir == "" {
		cfg.PollsDir = os.Getenv("POLLS_DIR")
	}
	if cfg.PollsDir == "" {
		cfg.PollsDir = "polls"
	}
	if cfg.VotersDir == "" {
		cfg.VotersDir = os.Getenv("VOTERS_DIR")
	}
	if cfg.VotersDir == "" {
		cfg.VotersDir = "voters"
	}
	if cfg.SecretFile == "" {
		cfg.SecretFile = os.Getenv("SECRET_FILE")
	}
	if cfg.SecretFile == "" {
		cfg.SecretFile = "secret.txt"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("BASE_URL")
	}

	if algorithm == "" {
		algorithm = os.Getenv("DEFAULT_ALGORITHM")
	}
	if algorithm == "" {
		algorithm = string(models.AlgorithmMax)
	}
	cfg.DefaultAlgorithm = models.VotingAlgorithm(algorithm)
	if !cfg.DefaultAlgorithm.Valid() {
		return Config{}, fmt.Errorf("unknown voting algorithm %q", algorithm)
	}

	return cfg, nil
}
