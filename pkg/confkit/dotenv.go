package confkit

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// LoadDotenvOnce loads variables from .env files so BINANCE_API_KEY and
// friends can live outside the shell profile. ENV_FILE names a single file;
// otherwise .env is tried in the working directory and each parent up to the
// project root. Existing variables win unless DOTENV_OVERLOAD=1, and
// NO_DOTENV=1 disables loading entirely. Only the first call has any effect.
func LoadDotenvOnce() {
	dotenvOnce.Do(loadDotenv)
}

func loadDotenv() {
	if os.Getenv("NO_DOTENV") == "1" {
		return
	}

	overload := os.Getenv("DOTENV_OVERLOAD") == "1"
	load := func(paths ...string) {
		if overload {
			_ = godotenv.Overload(paths...)
		} else {
			_ = godotenv.Load(paths...)
		}
	}

	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		load(envFile)
		return
	}

	wd, err := os.Getwd()
	if err != nil {
		load(".env")
		return
	}
	walkUp(wd, func(dir string) bool {
		if fileExists(filepath.Join(dir, ".env")) {
			load(filepath.Join(dir, ".env"))
		}
		return isProjectRoot(dir)
	})
}
