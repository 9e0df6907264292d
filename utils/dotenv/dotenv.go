package dotenv

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadDotEnvs loads the .env file of the working directory, if any. Missing
// files are not an error: deployed environments configure through real env
// vars.
func LoadDotEnvs() {
	godotenv.Load()
}

// LoadDotEnvsInTests walks up from the test's working directory towards the
// repository root looking for a .env file. Unit tests run with the package
// directory as cwd, so the root .env is a few levels up.
func LoadDotEnvsInTests() {
	dir, err := os.Getwd()
	if err != nil {
		return
	}
	for i := 0; i < 5; i++ {
		candidate := filepath.Join(dir, ".env")
		if _, err := os.Stat(candidate); err == nil {
			godotenv.Load(candidate)
			return
		}
		dir = filepath.Dir(dir)
	}
}
