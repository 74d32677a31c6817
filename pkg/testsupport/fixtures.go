package testsupport

import "os"

// LoadFixture reads a test fixture file relative to the test's working
// directory.
func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}
