package user

import (
	"os"
	"testing"

	"github.com/erfantq/Sports-Hall-Reservation/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init()

	code := m.Run()
	os.Exit(code)
}
