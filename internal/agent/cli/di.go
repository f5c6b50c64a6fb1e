package cli

import (
	"github.com/IvanChernomyrdin/go-notekeeper/internal/agent/api"
)

// для тестов
var (
	NewAPIClient = api.NewClient
	ReadPassword = readPassword
)
