// Package main содержит точку входа клиентского CLI-приложения notekeeper.
//
// Версия и дата сборки передаются через -ldflags:
//
//	go build -ldflags "-X main.buildVersion=v1.0.0 -X main.buildDate=2026-01-16" ./cmd/notekeeper
package main

import "github.com/IvanChernomyrdin/go-notekeeper/internal/agent/cli"

var (
	buildVersion = "dev"
	buildDate    = "unknown"
)

func main() {
	cli.Execute(buildVersion, buildDate)
}
