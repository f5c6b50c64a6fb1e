package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/go-resty/resty/v2"
)

func main() {
	configPath := flag.String("config", "configs/server.yaml", "server config file")
	serverURL := flag.String("server", "http://127.0.0.1:8080", "server base URL to wait for")
	wait := flag.Duration("wait", 30*time.Second, "how long to wait for the server to become healthy")
	flag.Parse()

	fmt.Println("Запуск notekeeper...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clientName := "notekeeper"
	if runtime.GOOS == "windows" {
		clientName = "notekeeper.exe"
	}

	// сервер на фоне
	server := exec.CommandContext(ctx, "go", "run", "./cmd/server", "-config", *configPath)
	server.Stdout = os.Stdout
	server.Stderr = os.Stderr

	if err := server.Start(); err != nil {
		fmt.Printf("Ошибка запуска сервера: %v\n", err)
		return
	}

	if err := waitHealthy(ctx, *serverURL, *wait); err != nil {
		fmt.Printf("Сервер не поднялся: %v\n", err)
		_ = server.Process.Kill()
		return
	}

	// собираем клиента
	if _, err := os.Stat(clientName); errors.Is(err, os.ErrNotExist) {
		fmt.Println("Сборка клиента...")
		build := exec.CommandContext(ctx, "go", "build", "-o", clientName, "./cmd/notekeeper")
		build.Stdout = os.Stdout
		build.Stderr = os.Stderr
		if err := build.Run(); err != nil {
			fmt.Printf("Ошибка сборки клиента: %v\n", err)
		}
		if runtime.GOOS != "windows" {
			_ = os.Chmod(clientName, 0o755)
		}
	}

	fmt.Println("Сервер запущен:", *serverURL)
	if runtime.GOOS == "windows" {
		fmt.Println("Данный терминал не закрывай. Открой новый и запускай: .\\notekeeper.exe --server", *serverURL)
	} else {
		fmt.Println("Данный терминал не закрывай. Открой новый и запускай: ./notekeeper --server", *serverURL)
	}

	_ = server.Wait()
}

// waitHealthy опрашивает /health, пока сервер не ответит 200 или не выйдет время.
func waitHealthy(ctx context.Context, baseURL string, timeout time.Duration) error {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(2 * time.Second)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		resp, err := client.R().SetContext(ctx).Get("/health")
		if err == nil && resp.IsSuccess() {
			return nil
		}

		select {
		case <-ctx.Done():
			if err != nil {
				return fmt.Errorf("%w: %v", ctx.Err(), err)
			}
			return fmt.Errorf("%w: last status %d", ctx.Err(), resp.StatusCode())
		case <-ticker.C:
		}
	}
}
