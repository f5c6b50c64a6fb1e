package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ErrEmptyPassword пароль не введён.
var ErrEmptyPassword = errors.New("empty password")

// readPassword читает пароль без эха, если stdin терминал.
// Иначе берёт первую строку из stdin команды (удобно для скриптов).
func readPassword(cmd *cobra.Command, prompt string) (string, error) {
	var pw string

	fd := int(os.Stdin.Fd())
	if cmd.InOrStdin() == os.Stdin && term.IsTerminal(fd) {
		fmt.Fprint(cmd.ErrOrStderr(), prompt)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		pw = string(b)
	} else {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("read password from stdin: %w", err)
		}
		pw = line
	}

	pw = strings.TrimRight(pw, "\r\n")
	if pw == "" {
		return "", ErrEmptyPassword
	}
	return pw, nil
}

// passwordOrPrompt возвращает пароль из флага или спрашивает его.
func passwordOrPrompt(cmd *cobra.Command, fromFlag string) (string, error) {
	if fromFlag != "" {
		return fromFlag, nil
	}
	return ReadPassword(cmd, "Password: ")
}
