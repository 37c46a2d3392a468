// Command hash-generator prints a bcrypt hash for a password so seed users can
// be inserted directly into the database.
//
// The password is read from the terminal without echo, or from stdin when
// stdin is not a terminal:
//
//	echo -n 'password1' | go run ./cmd/hash-generator -cost 10
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phrazzld/mesto-api/internal/service/auth"
	"golang.org/x/term"
)

func main() {
	cost := flag.Int("cost", 10, "bcrypt cost factor")
	flag.Parse()

	password, err := readPassword(os.Stdin, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	hash, err := auth.NewBcryptHasher(*cost).Hash(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(hash)
}

// readPassword prompts on prompt and reads without echo when in is a
// terminal; otherwise it reads the first line of in.
func readPassword(in *os.File, prompt io.Writer) (string, error) {
	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(prompt, "Password: ")
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return validate(string(b))
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return validate(strings.TrimRight(line, "\r\n"))
}

func validate(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	return password, nil
}
