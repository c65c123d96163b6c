package prompter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

var (
	mu     sync.Mutex
	reader = bufio.NewReader(os.Stdin)
	writer io.Writer = os.Stdout
	// stdinFd is used for hidden password entry when stdin is a terminal.
	stdinFd = int(os.Stdin.Fd())
)

// SetIO replaces the input and output streams. Password entry falls back
// to a plain line read when in is not a terminal.
func SetIO(in io.Reader, out io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	reader = bufio.NewReader(in)
	writer = out
	stdinFd = -1
	if f, ok := in.(*os.File); ok {
		stdinFd = int(f.Fd())
	}
}

// PromptString prompts user for a string input
func PromptString(label string) (string, error) {
	mu.Lock()
	defer mu.Unlock()

	fmt.Fprint(writer, label)
	input, err := readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// PromptPassword prompts user for a password (hidden input)
func PromptPassword(label string) (string, error) {
	mu.Lock()
	defer mu.Unlock()

	fmt.Fprint(writer, label)

	if stdinFd >= 0 && term.IsTerminal(stdinFd) {
		bytepw, err := term.ReadPassword(stdinFd)
		if err != nil {
			return "", err
		}
		fmt.Fprintln(writer)
		return string(bytepw), nil
	}

	input, err := readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(input, "\r\n"), nil
}

// PromptConfirm prompts user for yes/no confirmation
func PromptConfirm(label string) (bool, error) {
	mu.Lock()
	defer mu.Unlock()

	fmt.Fprint(writer, label+" (y/n) ")
	input, err := readLine()
	if err != nil {
		return false, err
	}

	response := strings.TrimSpace(strings.ToLower(input))
	return response == "y" || response == "yes", nil
}

// PromptSelect prompts user to select from options
func PromptSelect(label string, options []string) (int, error) {
	mu.Lock()
	defer mu.Unlock()

	fmt.Fprintln(writer, label)
	for i, opt := range options {
		fmt.Fprintf(writer, "%d) %s\n", i+1, opt)
	}

	fmt.Fprint(writer, "Select option: ")
	input, err := readLine()
	if err != nil {
		return -1, err
	}

	var selection int
	if _, err := fmt.Sscanf(strings.TrimSpace(input), "%d", &selection); err != nil {
		return -1, err
	}

	if selection < 1 || selection > len(options) {
		return -1, fmt.Errorf("invalid selection")
	}

	return selection - 1, nil
}

// PromptMultilineString reads lines until an empty line or maxLines.
func PromptMultilineString(label string, maxLines int) (string, error) {
	mu.Lock()
	defer mu.Unlock()

	fmt.Fprintf(writer, "%s (finish with an empty line):\n", label)

	var lines []string
	for i := 0; i < maxLines; i++ {
		line, err := readLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		trimmed := strings.TrimRight(line, "\r\n")
		if trimmed == "" {
			break
		}
		lines = append(lines, trimmed)
	}

	return strings.Join(lines, "\n"), nil
}

// readLine returns a final unterminated line without error.
func readLine() (string, error) {
	line, err := reader.ReadString('\n')
	if err == io.EOF && line != "" {
		return line, nil
	}
	return line, err
}
