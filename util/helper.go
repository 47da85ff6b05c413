// Package util provides the file level glue around package catalog.
package util

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

var (
	// Stdin and Stdout are replaced in tests.
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
)

// Exist check if path is exist.
func Exist(name string) bool {
	if _, err := os.Stat(name); err == nil {
		return true
	}
	return false
}

// IsFile returns true if path is exist and is a file.
func IsFile(name string) bool {
	fi, err := os.Stat(name)
	if err != nil || fi.IsDir() {
		return false
	}
	return true
}

// IsDir returns true if path is exist and is a directory.
func IsDir(name string) bool {
	fi, err := os.Stat(name)
	if err != nil || !fi.IsDir() {
		return false
	}
	return true
}

// GetUserInput reads user input from stdin.
// Prompt is written to stderr so stdout remains clean for redirects.
func GetUserInput(prompt, defaultValue string) string {
	fmt.Fprint(os.Stderr, prompt)

	reader := bufio.NewReader(Stdin)
	text, _ := reader.ReadString('\n')
	text = strings.TrimSpace(text)

	if text == "" {
		return defaultValue
	}
	return text
}

// AnswerIsTrue indicates answer is a true value
func AnswerIsTrue(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "t", "true", "on", "1":
		return true
	}
	return false
}

// ReportWarnAndErrors logs messages as warnings if ok, otherwise as errors.
func ReportWarnAndErrors(msgs []string, prompt string, ok bool) {
	if ok {
		reportResultMessages(msgs, prompt, log.WarnLevel)
	} else {
		reportResultMessages(msgs, prompt, log.ErrorLevel)
	}
}

func reportResultMessages(msgs []string, prompt string, level log.Level) {
	var fn func(format string, args ...interface{})

	if len(msgs) == 0 {
		return
	}

	switch level {
	case log.InfoLevel:
		fn = log.Printf
	case log.WarnLevel:
		fn = log.Warnf
	default:
		fn = log.Errorf
	}

	for _, msg := range msgs {
		for _, line := range strings.Split(msg, "\n") {
			if prompt == "" {
				fn("%s", line)
			} else {
				fn("%s\t%s", prompt, line)
			}
		}
	}
}
