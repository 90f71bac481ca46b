package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInputParse    = errors.New("input parse error")
	ErrInputClosed   = errors.New("input closed")
	ErrProcessLaunch = errors.New("process launch error")
	ErrProcessExit   = errors.New("process exit error")
	ErrConfiguration = errors.New("configuration error")
	ErrLocked        = errors.New("workspace locked")
)

// Wrap builds an error message that includes operation context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, operation, tool, message string, err error) error {
	detail := buildDetail(operation, tool, message)
	if marker == nil {
		marker = ErrProcessLaunch
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether err should end an interactive session. Input and
// process failures are recoverable; the operator gets the menu back.
func IsFatal(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrInputParse), errors.Is(err, ErrProcessLaunch), errors.Is(err, ErrProcessExit):
		return false
	default:
		return true
	}
}

func buildDetail(operation, tool, message string) string {
	parts := make([]string, 0, 3)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if tool = strings.TrimSpace(tool); tool != "" {
		parts = append(parts, tool)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "tool failure"
	}
	return strings.Join(parts, ": ")
}
