package log

import (
	"fmt"
	"os"

	"github.com/jwalton/gchalk"
)

// Error writes an error message to stderr.
func Error(message interface{}) {
	Errorf("%v", message)
}

// Errorf writes a formatted error message to stderr.
func Errorf(message string, a ...interface{}) {
	os.Stderr.Write([]byte(gchalk.Stderr.BrightRed(fmt.Sprintf(message, a...)) + "\n"))
}

// Fatal writes an error message to stderr, and then exits with a non-zero status code.
func Fatal(message interface{}) {
	Fatalf("%v", message)
}

// DieOnError will write an error message to stderr and exit with non-zero status if err is not nil.
func DieOnError(err error) {
	if err != nil {
		Fatalf("%v", err)
	}
}

// Fatalf writes a formatted error message to stderr, and then exits with a non-zero status code.
func Fatalf(message string, a ...interface{}) {
	Errorf(message, a...)
	os.Exit(1)
}
