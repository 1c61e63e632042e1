package helper

import "fmt"

// NewError wraps an error with a short context naming the failed operation
func NewError(context string, err error) error {
	return fmt.Errorf("error %s: %w", context, err)
}
