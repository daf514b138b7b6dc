package usecase

import (
	"errors"
	"fmt"
)

var errCompletedReminder = errors.New("completed reminder cannot be snoozed")

func errMissingField(field string) error {
	return fmt.Errorf("%s is required", field)
}

func errUnknownValue(field, value string) error {
	return fmt.Errorf("unknown %s %q", field, value)
}

func errNonPositive(field string) error {
	return fmt.Errorf("%s must be positive", field)
}
