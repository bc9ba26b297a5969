package service

import (
	"errors"
	"fmt"
	"net/mail"
	"slices"
	"strings"

	"portfolio-api/internal/model"
	"portfolio-api/pkg/apierror"
)

func requireText(field string, value string) error {
	if strings.TrimSpace(value) == "" {
		return apierror.Validation(field+" is required", field)
	}
	return nil
}

func oneOf(field string, value string, allowed []string) error {
	if !slices.Contains(allowed, value) {
		return apierror.Validation(
			fmt.Sprintf("%s must be one of: %s", field, strings.Join(allowed, ", ")), value)
	}
	return nil
}

func validEmail(value string) error {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return apierror.Validation("email is invalid", "email")
	}
	return nil
}

func trimmed(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func notFoundOr(err error, message string, id string) error {
	if errors.Is(err, model.ErrNotFound) {
		return apierror.NotFound(message, id)
	}
	return err
}
