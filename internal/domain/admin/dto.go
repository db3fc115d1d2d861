package admin

import (
	"fmt"
	"sort"
	"strings"
)

type LoginRequest struct {
	SecretKey string `json:"secret_key" validate:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email,max=120"`
	Password string `json:"password" validate:"required,min=1,max=72"`
	IsActive *bool  `json:"is_active"`
}

// TableCounts maps table names to row counts.
type TableCounts map[string]int64

func validationMessage(errs map[string]string) string {
	fields := make([]string, 0, len(errs))
	for field, rule := range errs {
		fields = append(fields, fmt.Sprintf("%s (%s)", field, rule))
	}
	sort.Strings(fields)
	return "invalid fields: " + strings.Join(fields, ", ")
}
