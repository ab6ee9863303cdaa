package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/westosha-tf/team-portal/internal/errors"
	"github.com/westosha-tf/team-portal/internal/utils"
	"github.com/westosha-tf/team-portal/internal/validation"
)

// optionalDateQuery parses ?key=YYYY-MM-DD. A missing or blank value yields nil.
func optionalDateQuery(c *gin.Context, key string) (*time.Time, *string, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil, nil
	}
	day, err := utils.ParseDate(raw)
	if err != nil {
		return nil, nil, err
	}
	return &day, &raw, nil
}

// optionalQuery returns nil for a missing or blank query value.
func optionalQuery(c *gin.Context, key string) *string {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	return &raw
}

// respondBindError reports a failed form binding as field messages.
func respondBindError(c *gin.Context, err error) {
	fields := validation.FormatValidationError(err)
	apierrors.BadRequestWithDetails(c, validation.Summary(fields), fields)
}

func isChecked(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
