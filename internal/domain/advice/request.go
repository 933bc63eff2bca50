package advice

import (
	"strings"

	apperrors "github.com/yanqian/agristack/pkg/errors"
)

// Validate checks required fields and numeric bounds.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Crop) == "" {
		return apperrors.Wrap(CodeInvalidInput, "crop is required", nil)
	}
	if strings.TrimSpace(r.Status) == "" {
		return apperrors.Wrap(CodeInvalidInput, "status is required", nil)
	}
	if r.TimeSinceLastSprayDays != nil && *r.TimeSinceLastSprayDays < 0 {
		return apperrors.Wrap(CodeInvalidInput, "time_since_last_spray_days must be a non-negative integer", nil)
	}
	return nil
}
