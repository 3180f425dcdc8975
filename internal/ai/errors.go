package ai

import "github.com/kiranshivaraju/reportaudit/pkg/models"

// Re-exported so callers can match provider failures without importing models.
var (
	ErrMissingCredential   = models.ErrMissingCredential
	ErrProviderUnavailable = models.ErrProviderUnavailable
	ErrInferenceTimeout    = models.ErrInferenceTimeout
	ErrInvalidResponse     = models.ErrInvalidResponse
)
