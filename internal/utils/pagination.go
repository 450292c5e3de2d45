package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/crewdeck/crewdeck-api/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// PaginationResponse represents the pagination metadata in API responses
type PaginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// GetPaginationParams extracts and validates pagination parameters from
// the request. Out-of-range values fall back to the defaults rather
// than erroring.
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.MinPageSize)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageSize)))

	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// GetLimitParam reads a bare ?limit= query value, returning fallback
// when it is absent. Zero is a valid value (callers treat it as "no
// limit"); negative or non-numeric values return ok=false.
func GetLimitParam(c *gin.Context, fallback int) (int, bool) {
	limitStr := c.Query("limit")
	if limitStr == "" {
		return fallback, true
	}
	parsed, err := strconv.Atoi(limitStr)
	if err != nil || parsed < 0 {
		return 0, false
	}
	return parsed, true
}
