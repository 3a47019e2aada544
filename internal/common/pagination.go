package common

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// GetPaginationParams extracts pagination parameters from Gin context.
func GetPaginationParams(c *gin.Context) (page, pageSize int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	if err != nil || page <= 0 {
		page = DefaultPage
	}

	pageSize, err = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(DefaultPageSize)))
	if err != nil || pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// Offset returns the row offset of a 1-based page.
func Offset(page, pageSize int) int {
	if page <= 0 {
		return 0
	}
	return (page - 1) * pageSize
}

// ParseUUIDParam reads a UUID path parameter, answering 400 itself when it
// is malformed. The boolean is false when the handler should stop.
func ParseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondWithError(c, ErrBadRequest.WithDetails("Invalid "+name+" format."))
		return uuid.Nil, false
	}
	return id, true
}
