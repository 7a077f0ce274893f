package respond

import (
	"github.com/gin-gonic/gin"

	"resume-studio/internal/shared/validation"
)

// BindJSON decodes the request body into dst and runs its validate tags.
// On failure it writes a 400 and returns false.
func BindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		BadRequest(c, "invalid JSON body", err.Error())
		return false
	}
	if err := validation.Struct(dst); err != nil {
		details := gin.H{"fields": validation.Messages(err)}
		if missing := validation.MissingFields(err); len(missing) > 0 {
			details["missing"] = missing
			BadRequest(c, "Missing required fields", details)
			return false
		}
		BadRequest(c, "invalid request", details)
		return false
	}
	return true
}
