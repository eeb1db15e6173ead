package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// createdAtLayout is the wire format for user timestamps: yyyy-MM-dd HH:mm:ss.
const createdAtLayout = "2006-01-02 15:04:05"

// JSONTime marshals as "yyyy-MM-dd HH:mm:ss" in request and response bodies.
type JSONTime time.Time

// MarshalJSON implements json.Marshaler
func (t JSONTime) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", time.Time(t).Format(createdAtLayout))), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (t *JSONTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}
	parsed, err := time.Parse(createdAtLayout, s)
	if err != nil {
		return fmt.Errorf("createdAt must match %q: %w", createdAtLayout, err)
	}
	*t = JSONTime(parsed)
	return nil
}

// Time returns the underlying time.Time.
func (t JSONTime) Time() time.Time {
	return time.Time(t)
}

// respondSuccess renders the uniform success envelope, merging any extra
// payload fields into {success, timestamp, message}.
func respondSuccess(c *gin.Context, message string, fields gin.H) {
	body := gin.H{
		"success":   true,
		"timestamp": time.Now().Format(time.RFC3339),
		"message":   message,
	}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// respondError renders the uniform error envelope. Every mapped service
// failure gets the same bad-request status; the envelope, not the status
// code, carries the distinction.
func respondError(c *gin.Context, err error, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success":   false,
		"timestamp": time.Now().Format(time.RFC3339),
		"error":     err.Error(),
		"message":   message,
	})
}
