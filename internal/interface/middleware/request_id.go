package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/oksasatya/shop-admin-dashboard/pkg/response"
)

const (
	HeaderRequestID = "X-Request-ID"
	CtxRequestIDKey = response.CtxRequestIDKey
)

// RequestIDMiddleware puts a request_id into the Gin context and echoes it
// in the response. A well formed incoming X-Request-ID is reused so ids
// survive a proxy hop.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(CtxRequestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}
