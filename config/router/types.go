package router

import (
	"io"

	"github.com/gin-gonic/gin"
)

type RequestContext = gin.Context

type MiddlewareFunc = gin.HandlerFunc

// Page is a rendered HTML document. gomponents nodes satisfy it.
type Page interface {
	Render(w io.Writer) error
}

// ServiceResult is what every handler returns. Errors are written as
// {"error": Message}; successes as {"message": Message, <DataKey>: Data},
// with DataKey defaulting to "data" and omitted when Data is nil. A non-nil
// Page is written as text/html instead.
type ServiceResult struct {
	StatusCode int
	Data       any
	DataKey    string
	Message    string
	Page       Page
}

type HandlerFunction func(*RequestContext) *ServiceResult

type RESTController struct {
	name         string
	mountPoint   string
	handlerCount int
	prepare      func(*RouterService, *RESTController)
}

func (result *ServiceResult) ToJSON() gin.H {
	if result.IsError() {
		return gin.H{"error": result.Message}
	}

	body := gin.H{"message": result.Message}
	if result.Data != nil {
		key := result.DataKey
		if key == "" {
			key = "data"
		}
		body[key] = result.Data
	}
	return body
}

func (result *ServiceResult) IsError() bool {
	return result.StatusCode >= 400
}
