package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Envelope is the error body shared by every failing response.
type Envelope struct {
	StatusCode     int      `json:"status_code"`
	Message        string   `json:"message"`
	RequestPayload any      `json:"request_payload,omitempty"`
	Errors         []string `json:"errors,omitempty"`
}

// BindingMessage renders a request-shape failure from gin's binder as the
// per-field `Field "<path>" - <msg>` format.
func BindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("Field %q - failed on the %q rule", fieldPath(fe), fe.Tag()))
		}
		return strings.Join(msgs, ", ")
	}
	var terr *json.UnmarshalTypeError
	if errors.As(err, &terr) {
		return fmt.Sprintf("Field %q - expected %s", terr.Field, terr.Type)
	}
	return "Malformed request body"
}

// fieldPath strips the root struct name from the validator namespace, so
// CreateOrderRequest.Products[0].Quantity becomes Products[0].Quantity.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// Recovery turns a panic into the generic 500 envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error",
			"detail":  fmt.Sprint(recovered),
		})
	})
}
