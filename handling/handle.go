package handling

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

// HandleError logs the error and answers with a generic 500. The original
// error comes back so callers can propagate it.
func HandleError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) error {
	logger.Error("An error occurred", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))

	gecho.InternalServerError(w, gecho.Send())
	return err
}
