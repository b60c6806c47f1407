package auth

import (
	"fmt"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// HandleVerifyEmail confirms an email verification token and redirects
// to the storefront with the outcome.
func (ar *AuthRoutesManager) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	token := params.Get("token")
	userID := params.Get("user_id")

	if token == "" || userID == "" {
		gecho.BadRequest(w, gecho.WithMessage("error.auth.missingTokenOrUserId"), gecho.Send())
		return
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		ar.logger.Warn("Invalid user_id format", gecho.Field("error", err), gecho.Field("user_id", userID))
		gecho.BadRequest(w, gecho.WithMessage("error.auth.invalidUserIdFormat"), gecho.Send())
		return
	}

	if err := ar.authService.VerifyEmail(userUUID, token); err != nil {
		ar.logger.Warn("Email verification failed", gecho.Field("error", err), gecho.Field("user_id", userID))
		http.Redirect(w, r, verifyRedirectURL(ar.cfg.Server.FrontendURL, "err"), http.StatusSeeOther)
		return
	}

	ar.logger.Info("Email verified successfully", gecho.Field("user_id", userID))
	http.Redirect(w, r, verifyRedirectURL(ar.cfg.Server.FrontendURL, "ok"), http.StatusSeeOther)
}

func verifyRedirectURL(frontendURL, status string) string {
	return fmt.Sprintf("%s/email-verified?status=%s", frontendURL, status)
}
