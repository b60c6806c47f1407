package auth

import (
	"net/http"

	"kalini_server/lib"

	"github.com/MonkyMars/gecho"
)

// HandleMe returns the authenticated user's profile.
func (ar *AuthRoutesManager) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, err := lib.ExtractClaims(r, ar.authService.GetAccessTokenSecret())
	if err != nil {
		gecho.Unauthorized(w,
			gecho.WithMessage("error.auth.invalidOrMissingAccessToken"),
			gecho.Send(),
		)
		return
	}

	user, err := ar.authService.GetUserByID(claims.Sub)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w,
				gecho.WithMessage("error.auth.userNotFound"),
				gecho.Send(),
			)
			return
		}

		ar.logger.Error("Failed to load user for /auth/me", gecho.Field("error", err), gecho.Field("user_id", claims.Sub))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.auth.failedToLoadUser"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(user),
		gecho.Send(),
	)
}
