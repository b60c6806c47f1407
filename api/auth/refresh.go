package auth

import (
	"net/http"

	"kalini_server/lib"

	"github.com/MonkyMars/gecho"
)

// HandleRefresh rotates the token pair. The old refresh token's jti is
// blacklisted by the service, so a replay of it fails.
func (ar *AuthRoutesManager) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	refreshToken, err := lib.GetCookieValue(lib.RefreshCookieName, r)
	if err != nil {
		gecho.Unauthorized(w,
			gecho.WithMessage("error.auth.missingRefreshToken"),
			gecho.Send(),
		)
		return
	}

	response, err := ar.authService.RefreshAccessToken(refreshToken)
	if err != nil {
		ar.logger.Warn("Refresh token rejected", gecho.Field("error", err))
		lib.ClearCookie(lib.AccessCookieName, w)
		lib.ClearCookie(lib.RefreshCookieName, w)
		gecho.Unauthorized(w,
			gecho.WithMessage("error.auth.invalidRefreshToken"),
			gecho.Send(),
		)
		return
	}

	lib.SetCookie(lib.RefreshCookieName, response.RefreshToken, ar.authService.GetRefreshTokenExpiration(), w)
	lib.SetCookie(lib.AccessCookieName, response.AccessToken, ar.authService.GetAccessTokenExpiration(), w)

	gecho.Success(w,
		gecho.WithMessage("success.auth.tokenRefreshed"),
		gecho.WithData(response.User),
		gecho.Send(),
	)
}
