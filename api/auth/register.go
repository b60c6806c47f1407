package auth

import (
	"net/http"

	"kalini_server/lib"
	"kalini_server/structs"

	"github.com/MonkyMars/gecho"
)

func (ar *AuthRoutesManager) HandleRegister(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.RegisterRequest](r)
	if err != nil {
		ar.logger.Warn("Failed to extract and validate request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.auth.checkRegistrationInformation"), gecho.WithData(err), gecho.Send())
		return
	}

	user, err := ar.authService.Register(body)
	if err != nil {
		userMessage := lib.GetUserMessage(err)

		// Unique violations return 409, already logged as warn in the service
		if lib.IsUniqueViolation(err) {
			gecho.Conflict(w, gecho.WithMessage(userMessage), gecho.Send())
			return
		}

		gecho.InternalServerError(w, gecho.WithMessage(userMessage), gecho.Send())
		return
	}

	user.PasswordHash = ""

	go func() {
		verification, err := ar.authService.CreateEmailVerification(user.Id)
		if err != nil {
			ar.logger.Error("Failed to create email verification", gecho.Field("error", err), gecho.Field("user_id", user.Id))
			return
		}

		if err := ar.emailService.SendVerificationEmail(user, verification); err != nil {
			ar.logger.Error("Failed to send verification email", gecho.Field("error", err), gecho.Field("user_id", user.Id))
			return
		}
		ar.logger.Debug("Verification email sent", gecho.Field("user_id", user.Id))
	}()

	gecho.Success(w,
		gecho.WithMessage("success.auth.userRegistered"),
		gecho.Send(),
	)
}
