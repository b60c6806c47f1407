package subscriptions

import (
	"net/http"

	"kalini_server/lib"
	"kalini_server/structs"

	"github.com/MonkyMars/gecho"
)

func (srm *SubscriptionRoutesManager) Subscribe(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.SubscribeRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.subscriptions.invalidRequestBody"),
			gecho.WithData(err),
			gecho.Send(),
		)
		return
	}

	subscription, err := srm.subscriptionService.Subscribe(r.Context(), body.Email)
	if err != nil {
		if lib.IsUniqueViolation(err) {
			gecho.Conflict(w,
				gecho.WithMessage("error.subscriptions.alreadySubscribed"),
				gecho.Send(),
			)
			return
		}

		srm.logger.Error("Failed to subscribe", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.subscriptions.subscribeFailed"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.subscriptions.subscribed"),
		gecho.WithData(map[string]string{"email": subscription.Email}),
		gecho.Send(),
	)
}

func (srm *SubscriptionRoutesManager) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.SubscribeRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.subscriptions.invalidRequestBody"),
			gecho.WithData(err),
			gecho.Send(),
		)
		return
	}

	if err := srm.subscriptionService.Unsubscribe(r.Context(), body.Email); err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w,
				gecho.WithMessage("error.subscriptions.notFound"),
				gecho.Send(),
			)
			return
		}

		srm.logger.Error("Failed to unsubscribe", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.subscriptions.unsubscribeFailed"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.subscriptions.unsubscribed"),
		gecho.Send(),
	)
}
