package services

import (
	"context"
	"strings"

	"github.com/MonkyMars/gecho"

	"kalini_server/database"
	"kalini_server/lib"
	"kalini_server/structs/tables"
)

type SubscriptionService struct {
	logger       *gecho.Logger
	db           *database.DB
	emailService *EmailService
}

func NewSubscriptionService(logger *gecho.Logger, db *database.DB, emailService *EmailService) *SubscriptionService {
	return &SubscriptionService{
		logger:       logger,
		db:           db,
		emailService: emailService,
	}
}

// Subscribe adds the address to the newsletter list. An inactive row is
// reactivated instead of duplicated; an active one is a conflict.
func (ss *SubscriptionService) Subscribe(ctx context.Context, email string) (*tables.Subscription, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := database.Query[tables.Subscription](ss.db).Where("email", email).First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	if existing != nil {
		if existing.IsActive {
			return nil, lib.ErrConflict
		}

		updates := map[string]any{"is_active": true}
		if _, err := database.Query[tables.Subscription](ss.db).Where("id", existing.Id).Update(ctx, updates); err != nil {
			ss.logger.Error("Failed to reactivate subscription", gecho.Field("error", err))
			return nil, lib.MapPgError(err)
		}
		existing.IsActive = true

		go ss.emailService.SendNewsletterWelcome(existing.Email)
		return existing, nil
	}

	subscription := &tables.Subscription{Email: email, IsActive: true}
	subscription, err = database.Query[tables.Subscription](ss.db).Insert(ctx, subscription)
	if err != nil {
		ss.logger.Error("Failed to create subscription", gecho.Field("error", err))
		return nil, lib.MapPgError(err)
	}

	go ss.emailService.SendNewsletterWelcome(subscription.Email)
	return subscription, nil
}

// Unsubscribe deactivates the row so a later subscribe reactivates the same
// record
func (ss *SubscriptionService) Unsubscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	subscription, err := database.Query[tables.Subscription](ss.db).Where("email", email).First(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}
	if subscription == nil {
		return lib.ErrNotFound
	}

	updates := map[string]any{"is_active": false}
	if _, err := database.Query[tables.Subscription](ss.db).Where("id", subscription.Id).Update(ctx, updates); err != nil {
		ss.logger.Error("Failed to deactivate subscription", gecho.Field("error", err))
		return lib.MapPgError(err)
	}

	return nil
}
