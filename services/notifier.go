package services

import (
	"context"
	"fmt"
	"time"

	"github.com/eventhub-id/eventhub-api/models"
	"github.com/eventhub-id/eventhub-api/utils"
	"go.uber.org/zap"
)

const activationSubject = "Activate your EventHub account"

// VerificationNotifier delivers the email verification link to a user
type VerificationNotifier interface {
	SendVerification(ctx context.Context, user *models.User, token string, referralBonus bool) error
}

// EmailNotifier sends the activation email directly and falls back to the
// mail queue when delivery fails
type EmailNotifier struct {
	Mailer        utils.Mailer
	Queue         *utils.MailQueue
	ActivationURL string
	TTL           time.Duration
}

// SendVerification renders and dispatches the activation email. It only
// returns an error when the email could neither be sent nor queued.
func (n *EmailNotifier) SendVerification(ctx context.Context, user *models.User, token string, referralBonus bool) error {
	body, err := utils.RenderActivationEmail(utils.NewActivationEmail(user.Fullname, n.ActivationURL, token, n.TTL, referralBonus))
	if err != nil {
		return err
	}

	sendErr := n.Mailer.Send(user.Email, activationSubject, body)
	if sendErr == nil {
		utils.LogInfo("Verification email sent to %s", user.Email)
		return nil
	}

	utils.Logger().Warn("verification email failed, queueing for retry",
		zap.Uint("user_id", user.ID), zap.Error(sendErr))
	if n.Queue == nil {
		return fmt.Errorf("send verification email: %w", sendErr)
	}
	if err := n.Queue.EnqueueEmail(ctx, utils.EmailPayload{
		To:       user.Email,
		Subject:  activationSubject,
		BodyHTML: body,
	}); err != nil {
		return fmt.Errorf("queue verification email: %w (send error: %v)", err, sendErr)
	}
	return nil
}
