package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/mealy-app/backend/internal/logging"
)

// sesSender is the slice of the SES client we use, kept as an interface so
// tests can stand in for the AWS API.
type sesSender interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESNotifier sends admin mail through AWS SES.
type SESNotifier struct {
	client  sesSender
	sender  string
	adminTo string
	logger  logging.Logger
}

// NewSESNotifier builds the SES client from the default AWS config chain.
func NewSESNotifier(ctx context.Context, region, sender, adminTo string, logger logging.Logger) (*SESNotifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("aws config load failed: %w", err)
	}
	return &SESNotifier{
		client:  ses.NewFromConfig(cfg),
		sender:  sender,
		adminTo: adminTo,
		logger:  logger,
	}, nil
}

// MealPlanSaved mails the admin about a meal-plan change. Errors are logged
// and swallowed; the triggering request has already succeeded.
func (n *SESNotifier) MealPlanSaved(ctx context.Context, event MealPlanSavedEvent) {
	if n.adminTo == "" {
		return
	}

	subject := "Mealy: Neue Mealplan-Eintragung"
	body := fmt.Sprintf(
		"Admin-Notification: Mealplan wurde aktualisiert.\n\n"+
			"User: %s\nDatum: %s\nUhrzeit: %s\nRezept-ID: %s\nRezept-Name: %s\n\n"+
			"Event: %s\nZeitstempel: %s\n",
		event.UserEmail, event.Day, event.Time, event.RecipeID, event.RecipeName,
		event.ID, event.OccurredAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	)

	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{n.adminTo},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(n.sender),
	}

	if _, err := n.client.SendEmail(ctx, input); err != nil {
		n.logger.Warn(ctx, "admin notification failed", "to", n.adminTo, "event", event.ID, "error", err.Error())
	}
}
