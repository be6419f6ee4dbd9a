package services

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/sirupsen/logrus"
)

// EmailService sends notification emails via Amazon SES. When
// SES_FROM_EMAIL is not configured the service stays disabled and every
// send is a silent no-op, so local setups need no AWS credentials.
type EmailService struct {
	client    *sesv2.Client
	fromEmail string
	enabled   bool
}

var mailer = &EmailService{}

func InitMailer(ctx context.Context) error {
	fromEmail := os.Getenv("SES_FROM_EMAIL")

	if fromEmail == "" {
		logrus.Info("email service disabled: SES_FROM_EMAIL not configured")
		return nil
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(os.Getenv("AWS_REGION")),
	)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	mailer = &EmailService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		enabled:   true,
	}

	logrus.WithField("from", fromEmail).Info("email service enabled")
	return nil
}

// NotifyMemberJoined tells the family creator that someone joined with the
// family's code. Failures are logged, never surfaced to the joining user.
func NotifyMemberJoined(ctx context.Context, creatorEmail, creatorName, memberName, familyName string) {
	if !mailer.enabled {
		return
	}

	subject := fmt.Sprintf("%s entrou na família %s", memberName, familyName)
	body := fmt.Sprintf(
		"Olá %s,\n\n%s acabou de entrar na família %s usando o código de convite.\n",
		creatorName, memberName, familyName,
	)

	_, err := mailer.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &mailer.fromEmail,
		Destination: &sestypes.Destination{
			ToAddresses: []string{creatorEmail},
		},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: &subject},
				Body: &sestypes.Body{
					Text: &sestypes.Content{Data: &body},
				},
			},
		},
	})

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"to":    creatorEmail,
			"error": err.Error(),
		}).Error("Failed to send member joined email")
	}
}
