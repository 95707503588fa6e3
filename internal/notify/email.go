package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// Email delivers messages as plain-text emails via Amazon SES. It is an
// optional second channel alongside Telegram.
type Email struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	toEmail   string
	enabled   bool
}

// NewEmail creates an SES-backed notifier. When no from address is
// configured the service is created disabled and skips all sends.
func NewEmail(awsRegion, fromEmail, fromName, toEmail string) (*Email, error) {
	if fromEmail == "" || toEmail == "" {
		log.Println("Email notifications disabled: NOTIFY_FROM_EMAIL or NOTIFY_TO_EMAIL not configured")
		return &Email{enabled: false}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email notifications enabled: from=%s, to=%s, region=%s", fromEmail, toEmail, awsRegion)
	return &Email{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		toEmail:   toEmail,
		enabled:   true,
	}, nil
}

// IsEnabled returns whether the email notifier is configured
func (e *Email) IsEnabled() bool {
	return e.enabled
}

// Send emails the message to the operator address
func (e *Email) Send(ctx context.Context, text string) error {
	if !e.enabled {
		return nil
	}

	fromAddress := e.fromEmail
	if e.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", e.fromName, e.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{e.toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String("Doorman"),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    aws.String(text),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := e.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", e.toEmail, err)
	}
	return nil
}
