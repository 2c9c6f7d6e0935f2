package utils

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// Mailer sends notification emails through SES.
type Mailer struct {
	client *ses.Client
	sender string
}

func NewMailer(client *ses.Client, sender string) *Mailer {
	return &Mailer{client: client, sender: sender}
}

func (m *Mailer) send(ctx context.Context, to, subject, body string) error {
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
		Source: aws.String(m.sender),
	}

	_, err := m.client.SendEmail(ctx, input)
	if err != nil {
		log.Printf("SES send error: %v", err)
		return fmt.Errorf("email send failed: %v", err)
	}
	return nil
}

func (m *Mailer) SendMealReminder(ctx context.Context, to, message string) error {
	return m.send(ctx, to, "Meal reminder", message)
}

func (m *Mailer) SendHealthAlert(ctx context.Context, to, message string) error {
	subject := "A note about your recent meals"
	body := fmt.Sprintf("%s\n\nOpen the dashboard for the full summary.", message)
	return m.send(ctx, to, subject, body)
}
