package email

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const charset = "UTF-8"

type SES struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	sender string
}

func NewSES(awsConfig aws.Config, sender string) *SES {
	return &SES{ses: ses.NewFromConfig(awsConfig), sender: sender}
}

func (s *SES) Deliver(ctx context.Context, message Message) error {
	input := &ses.SendEmailInput{
		Source: &s.sender,
		Destination: &types.Destination{
			CcAddresses: []string{},
			ToAddresses: message.To,
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(message.Subject), Charset: aws.String(charset)},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(message.HTML), Charset: aws.String(charset)},
				Text: &types.Content{Data: aws.String(message.Text), Charset: aws.String(charset)},
			},
		},
	}
	if message.ReplyTo != "" {
		input.ReplyToAddresses = []string{message.ReplyTo}
	}
	_, err := s.ses.SendEmail(ctx, input)
	return err
}
