package notifier

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/labstack/gommon/log"
)

type SESOptions struct {
	Region          string
	AccessKey       string
	SecretAccessKey string
	Sender          string
	Receivers       []string
}

type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type SESNotifier struct {
	client    sesAPI
	sender    string
	receivers []string
}

func NewSESNotifier(ctx context.Context, opts SESOptions) (*SESNotifier, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKey != "" && opts.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SESNotifier{
		client:    sesv2.NewFromConfig(awsCfg),
		sender:    opts.Sender,
		receivers: opts.Receivers,
	}, nil
}

func (n *SESNotifier) Notify(ctx context.Context, subject, body string) error {
	_, err := n.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(n.sender),
		Destination:      &types.Destination{ToAddresses: n.receivers},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	log.Infof("[Notifier] Email sent to %d receivers", len(n.receivers))
	return nil
}
