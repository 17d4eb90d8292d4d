package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go_5_flashcard_srs/internal/config"
	"go_5_flashcard_srs/internal/middleware"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// sesAPI は SESMailer が使う sesv2.Client のメソッド
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESMailer は AWS SES を使ってメールを送信する実装です
type SESMailer struct {
	client sesAPI
	cfg    *config.SESConfig
}

// NewSESMailer は auth_type に応じて認証方法を切り替えてSESクライアントを生成します
func NewSESMailer(ctx context.Context, cfg *config.SESConfig) (*SESMailer, error) {
	awsCfgOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}

	switch cfg.AuthType {
	case "static_credentials":
		slog.Info("Configuring SES with static credentials.")
		if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
			return nil, errors.New("ses: auth_type is 'static_credentials' but access_key_id or secret_access_key is missing")
		}
		creds := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
		awsCfgOpts = append(awsCfgOpts, awsconfig.WithCredentialsProvider(creds))
	case "iam_role":
		// ECS Task Role / EC2 Instance Profile は SDK が自動で探す
		slog.Info("Configuring SES with IAM Role credentials.")
	default:
		slog.Warn("Unknown SES auth_type specified, defaulting to IAM Role.", "type", cfg.AuthType)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsCfgOpts...)
	if err != nil {
		return nil, fmt.Errorf("ses: load AWS config: %w", err)
	}

	return newSESMailerWithClient(sesv2.NewFromConfig(awsCfg), cfg), nil
}

func newSESMailerWithClient(client sesAPI, cfg *config.SESConfig) *SESMailer {
	return &SESMailer{client: client, cfg: cfg}
}

// Send は AWS SES を使用してメールを送信します
func (m *SESMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := middleware.GetLogger(ctx)

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(m.cfg.From),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    aws.String(body),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		logger.Error("Failed to send email via SES", "error", err, "to", to)
		return fmt.Errorf("ses send: %w", err)
	}

	logger.Info("Email sent successfully via SES", "to", to, "subject", subject)
	return nil
}
