package service

import (
	"context"
	"errors"
	"testing"

	"go_5_flashcard_srs/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESMailer_Send(t *testing.T) {
	cfg := &config.SESConfig{From: "noreply@example.com"}

	t.Run("正常系: 件名と本文をUTF-8で送る", func(t *testing.T) {
		client := &fakeSES{}
		m := newSESMailerWithClient(client, cfg)

		require.NoError(t, m.Send(context.Background(), "user@example.com", "Review time", "3 cards due"))

		require.NotNil(t, client.input)
		assert.Equal(t, "noreply@example.com", aws.ToString(client.input.FromEmailAddress))
		assert.Equal(t, []string{"user@example.com"}, client.input.Destination.ToAddresses)
		assert.Equal(t, "Review time", aws.ToString(client.input.Content.Simple.Subject.Data))
		assert.Equal(t, "3 cards due", aws.ToString(client.input.Content.Simple.Body.Text.Data))
		assert.Equal(t, "UTF-8", aws.ToString(client.input.Content.Simple.Body.Text.Charset))
	})

	t.Run("異常系: API エラーを返す", func(t *testing.T) {
		sesErr := errors.New("throttled")
		m := newSESMailerWithClient(&fakeSES{err: sesErr}, cfg)

		err := m.Send(context.Background(), "user@example.com", "s", "b")
		assert.ErrorIs(t, err, sesErr)
	})
}

func TestNewMailer(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: log", func(t *testing.T) {
		m, err := NewMailer(ctx, &config.Config{Mailer: config.MailerConfig{Type: "log"}})
		require.NoError(t, err)
		assert.IsType(t, &LogMailer{}, m)
	})

	t.Run("正常系: smtp", func(t *testing.T) {
		m, err := NewMailer(ctx, &config.Config{Mailer: config.MailerConfig{Type: "smtp"}})
		require.NoError(t, err)
		assert.IsType(t, &SmtpMailer{}, m)
	})

	t.Run("異常系: SES の静的認証情報が無い", func(t *testing.T) {
		_, err := NewMailer(ctx, &config.Config{
			Mailer: config.MailerConfig{Type: "ses"},
			SES:    config.SESConfig{Region: "ap-northeast-1", AuthType: "static_credentials"},
		})
		assert.Error(t, err)
	})

	t.Run("正常系: SES 静的認証情報", func(t *testing.T) {
		m, err := NewMailer(ctx, &config.Config{
			Mailer: config.MailerConfig{Type: "ses"},
			SES:    config.SESConfig{Region: "ap-northeast-1", AuthType: "static_credentials", AccessKeyID: "AKIA", SecretAccessKey: "secret"},
		})
		require.NoError(t, err)
		assert.IsType(t, &SESMailer{}, m)
	})
}
