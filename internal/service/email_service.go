package service

import (
	"context"
	"fmt"
	"html"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"
)

// Mailer sends the transactional emails of the app
type Mailer interface {
	SendWelcomeEmail(ctx context.Context, toEmail, toName string) error
	SendPasswordResetEmail(ctx context.Context, toEmail, toName, resetToken string) error
	SendChallengeCompleteEmail(ctx context.Context, toEmail, toName string) error
}

// sesAPI is the part of the SES v2 client the service uses
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client     sesAPI
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
	debug      bool
	log        *zap.Logger
}

// NewEmailService creates a new email service. Without a sender address the
// service is disabled and every send is skipped.
func NewEmailService(ctx context.Context, awsRegion, fromEmail, fromName, appBaseURL string, debug bool, log *zap.Logger) (*EmailService, error) {
	if fromEmail == "" {
		log.Info("email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{debug: debug, log: log}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Info("email service enabled", zap.String("from", fromEmail), zap.String("region", awsRegion))

	return newEmailServiceWithClient(sesv2.NewFromConfig(cfg), fromEmail, fromName, appBaseURL, debug, log), nil
}

func newEmailServiceWithClient(client sesAPI, fromEmail, fromName, appBaseURL string, debug bool, log *zap.Logger) *EmailService {
	return &EmailService{
		client:     client,
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
		debug:      debug,
		log:        log,
	}
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendPasswordResetEmail sends a password reset email with a reset link
func (s *EmailService) SendPasswordResetEmail(ctx context.Context, toEmail, toName, resetToken string) error {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.appBaseURL, resetToken)

	subject := "Redefina sua senha do Corpo Leve"
	htmlBody := fmt.Sprintf(emailLayout, "Redefinição de senha", fmt.Sprintf(`
			<p>Olá %s,</p>
			<p>Recebemos um pedido para redefinir a senha da sua conta Corpo Leve.</p>
			<p style="text-align: center;">
				<a href="%s" class="button">Redefinir senha</a>
			</p>
			<p>Ou copie e cole este link no navegador:</p>
			<p style="word-break: break-all; font-size: 12px; color: #666;">%s</p>
			<p><strong>Este link expira em 1 hora.</strong></p>
			<p>Se você não fez este pedido, ignore este email.</p>`,
		html.EscapeString(toName), resetLink, resetLink))

	textBody := fmt.Sprintf(`Olá %s,

Recebemos um pedido para redefinir a senha da sua conta Corpo Leve.

Use o link abaixo para redefinir sua senha:
%s

Este link expira em 1 hora.

Se você não fez este pedido, ignore este email.
`, toName, resetLink)

	return s.sendEmail(ctx, "password_reset", toEmail, subject, htmlBody, textBody)
}

// SendWelcomeEmail sends a welcome email to new users
func (s *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, toName string) error {
	subject := "Bem-vinda ao Desafio Corpo Leve!"
	htmlBody := fmt.Sprintf(emailLayout, "Bem-vinda ao Corpo Leve!", fmt.Sprintf(`
			<p>Olá %s,</p>
			<p>Sua conta foi criada. Nos próximos 7 dias você terá café da manhã, almoço e jantar planejados para cada dia do desafio.</p>
			<ul>
				<li>Conclua um dia por vez no painel</li>
				<li>Salve suas receitas favoritas</li>
				<li>Gere um cardápio personalizado</li>
			</ul>
			<p style="text-align: center;">
				<a href="%s/login" class="button">Começar agora</a>
			</p>`,
		html.EscapeString(toName), s.appBaseURL))

	textBody := fmt.Sprintf(`Olá %s,

Sua conta foi criada. Nos próximos 7 dias você terá café da manhã, almoço e jantar planejados para cada dia do desafio.

- Conclua um dia por vez no painel
- Salve suas receitas favoritas
- Gere um cardápio personalizado

Comece agora: %s/login
`, toName, s.appBaseURL)

	return s.sendEmail(ctx, "welcome", toEmail, subject, htmlBody, textBody)
}

// SendChallengeCompleteEmail congratulates a user who finished all 7 days
func (s *EmailService) SendChallengeCompleteEmail(ctx context.Context, toEmail, toName string) error {
	subject := "Parabéns! Você completou o Desafio Corpo Leve"
	htmlBody := fmt.Sprintf(emailLayout, "Parabéns!", fmt.Sprintf(`
			<p>Olá %s,</p>
			<p>Você completou o Desafio Corpo Leve!</p>
			<p>7 dias de dedicação, disciplina e amor próprio. Você provou que a transformação é possível! Continue essa jornada de leveza.</p>
			<p style="text-align: center;">
				<a href="%s/recipes" class="button">Ver receitas bônus</a>
			</p>`,
		html.EscapeString(toName), s.appBaseURL))

	textBody := fmt.Sprintf(`Olá %s,

Você completou o Desafio Corpo Leve!

7 dias de dedicação, disciplina e amor próprio. Você provou que a transformação é possível! Continue essa jornada de leveza.

Receitas bônus: %s/recipes
`, toName, s.appBaseURL)

	return s.sendEmail(ctx, "challenge_complete", toEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, kind, toEmail, subject, htmlBody, textBody string) error {
	if !s.enabled {
		s.log.Info("skipping email send (service disabled)", zap.String("kind", kind), zap.String("to", toEmail))
		return nil
	}

	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	if s.debug {
		s.log.Debug("sending email",
			zap.String("kind", kind),
			zap.String("from", fromAddress),
			zap.String("to", toEmail),
			zap.Int("html_bytes", len(htmlBody)),
			zap.Int("text_bytes", len(textBody)))
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	fields := []zap.Field{zap.String("kind", kind), zap.String("to", toEmail)}
	if result != nil && result.MessageId != nil {
		fields = append(fields, zap.String("message_id", *result.MessageId))
	}
	s.log.Info("email sent", fields...)
	return nil
}

// emailLayout wraps a body fragment; arguments are the header title and the body HTML
const emailLayout = `
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: 'Open Sans', Arial, sans-serif; line-height: 1.6; color: #3E3E3E; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #A7D9C9; color: white; padding: 20px; text-align: center; border-radius: 12px 12px 0 0; }
		.content { background-color: #F9F6F1; padding: 30px; border-radius: 0 0 12px 12px; }
		.button { display: inline-block; padding: 12px 30px; background-color: #A7D9C9; color: white; text-decoration: none; border-radius: 12px; margin: 20px 0; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #6B6B6B; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>%s</h1>
		</div>
		<div class="content">%s
		</div>
		<div class="footer">
			<p>Este é um email automático do Corpo Leve. Por favor, não responda.</p>
		</div>
	</div>
</body>
</html>
`
