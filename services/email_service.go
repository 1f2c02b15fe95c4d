// File: /services/email_service.go
package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"fitlink-api/config"
)

type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
}

func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	return &EmailService{
		config: cfg,
		dialer: dialer,
	}
}

// SendWelcomeEmail greets a freshly registered user.
func (es *EmailService) SendWelcomeEmail(email, name string) error {
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Bem-vindo ao FitLink</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
    <div style="max-width: 600px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 30px;">
        <h1 style="color: #00bc7d;">Bem-vindo, %s!</h1>
        <p>Sua conta no FitLink foi criada com sucesso.</p>
        <p>Encontre atividades perto de você, participe, faça check-in e acumule conquistas.</p>
        <p style="color: #888; font-size: 12px;">Se você não criou esta conta, ignore este email.</p>
    </div>
</body>
</html>`, name)

	return es.send(email, "FitLink - Bem-vindo!", htmlBody)
}

// SendAchievementEmail notifies a user about a newly earned achievement.
func (es *EmailService) SendAchievementEmail(email, name, achievement string) error {
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Nova conquista</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
    <div style="max-width: 600px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 30px;">
        <h1 style="color: #00bc7d;">Parabéns, %s! 🏅</h1>
        <p>Você acaba de desbloquear a conquista <strong>%s</strong>.</p>
        <p>Continue participando de atividades para ganhar XP e subir de nível.</p>
    </div>
</body>
</html>`, name, achievement)

	return es.send(email, "FitLink - Nova conquista desbloqueada", htmlBody)
}

func (es *EmailService) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
