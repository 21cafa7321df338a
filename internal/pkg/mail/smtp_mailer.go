package mail

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/seguraep/acm-reportes/internal/pkg/env"
)

// SendMail sends an email via SMTP. Password-reset delivery is best-effort;
// callers log failures instead of surfacing them to the requester so the
// endpoint does not leak which addresses exist.
func SendMail(to string, subject string, body string) error {
	host := env.GetEnv("SMTP_HOST", "")
	port := env.GetEnv("SMTP_PORT", "")
	username := env.GetEnv("SMTP_USERNAME", "")
	password := env.GetEnv("SMTP_PASSWORD", "")
	sender := env.GetEnv("SMTP_SENDER", "")

	if sender == "" {
		sender = fmt.Sprintf("no-reply@%s", "localhost")
		log.Printf("SMTP_SENDER not set, using default sender: %s", sender)
	}

	var auth smtp.Auth
	if username != "" && password != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	addr := fmt.Sprintf("%s:%s", host, port)

	msg := []byte(
		fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", sender, to, subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
			body,
	)

	err := smtp.SendMail(addr, auth, sender, []string{to}, msg)
	if err != nil {
		log.Printf("SMTP send error: %v", err)
	} else {
		log.Printf("Email sent to %s via %s", to, addr)
	}
	return err
}

// SendPasswordReset mails the reset token to the user.
func SendPasswordReset(to, token string) error {
	baseURL := env.GetEnv("APP_PUBLIC_URL", "http://localhost:4000")
	body := fmt.Sprintf(
		"<p>Ha solicitado restablecer su contraseña.</p>"+
			"<p><a href=\"%s/restablecer-contrasena?token=%s\">Restablecer contraseña</a></p>"+
			"<p>Si no fue usted, ignore este mensaje.</p>",
		baseURL, token,
	)
	return SendMail(to, "Recuperación de contraseña", body)
}
