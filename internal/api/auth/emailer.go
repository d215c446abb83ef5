package auth

import (
	"fmt"
	"net/smtp"

	"inventory-app/config"
)

// SendVerificationEmail mails the account-verification link. With no
// SMTP host configured the link is only printed, which is enough for
// local development.
func SendVerificationEmail(to string, token string) error {
	link := fmt.Sprintf("%s/verify?token=%s", config.APP_BASE_URL, token)

	if config.SMTP_HOST == "" {
		fmt.Println("📨 Verification link:", link)
		return nil
	}

	subject := "Verify your studio inventory account"
	body := fmt.Sprintf("Click the following link to verify your studio inventory account:\n\n%s", link)

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + config.SMTP_FROM + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", config.SMTP_FROM, config.SMTP_PASSWORD, config.SMTP_HOST)
	err := smtp.SendMail(config.SMTP_HOST+":"+config.SMTP_PORT, auth, config.SMTP_FROM, []string{to}, message)
	if err != nil {
		fmt.Println("❌ SMTP error:", err)
	}
	return err
}
