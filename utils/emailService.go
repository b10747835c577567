package utils

import (
	"fmt"
	"net/smtp"

	"learncraft/config"
)

func sendMail(to, subjectLine, body string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password // App password

	if from == "" || password == "" {
		// email is optional in development setups
		return fmt.Errorf("email sender not configured")
	}

	subject := "Subject: " + subjectLine + "\nMIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	message := []byte(subject + "\n" + body)

	auth := smtp.PlainAuth("", from, password, smtpHost)
	return smtp.SendMail(smtpHost+":"+smtpPort, auth, from, []string{to}, message)
}

// SendWelcomeEmail sends a greeting after registration.
func SendWelcomeEmail(email, firstName string) error {
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Welcome to LearnCraft!</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">Your account has been created. Browse the course catalog, work through lectures and quizzes, and track your progress on your dashboard.</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">Happy Learning!</p>
				</div>
			</body>
		</html>
	`, firstName)

	return sendMail(email, "Welcome to LearnCraft", body)
}

// SendInactivityReminderEmail nudges a student who has unfinished courses
// and no recent activity.
func SendInactivityReminderEmail(email, firstName string) error {
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">We miss you!</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">You have courses in progress waiting for you. Pick up where you left off and keep your streak going.</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">LearnCraft Team</p>
				</div>
			</body>
		</html>
	`, firstName)

	return sendMail(email, "Continue your LearnCraft courses", body)
}
