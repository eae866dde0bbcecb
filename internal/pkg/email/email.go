package email

import (
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"
)

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// Service sends placement emails over SMTP. Without credentials it runs in
// development mode: every send is logged and reported as success.
type Service struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewService creates a new email service
func NewService(config SMTPConfig, logger zerolog.Logger) *Service {
	return &Service{
		config: config,
		logger: logger,
	}
}

// SendApplicationSubmitted confirms a submitted application
func (s *Service) SendApplicationSubmitted(to, studentName, companyName, jobRole string) error {
	subject := fmt.Sprintf("Application Submitted - %s", companyName)
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Application Submitted</h2>
				<p>Dear %s,</p>
				<p>Your application for the following position has been submitted successfully:</p>
				<div style="background: #f9fafb; padding: 20px; border-radius: 8px; margin: 20px 0;">
					<p><strong>Company:</strong> %s</p>
					<p><strong>Position:</strong> %s</p>
				</div>
				<p>You will be notified as your application progresses through the selection rounds.</p>
				<p>Best regards,<br>The Placement Cell</p>
			</div>
		</body>
		</html>
	`, studentName, companyName, jobRole)

	return s.sendHTMLEmail(to, subject, body)
}

// SendShortlistedEmail announces a round promotion
func (s *Service) SendShortlistedEmail(to, studentName, companyName, jobRole string, round int) error {
	subject := fmt.Sprintf("Shortlisted - %s", companyName)
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #2563eb;">You Have Been Shortlisted!</h2>
				<p>Dear %s,</p>
				<p>Congratulations! You have been shortlisted for <strong>Round %d</strong> of the selection process:</p>
				<div style="background: #f9fafb; padding: 20px; border-radius: 8px; margin: 20px 0;">
					<p><strong>Company:</strong> %s</p>
					<p><strong>Position:</strong> %s</p>
				</div>
				<p>Keep an eye on your notifications for the round schedule.</p>
				<p>Best regards,<br>The Placement Cell</p>
			</div>
		</body>
		</html>
	`, studentName, round, companyName, jobRole)

	return s.sendHTMLEmail(to, subject, body)
}

// SendSelectedEmail announces a final selection
func (s *Service) SendSelectedEmail(to, studentName, companyName, jobRole string, packageCTC float64) error {
	subject := "Congratulations! You're SELECTED!"
	pkg := "N/A"
	if packageCTC > 0 {
		pkg = fmt.Sprintf("%.1f LPA", packageCTC/100000)
	}

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #10b981;">CONGRATULATIONS!</h2>
				<p>Dear %s,</p>
				<p>We are thrilled to inform you that you have been <strong>SELECTED</strong>!</p>
				<div style="background: #f9fafb; padding: 20px; border-radius: 8px; margin: 20px 0; border: 2px solid #10b981;">
					<p><strong>Company:</strong> %s</p>
					<p><strong>Position:</strong> %s</p>
					<p><strong>Package:</strong> %s</p>
				</div>
				<p>The placement office will contact you with the next steps.</p>
				<p>Best regards,<br>The Placement Cell</p>
			</div>
		</body>
		</html>
	`, studentName, companyName, jobRole, pkg)

	return s.sendHTMLEmail(to, subject, body)
}

// SendRejectedEmail informs a student their application did not go further
func (s *Service) SendRejectedEmail(to, studentName, companyName, jobRole string) error {
	subject := "Application Update"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Application Update</h2>
				<p>Dear %s,</p>
				<p>Thank you for your interest in the <strong>%s</strong> position at <strong>%s</strong>.
				After careful consideration, we regret to inform you that your application will not be moving forward.</p>
				<p>Please do not be discouraged. Many more opportunities are on the way, and your placement cell is here to help you prepare.</p>
				<p>Best regards,<br>The Placement Cell</p>
			</div>
		</body>
		</html>
	`, studentName, jobRole, companyName)

	return s.sendHTMLEmail(to, subject, body)
}

// sendHTMLEmail sends an HTML email over plain SMTP
func (s *Service) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	// Development mode: no credentials, log and report success
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("subject", subject).
			Msg("SMTP credentials not configured - email not sent")
		return nil
	}

	auth := smtp.PlainAuth(
		"",
		s.config.Username,
		s.config.Password,
		s.config.Host,
	)

	headers := map[string]string{
		"From":         fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail),
		"To":           toEmail,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}

	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + htmlBody

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	err := smtp.SendMail(
		serverAddress,
		auth,
		s.config.FromEmail,
		[]string{toEmail},
		[]byte(message),
	)
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
