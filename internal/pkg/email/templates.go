package email

import (
	"fmt"
	"html/template"
	"strings"
)

// VerificationMessage builds the signup verification email
func VerificationMessage(to, firstName, verificationLink string) Message {
	return Message{
		To:      to,
		Subject: "Verify Your Email",
		HTML: fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto;">
			<h2>Welcome to Our Platform, %s!</h2>
			<p>Thank you for signing up! Please verify your email to activate your account.</p>
			<div style="text-align: center; margin: 20px 0;">
				<a href="%s" style="display: inline-block; padding: 12px 20px; background-color: #007bff; color: #fff; text-decoration: none; border-radius: 5px;">Verify Your Email</a>
			</div>
			<p>If you did not sign up, you can safely ignore this email. This verification link will expire in 24 hours.</p>
			<p>Regards,<br><strong>Real Estate Team</strong></p>
		</div>`, template.HTMLEscapeString(firstName), verificationLink),
	}
}

// PasswordResetMessage builds the password reset email
func PasswordResetMessage(to, resetLink string) Message {
	return Message{
		To:      to,
		Subject: "Password Reset Request",
		HTML: fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto;">
			<h2>Password Reset Request</h2>
			<p>You requested a password reset. Please click the button below to reset your password.</p>
			<div style="text-align: center; margin: 20px 0;">
				<a href="%s" style="display: inline-block; padding: 12px 20px; background-color: #007bff; color: #fff; text-decoration: none; border-radius: 5px;">Reset Password</a>
			</div>
			<p>If you did not request a password reset, please ignore this email. This link will expire in 1 hour.</p>
			<p>Regards,<br><strong>Real Estate Team</strong></p>
		</div>`, resetLink),
	}
}

// AppointmentConfirmationMessage builds the confirmation sent to a
// requester after their appointment is created
func AppointmentConfirmationMessage(to, name, date, timeSlot, note string) Message {
	if note == "" {
		note = "No additional message"
	}
	return Message{
		To:      to,
		Subject: "Appointment Confirmation",
		HTML: fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto;">
			<h1>Appointment Confirmation</h1>
			<p>Dear %s,</p>
			<p>Your appointment has been scheduled for %s at %s.</p>
			<p>Message: %s</p>
			<p>We will contact you shortly to confirm the details.</p>
			<p>Thank you!</p>
		</div>`, template.HTMLEscapeString(name), date,
			template.HTMLEscapeString(timeSlot), template.HTMLEscapeString(note)),
	}
}

// AppointmentStatusMessage builds the notice sent when an appointment
// changes status
func AppointmentStatusMessage(to, name, date, timeSlot, status string) Message {
	return Message{
		To:      to,
		Subject: "Appointment " + capitalize(status),
		HTML: fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto;">
			<h1>Appointment Update</h1>
			<p>Dear %s,</p>
			<p>Your appointment scheduled for %s at %s has been %s.</p>
			<p>Thank you for using our service!</p>
		</div>`, template.HTMLEscapeString(name), date,
			template.HTMLEscapeString(timeSlot), status),
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
