package notification

import "fmt"

// Rendered is the output of the template renderer, ready for the gateway.
type Rendered struct {
	Subject  string
	HTMLBody string
	TextBody string
}

// Render maps a typed payload to its message body. It is pure: same payload,
// same output. A payload type without a template here is a programmer error
// and fails loudly with ErrUnknownKind.
func Render(payload Payload) (Rendered, error) {
	switch p := payload.(type) {
	case AppointmentConfirmationPayload:
		return renderAppointmentConfirmation(p), nil
	case AppointmentReminderPayload:
		return renderAppointmentReminder(p), nil
	case WelcomePayload:
		return renderWelcome(p), nil
	case TrialEndingPayload:
		return renderTrialEnding(p), nil
	case TrialExpiredPayload:
		return renderTrialExpired(p), nil
	case PaymentFailedPayload:
		return renderPaymentFailed(p), nil
	case SubscriptionCanceledPayload:
		return renderSubscriptionCanceled(p), nil
	default:
		return Rendered{}, fmt.Errorf("%w: no template for %T", ErrUnknownKind, payload)
	}
}

func renderAppointmentConfirmation(p AppointmentConfirmationPayload) Rendered {
	subject := fmt.Sprintf("Appointment confirmed for %s at %s", p.PetName, p.ClinicName)

	vetLine := ""
	vetLineHTML := ""
	if p.VetName != "" {
		vetLine = fmt.Sprintf("You will be seen by %s.\n", p.VetName)
		vetLineHTML = fmt.Sprintf("<p>You will be seen by %s.</p>", p.VetName)
	}
	notesLine := ""
	notesLineHTML := ""
	if p.Notes != "" {
		notesLine = fmt.Sprintf("Notes: %s\n", p.Notes)
		notesLineHTML = fmt.Sprintf("<p>Notes: %s</p>", p.Notes)
	}
	contact := p.ClinicName
	if p.ClinicAddress != "" {
		contact += ", " + p.ClinicAddress
	}
	if p.ClinicPhone != "" {
		contact += " (" + p.ClinicPhone + ")"
	}

	text := fmt.Sprintf(
		"Hi %s,\n\nYour appointment for %s is confirmed:\n\n%s on %s at %s\n\n%s%s%s\n",
		p.OwnerName, p.PetName,
		p.ServiceName, p.AppointmentDate, p.AppointmentTime,
		vetLine, notesLine, contact,
	)
	html := fmt.Sprintf(
		`<p>Hi %s,</p><p>Your appointment for <strong>%s</strong> is confirmed:</p><p><strong>%s</strong> on %s at %s</p>%s%s<p>%s</p>`,
		p.OwnerName, p.PetName,
		p.ServiceName, p.AppointmentDate, p.AppointmentTime,
		vetLineHTML, notesLineHTML, contact,
	)

	return Rendered{Subject: subject, HTMLBody: html, TextBody: text}
}

func renderAppointmentReminder(p AppointmentReminderPayload) Rendered {
	subject := fmt.Sprintf("Reminder: %s has an appointment on %s", p.PetName, p.AppointmentDate)

	phoneLine := ""
	phoneLineHTML := ""
	if p.ClinicPhone != "" {
		phoneLine = fmt.Sprintf("Need to reschedule? Call us at %s.\n", p.ClinicPhone)
		phoneLineHTML = fmt.Sprintf("<p>Need to reschedule? Call us at %s.</p>", p.ClinicPhone)
	}

	text := fmt.Sprintf(
		"Hi %s,\n\nThis is a reminder that %s has an appointment at %s:\n\n%s on %s at %s\n\n%s",
		p.OwnerName, p.PetName, p.ClinicName,
		p.ServiceName, p.AppointmentDate, p.AppointmentTime,
		phoneLine,
	)
	html := fmt.Sprintf(
		`<p>Hi %s,</p><p>This is a reminder that <strong>%s</strong> has an appointment at %s:</p><p><strong>%s</strong> on %s at %s</p>%s`,
		p.OwnerName, p.PetName, p.ClinicName,
		p.ServiceName, p.AppointmentDate, p.AppointmentTime,
		phoneLineHTML,
	)

	return Rendered{Subject: subject, HTMLBody: html, TextBody: text}
}

func renderWelcome(p WelcomePayload) Rendered {
	subject := fmt.Sprintf("Welcome to %s on VetDesk", p.ClinicName)
	text := fmt.Sprintf(
		"Hi %s,\n\nYour account at %s is ready. Sign in here:\n\n%s\n",
		p.RecipientName, p.ClinicName, p.LoginURL,
	)
	html := fmt.Sprintf(
		`<p>Hi %s,</p><p>Your account at %s is ready.</p><p><a href="%s">Sign in</a></p>`,
		p.RecipientName, p.ClinicName, p.LoginURL,
	)
	return Rendered{Subject: subject, HTMLBody: html, TextBody: text}
}

func renderTrialEnding(p TrialEndingPayload) Rendered {
	day := "days"
	if p.DaysRemaining == 1 {
		day = "day"
	}
	subject := fmt.Sprintf("Your VetDesk trial ends in %d %s", p.DaysRemaining, day)
	text := fmt.Sprintf(
		"The trial for %s ends on %s.\n\nUpgrade now to keep your appointments, customers and records:\n\n%s\n",
		p.ClinicName, p.TrialEndDate, p.UpgradeURL,
	)
	html := fmt.Sprintf(
		`<p>The trial for %s ends on <strong>%s</strong>.</p><p>Upgrade now to keep your appointments, customers and records.</p><p><a href="%s">Choose a plan</a></p>`,
		p.ClinicName, p.TrialEndDate, p.UpgradeURL,
	)
	return Rendered{Subject: subject, HTMLBody: html, TextBody: text}
}

func renderTrialExpired(p TrialExpiredPayload) Rendered {
	subject := "Your VetDesk trial has ended"
	text := fmt.Sprintf(
		"The trial for %s has ended. Your data is kept safe, but the dashboard is read-only until you pick a plan:\n\n%s\n",
		p.ClinicName, p.UpgradeURL,
	)
	html := fmt.Sprintf(
		`<p>The trial for %s has ended.</p><p>Your data is kept safe, but the dashboard is read-only until you pick a plan.</p><p><a href="%s">Choose a plan</a></p>`,
		p.ClinicName, p.UpgradeURL,
	)
	return Rendered{Subject: subject, HTMLBody: html, TextBody: text}
}

func renderPaymentFailed(p PaymentFailedPayload) Rendered {
	subject := fmt.Sprintf("Payment failed for %s", p.ClinicName)
	text := fmt.Sprintf(
		"We could not charge the card on file for the %s plan at %s.\n\nPlease update your payment details to keep your subscription active:\n\n%s\n",
		p.PlanName, p.ClinicName, p.BillingPortalURL,
	)
	html := fmt.Sprintf(
		`<p>We could not charge the card on file for the <strong>%s</strong> plan at %s.</p><p>Please update your payment details to keep your subscription active.</p><p><a href="%s">Update payment details</a></p>`,
		p.PlanName, p.ClinicName, p.BillingPortalURL,
	)
	return Rendered{Subject: subject, HTMLBody: html, TextBody: text}
}

func renderSubscriptionCanceled(p SubscriptionCanceledPayload) Rendered {
	subject := fmt.Sprintf("Your %s subscription was canceled", p.PlanName)

	accessLine := ""
	accessLineHTML := ""
	if p.AccessEndDate != "" {
		accessLine = fmt.Sprintf("You keep full access until %s.\n\n", p.AccessEndDate)
		accessLineHTML = fmt.Sprintf("<p>You keep full access until %s.</p>", p.AccessEndDate)
	}

	text := fmt.Sprintf(
		"The %s plan for %s was canceled.\n\n%sChanged your mind? You can resubscribe any time:\n\n%s\n",
		p.PlanName, p.ClinicName, accessLine, p.UpgradeURL,
	)
	html := fmt.Sprintf(
		`<p>The <strong>%s</strong> plan for %s was canceled.</p>%s<p>Changed your mind? You can <a href="%s">resubscribe any time</a>.</p>`,
		p.PlanName, p.ClinicName, accessLineHTML, p.UpgradeURL,
	)
	return Rendered{Subject: subject, HTMLBody: html, TextBody: text}
}
