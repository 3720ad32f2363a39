package smtp

import (
	"bytes"
	"fmt"
	"html/template"
)

var verificationTmpl = template.Must(template.New("verification").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #1e40af;">Doxrep Verification Code</h2>
  <p>Your verification code is:</p>
  <div style="background-color: #f3f4f6; padding: 20px; text-align: center; font-size: 32px; font-weight: bold; letter-spacing: 8px; color: #1e40af; border-radius: 8px; margin: 20px 0;">
    {{.Code}}
  </div>
  <p style="color: #6b7280;">This code will expire in {{.TTLMinutes}} minutes.</p>
  <p style="color: #6b7280; font-size: 12px;">If you didn't request this code, please ignore this email.</p>
</div>`))

var incidentTmpl = template.Must(template.New("incident").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #1e40af;">Cyber Incident Report Submitted</h2>
  <p>An incident report has been securely stored.</p>
  <div style="background-color: #eff6ff; padding: 15px; border-left: 4px solid #3b82f6; margin: 20px 0;">
    <strong>Incident Type:</strong> {{.IncidentType}}<br>
    <strong>Severity:</strong> {{.Severity}}<br>
    <strong>Timestamp:</strong> {{.Timestamp}}
  </div>
  <p><strong>Report Link:</strong></p>
  <a href="{{.URL}}" style="display: inline-block; background-color: #3b82f6; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin: 10px 0;">
    View Incident Report
  </a>
  <p style="color: #6b7280; font-size: 12px; margin-top: 20px;">This link provides immutable proof of the incident report.</p>
</div>`))

// VerificationEmail renders the one-time-code email.
func VerificationEmail(code string, ttlMinutes int) (subject, body string, err error) {
	var buf bytes.Buffer
	err = verificationTmpl.Execute(&buf, struct {
		Code       string
		TTLMinutes int
	}{code, ttlMinutes})
	if err != nil {
		return "", "", fmt.Errorf("render verification email: %w", err)
	}
	return "Your Doxrep Verification Code", buf.String(), nil
}

// IncidentEmail renders the incident-summary email sent to each recipient.
func IncidentEmail(url, incidentType, severity, timestamp string) (subject, body string, err error) {
	var buf bytes.Buffer
	err = incidentTmpl.Execute(&buf, struct {
		URL          string
		IncidentType string
		Severity     string
		Timestamp    string
	}{url, incidentType, severity, timestamp})
	if err != nil {
		return "", "", fmt.Errorf("render incident email: %w", err)
	}
	return "Cyber Incident Report", buf.String(), nil
}
