package email

import (
	"bytes"
	"fmt"
	"html/template"
	"kedilabs/internal/core/domain/submission"
	"net/url"
	"strings"
)

type Message struct {
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

var adminTemplate = template.Must(template.New("admin").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937;">
<h2>New {{.Label}} submission</h2>
<p>Submitted at {{.SubmittedAt}} from {{.IPAddress}}.</p>
<table cellpadding="6" style="border-collapse: collapse;">
{{range .Fields}}<tr><td style="font-weight: bold; vertical-align: top;">{{.Label}}</td><td>{{.Value}}</td></tr>
{{end}}</table>
<p><a href="{{.AdminURL}}">Open the admin dashboard</a></p>
<p style="color: #6b7280; font-size: 12px;">Submission ID: {{.ID}}</p>
</body>
</html>
`))

var acknowledgmentTemplate = template.Must(template.New("acknowledgment").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937;">
<h2>Thank you, {{.Name}}!</h2>
<p>We have received your {{.Label}} inquiry and our team is already on it.</p>
<h3>What happens next</h3>
<p>{{.NextSteps}}</p>
<p>If you have anything to add, simply reply to this email.</p>
<p>The Kedi Labs Team<br><a href="{{.SiteURL}}">{{.SiteURL}}</a></p>
</body>
</html>
`))

var nextSteps = map[submission.StakeholderType]string{
	submission.StartupFounder: "Our startup team will review your company profile and reach out within 3-5 business days to discuss incubation and acceleration opportunities.",
	submission.Researcher:     "Our research partnerships team will review your research areas and get back to you within 5 business days about collaboration options.",
	submission.Investor:       "Our investment relations team will contact you within 3 business days to share our current portfolio and co-investment opportunities.",
	submission.Mentor:         "Our mentorship coordinator will reach out within a week to match you with founders who can benefit from your expertise.",
	submission.Student:        "Our education team will review your interests and send you details about upcoming programs, internships and workshops within 5 business days.",
	submission.Partner:        "Our partnerships team will review your proposal and schedule an introductory call within 5 business days.",
}

// Renderer builds the notification emails for a stored submission.
type Renderer struct {
	adminEmail string
	adminURL   string
	siteURL    string
}

func NewRenderer(siteURL url.URL, adminEmail string) *Renderer {
	return &Renderer{
		adminEmail: adminEmail,
		adminURL:   siteURL.JoinPath("admin").String(),
		siteURL:    siteURL.String(),
	}
}

type adminParams struct {
	ID          string
	Label       string
	SubmittedAt string
	IPAddress   string
	Fields      []submission.Field
	AdminURL    string
}

type acknowledgmentParams struct {
	Name      string
	Label     string
	NextSteps string
	SiteURL   string
}

func (r *Renderer) AdminNotification(s submission.Submission) (Message, error) {
	if s.Form == nil {
		return Message{}, fmt.Errorf("submission %s has no form", s.ID)
	}
	label := s.StakeholderType().Label()
	fields := s.Form.Fields()

	html := bytes.Buffer{}
	err := adminTemplate.Execute(&html, adminParams{
		ID:          string(s.ID),
		Label:       label,
		SubmittedAt: s.CreatedAt.UTC().Format("2006-01-02 15:04 MST"),
		IPAddress:   s.Metadata.IPAddress,
		Fields:      fields,
		AdminURL:    r.adminURL,
	})
	if err != nil {
		return Message{}, err
	}

	text := strings.Builder{}
	fmt.Fprintf(&text, "New %s submission\n\n", label)
	for _, f := range fields {
		fmt.Fprintf(&text, "%s: %s\n", f.Label, f.Value)
	}
	fmt.Fprintf(&text, "\nAdmin dashboard: %s\n", r.adminURL)

	return Message{
		To:      []string{r.adminEmail},
		ReplyTo: s.Email(),
		Subject: fmt.Sprintf("New %s submission from %s", label, s.Form.ContactName()),
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}

func (r *Renderer) Acknowledgment(s submission.Submission) (Message, error) {
	if s.Form == nil {
		return Message{}, fmt.Errorf("submission %s has no form", s.ID)
	}
	params := acknowledgmentParams{
		Name:      s.Form.ContactName(),
		Label:     strings.ToLower(s.StakeholderType().Label()),
		NextSteps: nextSteps[s.StakeholderType()],
		SiteURL:   r.siteURL,
	}

	html := bytes.Buffer{}
	if err := acknowledgmentTemplate.Execute(&html, params); err != nil {
		return Message{}, err
	}
	text := fmt.Sprintf(
		"Thank you, %s!\n\nWe have received your %s inquiry.\n\n%s\n\nThe Kedi Labs Team\n%s\n",
		params.Name, params.Label, params.NextSteps, params.SiteURL,
	)

	return Message{
		To:      []string{s.Email()},
		ReplyTo: r.adminEmail,
		Subject: "Thank you for contacting Kedi Labs",
		HTML:    html.String(),
		Text:    text,
	}, nil
}
