// Package mailer renders and delivers email.
//
// Delivery is delegated to a [Sender] (see the smtp and resend subpackages),
// while [Renderer] turns markdown templates with YAML frontmatter into HTML:
//
//	---
//	Subject: Upcoming {{.Site}} launches
//	---
//	{{range .Launches}}
//	- **{{.When}}** {{escape .Name}}
//	{{end}}
//
// The frontmatter Subject is itself a template. The rendered markdown is
// converted with goldmark, sanitized with bluemonday and wrapped in an HTML
// layout that receives the result as {{.Content}}.
//
//	m := mailer.New(sender, mailer.NewRenderer(templates.FS), mailer.Config{
//	    DefaultLayout:   "base.html",
//	    FallbackSubject: "Launch digest",
//	})
//	err := m.Send(ctx, mailer.SendParams{To: "ops@example.com", Template: "digest.md", Data: data})
//
// [WriterSender] prints messages instead of delivering them, which is useful
// for dry runs.
package mailer
