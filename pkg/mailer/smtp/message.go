package smtp

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/launchdigest/pkg/mailer"
)

// buildMessage renders email as an RFC 5322 message with a
// multipart/alternative body when both text and HTML are present.
func buildMessage(email *mailer.Email, from string, now time.Time) ([]byte, error) {
	var buf bytes.Buffer

	domain := "localhost"
	if at := strings.LastIndex(from, "@"); at >= 0 {
		domain = strings.Trim(from[at+1:], "> ")
	}

	header := textproto.MIMEHeader{}
	header.Set("From", from)
	header.Set("To", strings.Join(email.To, ", "))
	header.Set("Subject", mime.QEncoding.Encode("utf-8", email.Subject))
	header.Set("Date", now.Format(time.RFC1123Z))
	header.Set("Message-ID", fmt.Sprintf("<%s@%s>", uuid.NewString(), domain))
	header.Set("MIME-Version", "1.0")
	if email.ReplyTo != "" {
		header.Set("Reply-To", email.ReplyTo)
	}
	for k, v := range email.Headers {
		header.Set(k, v)
	}

	var parts []part
	if email.Text != "" {
		parts = append(parts, part{contentType: "text/plain; charset=utf-8", body: email.Text})
	}
	if email.HTML != "" {
		parts = append(parts, part{contentType: "text/html; charset=utf-8", body: email.HTML})
	}

	if len(parts) == 1 {
		header.Set("Content-Type", parts[0].contentType)
		header.Set("Content-Transfer-Encoding", "quoted-printable")
		writeHeader(&buf, header)
		if err := writeQP(&buf, parts[0].body); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, p := range parts {
		w, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {p.contentType},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		if err != nil {
			return nil, err
		}
		if err := writeQP(w, p.body); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	header.Set("Content-Type", "multipart/alternative; boundary="+mw.Boundary())
	writeHeader(&buf, header)
	buf.Write(body.Bytes())
	return buf.Bytes(), nil
}

type part struct {
	contentType string
	body        string
}

func writeHeader(buf *bytes.Buffer, h textproto.MIMEHeader) {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range h[k] {
			fmt.Fprintf(buf, "%s: %s\r\n", k, v)
		}
	}
	buf.WriteString("\r\n")
}

func writeQP(w io.Writer, s string) error {
	qp := quotedprintable.NewWriter(w)
	if _, err := qp.Write([]byte(crlf.Replace(s))); err != nil {
		return err
	}
	return qp.Close()
}

var crlf = strings.NewReplacer("\r\n", "\r\n", "\n", "\r\n")
