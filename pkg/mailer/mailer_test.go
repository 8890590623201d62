package mailer

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSender is a mock implementation of Sender.
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, email *Email) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{
			Data: []byte(`<html><body>{{.Content}}</body></html>`),
		},
		"digest.md": &fstest.MapFile{
			Data: []byte("---\nSubject: Launches at {{.Site}}\n---\nHello **{{.Site}}**!\n"),
		},
		"plain.md": &fstest.MapFile{
			Data: []byte("No frontmatter here.\n"),
		},
	}
}

func TestMailer_Send(t *testing.T) {
	t.Parallel()

	t.Run("renders subject, html and text", func(t *testing.T) {
		t.Parallel()

		sender := &MockSender{}
		m := New(sender, NewRenderer(testFS()), Config{DefaultLayout: "base.html", FallbackSubject: "Digest"})

		sender.On("Send", mock.Anything, mock.MatchedBy(func(e *Email) bool {
			return e.To[0] == "ops@example.com" &&
				e.Subject == "Launches at Vandenberg" &&
				e.HTML == "<html><body><p>Hello <strong>Vandenberg</strong>!</p>\n</body></html>" &&
				e.Text == "Hello **Vandenberg**!\n"
		})).Return(nil)

		err := m.Send(context.Background(), SendParams{
			To:       "ops@example.com",
			Template: "digest.md",
			Data:     map[string]string{"Site": "Vandenberg"},
		})
		require.NoError(t, err)
		sender.AssertExpectations(t)
	})

	t.Run("text and subject overrides win", func(t *testing.T) {
		t.Parallel()

		sender := &MockSender{}
		m := New(sender, NewRenderer(testFS()), Config{DefaultLayout: "base.html"})

		sender.On("Send", mock.Anything, mock.MatchedBy(func(e *Email) bool {
			return e.Subject == "Custom" && e.Text == "custom text"
		})).Return(nil)

		err := m.Send(context.Background(), SendParams{
			To:       "ops@example.com",
			Template: "digest.md",
			Data:     map[string]string{"Site": "X"},
			Subject:  "Custom",
			Text:     "custom text",
		})
		require.NoError(t, err)
		sender.AssertExpectations(t)
	})

	t.Run("falls back to configured subject", func(t *testing.T) {
		t.Parallel()

		sender := &MockSender{}
		m := New(sender, NewRenderer(testFS()), Config{DefaultLayout: "base.html", FallbackSubject: "Digest"})

		sender.On("Send", mock.Anything, mock.MatchedBy(func(e *Email) bool {
			return e.Subject == "Digest"
		})).Return(nil)

		require.NoError(t, m.Send(context.Background(), SendParams{To: "a@example.com", Template: "plain.md"}))
		sender.AssertExpectations(t)
	})

	t.Run("requires recipient", func(t *testing.T) {
		t.Parallel()

		sender := &MockSender{}
		m := New(sender, NewRenderer(testFS()), Config{})

		err := m.Send(context.Background(), SendParams{Template: "digest.md"})
		require.ErrorIs(t, err, ErrNoRecipient)
		sender.AssertNotCalled(t, "Send")
	})

	t.Run("render failure does not send", func(t *testing.T) {
		t.Parallel()

		sender := &MockSender{}
		m := New(sender, NewRenderer(testFS()), Config{DefaultLayout: "base.html"})

		err := m.Send(context.Background(), SendParams{To: "a@example.com", Template: "missing.md"})
		require.ErrorIs(t, err, ErrRenderFailed)
		require.ErrorIs(t, err, ErrTemplateNotFound)
		sender.AssertNotCalled(t, "Send")
	})

	t.Run("wraps sender failure", func(t *testing.T) {
		t.Parallel()

		sender := &MockSender{}
		m := New(sender, NewRenderer(testFS()), Config{DefaultLayout: "base.html"})

		smtpErr := errors.New("connection refused")
		sender.On("Send", mock.Anything, mock.Anything).Return(smtpErr)

		err := m.Send(context.Background(), SendParams{To: "a@example.com", Template: "plain.md", Subject: "S"})
		require.ErrorIs(t, err, ErrSendFailed)
		require.ErrorIs(t, err, smtpErr)
	})
}

func TestMailer_SendRaw_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		email *Email
		want  error
	}{
		{name: "no recipient", email: &Email{Subject: "s", Text: "t"}, want: ErrNoRecipient},
		{name: "no subject", email: &Email{To: []string{"a@example.com"}, Text: "t"}, want: ErrNoSubject},
		{name: "no content", email: &Email{To: []string{"a@example.com"}, Subject: "s"}, want: ErrNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sender := &MockSender{}
			m := New(sender, nil, Config{})

			require.ErrorIs(t, m.SendRaw(context.Background(), tt.email), tt.want)
			sender.AssertNotCalled(t, "Send")
		})
	}
}
