package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tpl "github.com/oksasatya/acquisitions/pkg/mailer/templates"
)

type sent struct{ to, subject, text, html string }

type fakeSender struct {
	got []sent
	err error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	f.got = append(f.got, sent{to, subject, text, html})
	return f.err
}

func TestHandleDelivery_WelcomeJob(t *testing.T) {
	body, err := json.Marshal(NewWelcomeJob("ann@example.com", tpl.NewWelcomeData("Acquisitions", "Ann", "ann@example.com", "user")))
	require.NoError(t, err)
	s := &fakeSender{}

	job, disp, err := HandleDelivery(context.Background(), body, s)
	require.NoError(t, err)
	assert.Equal(t, Ack, disp)
	assert.Equal(t, "welcome", job.Template)
	require.Len(t, s.got, 1)
	assert.Equal(t, "ann@example.com", s.got[0].to)
	assert.Equal(t, "Welcome to Acquisitions, Ann", s.got[0].subject)
}

func TestHandleDelivery_Dispositions(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		sendErr error
		want    Disposition
	}{
		{"malformed json", `{"to":`, nil, Drop},
		{"no recipient", `{"subject":"Hi","text":"x"}`, nil, Drop},
		{"unknown template", `{"to":"a@example.com","template":"nope"}`, nil, Drop},
		{"empty body", `{"to":"a@example.com","subject":"Hi"}`, nil, Drop},
		{"send failure", `{"to":"a@example.com","subject":"Hi","text":"x"}`, errors.New("502"), Requeue},
		{"raw ok", `{"to":"a@example.com","subject":"Hi","text":"x"}`, nil, Ack},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, disp, err := HandleDelivery(context.Background(), []byte(tt.body), &fakeSender{err: tt.sendErr})
			assert.Equal(t, tt.want, disp)
			if tt.want == Ack {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNewMailgun_RequiresConfig(t *testing.T) {
	_, err := NewMailgun("", "key", "noreply@example.com", "")
	assert.Error(t, err)

	m, err := NewMailgun("mg.example.com", "key", "noreply@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, "noreply@example.com", m.Sender)
}

func TestDispositionString(t *testing.T) {
	assert.Equal(t, "ack", Ack.String())
	assert.Equal(t, "drop", Drop.String())
	assert.Equal(t, "requeue", Requeue.String())
}
