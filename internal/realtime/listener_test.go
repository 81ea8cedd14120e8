package realtime

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

type fakeInvalidator struct {
	calls    int
	err      error
	ownWrite bool
	consumed []string
}

func (f *fakeInvalidator) InvalidateAll(ctx context.Context) error {
	f.calls++
	return f.err
}

func (f *fakeInvalidator) ConsumeOwnWrite(opportunityID, status string, updatedAt time.Time) bool {
	f.consumed = append(f.consumed, opportunityID+":"+status+":"+updatedAt.UTC().Format(time.RFC3339Nano))
	return f.ownWrite
}

func TestHandleNotification(t *testing.T) {
	tests := []struct {
		name         string
		notification *pq.Notification
		err          error
	}{
		{
			name:         "update de oportunidade",
			notification: &pq.Notification{Channel: DefaultChannel, Extra: `{"op":"UPDATE","id":"opp-1"}`},
		},
		{
			name:         "payload inválido ainda invalida",
			notification: &pq.Notification{Channel: DefaultChannel, Extra: `not json`},
		},
		{
			name:         "reconexão invalida",
			notification: nil,
		},
		{
			name:         "erro ao invalidar não propaga",
			notification: &pq.Notification{Channel: DefaultChannel, Extra: `{"op":"DELETE","id":"opp-2"}`},
			err:          errors.New("disk I/O error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			invalidator := &fakeInvalidator{err: tt.err}
			listener := NewListener(invalidator, "")

			listener.HandleNotification(t.Context(), tt.notification)

			assert.Equal(t, 1, invalidator.calls)
		})
	}
}

func TestHandleNotification_EcoDoProprioMovimento(t *testing.T) {
	payload := `{"op":"UPDATE","id":"opp-1","status":"ganho","updated_at":"2025-03-10T15:30:00.123457+00:00"}`

	tests := []struct {
		name      string
		extra     string
		ownWrite  bool
		wantCalls int
		wantAsked bool
	}{
		{name: "movimento deste processo mantém o cache", extra: payload, ownWrite: true, wantCalls: 0, wantAsked: true},
		{name: "movimento de outro processo invalida", extra: payload, ownWrite: false, wantCalls: 1, wantAsked: true},
		{name: "insert sempre invalida", extra: `{"op":"INSERT","id":"opp-9","status":"prospeccao","updated_at":null}`, ownWrite: true, wantCalls: 1},
		{name: "update sem updated_at invalida", extra: `{"op":"UPDATE","id":"opp-1","status":"ganho","updated_at":null}`, ownWrite: true, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			invalidator := &fakeInvalidator{ownWrite: tt.ownWrite}
			listener := NewListener(invalidator, "")

			listener.HandleNotification(t.Context(), &pq.Notification{Channel: DefaultChannel, Extra: tt.extra})

			assert.Equal(t, tt.wantCalls, invalidator.calls)
			if tt.wantAsked {
				assert.Equal(t, []string{"opp-1:ganho:2025-03-10T15:30:00.123457Z"}, invalidator.consumed)
			} else {
				assert.Empty(t, invalidator.consumed)
			}
		})
	}
}

func TestNewListener_Canal(t *testing.T) {
	assert.Equal(t, DefaultChannel, NewListener(&fakeInvalidator{}, "").channel)
	assert.Equal(t, "outro", NewListener(&fakeInvalidator{}, "outro").channel)
}
