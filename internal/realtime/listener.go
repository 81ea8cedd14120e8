// Package realtime escuta as notificações do Postgres sobre mudanças no pipeline
package realtime

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultChannel é o canal alimentado pelo trigger da tabela opportunities
const DefaultChannel = "alsham_pipeline_changes"

// ChangeEvent é o payload enviado pelo trigger
type ChangeEvent struct {
	Op        string     `json:"op"`
	ID        string     `json:"id"`
	Status    string     `json:"status"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// Invalidator descarta o cache e os boards carregados
type Invalidator interface {
	InvalidateAll(ctx context.Context) error
	// ConsumeOwnWrite reconhece (uma única vez) um UPDATE gravado por este processo
	ConsumeOwnWrite(opportunityID, status string, updatedAt time.Time) bool
}

type Listener struct {
	invalidator  Invalidator
	channel      string
	pingInterval time.Duration
}

func NewListener(invalidator Invalidator, channel string) *Listener {
	if channel == "" {
		channel = DefaultChannel
	}

	return &Listener{
		invalidator:  invalidator,
		channel:      channel,
		pingInterval: time.Minute,
	}
}

// Start abre a conexão de LISTEN e processa as notificações até ctx ser cancelado
func (l *Listener) Start(ctx context.Context, databaseURL string) error {
	listener := pq.NewListener(databaseURL, 5*time.Second, time.Minute, func(event pq.ListenerEventType, err error) {
		if err != nil {
			logrus.WithError(err).WithField("event", event).Warn("Evento do listener de tempo real")
		}
	})

	if err := listener.Listen(l.channel); err != nil {
		_ = listener.Close()
		return err
	}

	logrus.WithField("channel", l.channel).Info("Escutando mudanças do pipeline")

	go func() {
		defer func() {
			_ = listener.Close()
		}()

		for {
			select {
			case <-ctx.Done():
				logrus.Info("Parando listener de tempo real")
				return
			case n := <-listener.Notify:
				l.HandleNotification(ctx, n)
			case <-time.After(l.pingInterval):
				if err := listener.Ping(); err != nil {
					logrus.WithError(err).Warn("Ping do listener de tempo real falhou")
				}
			}
		}
	}()

	return nil
}

// HandleNotification invalida o cache para cada notificação recebida, exceto o eco
// de um movimento feito por este mesmo processo, cujo snapshot já está atualizado.
// Notificação nil indica reconexão; eventos podem ter sido perdidos e o cache é invalidado do mesmo jeito.
func (l *Listener) HandleNotification(ctx context.Context, n *pq.Notification) {
	fields := logrus.Fields{"channel": l.channel}

	if n == nil {
		logrus.WithFields(fields).Info("Listener reconectado, invalidando cache do pipeline")
	} else {
		var event ChangeEvent
		if err := json.Unmarshal([]byte(n.Extra), &event); err != nil {
			logrus.WithFields(fields).WithError(err).Warn("Payload de notificação inválido")
		} else {
			fields["op"] = event.Op
			fields["opportunity_id"] = event.ID

			if event.Op == "UPDATE" && event.UpdatedAt != nil &&
				l.invalidator.ConsumeOwnWrite(event.ID, event.Status, *event.UpdatedAt) {
				logrus.WithFields(fields).Debug("Mudança feita por este processo, cache mantido")
				return
			}
		}
		logrus.WithFields(fields).Debug("Mudança no pipeline recebida")
	}

	if err := l.invalidator.InvalidateAll(ctx); err != nil {
		logrus.WithFields(fields).WithError(err).Error("Erro ao invalidar cache do pipeline")
	}
}
