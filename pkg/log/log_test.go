package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestWithCorrelationID(t *testing.T) {
	ctx, id := WithCorrelationID(context.Background())

	assert.NotEmpty(t, id)
	assert.Equal(t, id, GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestWithFields_FiltraEmDesenvolvimento(t *testing.T) {
	t.Setenv("APP_ENV", "dev")

	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	l := &logger{entry: logrus.NewEntry(base)}
	l.WithFields(Fields{"opportunity_id": "op-1", "query": "x=1"}).Info("moveu")

	assert.Contains(t, buf.String(), "opportunity_id=op-1")
	assert.NotContains(t, buf.String(), "query")
}

func TestWithFields_ProducaoMantemTudo(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	l := &logger{entry: logrus.NewEntry(base)}
	l.WithFields(Fields{"query": "x=1"}).Info("requisição")

	assert.Contains(t, buf.String(), "query=")
}

func TestSetupTestLogger(t *testing.T) {
	original := L
	level := logrus.GetLevel()
	formatter := logrus.StandardLogger().Formatter
	t.Cleanup(func() {
		L = original
		logrus.SetLevel(level)
		logrus.SetFormatter(formatter)
	})

	SetupTestLogger()

	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.NotSame(t, original, L)
}
