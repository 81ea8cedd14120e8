package exporting

import (
	"bytes"
	"context"

	"github.com/alsham360/prima-api/infrastructure/archive"
	"github.com/alsham360/prima-api/internal/domain"
	"github.com/pkg/errors"
)

// Archive gera a exportação em memória e envia para o armazenamento de objetos
func Archive(ctx context.Context, uploader archive.Uploader, key string, f Format, opportunities []*domain.Opportunity) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f, opportunities); err != nil {
		return "", err
	}

	location, err := uploader.Upload(ctx, key, bytes.NewReader(buf.Bytes()), f.ContentType())
	if err != nil {
		return "", errors.Wrap(err, "erro ao arquivar exportação")
	}

	return location, nil
}
