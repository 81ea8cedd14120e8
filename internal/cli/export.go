package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alsham360/prima-api/infrastructure/archive"
	"github.com/alsham360/prima-api/infrastructure/database/postgres"
	"github.com/alsham360/prima-api/infrastructure/repository"
	"github.com/alsham360/prima-api/internal/domain"
	"github.com/alsham360/prima-api/internal/usecases/exporting"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var newUploader = func(ctx context.Context) (archive.Uploader, error) {
	uploader, err := archive.NewS3Uploader(ctx, appConfig.Archive)
	if err != nil {
		return nil, err
	}
	return uploader, nil
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exporta as oportunidades do pipeline em CSV ou XLSX",
	Long: `Lê todas as oportunidades do banco e gera a planilha do pipeline.

Exemplo:
  alshamctl export --format csv --out pipeline.csv
  alshamctl export --format xlsx --archive`,
	RunE: runExport,
}

// loadOpportunities lê a lista completa, na mesma ordem do board
func loadOpportunities(ctx context.Context, repo repository.OpportunityRepository) ([]*domain.Opportunity, error) {
	opportunities, err := repo.ListOpportunities(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar oportunidades: %w", err)
	}
	return opportunities, nil
}

func writeExportFile(path string, f exporting.Format, opportunities []*domain.Opportunity, stdout io.Writer) error {
	if path == "" || path == "-" {
		return exporting.Write(stdout, f, opportunities)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("erro ao criar %s: %w", path, err)
	}

	if err := exporting.Write(file, f, opportunities); err != nil {
		_ = file.Close()
		return err
	}

	return file.Close()
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rawFormat, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")
	toArchive, _ := cmd.Flags().GetBool("archive")

	format, err := exporting.ParseFormat(rawFormat)
	if err != nil {
		return err
	}

	var opportunities []*domain.Opportunity
	err = withDatabase(ctx, func(conn postgres.Conn) error {
		opportunities, err = loadOpportunities(ctx, repository.NewOpportunityRepository(conn))
		return err
	})
	if err != nil {
		return err
	}

	fileName := exporting.FileName(format, time.Now())

	if toArchive {
		uploader, err := newUploader(ctx)
		if err != nil {
			return err
		}

		location, err := exporting.Archive(ctx, uploader, fileName, format, opportunities)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Exportação arquivada em %s (%d oportunidades)\n", location, len(opportunities))
		return nil
	}

	if out == "" && format == exporting.FormatXLSX {
		out = fileName
	}

	if err := writeExportFile(out, format, opportunities, cmd.OutOrStdout()); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"format": string(format),
		"rows":   len(opportunities),
		"out":    out,
	}).Info("Exportação gerada")

	return nil
}

func init() {
	exportCmd.Flags().String("format", string(exporting.FormatCSV), "Formato: csv ou xlsx")
	exportCmd.Flags().String("out", "", "Arquivo de saída (vazio ou - para stdout; xlsx usa o nome padrão)")
	exportCmd.Flags().Bool("archive", false, "Envia a exportação para o bucket configurado em ARCHIVE_BUCKET")
	RootCmd.AddCommand(exportCmd)
}
