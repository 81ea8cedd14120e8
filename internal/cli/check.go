package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/alsham360/prima-api/infrastructure/integrator/automation"
	"github.com/alsham360/prima-api/infrastructure/integrator/automation/automationclient"
	"github.com/alsham360/prima-api/infrastructure/localstore"
	"github.com/alsham360/prima-api/infrastructure/migration"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var getMigrationVersion = migration.GetMigrationVersion

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verifica banco, migrações, armazenamento local e endpoint de automação",
	Long: `Executa as verificações de conectividade do serviço.

Verificações:
  - Conexão com o PostgreSQL
  - Versão das migrações
  - Armazenamento local (SQLite) gravável
  - Endpoint de automação alcançável

Exemplo:
  alshamctl check
  alshamctl check --json`,
	RunE: runCheck,
}

type CheckResult struct {
	Name       string `json:"name"`
	Pass       bool   `json:"pass"`
	Error      string `json:"error,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	Details    string `json:"details,omitempty"`
}

type pinger interface {
	Ping(ctx context.Context) error
}

func checkDatabaseConnection(ctx context.Context, db pinger) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.Ping(ctx); err != nil {
		return CheckResult{
			Name:       "Database Connection",
			Pass:       false,
			Error:      err.Error(),
			Suggestion: "Verifique DATABASE_URL e se o PostgreSQL está no ar",
		}
	}
	return CheckResult{Name: "Database Connection", Pass: true}
}

func checkMigrations(databaseURL string, expected uint) CheckResult {
	version, dirty, err := getMigrationVersion(databaseURL)
	if err != nil {
		return CheckResult{
			Name:       "Database Migrations",
			Pass:       false,
			Error:      err.Error(),
			Suggestion: "Rode as migrações com: alshamctl migrate up",
		}
	}

	if dirty {
		return CheckResult{
			Name:       "Database Migrations",
			Pass:       false,
			Error:      fmt.Sprintf("Migração %d ficou suja", version),
			Suggestion: "Corrija o schema manualmente e force a versão",
		}
	}

	if version < expected {
		return CheckResult{
			Name:       "Database Migrations",
			Pass:       false,
			Error:      fmt.Sprintf("Versão %d, esperada %d", version, expected),
			Suggestion: "Rode as migrações com: alshamctl migrate up",
		}
	}

	return CheckResult{Name: "Database Migrations", Pass: true, Details: fmt.Sprintf("versão %d", version)}
}

func checkLocalStore(path string) CheckResult {
	store, err := localstore.Open(path)
	if err != nil {
		return CheckResult{
			Name:       "Local Store",
			Pass:       false,
			Error:      err.Error(),
			Suggestion: "Ajuste LOCAL_STORE_PATH para um diretório gravável",
		}
	}
	_ = store.Close()

	return CheckResult{Name: "Local Store", Pass: true, Details: path}
}

func checkAutomation(ctx context.Context, integrator automation.AutomationIntegrator) CheckResult {
	ok, err := integrator.CheckConnection(ctx)
	if errors.Is(err, automationclient.ErrWebhookNotConfigured) {
		return CheckResult{
			Name:    "Automation Webhook",
			Pass:    true,
			Details: "não configurado, eventos ficam no outbox",
		}
	}
	if err != nil || !ok {
		result := CheckResult{
			Name:       "Automation Webhook",
			Pass:       false,
			Suggestion: "Verifique AUTOMATION_WEBHOOK_URL",
		}
		if err != nil {
			result.Error = err.Error()
		}
		return result
	}

	return CheckResult{Name: "Automation Webhook", Pass: true}
}

// printResults escreve os resultados e devolve erro se alguma verificação falhou
func printResults(w io.Writer, results []CheckResult, asJSON bool) error {
	failed := 0
	for _, r := range results {
		if !r.Pass {
			failed++
		}
	}

	if asJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			mark := "✓"
			if !r.Pass {
				mark = "✗"
			}
			line := fmt.Sprintf("%s %s", mark, r.Name)
			if r.Details != "" {
				line += fmt.Sprintf(" (%s)", r.Details)
			}
			fmt.Fprintln(w, line)
			if r.Error != "" {
				fmt.Fprintf(w, "    erro: %s\n", r.Error)
			}
			if r.Suggestion != "" {
				fmt.Fprintf(w, "    dica: %s\n", r.Suggestion)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d verificação(ões) falharam", failed)
	}
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	asJSON, _ := cmd.Flags().GetBool("json")

	var results []CheckResult

	conn, err := connectDatabase(ctx, appConfig.Database)
	if err != nil {
		results = append(results, CheckResult{
			Name:       "Database Connection",
			Pass:       false,
			Error:      err.Error(),
			Suggestion: "Verifique DATABASE_URL e se o PostgreSQL está no ar",
		})
	} else {
		results = append(results, checkDatabaseConnection(ctx, conn))
		results = append(results, checkMigrations(appConfig.Database.DSN, migration.LatestVersion))
		_ = conn.Close()
	}

	results = append(results, checkLocalStore(appConfig.Cache.LocalStorePath))

	integrator := automation.New(automationclient.NewClient(appConfig))
	results = append(results, checkAutomation(ctx, integrator))

	return printResults(cmd.OutOrStdout(), results, asJSON)
}

func init() {
	checkCmd.Flags().Bool("json", false, "Saída em JSON")
	RootCmd.AddCommand(checkCmd)
}
