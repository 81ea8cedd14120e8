package domain

// StageID identifica uma coluna do pipeline
type StageID string

const (
	StageProspeccao   StageID = "prospeccao"
	StageQualificacao StageID = "qualificacao"
	StageProposta     StageID = "proposta"
	StageNegociacao   StageID = "negociacao"
	StageGanho        StageID = "ganho"
	StagePerdido      StageID = "perdido"

	// StageWon é a etapa que dispara a automação de negócio fechado
	StageWon = StageGanho
)

type Stage struct {
	ID       StageID `json:"id"`
	Name     string  `json:"name"`
	Position int     `json:"position"`
}

var stages = []Stage{
	{ID: StageProspeccao, Name: "Prospecção", Position: 1},
	{ID: StageQualificacao, Name: "Qualificação", Position: 2},
	{ID: StageProposta, Name: "Proposta", Position: 3},
	{ID: StageNegociacao, Name: "Negociação", Position: 4},
	{ID: StageGanho, Name: "Fechado - Ganho", Position: 5},
	{ID: StagePerdido, Name: "Fechado - Perdido", Position: 6},
}

// Stages retorna as etapas na ordem do board
func Stages() []Stage {
	out := make([]Stage, len(stages))
	copy(out, stages)
	return out
}

func IsValidStage(id StageID) bool {
	for _, s := range stages {
		if s.ID == id {
			return true
		}
	}
	return false
}
