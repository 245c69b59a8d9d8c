package http

import (
	"encoding/json"
	"strings"

	"github.com/yanqian/skinfit/internal/domain/advisor"
)

// profilePayload accepts the Spanish form field names as well as English JSON keys.
type profilePayload struct {
	Nombre           string        `json:"nombre" form:"nombre"`
	Name             string        `json:"name" form:"name"`
	Edad             int           `json:"edad" form:"edad"`
	Age              int           `json:"age" form:"age"`
	TipoPiel         string        `json:"tipo_piel" form:"tipo_piel"`
	SkinType         string        `json:"skinType" form:"skinType"`
	Condiciones      conditionList `json:"condiciones" form:"condiciones"`
	Conditions       conditionList `json:"conditions" form:"conditions"`
	FrecuenciaRutina string        `json:"frecuencia_rutina" form:"frecuencia_rutina"`
	Frequency        string        `json:"routineFrequency" form:"routineFrequency"`
}

func (p profilePayload) toRequest() advisor.SubmitRequest {
	conditions := p.Condiciones
	if len(conditions) == 0 {
		conditions = p.Conditions
	}
	return advisor.SubmitRequest{
		Name:       firstNonEmpty(p.Nombre, p.Name),
		Age:        max(p.Edad, p.Age),
		SkinType:   firstNonEmpty(p.TipoPiel, p.SkinType),
		Conditions: conditions,
		Frequency:  firstNonEmpty(p.FrecuenciaRutina, p.Frequency),
	}
}

// conditionList decodes either a JSON array or a comma-joined string.
type conditionList []string

func (l *conditionList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = items
		return nil
	}
	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	*l = conditionList{joined}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
