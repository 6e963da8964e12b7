package service

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/pageza/fuelplate/backend/internal/engine"
)

var responseFuncs = template.FuncMap{
	"join": strings.Join,
	"signed": func(v float64) string {
		return fmt.Sprintf("%+g", v)
	},
}

var responseTemplates = template.Must(template.New("responses").Funcs(responseFuncs).Parse(`
{{define "meal"}}
{{- if .NewExclusions}}Got it, I'll leave out {{join .NewExclusions ", "}}. {{end -}}
Try a {{.Meal.Name}} ({{.Meal.PrepTimeMinutes}} min): {{join .Meal.Ingredients ", "}}.
{{- with .Meal.NutritionTotals.Rounded}} About {{.Calories}} kcal, {{.Protein}}g protein, {{.Carbs}}g carbs, {{.Fat}}g fat.{{end}}
{{- template "target" .}}
{{- end}}

{{define "no_items"}}
{{- if .NewExclusions}}Got it, I'll leave out {{join .NewExclusions ", "}}. {{end -}}
Nothing in your inventory fits right now
{{- if .Excluded}} with {{join .Excluded ", "}} excluded{{end}}. Add a few items and ask again.
{{- end}}

{{define "target"}}
{{- with .Target}} Today's adjustment: {{signed .CalorieDelta}} kcal, {{signed .ProteinDeltaPerKg}} g/kg protein, {{signed .CarbDeltaPerKg}} g/kg carbs.{{end}}
{{- end}}
`))

type responseData struct {
	Meal          *engine.ComposedMeal
	NewExclusions []string
	Excluded      []string
	Target        *engine.NutritionTarget
}

// renderResponse picks the template for the turn outcome. A nil meal means
// composition found nothing eligible.
func renderResponse(data responseData) (string, error) {
	name := "meal"
	if data.Meal == nil {
		name = "no_items"
	}
	var buf bytes.Buffer
	if err := responseTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s response: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
