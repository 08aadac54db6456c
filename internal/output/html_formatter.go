package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/taxwise/taxwise/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":    FormatCurrency,
	"pct":     FormatPercentage,
	"regime":  domain.RegimeDisplayName,
	"percent": toPercent,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.TaxReport) ([]byte, error) {
	var buf bytes.Buffer
	rec := AnalyzeReport(report)
	data := struct {
		*domain.TaxReport
		Recommendation Recommendation
		Assumptions    []string
	}{report, rec, DefaultAssumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
