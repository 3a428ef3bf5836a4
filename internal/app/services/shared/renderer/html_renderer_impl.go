package renderer

import (
	"bytes"
	"embed"
	"html/template"
	"smartrx-service/internal/app/contracts"
	"smartrx-service/internal/app/models"
	"smartrx-service/internal/pkg/constvars"
	"smartrx-service/internal/pkg/exceptions"

	"github.com/Masterminds/sprig/v3"
)

//go:embed templates/*.html
var templateFS embed.FS

var tmplMedications = template.Must(
	template.New(constvars.ViewTemplateMedications).
		Funcs(sprig.HtmlFuncMap()).
		ParseFS(templateFS, "templates/"+constvars.ViewTemplateMedications),
)

type htmlRenderer struct{}

func NewHTMLRenderer() contracts.Renderer {
	return &htmlRenderer{}
}

// RenderMedicationView renders the main page. A view that is not ready renders
// as an empty body.
func (r *htmlRenderer) RenderMedicationView(view *models.MedicationView) ([]byte, error) {
	if view == nil || !view.Ready {
		return []byte{}, nil
	}

	data := struct {
		Title           string
		UnknownPatient  string
		NoPrescriptions string
		View            *models.MedicationView
	}{
		Title:           constvars.ViewTitleMedications,
		UnknownPatient:  constvars.UnknownPatientName,
		NoPrescriptions: constvars.ViewNoPrescriptionsMessage,
		View:            view,
	}

	var buf bytes.Buffer
	err := tmplMedications.Execute(&buf, data)
	if err != nil {
		return nil, exceptions.ErrRenderTemplate(err, constvars.ViewTemplateMedications)
	}
	return buf.Bytes(), nil
}
