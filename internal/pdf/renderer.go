package pdf

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"gascert_backend/internal/certificates/service"
)

// Renderer renders certificate documents to PDF via Gotenberg.
type Renderer struct {
	client *GotenbergClient
}

// NewRenderer creates a certificate renderer.
func NewRenderer(client *GotenbergClient) *Renderer {
	return &Renderer{client: client}
}

var _ service.Renderer = (*Renderer)(nil)

var certTitles = map[string]string{
	"cp12":           "Landlord Gas Safety Record (CP12)",
	"boiler_service": "Boiler Service Record",
	"commissioning":  "Commissioning Record",
	"breakdown":      "Breakdown Report",
	"general_works":  "General Works Record",
	"warning_notice": "Gas Warning Notice",
}

// Render builds the HTML for a certificate type and converts it to PDF.
func (r *Renderer) Render(ctx context.Context, certType string, doc service.Document) ([]byte, error) {
	title, ok := certTitles[certType]
	if !ok {
		return nil, fmt.Errorf("unknown certificate type %q", certType)
	}

	html, err := buildHTML(title, certType, doc)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", certType, err)
	}

	return r.client.ConvertHTML(ctx, html, CertificateOpts())
}

type templateData struct {
	Title      string
	Preview    bool
	IssuedAt   string
	Sections   []section
	Appliances []service.Appliance
	Defects    []labeledValue
	Signatures signatureData
}

type section struct {
	Heading string
	Rows    []labeledValue
}

type labeledValue struct {
	Label string
	Value string
}

type signatureData struct {
	EngineerURL string
	CustomerURL string
}

func buildHTML(title, certType string, doc service.Document) ([]byte, error) {
	data := templateData{
		Title:      title,
		Preview:    doc.Preview,
		IssuedAt:   doc.IssuedAt.Format("02 January 2006"),
		Appliances: doc.Appliances,
		Signatures: signatureData{
			EngineerURL: doc.Fields.Get("engineer_signature_url"),
			CustomerURL: doc.Fields.Get("customer_signature_url"),
		},
	}

	get := doc.Fields.Get

	data.Sections = append(data.Sections, section{
		Heading: "Property & Customer",
		Rows: rows(
			labeledValue{"Customer", get("customer_name")},
			labeledValue{"Contact", get("customer_contact")},
			labeledValue{"Email", get("customer_email")},
			labeledValue{"Phone", get("customer_phone")},
			labeledValue{"Property address", get("property_address")},
			labeledValue{"Postcode", get("postcode")},
		),
	})

	if certType == "cp12" || certType == "warning_notice" {
		data.Sections = append(data.Sections, section{
			Heading: "Landlord / Agent",
			Rows: rows(
				labeledValue{"Name", get("landlord_name")},
				labeledValue{"Address", get("landlord_address")},
			),
		})
	}

	data.Sections = append(data.Sections, section{
		Heading: "Engineer",
		Rows: rows(
			labeledValue{"Name", get("engineer_name")},
			labeledValue{"Gas Safe number", get("gas_safe_number")},
			labeledValue{"Company", get("company_name")},
		),
	})

	data.Sections = append(data.Sections, detailSection(certType, get)...)

	data.Defects = rows(
		labeledValue{"Defects found", get("defects_found")},
		labeledValue{"Defect details", get("defects_details")},
		labeledValue{"Defect description", get("defect_description")},
		labeledValue{"Remedial action", get("remedial_action")},
	)

	var buf bytes.Buffer
	if err := certTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func detailSection(certType string, get func(string) string) []section {
	switch certType {
	case "cp12":
		return []section{{
			Heading: "Inspection",
			Rows: rows(
				labeledValue{"Inspection date", get("inspection_date")},
				labeledValue{"Next inspection due", get("next_inspection_date")},
				labeledValue{"Regulation 26(9) confirmed", get("reg_26_9_confirmed")},
			),
		}}
	case "boiler_service":
		return []section{{
			Heading: "Service",
			Rows: rows(
				labeledValue{"Service date", get("service_date")},
				labeledValue{"Appliance", get("appliance_type")},
				labeledValue{"Location", get("appliance_location")},
				labeledValue{"Make / model", get("appliance_make_model")},
				labeledValue{"Work carried out", get("work_description")},
			),
		}}
	case "commissioning":
		return []section{{
			Heading: "Commissioning",
			Rows: rows(
				labeledValue{"Date", get("commissioning_date")},
				labeledValue{"Appliance", get("appliance_type")},
				labeledValue{"Location", get("appliance_location")},
				labeledValue{"Readings", get("commissioning_readings")},
			),
		}}
	case "breakdown":
		return []section{{
			Heading: "Breakdown",
			Rows: rows(
				labeledValue{"Date", get("breakdown_date")},
				labeledValue{"Fault reported", get("fault_reported")},
				labeledValue{"Diagnosis", get("diagnosis")},
				labeledValue{"Work carried out", get("work_description")},
			),
		}}
	case "general_works":
		return []section{{
			Heading: "Work Details",
			Rows: rows(
				labeledValue{"Work date", get("work_date")},
				labeledValue{"Description", get("work_description")},
				labeledValue{"Materials used", get("materials_used")},
			),
		}}
	case "warning_notice":
		return []section{{
			Heading: "Warning Details",
			Rows: rows(
				labeledValue{"Issue date", get("issue_date")},
				labeledValue{"Classification", formatClassification(get("classification"))},
				labeledValue{"Appliance", get("appliance_type")},
				labeledValue{"Location", get("appliance_location")},
				labeledValue{"Danger label fitted", get("danger_do_not_use_label_fitted")},
				labeledValue{"Gas supply isolated", get("gas_supply_isolated")},
				labeledValue{"Customer refused isolation", get("customer_refused_isolation")},
			),
		}}
	default:
		return nil
	}
}

// rows drops entries with empty values so the PDF never shows blank
// labels.
func rows(in ...labeledValue) []labeledValue {
	out := make([]labeledValue, 0, len(in))
	for _, lv := range in {
		if strings.TrimSpace(lv.Value) != "" {
			out = append(out, lv)
		}
	}
	return out
}

func formatClassification(code string) string {
	switch code {
	case "IMMEDIATELY_DANGEROUS":
		return "Immediately Dangerous (ID)"
	case "AT_RISK":
		return "At Risk (AR)"
	case "NOT_TO_CURRENT_STANDARDS":
		return "Not to Current Standards (NCS)"
	default:
		return code
	}
}

var certTemplate = template.Must(template.New("certificate").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 11px; color: #1a1a1a; }
  h1 { font-size: 18px; border-bottom: 2px solid #0b5394; padding-bottom: 6px; }
  h2 { font-size: 13px; color: #0b5394; margin-bottom: 4px; }
  table { width: 100%; border-collapse: collapse; margin-bottom: 12px; }
  td, th { border: 1px solid #ccc; padding: 4px 6px; text-align: left; vertical-align: top; }
  th { background: #f0f4f8; }
  .label { width: 32%; font-weight: bold; background: #fafafa; }
  .issued { color: #555; font-size: 10px; margin-bottom: 10px; }
  .preview-banner { background: #fff3cd; border: 1px solid #ffc107; padding: 6px 10px;
    font-weight: bold; margin-bottom: 12px; }
  .sig img { max-height: 60px; }
</style>
</head>
<body>
  <h1>{{.Title}}</h1>
  {{if .Preview}}<div class="preview-banner">PREVIEW &mdash; NOT A VALID CERTIFICATE</div>{{end}}
  <div class="issued">Issued {{.IssuedAt}}</div>

  {{range .Sections}}
  <h2>{{.Heading}}</h2>
  <table>
    {{range .Rows}}<tr><td class="label">{{.Label}}</td><td>{{.Value}}</td></tr>
    {{end}}
  </table>
  {{end}}

  {{if .Appliances}}
  <h2>Appliances Inspected</h2>
  <table>
    <tr><th>Type</th><th>Location</th><th>Make / Model</th><th>Flue</th>
        <th>Pressure</th><th>Combustion</th><th>Rating</th><th>Class</th><th>Defect</th></tr>
    {{range .Appliances}}
    <tr><td>{{.ApplianceType}}</td><td>{{.Location}}</td><td>{{.MakeModel}}</td>
        <td>{{.FlueType}}</td><td>{{.OperatingPressure}}</td><td>{{.CombustionReading}}</td>
        <td>{{.SafetyRating}}</td><td>{{.ClassificationCode}}</td><td>{{.DefectIdentified}}</td></tr>
    {{end}}
  </table>
  {{end}}

  {{if .Defects}}
  <h2>Defects &amp; Remedial Work</h2>
  <table>
    {{range .Defects}}<tr><td class="label">{{.Label}}</td><td>{{.Value}}</td></tr>
    {{end}}
  </table>
  {{end}}

  <h2>Signatures</h2>
  <table class="sig">
    <tr>
      <td class="label">Engineer</td>
      <td>{{if .Signatures.EngineerURL}}<img src="{{.Signatures.EngineerURL}}">{{else}}Not signed{{end}}</td>
    </tr>
    <tr>
      <td class="label">Customer</td>
      <td>{{if .Signatures.CustomerURL}}<img src="{{.Signatures.CustomerURL}}">{{else}}Not signed{{end}}</td>
    </tr>
  </table>
</body>
</html>`))
