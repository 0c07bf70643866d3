package letter

import "sort"

// TemplateID names an invitation-letter template. Only ids in the allow-list
// can be rendered or referenced from the catalog.
type TemplateID string

// Template is a static letter body with {{FIELD}} placeholders.
type Template struct {
	ID          TemplateID `json:"id"`
	CountryName string     `json:"countryName"`
	Addressee   string     `json:"addressee"`
	Body        string     `json:"-"`
}

type templateSpec struct {
	country   string
	addressee string
	closing   string
}

var templateSpecs = map[TemplateID]templateSpec{
	"US": {"United States", "U.S. Customs and Border Protection / Consular Officer",
		"We confirm that the traveller will not receive a salary or payment from any U.S. source during this visit."},
	"UK": {"United Kingdom", "UK Border Force / Entry Clearance Officer",
		"The activities planned fall within the permitted activities for Standard Visitors."},
	"CA": {"Canada", "Immigration, Refugees and Citizenship Canada",
		"The traveller will not enter the Canadian labour market during this visit."},
	"DE": {"Germany", "Embassy of the Federal Republic of Germany, Visa Section",
		"Travel medical insurance valid for the Schengen area is held for the full duration of the stay."},
	"JP": {"Japan", "Embassy of Japan, Consular Section",
		"The traveller will not engage in activities involving remuneration in Japan."},
	"BR": {"Brazil", "Consulate General of Brazil",
		"The traveller will not receive remuneration from a Brazilian source during this visit."},
	"FR": {"France", "Consulat Général de France, Service des Visas",
		"Travel medical insurance valid for the Schengen area is held for the full duration of the stay."},
	"IN": {"India", "High Commission / Embassy of India, Visa Section",
		"The visit is for business purposes only and does not involve employment in India."},
	"SG": {"Singapore", "Immigration & Checkpoints Authority",
		"The traveller will not take up employment in Singapore during this visit."},
	"AU": {"Australia", "Department of Home Affairs",
		"The traveller will not undertake work that would normally be done by an Australian worker."},
}

const bodyTemplate = `{{ISSUE_DATE}}

To: {{ADDRESSEE}}

Re: Letter of invitation for business travel to {{COUNTRY}}

To whom it may concern,

This letter confirms that {{EMPLOYEE_NAME}}, {{EMPLOYEE_TITLE}}, a citizen of {{EMPLOYEE_CITIZENSHIP}}, is employed by Carta and is travelling to {{COUNTRY}} on company business from {{DEPARTURE_DATE}} to {{RETURN_DATE}}.

During the visit {{EMPLOYEE_NAME}} will meet with {{HOST_COMPANY}} to attend meetings and related business activities. Carta will cover all travel, accommodation and subsistence costs for the trip, and the traveller will return at the end of the stated period.

{{CLOSING}}

Please contact {{EMPLOYEE_EMAIL}} or the Carta travel team should you require any further information.

Sincerely,

Carta Global Mobility
`

var templates = buildTemplates()

func buildTemplates() map[TemplateID]Template {
	out := make(map[TemplateID]Template, len(templateSpecs))
	for id, spec := range templateSpecs {
		body := replaceStatic(bodyTemplate, map[string]string{
			"{{ADDRESSEE}}": spec.addressee,
			"{{COUNTRY}}":   spec.country,
			"{{CLOSING}}":   spec.closing,
		})
		out[id] = Template{ID: id, CountryName: spec.country, Addressee: spec.addressee, Body: body}
	}
	return out
}

// IsAllowed reports whether id is in the template allow-list.
func IsAllowed(id TemplateID) bool {
	_, ok := templates[id]
	return ok
}

// Lookup returns the template for id.
func Lookup(id TemplateID) (Template, bool) {
	t, ok := templates[id]
	return t, ok
}

// Templates lists every available template sorted by id.
func Templates() []Template {
	out := make([]Template, 0, len(templates))
	for _, t := range templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
