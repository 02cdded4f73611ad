// Package document holds the form-backed data models for the CV and cover
// letter builders. Values loaded from storage or the wire are defensively
// reconstructed field by field; downstream renderers assume well-shaped input.
package document

// Shared visual enums. The portfolio builder keeps its own copies; the two
// form families evolve independently.
const (
	ThemeBlue    = "blue"
	ThemeEmerald = "emerald"
	ThemeRose    = "rose"

	FontInter  = "inter"
	FontLora   = "lora"
	FontRoboto = "roboto"
)

// ExperienceEntry is one position on a CV.
type ExperienceEntry struct {
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Date         string   `json:"date"`
	Role         string   `json:"role"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
}

// EducationEntry is one school or degree on a CV.
type EducationEntry struct {
	School   string `json:"school"`
	Degree   string `json:"degree"`
	Location string `json:"location"`
	Date     string `json:"date"`
	Details  string `json:"details"`
}

// CVData is the user-editable CV form state.
type CVData struct {
	Name           string            `json:"name"`
	Location       string            `json:"location"`
	Email          string            `json:"email"`
	Phone          string            `json:"phone"`
	LinkedIn       string            `json:"linkedin"`
	Portfolio      string            `json:"portfolio"`
	Summary        string            `json:"summary"`
	Education      []EducationEntry  `json:"education"`
	Skills         []string          `json:"skills"`
	Certifications []string          `json:"certifications"`
	Projects       []string          `json:"projects"`
	Experience     []ExperienceEntry `json:"experience"`
	Theme          string            `json:"theme"`
	Font           string            `json:"font"`
}

// CoverLetterData is the user-editable cover letter form state.
type CoverLetterData struct {
	ApplicantName     string `json:"applicantName"`
	ApplicantLocation string `json:"applicantLocation"`
	ApplicantEmail    string `json:"applicantEmail"`
	ApplicantPhone    string `json:"applicantPhone"`
	ApplicantLinkedIn string `json:"applicantLinkedIn"`
	ApplicantPortfolio string `json:"applicantPortfolio"`

	RecipientName   string `json:"recipientName"`
	RecipientTitle  string `json:"recipientTitle"`
	Company         string `json:"company"`
	CompanyLocation string `json:"companyLocation"`
	RoleTitle       string `json:"roleTitle"`
	Date            string `json:"date"`

	Salutation    string   `json:"salutation"`
	Intro         string   `json:"intro"`
	Body          []string `json:"body"`
	Closing       string   `json:"closing"`
	SignOff       string   `json:"signOff"`
	SignatureName string   `json:"signatureName"`

	Theme string `json:"theme"`
	Font  string `json:"font"`
}

// EmptyCV returns CV defaults. List fields hold one empty placeholder entry so
// the editor always shows a row.
func EmptyCV() CVData {
	return CVData{
		Education:      []EducationEntry{{}},
		Skills:         []string{""},
		Certifications: []string{""},
		Projects:       []string{""},
		Experience:     []ExperienceEntry{{Achievements: []string{""}}},
		Theme:          ThemeBlue,
		Font:           FontInter,
	}
}

// EmptyCoverLetter returns cover letter defaults, including the conventional
// salutation and sign-off.
func EmptyCoverLetter() CoverLetterData {
	return CoverLetterData{
		Salutation: "Dear Hiring Manager,",
		Body:       []string{""},
		SignOff:    "Sincerely,",
		Theme:      ThemeBlue,
		Font:       FontInter,
	}
}

// SanitizeCV reconstructs CV form state from untrusted decoded JSON.
func SanitizeCV(raw interface{}) CVData {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return EmptyCV()
	}

	return CVData{
		Name:           asString(obj["name"]),
		Location:       asString(obj["location"]),
		Email:          asString(obj["email"]),
		Phone:          asString(obj["phone"]),
		LinkedIn:       asString(obj["linkedin"]),
		Portfolio:      asString(obj["portfolio"]),
		Summary:        asString(obj["summary"]),
		Education:      sanitizeEducation(obj["education"]),
		Skills:         sanitizeStrings(obj["skills"]),
		Certifications: sanitizeStrings(obj["certifications"]),
		Projects:       sanitizeStrings(obj["projects"]),
		Experience:     sanitizeExperience(obj["experience"]),
		Theme:          sanitizeTheme(obj["theme"]),
		Font:           sanitizeFont(obj["font"]),
	}
}

// SanitizeCoverLetter reconstructs cover letter form state from untrusted
// decoded JSON. Blank salutation and sign-off fall back to the conventional
// defaults.
func SanitizeCoverLetter(raw interface{}) CoverLetterData {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return EmptyCoverLetter()
	}

	out := CoverLetterData{
		ApplicantName:      asString(obj["applicantName"]),
		ApplicantLocation:  asString(obj["applicantLocation"]),
		ApplicantEmail:     asString(obj["applicantEmail"]),
		ApplicantPhone:     asString(obj["applicantPhone"]),
		ApplicantLinkedIn:  asString(obj["applicantLinkedIn"]),
		ApplicantPortfolio: asString(obj["applicantPortfolio"]),
		RecipientName:      asString(obj["recipientName"]),
		RecipientTitle:     asString(obj["recipientTitle"]),
		Company:            asString(obj["company"]),
		CompanyLocation:    asString(obj["companyLocation"]),
		RoleTitle:          asString(obj["roleTitle"]),
		Date:               asString(obj["date"]),
		Salutation:         asString(obj["salutation"]),
		Intro:              asString(obj["intro"]),
		Body:               sanitizeStrings(obj["body"]),
		Closing:            asString(obj["closing"]),
		SignOff:            asString(obj["signOff"]),
		SignatureName:      asString(obj["signatureName"]),
		Theme:              sanitizeTheme(obj["theme"]),
		Font:               sanitizeFont(obj["font"]),
	}
	if out.Salutation == "" {
		out.Salutation = "Dear Hiring Manager,"
	}
	if out.SignOff == "" {
		out.SignOff = "Sincerely,"
	}
	return out
}

func asString(x interface{}) string {
	if s, ok := x.(string); ok {
		return s
	}
	return ""
}

func sanitizeStrings(x interface{}) []string {
	items, ok := x.([]interface{})
	if !ok {
		return []string{""}
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = asString(item)
	}
	return out
}

func sanitizeEducation(x interface{}) []EducationEntry {
	items, ok := x.([]interface{})
	if !ok {
		return []EducationEntry{{}}
	}
	out := make([]EducationEntry, len(items))
	for i, item := range items {
		obj, _ := item.(map[string]interface{})
		out[i] = EducationEntry{
			School:   asString(obj["school"]),
			Degree:   asString(obj["degree"]),
			Location: asString(obj["location"]),
			Date:     asString(obj["date"]),
			Details:  asString(obj["details"]),
		}
	}
	return out
}

func sanitizeExperience(x interface{}) []ExperienceEntry {
	items, ok := x.([]interface{})
	if !ok {
		return []ExperienceEntry{{Achievements: []string{""}}}
	}
	out := make([]ExperienceEntry, len(items))
	for i, item := range items {
		obj, _ := item.(map[string]interface{})
		out[i] = ExperienceEntry{
			Company:      asString(obj["company"]),
			Location:     asString(obj["location"]),
			Date:         asString(obj["date"]),
			Role:         asString(obj["role"]),
			Description:  asString(obj["description"]),
			Achievements: sanitizeStrings(obj["achievements"]),
		}
	}
	return out
}

func sanitizeTheme(x interface{}) string {
	switch x {
	case ThemeEmerald, ThemeRose:
		return x.(string)
	default:
		return ThemeBlue
	}
}

func sanitizeFont(x interface{}) string {
	switch x {
	case FontLora, FontRoboto:
		return x.(string)
	default:
		return FontInter
	}
}
