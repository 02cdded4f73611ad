package portfolio

// Theme accents for the generated page.
const (
	ThemeBlue    = "blue"
	ThemeEmerald = "emerald"
	ThemeRose    = "rose"
)

// Font choices offered by the builder UI.
const (
	FontInter  = "inter"
	FontLora   = "lora"
	FontRoboto = "roboto"
)

// Template selectors.
const (
	TemplateModern  = "modern"
	TemplateClassic = "classic"
	TemplateMinimal = "minimal"
)

// Project is one portfolio project entry. Link is optional.
type Project struct {
	Name        string `json:"name"`
	Link        string `json:"link,omitempty"`
	Description string `json:"description"`
}

// Social is one external profile link.
type Social struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Data is the user-editable portfolio profile. Embedded binary content
// (profile photo, CV file) travels as self-contained data URIs so the
// generated bundle needs no asset pipeline.
type Data struct {
	FullName      string    `json:"fullName"`
	Role          string    `json:"role"`
	Tagline       string    `json:"tagline"`
	Location      string    `json:"location"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	LinkedIn      string    `json:"linkedin"`
	About         string    `json:"about"`
	Skills        []string  `json:"skills"`
	Projects      []Project `json:"projects"`
	Socials       []Social  `json:"socials"`
	Theme         string    `json:"theme"`
	Font          string    `json:"font"`
	TemplateID    string    `json:"templateId"`
	PhotoDataURL  string    `json:"photoDataUrl,omitempty"`
	CVURL         string    `json:"cvUrl,omitempty"`
	CVFileDataURL string    `json:"cvFileDataUrl,omitempty"`
	CVFileName    string    `json:"cvFileName,omitempty"`
}

// Empty returns the default profile. List fields hold a single empty
// placeholder entry, never an empty list, so the editing UI always has at
// least one row to show.
func Empty() Data {
	return Data{
		Skills:     []string{""},
		Projects:   []Project{{}},
		Socials:    []Social{{}},
		Theme:      ThemeBlue,
		Font:       FontInter,
		TemplateID: TemplateModern,
	}
}

// Sanitize defensively reconstructs a profile from untrusted decoded JSON.
// Wrong-typed scalars fall back to empty strings, wrong-typed lists to a
// single placeholder entry, unknown enum values to the defaults. The renderer
// relies on the result always being well shaped.
func Sanitize(raw interface{}) Data {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return Empty()
	}

	return Data{
		FullName:      asString(obj["fullName"]),
		Role:          asString(obj["role"]),
		Tagline:       asString(obj["tagline"]),
		Location:      asString(obj["location"]),
		Email:         asString(obj["email"]),
		Phone:         asString(obj["phone"]),
		LinkedIn:      asString(obj["linkedin"]),
		About:         asString(obj["about"]),
		Skills:        sanitizeSkills(obj["skills"]),
		Projects:      sanitizeProjects(obj["projects"]),
		Socials:       sanitizeSocials(obj["socials"]),
		Theme:         sanitizeTheme(obj["theme"]),
		Font:          sanitizeFont(obj["font"]),
		TemplateID:    sanitizeTemplate(obj["templateId"]),
		PhotoDataURL:  asString(obj["photoDataUrl"]),
		CVURL:         asString(obj["cvUrl"]),
		CVFileDataURL: asString(obj["cvFileDataUrl"]),
		CVFileName:    asString(obj["cvFileName"]),
	}
}

func asString(x interface{}) string {
	if s, ok := x.(string); ok {
		return s
	}
	return ""
}

func sanitizeSkills(x interface{}) []string {
	items, ok := x.([]interface{})
	if !ok {
		return []string{""}
	}
	skills := make([]string, len(items))
	for i, item := range items {
		skills[i] = asString(item)
	}
	return skills
}

func sanitizeProjects(x interface{}) []Project {
	items, ok := x.([]interface{})
	if !ok {
		return []Project{{}}
	}
	projects := make([]Project, len(items))
	for i, item := range items {
		obj, _ := item.(map[string]interface{})
		projects[i] = Project{
			Name:        asString(obj["name"]),
			Link:        asString(obj["link"]),
			Description: asString(obj["description"]),
		}
	}
	return projects
}

func sanitizeSocials(x interface{}) []Social {
	items, ok := x.([]interface{})
	if !ok {
		return []Social{{}}
	}
	socials := make([]Social, len(items))
	for i, item := range items {
		obj, _ := item.(map[string]interface{})
		socials[i] = Social{
			Label: asString(obj["label"]),
			URL:   asString(obj["url"]),
		}
	}
	return socials
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

func sanitizeTemplate(x interface{}) string {
	switch x {
	case TemplateClassic, TemplateMinimal:
		return x.(string)
	default:
		return TemplateModern
	}
}
