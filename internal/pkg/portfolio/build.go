package portfolio

import (
	"fmt"
	"strings"
)

// Bundle is a publishable static site: file name to file content.
type Bundle map[string]string

// File names inside the bundle.
const (
	IndexFile  = "index.html"
	StylesFile = "styles.css"
)

// Accent colors per theme, inlined into heading styles and the --accent CSS
// custom property so the page needs no build step.
func themeAccent(theme string) string {
	switch theme {
	case ThemeEmerald:
		return "#059669"
	case ThemeRose:
		return "#e11d48"
	default:
		return "#2563eb"
	}
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// escape neutralizes the five HTML-significant characters. Every user-supplied
// string must pass through here (or nl2br) before interpolation; a miss is an
// XSS hole in the published page, not a cosmetic bug.
func escape(s string) string {
	return htmlEscaper.Replace(s)
}

// nl2br escapes first, then turns newlines into explicit line breaks.
func nl2br(s string) string {
	return strings.ReplaceAll(escape(s), "\n", "<br/>")
}

// EnsureScheme prefixes https:// onto scheme-less URLs so they work inside an
// href on the published page.
func EnsureScheme(u string) string {
	if strings.HasPrefix(u, "http") {
		return u
	}
	return "https://" + u
}

// DisplayURL strips the scheme for readability when a URL doubles as its own
// link text.
func DisplayURL(u string) string {
	u = strings.TrimPrefix(u, "https://")
	return strings.TrimPrefix(u, "http://")
}

// BuildStaticFiles deterministically renders a profile into a self-contained
// two-file bundle suitable for direct publication. The copyright year is
// passed in explicitly; it is the only render-instant input, so identical
// (data, year) pairs produce byte-identical output.
func BuildStaticFiles(data Data, year int) Bundle {
	accent := themeAccent(data.Theme)

	heroPhoto := `<div class="avatar placeholder">&#128100;</div>`
	if data.PhotoDataURL != "" {
		heroPhoto = fmt.Sprintf(`<img src="%s" alt="Profile" class="avatar" />`, escape(data.PhotoDataURL))
	}

	// Embedded CV wins over the external URL; neither means no button at all.
	cvButton := ""
	switch {
	case data.CVFileDataURL != "":
		name := data.CVFileName
		if name == "" {
			name = "cv.pdf"
		}
		cvButton = fmt.Sprintf(`<a href="%s" download="%s" class="btn btn-primary">Download CV</a>`, escape(data.CVFileDataURL), escape(name))
	case data.CVURL != "":
		cvButton = fmt.Sprintf(`<a href="%s" target="_blank" class="btn btn-primary">View CV</a>`, escape(EnsureScheme(data.CVURL)))
	}

	var chips strings.Builder
	for _, s := range data.Socials {
		if strings.TrimSpace(s.URL) == "" {
			continue
		}
		label := strings.TrimSpace(s.Label)
		if label == "" {
			label = DisplayURL(strings.TrimSpace(s.URL))
		}
		fmt.Fprintf(&chips, `<a href="%s" target="_blank" class="chip">%s</a>`, escape(EnsureScheme(s.URL)), escape(label))
	}

	var cards strings.Builder
	for _, p := range data.Projects {
		if strings.TrimSpace(p.Name) == "" {
			continue
		}
		title := escape(p.Name)
		if p.Link != "" {
			title = fmt.Sprintf(`<a href="%s" target="_blank">%s</a>`, escape(EnsureScheme(p.Link)), escape(p.Name))
		}
		fmt.Fprintf(&cards, "\n      <article class=\"card\">\n        <div class=\"card-title\">%s</div>\n        <p>%s</p>\n      </article>", title, escape(p.Description))
	}

	var skillItems strings.Builder
	for _, s := range data.Skills {
		if strings.TrimSpace(s) == "" {
			continue
		}
		fmt.Fprintf(&skillItems, "<li>%s</li>", escape(s))
	}

	var html strings.Builder
	html.WriteString("<!doctype html>\n<html lang=\"en\">\n<head>\n")
	html.WriteString("<meta charset=\"utf-8\" />\n")
	html.WriteString("<meta name=\"viewport\" content=\"width=device-width,initial-scale=1\" />\n")
	fmt.Fprintf(&html, "<title>%s &mdash; %s</title>\n", escape(data.FullName), escape(data.Role))
	html.WriteString("<link rel=\"stylesheet\" href=\"./styles.css\" />\n")
	description := data.Tagline
	if description == "" {
		description = data.About
	}
	fmt.Fprintf(&html, "<meta name=\"description\" content=\"%s\" />\n", escape(description))
	html.WriteString("</head>\n<body>\n  <main class=\"container\">\n")

	// Hero header with photo, name, role, contact line and action buttons.
	html.WriteString("    <header class=\"hero\">\n      ")
	html.WriteString(heroPhoto)
	html.WriteString("\n      <div class=\"hero-meta\">\n")
	fmt.Fprintf(&html, "        <h1 style=\"color:%s\">%s</h1>\n", accent, escape(data.FullName))
	fmt.Fprintf(&html, "        <p class=\"role\">%s</p>\n", escape(data.Role))
	var contact []string
	for _, part := range []string{data.Location, data.Email} {
		if part != "" {
			contact = append(contact, escape(part))
		}
	}
	fmt.Fprintf(&html, "        <p class=\"muted\">%s</p>\n", strings.Join(contact, " &bull; "))
	html.WriteString("        <div class=\"cta\">\n")
	if cvButton != "" {
		fmt.Fprintf(&html, "          %s\n", cvButton)
	}
	if data.LinkedIn != "" {
		fmt.Fprintf(&html, "          <a href=\"%s\" target=\"_blank\" class=\"btn\">LinkedIn</a>\n", escape(EnsureScheme(data.LinkedIn)))
	}
	if data.Email != "" {
		fmt.Fprintf(&html, "          <a href=\"mailto:%s\" class=\"btn\">Email</a>\n", escape(data.Email))
	}
	html.WriteString("        </div>\n      </div>\n    </header>\n")

	// Sections appear only when their data survives trimming; no empty headers.
	if strings.TrimSpace(data.About) != "" {
		fmt.Fprintf(&html, "\n    <section>\n      <h2 style=\"color:%s\">About</h2>\n      <p>%s</p>\n    </section>\n", accent, nl2br(data.About))
	}
	if skillItems.Len() > 0 {
		fmt.Fprintf(&html, "\n    <section>\n      <h2 style=\"color:%s\">Skills</h2>\n      <ul class=\"cols\">%s</ul>\n    </section>\n", accent, skillItems.String())
	}
	if cards.Len() > 0 {
		fmt.Fprintf(&html, "\n    <section>\n      <h2 style=\"color:%s\">Projects</h2>\n      <div class=\"grid\">%s\n      </div>\n    </section>\n", accent, cards.String())
	}
	if chips.Len() > 0 {
		fmt.Fprintf(&html, "\n    <section>\n      <h2 style=\"color:%s\">Find me online</h2>\n      <div class=\"chips\">%s</div>\n    </section>\n", accent, chips.String())
	}

	fmt.Fprintf(&html, "\n    <footer class=\"footer muted\">\n      &copy; %d %s &mdash; All rights reserved.\n    </footer>\n", year, escape(data.FullName))
	html.WriteString("  </main>\n</body>\n</html>\n")

	return Bundle{
		IndexFile:  html.String(),
		StylesFile: stylesheet(accent),
	}
}

func stylesheet(accent string) string {
	return fmt.Sprintf(`:root { --accent: %s; --radius: 14px; font-family: -apple-system, Segoe UI, Roboto, Inter, system-ui, sans-serif; }
*{box-sizing:border-box}
body{margin:0;color:#111827;background:#fff}
.container{max-width:980px;margin:0 auto;padding:2rem}
.hero{display:flex;gap:1rem;align-items:center;margin-bottom:1rem;background:linear-gradient(135deg, rgba(37,99,235,.08), rgba(37,99,235,.01)); padding:1rem; border:1px solid #e5e7eb; border-radius: var(--radius)}
.avatar{height:76px;width:76px;border-radius:9999px;object-fit:cover;border:3px solid #fff;box-shadow:0 1px 2px rgba(0,0,0,.06);background:#f3f4f6;display:flex;align-items:center;justify-content:center;font-size:24px}
.avatar.placeholder{color:#6b7280}
.hero-meta h1{margin:0;font-size:1.6rem}
.role{margin:.25rem 0;color:#374151}
.muted{color:#6b7280}
.cta{margin-top:.5rem;display:flex;flex-wrap:wrap;gap:.5rem}
.btn{border:1px solid #e5e7eb;border-radius:10px;padding:.45rem .8rem;font-weight:600;font-size:.85rem;color:#111827;text-decoration:none;transition:all .2s}
.btn:hover{background:#f9fafb;transform:translateY(-1px)}
.btn-primary{background:var(--accent);color:#fff;border-color:transparent}
.btn-primary:hover{filter:brightness(.95)}
section{margin-top:1.25rem}
h2{margin:0 0 .5rem 0}
.grid{display:grid;grid-template-columns:repeat(auto-fit,minmax(260px,1fr));gap:.75rem}
.card{border:1px solid #e5e7eb;border-radius:12px;padding:.7rem;background:#fff;transition:transform .2s}
.card:hover{transform:translateY(-3px)}
.card-title{font-weight:700;margin-bottom:.3rem}
.cols{columns:2;padding-left:1.1rem}
.chips{display:flex;flex-wrap:wrap;gap:.5rem}
.chip{border:1px solid #e5e7eb;border-radius:9999px;padding:.35rem .7rem;font-weight:600;font-size:.8rem;text-decoration:none;color:#111827;transition:all .2s}
.chip:hover{background:#f3f4f6}
.footer{margin-top:2rem;font-size:.85rem;text-align:center}
`, accent)
}
