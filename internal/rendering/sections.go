package rendering

import (
	"strings"

	"github.com/jonathan/cv-builder/internal/templates"
	"github.com/jonathan/cv-builder/internal/types"
)

func (b *builder) header(inlineContact bool) *Node {
	h := b.hooks
	p := b.data.PersonalInfo

	style := css{
		"color":   h.HeaderText,
		"padding": "32px 40px",
	}
	switch h.Header {
	case templates.HeaderGradient, templates.HeaderSolid, templates.HeaderPlain:
		style["background"] = h.HeaderBackground
	case templates.HeaderBorderOnly:
		style["background"] = "transparent"
		style["border-bottom"] = "2px solid " + h.Border
		style["padding"] = "32px 40px 20px"
	}

	var name, title, contact, photo *Node
	if !types.Blank(p.FullName) {
		name = txt(KindTitle, "header.name", p.FullName, css{"font-size": "2.25em", "font-weight": "700", "margin": "0", "line-height": "1.2"})
	}
	if !types.Blank(p.JobTitle) {
		title = txt(KindText, "header.title", p.JobTitle, css{"font-size": "1.15em", "margin": "4px 0 0", "opacity": "0.9"})
	}
	if inlineContact {
		if line := contactLine(p); line != "" {
			contact = txt(KindText, "header.contact", line, css{"font-size": "0.9em", "margin": "10px 0 0"})
		}
		if b.tpl.HasPhoto {
			photo = b.photo()
		}
	}

	n := el(KindHeader, "header", style, photo, name, title, contact)
	n.Attrs = map[string]string{"data-treatment": string(h.Header)}
	return n
}

func contactLine(p types.PersonalInfo) string {
	var parts []string
	for _, v := range []string{p.Email, p.Phone, p.Address, p.Website} {
		if !types.Blank(v) {
			parts = append(parts, strings.TrimSpace(v))
		}
	}
	return strings.Join(parts, " • ")
}

func (b *builder) photo() *Node {
	if !b.tpl.HasPhoto {
		return nil
	}
	return &Node{
		Kind: KindImage,
		Role: "photo",
		Attrs: map[string]string{
			"src": PhotoSource(b.data.PersonalInfo.PhotoURL),
			"alt": "Profile photo",
		},
		Style: css{
			"width":         "120px",
			"height":        "120px",
			"border-radius": "9999px",
			"object-fit":    "cover",
			"display":       "block",
			"margin":        "0 auto 20px",
			"border":        "3px solid " + b.hooks.Border,
		},
	}
}

// section wraps children under a titled section. inSidebar picks the
// heading colors for the sidebar column.
func (b *builder) section(key, title string, inSidebar bool, children ...*Node) *Node {
	headingStyle := css{
		"font-size":      "0.95em",
		"font-weight":    "700",
		"text-transform": "uppercase",
		"letter-spacing": "0.08em",
		"margin":         "0 0 10px",
		"padding-bottom": "4px",
		"break-after":    "avoid",
	}
	if inSidebar {
		headingStyle["color"] = b.hooks.SidebarText
		headingStyle["border-bottom"] = "1px solid " + b.hooks.Border
	} else {
		headingStyle["color"] = b.hooks.PrimaryText
		headingStyle["border-bottom"] = "2px solid " + b.hooks.Border
	}

	all := append([]*Node{txt(KindHeading, "section.title", title, headingStyle)}, children...)
	n := el(KindSection, "section."+key, css{"margin-bottom": "20px"}, all...)
	n.Attrs = map[string]string{"data-section": key}
	return n
}

func (b *builder) contactSection() *Node {
	if !b.vis.Contact {
		return nil
	}
	p := b.data.PersonalInfo
	var items []*Node
	for _, f := range []struct{ key, value string }{
		{"email", p.Email}, {"phone", p.Phone}, {"address", p.Address}, {"website", p.Website},
	} {
		if types.Blank(f.value) {
			continue
		}
		items = append(items, txt(KindItem, "contact."+f.key, strings.TrimSpace(f.value), css{"margin-bottom": "6px", "word-break": "break-word"}))
	}
	return b.section("contact", "Contact", true, el(KindList, "contact.list", listStyle(), items...))
}

func (b *builder) summarySection() *Node {
	if !b.vis.Summary {
		return nil
	}
	return b.section("summary", "Profile", false,
		txt(KindText, "summary.text", strings.TrimSpace(b.data.Summary), css{"margin": "0", "text-align": "justify"}))
}

// entry is the shared frame for experience and education items. The accent
// bar is template-driven, never data-driven.
func (b *builder) entry(children ...*Node) *Node {
	style := css{
		"position":     "relative",
		"margin":       "0 0 14px",
		"break-inside": "avoid",
	}
	var bar *Node
	if b.hooks.EntryAccentBar {
		style["padding-left"] = "14px"
		bar = el(KindBox, "entry.accent", css{
			"position":      "absolute",
			"left":          "0",
			"top":           "2px",
			"bottom":        "2px",
			"width":         "4px",
			"border-radius": "2px",
			"background":    "var(" + templates.VarPrimary + ")",
		})
	}
	return el(KindBox, "entry", style, append([]*Node{bar}, children...)...)
}

func (b *builder) entryHead(title, subtitle, dates string) []*Node {
	var out []*Node
	if !types.Blank(title) {
		out = append(out, txt(KindSubheading, "entry.title", strings.TrimSpace(title), css{"font-size": "1.05em", "font-weight": "600", "margin": "0"}))
	}
	if !types.Blank(subtitle) {
		out = append(out, txt(KindText, "entry.subtitle", strings.TrimSpace(subtitle), css{"margin": "0", "color": b.hooks.PrimaryText, "font-weight": "500"}))
	}
	if dates != "" {
		out = append(out, txt(KindText, "entry.dates", dates, css{"margin": "0", "font-size": "0.85em", "color": "#6b7280"}))
	}
	return out
}

func (b *builder) experienceSection() *Node {
	if !b.vis.Experience {
		return nil
	}
	var entries []*Node
	for _, exp := range filled(b.data.WorkExperience, experienceFilled) {
		parts := b.entryHead(exp.JobTitle, exp.Company, DateRange(exp.StartDate, exp.EndDate, exp.Current))
		var bullets []*Node
		for _, r := range exp.Responsibilities {
			if types.Blank(r) {
				continue
			}
			bullets = append(bullets, txt(KindItem, "entry.detail", strings.TrimSpace(r), css{"margin-bottom": "2px"}))
		}
		if len(bullets) > 0 {
			parts = append(parts, el(KindList, "entry.details", css{"margin": "6px 0 0", "padding-left": "18px"}, bullets...))
		}
		n := b.entry(parts...)
		n.Attrs = map[string]string{"data-id": exp.ID}
		entries = append(entries, n)
	}
	return b.section("experience", "Work Experience", false, entries...)
}

func (b *builder) educationSection() *Node {
	if !b.vis.Education {
		return nil
	}
	var entries []*Node
	for _, edu := range filled(b.data.Education, educationFilled) {
		title := strings.TrimSpace(edu.Degree)
		if field := strings.TrimSpace(edu.FieldOfStudy); field != "" {
			if title == "" {
				title = field
			} else {
				title += " in " + field
			}
		}
		parts := b.entryHead(title, edu.Institution, DateRange(edu.StartDate, edu.EndDate, false))
		if !types.Blank(edu.Grade) {
			parts = append(parts, txt(KindText, "entry.grade", "Grade: "+strings.TrimSpace(edu.Grade), css{"margin": "0", "font-size": "0.85em"}))
		}
		n := b.entry(parts...)
		n.Attrs = map[string]string{"data-id": edu.ID}
		entries = append(entries, n)
	}
	return b.section("education", "Education", false, entries...)
}

func (b *builder) skillsSection(inSidebar bool) *Node {
	if !b.vis.Skills {
		return nil
	}
	h := b.hooks
	var items []*Node
	for _, s := range filled(b.data.Skills, func(s types.Skill) bool { return !types.Blank(s.Name) }) {
		pct := SkillPercent(s.Level)
		fill := &Node{
			Kind: KindBox,
			Role: "skill.fill",
			Style: css{
				"width":         percent(pct),
				"height":        "100%",
				"background":    h.ProgressFill,
				"border-radius": h.ProgressRadius,
			},
			Attrs: map[string]string{"data-percent": percent(pct)},
		}
		bar := el(KindBar, "skill.bar", css{
			"height":        "6px",
			"width":         "100%",
			"background":    h.ProgressTrack,
			"border-radius": h.ProgressRadius,
			"overflow":      "hidden",
			"margin-top":    "4px",
		}, fill)
		label := el(KindBox, "skill.label", css{"display": "flex", "justify-content": "space-between", "font-size": "0.9em"},
			txt(KindInline, "skill.name", strings.TrimSpace(s.Name), nil),
			txt(KindInline, "skill.level", string(s.Level), css{"opacity": "0.75"}),
		)
		item := el(KindItem, "skill", css{"margin-bottom": "10px", "break-inside": "avoid"}, label, bar)
		item.Attrs = map[string]string{"data-id": s.ID}
		items = append(items, item)
	}
	return b.section("skills", "Skills", inSidebar, el(KindList, "skills.list", listStyle(), items...))
}

func (b *builder) languagesSection(inSidebar bool) *Node {
	if !b.vis.Languages {
		return nil
	}
	var items []*Node
	for _, l := range filled(b.data.Languages, func(l types.Language) bool { return !types.Blank(l.Name) }) {
		item := el(KindItem, "language", css{"display": "flex", "justify-content": "space-between", "margin-bottom": "6px"},
			txt(KindInline, "language.name", strings.TrimSpace(l.Name), css{"font-weight": "500"}),
			txt(KindInline, "language.proficiency", string(l.Proficiency), css{"opacity": "0.75", "font-size": "0.9em"}),
		)
		item.Attrs = map[string]string{"data-id": l.ID}
		items = append(items, item)
	}
	return b.section("languages", "Languages", inSidebar, el(KindList, "languages.list", listStyle(), items...))
}

func (b *builder) certificationsSection(inSidebar bool) *Node {
	if !b.vis.Certifications {
		return nil
	}
	var items []*Node
	for _, c := range filled(b.data.Certifications, func(c types.Certification) bool { return !types.Blank(c.Name) }) {
		var meta []string
		if !types.Blank(c.Issuer) {
			meta = append(meta, strings.TrimSpace(c.Issuer))
		}
		if d := FormatDate(c.Date); d != "" {
			meta = append(meta, d)
		}
		var expiry *Node
		if d := FormatDate(c.ExpiryDate); d != "" {
			expiry = txt(KindText, "certification.expiry", "Expires "+d, css{"margin": "0", "font-size": "0.8em", "opacity": "0.75"})
		}
		var metaNode *Node
		if len(meta) > 0 {
			metaNode = txt(KindText, "certification.meta", strings.Join(meta, " • "), css{"margin": "0", "font-size": "0.85em"})
		}
		item := el(KindItem, "certification", css{"margin-bottom": "8px", "break-inside": "avoid"},
			txt(KindText, "certification.name", strings.TrimSpace(c.Name), css{"margin": "0", "font-weight": "600"}),
			metaNode,
			expiry,
		)
		item.Attrs = map[string]string{"data-id": c.ID}
		items = append(items, item)
	}
	return b.section("certifications", "Certifications", inSidebar, el(KindList, "certifications.list", listStyle(), items...))
}

func (b *builder) referencesSection(inSidebar bool) *Node {
	if !b.vis.References {
		return nil
	}
	var items []*Node
	for _, r := range filled(b.data.References, func(r types.Reference) bool { return !types.Blank(r.Name) }) {
		var lines []*Node
		for _, f := range []struct{ role, value string }{
			{"reference.organization", r.Organization},
			{"reference.email", r.Email},
			{"reference.phone", r.Phone},
		} {
			if !types.Blank(f.value) {
				lines = append(lines, txt(KindText, f.role, strings.TrimSpace(f.value), css{"margin": "0", "font-size": "0.85em"}))
			}
		}
		item := el(KindItem, "reference", css{"margin-bottom": "10px", "break-inside": "avoid"},
			append([]*Node{txt(KindText, "reference.name", strings.TrimSpace(r.Name), css{"margin": "0", "font-weight": "600"})}, lines...)...)
		item.Attrs = map[string]string{"data-id": r.ID}
		items = append(items, item)
	}
	return b.section("references", "References", inSidebar, el(KindList, "references.list", listStyle(), items...))
}

func listStyle() css {
	return css{"list-style": "none", "margin": "0", "padding": "0"}
}
