package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/syllabus/internal/domain"
)

// FormatCatalog lists every domain with its modules.
func FormatCatalog(c *domain.Catalog) string {
	var b strings.Builder
	b.WriteString(Header("Catalog"))
	b.WriteString("\n")

	for i, d := range c.Domains() {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %s %s\n",
			StyleDim.Render(fmt.Sprintf("%2d", i+1)),
			StylePurple.Render(d.Title),
			Dim("("+d.ID+")"))
		for _, m := range d.Modules {
			fmt.Fprintf(&b, "   %s  %s\n", StyleBlue.Render(fmt.Sprintf("%-6s", m.ID)), m.Name)
		}
	}

	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%d domains, %d modules", c.Len(), c.ModuleCount())))
	b.WriteString("\n")
	return b.String()
}

// FormatValidation renders the outcome of validating a catalog file.
func FormatValidation(path string, domains, modules int, errs []error) string {
	if path == "" {
		path = "built-in catalog"
	}
	if len(errs) == 0 {
		return fmt.Sprintf("%s %s %s\n", StyleGreen.Render("✔"), path,
			Dim(fmt.Sprintf("(%d domains, %d modules)", domains, modules)))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n", StyleRed.Render("✖"), path,
		Dim(fmt.Sprintf("(%d problems)", len(errs))))
	for _, err := range errs {
		fmt.Fprintf(&b, "  %s %s\n", StyleRed.Render("•"), err)
	}
	return b.String()
}

// FormatModule renders a module's detail card.
func FormatModule(m domain.Module, selected bool) string {
	var b strings.Builder
	b.WriteString(Bold(m.Name))
	b.WriteString("  ")
	b.WriteString(Dim(m.ID))
	if selected {
		b.WriteString("  ")
		b.WriteString(StyleGreen.Render("✔ selected"))
	}
	if m.Description != "" {
		b.WriteString("\n\n")
		b.WriteString(m.Description)
	}
	return b.String()
}
