package note

import (
	"fmt"
	"os"

	"github.com/learntrack/learntrack/internal/pdf"
)

// ExportMarkdown writes a note to path as a Markdown document: a "# <title>"
// heading followed by the raw note body.
func ExportMarkdown(n *Note, path string) error {
	content := fmt.Sprintf("# %s\n\n%s", n.Title, n.Content)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	return nil
}

// ExportPDF writes a note as Markdown to mdPath and renders it to a PDF next
// to it. It returns the path of the generated PDF.
func ExportPDF(n *Note, mdPath string) (string, error) {
	if err := ExportMarkdown(n, mdPath); err != nil {
		return "", err
	}
	return pdf.ConvertMarkdownToPDF(mdPath)
}
