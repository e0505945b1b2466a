package version

import (
	"os"
	"path/filepath"
	"text/template"
)

// TemplateGenerator implements the VersionGenerator interface using
// text templates
type TemplateGenerator struct {
	outFile      string
	outDir       string
	templatePath string
	templateName string
}

// NewTemplateGenerator returns a new instance of TemplateGenerator
func NewTemplateGenerator(outFile, templatePath string) *TemplateGenerator {
	return &TemplateGenerator{
		outFile:      outFile,
		outDir:       filepath.Dir(outFile),
		templatePath: templatePath,
		templateName: filepath.Base(templatePath),
	}
}

// Generate renders the version template to the output file
func (t *TemplateGenerator) Generate(data VersionData) error {
	if err := os.MkdirAll(t.outDir, 0751); err != nil {
		return err
	}

	file, err := os.Create(t.outFile)

	if err != nil {
		return err
	}

	defer file.Close()

	tmpl, err := template.New(t.templateName).ParseFiles(t.templatePath)

	if err != nil {
		return err
	}

	return tmpl.Execute(file, data)
}
