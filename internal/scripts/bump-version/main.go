package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/lanwarden/lanwarden/internal/scripts/bump-version/version"
)

func main() {
	args := os.Args[1:]
	if len(args) != 1 {
		log.Fatal(errors.New("must provide version as argument"))
	}

	versionStr := args[0]
	outFile := "internal/app-info/app-info.go"
	templatePath := "internal/templates/app-info.go.tmpl"

	git := version.NewGit()
	generator := version.NewTemplateGenerator(outFile, templatePath)

	execData := version.BumpData{
		Version:      versionStr,
		OutFile:      outFile,
		TemplatePath: templatePath,
	}

	if err := version.Bump(execData, generator, git); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Successfully bumped version to %s\n", versionStr)

	fmt.Println("To deploy run: \"git push <repo> <branch> --tags\"")
}
