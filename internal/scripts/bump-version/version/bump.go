package version

import (
	"errors"
	"fmt"
	"strings"
)

// BumpData represents the info needed to bump the app version
type BumpData struct {
	Version      string
	OutFile      string
	TemplatePath string
}

// Bump regenerates the version file, commits it, and tags the commit
func Bump(data BumpData, generator VersionGenerator, vc VersionControl) error {
	if !strings.HasPrefix(data.Version, "v") {
		return errors.New("version must begin with a \"v\"")
	}

	err := generator.Generate(VersionData{VERSION: data.Version})

	if err != nil {
		return err
	}

	if err := vc.Add(data.OutFile); err != nil {
		return err
	}

	message := fmt.Sprintf("Bump version %s", data.Version)

	if err := vc.Commit(message); err != nil {
		return err
	}

	return vc.Tag(data.Version)
}
