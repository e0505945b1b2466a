package version_test

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	mock_version "github.com/lanwarden/lanwarden/internal/mock/scripts/bump-version/version"
	"github.com/lanwarden/lanwarden/internal/scripts/bump-version/version"
	"github.com/stretchr/testify/assert"
)

func TestBump(t *testing.T) {
	ctrl := gomock.NewController(t)

	defer ctrl.Finish()

	outFile := "internal/app-info/app-info.go"

	data := version.BumpData{
		Version:      "v1.2.3",
		OutFile:      outFile,
		TemplatePath: "internal/templates/app-info.go.tmpl",
	}

	t.Run("generates, commits, and tags", func(st *testing.T) {
		generator := mock_version.NewMockVersionGenerator(ctrl)
		vc := mock_version.NewMockVersionControl(ctrl)

		generator.EXPECT().Generate(version.VersionData{VERSION: "v1.2.3"}).Return(nil)
		vc.EXPECT().Add(outFile).Return(nil)
		vc.EXPECT().Commit("Bump version v1.2.3").Return(nil)
		vc.EXPECT().Tag("v1.2.3").Return(nil)

		err := version.Bump(data, generator, vc)

		assert.NoError(st, err)
	})

	t.Run("rejects versions without a v prefix", func(st *testing.T) {
		generator := mock_version.NewMockVersionGenerator(ctrl)
		vc := mock_version.NewMockVersionControl(ctrl)

		badData := data
		badData.Version = "1.2.3"

		err := version.Bump(badData, generator, vc)

		assert.Error(st, err)
	})

	t.Run("stops at the first failure", func(st *testing.T) {
		generator := mock_version.NewMockVersionGenerator(ctrl)
		vc := mock_version.NewMockVersionControl(ctrl)

		mockErr := errors.New("nothing to commit")

		generator.EXPECT().Generate(gomock.Any()).Return(nil)
		vc.EXPECT().Add(outFile).Return(nil)
		vc.EXPECT().Commit(gomock.Any()).Return(mockErr)

		err := version.Bump(data, generator, vc)

		assert.Equal(st, mockErr, err)
	})
}
