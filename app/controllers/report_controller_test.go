package controllers

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seguraep/acm-reportes/app/models"
	"github.com/seguraep/acm-reportes/app/repository"
)

func TestHead(t *testing.T) {
	short := []byte("abc")
	assert.Equal(t, short, head(short))

	long := bytes.Repeat([]byte("x"), 1024)
	assert.Len(t, head(long), 512)
}

func TestCollectImageFilesEnforcesLimit(t *testing.T) {
	tests := []struct {
		name      string
		fileCount int
		wantErr   bool
	}{
		{name: "no files", fileCount: 0, wantErr: false},
		{name: "at the limit", fileCount: maxReportImages, wantErr: false},
		{name: "over the limit", fileCount: maxReportImages + 1, wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Post("/reportes", func(c *fiber.Ctx) error {
				files, err := collectImageFiles(c)
				if tc.wantErr {
					require.Error(t, err)
					assert.Contains(t, err.Error(), "máximo")
				} else {
					require.NoError(t, err)
					assert.Len(t, files, tc.fileCount)
				}
				return c.SendStatus(fiber.StatusNoContent)
			})

			req := newReportMultipartRequest(t, tc.fileCount)
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
		})
	}
}

func TestAssociateLawsRejectsMalformedJSON(t *testing.T) {
	repo := &stubReportRepo{}
	report := &models.Report{ID: 1}

	err := associateLaws(repo, report, "{no es json}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arreglo JSON")
	assert.Zero(t, repo.associated)
}

func TestAssociateLawsEmptyInputIsNoop(t *testing.T) {
	repo := &stubReportRepo{}
	require.NoError(t, associateLaws(repo, &models.Report{ID: 1}, "  "))
	assert.Zero(t, repo.associated)
}

func TestAssociateLawsTagsReport(t *testing.T) {
	repo := &stubReportRepo{}
	report := &models.Report{ID: 7}

	err := associateLaws(repo, report, `[{"law_id":4,"article_id":12},{"law_id":5}]`)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.associated)
	require.Len(t, report.Leyes, 2)
	assert.Equal(t, uint(7), report.Leyes[0].ReportID)
	assert.Equal(t, uint(4), report.Leyes[0].LawID)
	require.NotNil(t, report.Leyes[0].ArticleID)
	assert.Equal(t, uint(12), *report.Leyes[0].ArticleID)
	assert.Nil(t, report.Leyes[1].ArticleID)
}

func TestAssociateLawsSurfacesRepositoryRejection(t *testing.T) {
	repo := &stubReportRepo{associateErr: errors.New("la ley no existe")}

	err := associateLaws(repo, &models.Report{ID: 1}, `[{"law_id":999}]`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "normativa inválida")
}

func newReportMultipartRequest(t *testing.T, fileCount int) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for i := 0; i < fileCount; i++ {
		part, err := writer.CreateFormFile("imagenes", "foto.jpg")
		require.NoError(t, err)
		_, err = part.Write([]byte("fake-image-content"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/reportes", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// stubReportRepo satisfies repository.ReportRepository for helper tests that
// never touch a database.
type stubReportRepo struct {
	associated   int
	associateErr error
}

func (s *stubReportRepo) Create(*models.Report) error { return nil }
func (s *stubReportRepo) GetByUUID(string, repository.AccessScope) (*models.Report, error) {
	return nil, errors.New("not implemented")
}
func (s *stubReportRepo) Search(repository.ReportFilter, repository.AccessScope, int, int) ([]models.Report, int64, error) {
	return nil, 0, nil
}
func (s *stubReportRepo) Update(*models.Report) error      { return nil }
func (s *stubReportRepo) UpdateEstado(string, string) error { return nil }
func (s *stubReportRepo) Delete(string) error               { return nil }
func (s *stubReportRepo) AddImage(*models.ReportImage) error { return nil }
func (s *stubReportRepo) GetImages(uint) ([]models.ReportImage, error) { return nil, nil }
func (s *stubReportRepo) AssociateLaw(*models.LawReportAssociation) error {
	if s.associateErr != nil {
		return s.associateErr
	}
	s.associated++
	return nil
}
func (s *stubReportRepo) GetLawAssociations(uint) ([]models.LawReportAssociation, error) {
	return nil, nil
}
func (s *stubReportRepo) Stats() (*repository.ReportStats, error) { return repository.EmptyReportStats(), nil }
