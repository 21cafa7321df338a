package lawsync

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seguraep/acm-reportes/app/models"
)

// fakeLawRepo records upserts in memory.
type fakeLawRepo struct {
	laws     []*models.Law
	articles []*models.Article
}

func (f *fakeLawRepo) GetAll() ([]models.Law, error)                { return nil, nil }
func (f *fakeLawRepo) GetByID(id uint) (*models.Law, error)         { return nil, nil }
func (f *fakeLawRepo) GetByCodigo(c string) (*models.Law, error)    { return nil, nil }
func (f *fakeLawRepo) GetArticles(id uint) ([]models.Article, error) { return nil, nil }
func (f *fakeLawRepo) GetArticleByID(id uint) (*models.Article, error) {
	return nil, nil
}
func (f *fakeLawRepo) Upsert(law *models.Law) error {
	law.ID = uint(len(f.laws) + 1)
	f.laws = append(f.laws, law)
	return nil
}
func (f *fakeLawRepo) UpsertArticle(article *models.Article) error {
	f.articles = append(f.articles, article)
	return nil
}

func TestSync(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/leyes-normas", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"success": true,
			"data": [
				{
					"codigo": "COOTAD",
					"nombre": "Código Orgánico de Organización Territorial",
					"descripcion": "Ordenanza municipal base",
					"articulos": [
						{"numero": "55", "texto": "Competencias exclusivas"},
						{"numero": "57", "texto": "Atribuciones del concejo"}
					]
				},
				{"codigo": "LOSEP", "nombre": "Ley Orgánica del Servicio Público", "articulos": []}
			]
		}`))
	}))
	defer srv.Close()

	repo := &fakeLawRepo{}
	client := NewClient(srv.URL, repo)

	n, err := client.Sync()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, repo.laws, 2)
	assert.Equal(t, "COOTAD", repo.laws[0].Codigo)
	require.Len(t, repo.articles, 2)
	// articles reference the law row created right before them
	assert.Equal(t, repo.laws[0].ID, repo.articles[0].LawID)
}

func TestSyncServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, &fakeLawRepo{})
	client.httpClient.SetRetryCount(0)

	_, err := client.Sync()
	assert.Error(t, err)
}
