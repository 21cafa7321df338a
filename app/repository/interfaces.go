package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/seguraep/acm-reportes/app/models"
)

// AccessScope is the authorization context a retrieval runs under. The
// authenticated and public read paths share one repository operation
// parameterized by scope instead of duplicating query logic.
type AccessScope struct {
	// Public hides archived reports and is used by the transparency
	// endpoints that run without authentication.
	Public bool
	// UserID, when non-zero, restricts results to that author.
	UserID uint
}

// ScopePublic is the unauthenticated transparency scope.
var ScopePublic = AccessScope{Public: true}

// ScopeAuthenticated is the full read scope of logged-in users.
var ScopeAuthenticated = AccessScope{}

// ScopeOwn restricts reads to the given author.
func ScopeOwn(userID uint) AccessScope {
	return AccessScope{UserID: userID}
}

// ReportFilter is the AND-combined search filter set. Zero values are not
// applied.
type ReportFilter struct {
	FechaDesde *time.Time
	FechaHasta *time.Time
	Zona       string
	Distrito   string
	Circuito   string
	Estado     string
	UserID     uint
}

// ReportStats is the aggregate payload of the statistics endpoint.
type ReportStats struct {
	Total     int64            `json:"total"`
	PorZona   map[string]int64 `json:"por_zona"`
	PorEstado map[string]int64 `json:"por_estado"`
}

// EmptyReportStats is the zero-valued soft-failure default.
func EmptyReportStats() *ReportStats {
	return &ReportStats{
		PorZona:   map[string]int64{},
		PorEstado: map[string]int64{},
	}
}

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByCedula(cedula string) (*models.User, error)
	GetByResetToken(token string) (*models.User, error)
	EmailAvailable(email string) (bool, error)
	CedulaAvailable(cedula string) (bool, error)
	Update(user *models.User) error
	Delete(id uint) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
	Search(query string) ([]models.User, error)
}

// ReportRepository defines the interface for report-related database operations
type ReportRepository interface {
	Create(report *models.Report) error
	GetByUUID(uuid string, scope AccessScope) (*models.Report, error)
	Search(filter ReportFilter, scope AccessScope, offset, limit int) ([]models.Report, int64, error)
	Update(report *models.Report) error
	UpdateEstado(uuid, estado string) error
	Delete(uuid string) error
	AddImage(image *models.ReportImage) error
	GetImages(reportID uint) ([]models.ReportImage, error)
	AssociateLaw(assoc *models.LawReportAssociation) error
	GetLawAssociations(reportID uint) ([]models.LawReportAssociation, error)
	Stats() (*ReportStats, error)
}

// LawRepository defines the interface for the regulation catalog
type LawRepository interface {
	GetAll() ([]models.Law, error)
	GetByID(id uint) (*models.Law, error)
	GetByCodigo(codigo string) (*models.Law, error)
	GetArticles(lawID uint) ([]models.Article, error)
	GetArticleByID(id uint) (*models.Article, error)
	Upsert(law *models.Law) error
	UpsertArticle(article *models.Article) error
}

// HojaVidaRepository defines the interface for resume documents
type HojaVidaRepository interface {
	GetByUserID(userID uint) (*models.HojaVida, error)
	GetOrCreate(userID uint) (*models.HojaVida, error)
	Save(hoja *models.HojaVida) error
}

// Repositories bundles all repository implementations
type Repositories struct {
	User     UserRepository
	Report   ReportRepository
	Law      LawRepository
	HojaVida HojaVidaRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:     NewUserRepository(db),
		Report:   NewReportRepository(db),
		Law:      NewLawRepository(db),
		HojaVida: NewHojaVidaRepository(db),
	}
}
