package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/avoronin/shop_api/internal/models"
	"github.com/avoronin/shop_api/internal/repo"
	"github.com/avoronin/shop_api/internal/service"
)

type testEnv struct {
	T    *testing.T
	E    *echo.Echo
	Repo *repo.GormRepo

	Cart     *CartHTTP
	Product  *ProductHTTP
	Category *CategoryHTTP
	Auth     *AuthHTTP
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
	))

	r := &repo.GormRepo{DB: db}
	cartSvc := &service.CartService{Repo: r}
	catalogSvc := &service.CatalogService{Repo: r}
	categorySvc := &service.CategoryService{Repo: r}
	authSvc := &service.AuthService{
		Repo:          r,
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}

	return &testEnv{
		T:        t,
		E:        echo.New(),
		Repo:     r,
		Cart:     &CartHTTP{Svc: cartSvc},
		Product:  &ProductHTTP{Svc: catalogSvc, Index: "products"},
		Category: &CategoryHTTP{Svc: categorySvc, Catalog: catalogSvc},
		Auth:     &AuthHTTP{Svc: authSvc},
	}
}

func (env *testEnv) doJSONRequest(method, path string, body any) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

// asUser mimics what the auth middleware stores after validating the token.
func asUser(c echo.Context, userID string) {
	c.Set("user_id", userID)
	c.Set("role", "user")
}

func (env *testEnv) createProduct(name string, price float64) *models.Product {
	env.T.Helper()
	prod := models.Product{Name: name, Description: name + " description", Price: price, Count: 10}
	require.NoError(env.T, env.Repo.DB.Create(&prod).Error)
	return &prod
}

func httpStatus(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return http.StatusOK
}
