package controller_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uploadhub/uploadhub/config"
	"github.com/uploadhub/uploadhub/controller"
	"github.com/uploadhub/uploadhub/entity"
	"github.com/uploadhub/uploadhub/hub"
	"github.com/uploadhub/uploadhub/infra"
	"github.com/uploadhub/uploadhub/infra/produce"
	"github.com/uploadhub/uploadhub/provider"
	"github.com/uploadhub/uploadhub/repository"
	routes "github.com/uploadhub/uploadhub/route"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, infra.Migrate(db))

	cfg := config.NewConfig()
	cfg.EnvConfig.Upload.DirectoryBasePath = t.TempDir()

	store := infra.NewLocalUploadStore(cfg.EnvConfig.Upload.DirectoryBasePath, cfg.EnvConfig.Upload.URLBasePath)
	log := infra.InitLoggerClient(&config.EnvConfig{})

	inf := &infra.Infra{
		Logger:      log,
		UploadStore: store,
		// Publishes fail and get logged; requests must still succeed.
		Produce: &produce.Produce{Events: produce.NewEventService(nil)},
	}

	repo := repository.New(db, store)
	prov := &provider.Provider{Directory: provider.NewMockDirectoryProvider()}
	ctrl := controller.NewController(cfg, inf, prov, repo, hub.NewGroupHub(log))

	return routes.SetupRouter(ctrl)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFolderLifecycleOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/folder/addFolder", entity.Folder{Name: "Projects"})
	require.Equal(t, 200, w.Code)

	var created entity.Folder
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)

	w = doJSON(t, r, http.MethodGet, "/api/folder/getFolders", nil)
	require.Equal(t, 200, w.Code)
	var folders []entity.Folder
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &folders))
	require.Len(t, folders, 1)
	assert.Equal(t, "Projects", folders[0].Name)
}

func TestAddFolderValidationFailuresMapTo400(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/folder/addFolder", entity.Folder{})
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "a folder must have a name")

	require.Equal(t, 200, doJSON(t, r, http.MethodPost, "/api/folder/addFolder", entity.Folder{Name: "Dup"}).Code)
	w = doJSON(t, r, http.MethodPost, "/api/folder/addFolder", entity.Folder{Name: "dup"})
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "a folder with this name already exists")
}

func TestGetFolderByNameMissReturnsNullBody(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/folder/getFolderByName/nothing", nil)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "null", strings.TrimSpace(w.Body.String()))
}

func TestUploadFilesMultipartRoundTrip(t *testing.T) {
	r := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("files", "report.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("pdf bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload/uploadFiles", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)

	var uploads []entity.Upload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &uploads))
	require.Len(t, uploads, 1)
	assert.Equal(t, "report.pdf", uploads[0].File)
	assert.Equal(t, "/uploads/report.pdf", uploads[0].URL)

	w = doJSON(t, r, http.MethodGet, "/api/upload/getUploads", nil)
	require.Equal(t, 200, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &uploads))
	assert.Len(t, uploads, 1)
}

func TestUploadFilesEmptyBatchIsRejected(t *testing.T) {
	r := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("unrelated", "x"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload/uploadFiles", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "no files provided for upload")
}

func TestRemoveFolderUploadMissingAssociationIsRejected(t *testing.T) {
	r := newTestRouter(t)

	require.Equal(t, 200, doJSON(t, r, http.MethodPost, "/api/folder/addFolder", entity.Folder{Name: "Empty"}).Code)

	w := doJSON(t, r, http.MethodPost, "/api/folder/removeFolderUpload/Empty", entity.Upload{ID: 42, File: "ghost.txt"})
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "Empty does not contain ghost.txt")
}

func TestBannerConfigEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/banner/getConfig", nil)
	require.Equal(t, 200, w.Code)

	var banner map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &banner))
	assert.NotEmpty(t, banner["label"])
	assert.NotEmpty(t, banner["background"])
	assert.NotEmpty(t, banner["color"])
}

func TestCurrentUserResolvesMockDefault(t *testing.T) {
	r := newTestRouter(t)

	// Mock mode falls back to the configured default account.
	w := doJSON(t, r, http.MethodGet, "/api/user/getCurrentUser", nil)
	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "lshaw")
}

func TestCurrentUserHonorsRemoteUserHeader(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/user/getCurrentUser", nil)
	req.Header.Set("X-Remote-User", "cokafor")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "Okafor, Chidi")
}
