package services

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reserfast/reserfast-api/internal/models"
	"github.com/reserfast/reserfast-api/internal/repository"
	"github.com/reserfast/reserfast-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

// failingMenuRepo delegates reads and fails every write.
type failingMenuRepo struct {
	repository.MenuRepository
}

func (failingMenuRepo) Create(*models.MenuItem) error { return errors.New("write failed") }
func (failingMenuRepo) Update(*models.MenuItem) error { return errors.New("write failed") }

func pngUpload(name string) *storage.Upload {
	return &storage.Upload{
		Filename:    name,
		ContentType: "image/png",
		Size:        int64(len(pngHeader)),
		Content:     bytes.NewReader(pngHeader),
	}
}

func storedFiles(t *testing.T, env serviceTestEnv, folder string) []string {
	t.Helper()

	entries, err := os.ReadDir(filepath.Join(env.images.Root(), folder))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func fileForURL(env serviceTestEnv, url string) string {
	return filepath.Join(env.images.Root(), filepath.FromSlash(strings.TrimPrefix(url, env.images.BaseURL()+"/")))
}

func TestCatalogService_DuplicateTitleIsRejected(t *testing.T) {
	env := setupServiceTestEnv(t, ReservationOptions{})
	env.createMenuItem(t, "Cazuela", 5000)

	_, err := env.catalog.CreateMenuItem(MenuItemInput{
		Title:       "  Cazuela ",
		Description: "Otra cazuela",
		Category:    "Fondos",
		Price:       4000,
	}, env.admin.ID)
	assert.ErrorIs(t, err, ErrTitleTaken)

	var count int64
	require.NoError(t, env.db.Model(&models.MenuItem{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCatalogService_UpdateKeepsOwnTitle(t *testing.T) {
	env := setupServiceTestEnv(t, ReservationOptions{})
	item := env.createMenuItem(t, "Cazuela", 5000)
	other := env.createMenuItem(t, "Pastel de choclo", 7000)

	updated, err := env.catalog.UpdateMenuItem(item.ID, MenuItemInput{
		Title:       "Cazuela",
		Description: "Nueva receta",
		Category:    "Fondos",
		Price:       5500,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5500), updated.Price)
	assert.Equal(t, "Nueva receta", updated.Description)

	_, err = env.catalog.UpdateMenuItem(other.ID, MenuItemInput{
		Title:       "Cazuela",
		Description: "Copia",
		Category:    "Fondos",
		Price:       1000,
	})
	assert.ErrorIs(t, err, ErrTitleTaken)
}

func TestCatalogService_MenuItemValidation(t *testing.T) {
	env := setupServiceTestEnv(t, ReservationOptions{})

	_, err := env.catalog.CreateMenuItem(MenuItemInput{Title: "Sopaipilla", Description: "Frita", Category: "Entradas", Price: 0}, env.admin.ID)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = env.catalog.CreateMenuItem(MenuItemInput{Title: "Sopaipilla", Category: "Entradas", Price: 800}, env.admin.ID)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Fields, "description")

	_, err = env.catalog.UpdateMenuItem(999, MenuItemInput{Title: "X", Description: "Y", Category: "Z", Price: 1})
	assert.ErrorIs(t, err, ErrMenuItemNotFound)
}

func TestCatalogService_MenuItemImage(t *testing.T) {
	env := setupServiceTestEnv(t, ReservationOptions{})

	item, err := env.catalog.CreateMenuItem(MenuItemInput{
		Title:       "Completo",
		Description: "Italiano",
		Category:    "Sandwiches",
		Price:       3500,
		Image: &storage.Upload{
			Filename:    "completo.png",
			ContentType: "image/png",
			Size:        int64(len(pngHeader)),
			Content:     bytes.NewReader(pngHeader),
		},
	}, env.admin.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(item.ImageURL, "/media/menu/"))
	assert.True(t, strings.HasSuffix(item.ImageURL, ".png"))

	_, err = env.catalog.CreateMenuItem(MenuItemInput{
		Title:       "Churrasco",
		Description: "Palta",
		Category:    "Sandwiches",
		Price:       5000,
		Image: &storage.Upload{
			Filename:    "menu.pdf",
			ContentType: "application/pdf",
			Size:        4,
			Content:     strings.NewReader("%PDF"),
		},
	}, env.admin.ID)
	assert.ErrorIs(t, err, storage.ErrUnsupportedFileType)
}

func TestCatalogService_PublicMenuGroupsActiveItems(t *testing.T) {
	env := setupServiceTestEnv(t, ReservationOptions{})

	for _, input := range []MenuItemInput{
		{Title: "Pebre", Description: "Picante", Category: "Entradas", Price: 1500},
		{Title: "Cazuela", Description: "Caldo", Category: "Fondos", Price: 5000},
		{Title: "Empanada", Description: "De pino", Category: "Entradas", Price: 2500},
		{Title: "Leche asada", Description: "Postre", Category: "Postres", Price: 2000},
	} {
		_, err := env.catalog.CreateMenuItem(input, env.admin.ID)
		require.NoError(t, err)
	}

	items, err := env.catalog.ListMenuItems(false)
	require.NoError(t, err)
	for _, item := range items {
		if item.Title == "Leche asada" {
			active, err := env.catalog.ToggleMenuItem(item.ID)
			require.NoError(t, err)
			assert.False(t, active)
		}
	}

	categories, err := env.catalog.PublicMenu()
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Entradas", categories[0].Category)
	require.Len(t, categories[0].Items, 2)
	assert.Equal(t, "Empanada", categories[0].Items[0].Title)
	assert.Equal(t, "Fondos", categories[1].Category)
}

func TestCatalogService_Tables(t *testing.T) {
	env := setupServiceTestEnv(t, ReservationOptions{})

	_, err := env.catalog.CreateTable(TableInput{Name: "  "}, env.admin.ID)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)

	table := env.createTable(t, "Mesa 1")
	updated, err := env.catalog.UpdateTable(table.ID, TableInput{Name: "Mesa 1", Location: "Terraza", Occupied: true})
	require.NoError(t, err)
	assert.Equal(t, "Terraza", updated.Location)
	assert.True(t, updated.Occupied)

	require.NoError(t, env.catalog.DeactivateTable(table.ID))

	active, err := env.catalog.ListTables(true)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := env.catalog.ListTables(false)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = env.catalog.ToggleTable(999)
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestCatalogService_ReplacingImageRemovesPrevious(t *testing.T) {
	env := setupServiceTestEnv(t, ReservationOptions{})

	item, err := env.catalog.CreateMenuItem(MenuItemInput{
		Title: "Completo", Description: "Italiano", Category: "Sandwiches", Price: 3500,
		Image: pngUpload("completo.png"),
	}, env.admin.ID)
	require.NoError(t, err)
	original := item.ImageURL

	updated, err := env.catalog.UpdateMenuItem(item.ID, MenuItemInput{
		Title: "Completo", Description: "Italiano", Category: "Sandwiches", Price: 3500,
		Image: pngUpload("nuevo.png"),
	})
	require.NoError(t, err)
	assert.NotEqual(t, original, updated.ImageURL)

	assert.NoFileExists(t, fileForURL(env, original))
	assert.FileExists(t, fileForURL(env, updated.ImageURL))
	assert.Len(t, storedFiles(t, env, "menu"), 1)
}

func TestCatalogService_FailedWriteKeepsImages(t *testing.T) {
	env := setupServiceTestEnv(t, ReservationOptions{})

	item, err := env.catalog.CreateMenuItem(MenuItemInput{
		Title: "Completo", Description: "Italiano", Category: "Sandwiches", Price: 3500,
		Image: pngUpload("completo.png"),
	}, env.admin.ID)
	require.NoError(t, err)

	broken := NewCatalogService(env.tableRepo, failingMenuRepo{MenuRepository: env.menuRepo}, env.images)

	_, err = broken.UpdateMenuItem(item.ID, MenuItemInput{
		Title: "Completo", Description: "Italiano", Category: "Sandwiches", Price: 3500,
		Image: pngUpload("nuevo.png"),
	})
	require.Error(t, err)

	stored, err := env.catalog.GetMenuItem(item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ImageURL, stored.ImageURL)
	assert.FileExists(t, fileForURL(env, stored.ImageURL))
	assert.Len(t, storedFiles(t, env, "menu"), 1, "the upload of a failed update is removed")

	_, err = broken.CreateMenuItem(MenuItemInput{
		Title: "Churrasco", Description: "Palta", Category: "Sandwiches", Price: 5000,
		Image: pngUpload("churrasco.png"),
	}, env.admin.ID)
	require.Error(t, err)
	assert.Len(t, storedFiles(t, env, "menu"), 1, "the upload of a failed insert is removed")
}
