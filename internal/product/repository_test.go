package product

import (
	"context"
	"testing"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/catalog"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/category"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLite cannot migrate the text[] column, so the table is declared by hand.
const createProductsTable = `CREATE TABLE products (
	id TEXT PRIMARY KEY,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	category_id TEXT NOT NULL REFERENCES categories(id),
	name TEXT NOT NULL,
	slug TEXT NOT NULL UNIQUE,
	short_description TEXT,
	thumbnail_path TEXT,
	is_featured BOOLEAN NOT NULL DEFAULT false,
	sort_order INTEGER NOT NULL DEFAULT 0,
	description TEXT,
	features TEXT,
	specifications TEXT,
	document_path TEXT,
	image_path TEXT,
	mockup_image_path TEXT,
	high_res_image_path TEXT
)`

type repoFixture struct {
	repo       Repository
	categories category.Repository
	lights     *category.Category
	timers     *category.Category
}

func newTestRepository(t *testing.T) repoFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&category.Category{}))
	require.NoError(t, db.Exec(createProductsTable).Error)

	categories := category.NewGORMRepository(db)
	lights := &category.Category{Name: "Traffic Light", Slug: "traffic-light"}
	timers := &category.Category{Name: "Countdown Timer", Slug: "countdown-timer"}
	require.NoError(t, categories.Create(context.Background(), lights))
	require.NoError(t, categories.Create(context.Background(), timers))

	return repoFixture{repo: NewGORMRepository(db), categories: categories, lights: lights, timers: timers}
}

func (f repoFixture) seed(t *testing.T, name string, cat *category.Category, featured bool, sortOrder int) *Product {
	t.Helper()
	p := &Product{
		CategoryID:       cat.ID,
		Name:             name,
		Slug:             slug.Make(name),
		ShortDescription: "Short " + name,
		IsFeatured:       featured,
		SortOrder:        sortOrder,
		Content: catalog.Content{
			Description:    "Full description of " + name,
			Features:       pq.StringArray{"IP65", "LED"},
			Specifications: datatypes.JSONMap{"voltage": "12V"},
			DocumentPath:   "documents/" + slug.Make(name) + ".pdf",
		},
	}
	require.NoError(t, f.repo.Create(context.Background(), p))
	return p
}

func TestGormRepository_CreateAndFind(t *testing.T) {
	f := newTestRepository(t)
	ctx := context.Background()
	created := f.seed(t, "Traffic Light 300mm", f.lights, true, 1)

	bySlug, err := f.repo.FindBySlug(ctx, " Traffic-Light-300mm ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)
	require.NotNil(t, bySlug.Category)
	assert.Equal(t, "traffic-light", bySlug.Category.Slug)
	assert.Equal(t, []string{"IP65", "LED"}, []string(bySlug.Features))
	assert.Equal(t, "12V", bySlug.Specifications["voltage"])

	_, err = f.repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGormRepository_DuplicateSlug(t *testing.T) {
	f := newTestRepository(t)
	f.seed(t, "Warning Light", f.lights, false, 0)

	err := f.repo.Create(context.Background(), &Product{CategoryID: f.lights.ID, Name: "Other", Slug: "warning-light"})
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestGormRepository_List(t *testing.T) {
	f := newTestRepository(t)
	ctx := context.Background()
	a := f.seed(t, "Traffic Light 200mm", f.lights, true, 2)
	b := f.seed(t, "Traffic Light 300mm", f.lights, false, 1)
	c := f.seed(t, "Countdown Timer Digital", f.timers, true, 0)

	all, pagination, err := f.repo.List(ctx, ListQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), pagination.TotalItems)
	assert.Equal(t, []uuid.UUID{c.ID, b.ID, a.ID}, ids(all), "ordered by sort order")

	byCategory, _, err := f.repo.List(ctx, ListQuery{Page: 1, PageSize: 10, CategorySlug: "traffic-light"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{a.ID, b.ID}, ids(byCategory))

	searched, _, err := f.repo.List(ctx, ListQuery{Page: 1, PageSize: 10, Search: "TIMER"})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{c.ID}, ids(searched))

	featured, _, err := f.repo.List(ctx, ListQuery{Page: 1, PageSize: 10, FeaturedOnly: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{a.ID, c.ID}, ids(featured))

	restricted, _, err := f.repo.List(ctx, ListQuery{Page: 1, PageSize: 10, IDs: []uuid.UUID{a.ID}})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a.ID}, ids(restricted))

	ranked, _, err := f.repo.List(ctx, ListQuery{Page: 1, PageSize: 10, IDs: []uuid.UUID{a.ID, c.ID, b.ID}})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a.ID, c.ID, b.ID}, ids(ranked), "search hits keep their ranking")

	rankedPage2, _, err := f.repo.List(ctx, ListQuery{Page: 2, PageSize: 2, IDs: []uuid.UUID{b.ID, a.ID, c.ID}})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{c.ID}, ids(rankedPage2))

	none, pagination, err := f.repo.List(ctx, ListQuery{Page: 1, PageSize: 10, IDs: []uuid.UUID{}})
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.Zero(t, pagination.TotalItems)

	page2, pagination, err := f.repo.List(ctx, ListQuery{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a.ID}, ids(page2))
	assert.Equal(t, 2, pagination.TotalPages)
	assert.True(t, pagination.HasPrev)
}

func TestGormRepository_UpdateAndDelete(t *testing.T) {
	f := newTestRepository(t)
	ctx := context.Background()
	p := f.seed(t, "Solar Warning Light", f.lights, false, 0)

	p.CategoryID = f.timers.ID
	p.Content.ImagePath = "images/solar.jpg"
	require.NoError(t, f.repo.Update(ctx, p))

	reloaded, err := f.repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "countdown-timer", reloaded.Category.Slug)
	assert.Equal(t, "images/solar.jpg", reloaded.ImagePath)

	count, err := f.repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, f.repo.Delete(ctx, p.ID))
	assert.ErrorIs(t, f.repo.Delete(ctx, p.ID), common.ErrNotFound)
}

func TestCategoryDelete_ConflictsWhileProductsReferToIt(t *testing.T) {
	f := newTestRepository(t)
	ctx := context.Background()
	f.seed(t, "Traffic Light 300mm", f.lights, false, 0)

	err := f.categories.Delete(ctx, f.lights.ID)
	assert.ErrorIs(t, err, common.ErrConflict)

	require.NoError(t, f.categories.Delete(ctx, f.timers.ID))

	listed, err := f.categories.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, 1, listed[0].ProductCount)
}

func ids(products []Product) []uuid.UUID {
	out := make([]uuid.UUID, len(products))
	for i := range products {
		out[i] = products[i].ID
	}
	return out
}
