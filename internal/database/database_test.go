package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starwars/internal/domain"
)

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		raw    string
		driver string
		dsn    string
	}{
		{"", DriverSQLite, "/tmp/test.db?_pragma=foreign_keys(1)"},
		{"postgres://u:p@db:5432/app", DriverPostgres, "postgresql://u:p@db:5432/app"},
		{"postgresql://u:p@db:5432/app?sslmode=disable", DriverPostgres, "postgresql://u:p@db:5432/app?sslmode=disable"},
		{"sqlite:///blog.db", DriverSQLite, "blog.db?_pragma=foreign_keys(1)"},
		{"sqlite:////var/data/blog.db", DriverSQLite, "/var/data/blog.db?_pragma=foreign_keys(1)"},
		{"blog.db?_pragma=busy_timeout(5000)", DriverSQLite, "blog.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"},
		{":memory:", DriverSQLite, ":memory:?_pragma=foreign_keys(1)"},
	}

	for _, tc := range cases {
		driver, dsn := NormalizeURL(tc.raw)
		assert.Equal(t, tc.driver, driver, tc.raw)
		assert.Equal(t, tc.dsn, dsn, tc.raw)
	}
}

func TestMigrateCreatesTables(t *testing.T) {
	db, err := Connect("sqlite:///" + filepath.Join(t.TempDir(), "blog.db"))
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	for _, table := range []string{"user", "planet", "character", "favorite"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	db, err := Connect(":memory:")
	require.NoError(t, err)
	defer Close(db)
	require.NoError(t, Migrate(db))

	planet := &domain.Planet{Name: "Kamino"}
	require.NoError(t, db.Create(planet).Error)

	fav, err := domain.NewFavorite(404, domain.PlanetTarget(planet.ID))
	require.NoError(t, err)
	assert.Error(t, db.Create(fav).Error)
}

func TestCascadeOnDelete(t *testing.T) {
	db, err := Connect(":memory:")
	require.NoError(t, err)
	defer Close(db)
	require.NoError(t, Migrate(db))

	user := domain.NewUser("jyn@scarif.org", "stardust")
	require.NoError(t, db.Create(user).Error)
	planet := &domain.Planet{Name: "Jedha"}
	require.NoError(t, db.Create(planet).Error)
	fav, err := domain.NewFavorite(user.ID, domain.PlanetTarget(planet.ID))
	require.NoError(t, err)
	require.NoError(t, db.Create(fav).Error)

	require.NoError(t, db.Delete(planet).Error)

	var n int64
	require.NoError(t, db.Model(&domain.Favorite{}).Count(&n).Error)
	assert.Zero(t, n)
}
