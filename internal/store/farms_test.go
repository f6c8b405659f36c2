package store

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFarmRepositoryGet(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewFarmRepository(mock)

	rows := pgxmock.NewRows([]string{"id", "lat", "lon", "inventory", "avg_weight", "last_visit_day"}).
		AddRow("f1", 41.65, 2.01, 100, 110.0, -1000)

	mock.ExpectQuery(`SELECT id, lat, lon, inventory, avg_weight, last_visit_day`).
		WithArgs("f1").
		WillReturnRows(rows)

	row, err := repo.Get(context.Background(), "f1")
	require.NoError(t, err)
	assert.Equal(t, "f1", row.ID)
	assert.Equal(t, 100, row.Inventory)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFarmRepositoryGetNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewFarmRepository(mock)

	mock.ExpectQuery(`SELECT id, lat, lon, inventory, avg_weight, last_visit_day`).
		WithArgs("missing").
		WillReturnError(errors.New("no rows in result set"))

	_, err = repo.Get(context.Background(), "missing")
	var nf *ErrNotFound
	assert.ErrorAs(t, err, &nf)
}

func TestFarmRepositoryCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewFarmRepository(mock)

	mock.ExpectExec(`INSERT INTO farms`).
		WithArgs("f2", 41.7, 2.1, 50, 100.0, -1000).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	row, err := repo.Create(context.Background(), FarmRow{
		ID: "f2", Lat: 41.7, Lon: 2.1, Inventory: 50, AvgWeight: 100.0, LastVisitDay: -1000,
	})
	require.NoError(t, err)
	assert.Equal(t, "f2", row.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFarmRepositoryList(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewFarmRepository(mock)

	rows := pgxmock.NewRows([]string{"id", "lat", "lon", "inventory", "avg_weight", "last_visit_day"}).
		AddRow("f1", 41.65, 2.01, 100, 110.0, -1000).
		AddRow("f2", 41.70, 2.10, 50, 100.0, -1000)

	mock.ExpectQuery(`SELECT id, lat, lon, inventory, avg_weight, last_visit_day`).
		WithArgs(0, 100).
		WillReturnRows(rows)

	out, err := repo.List(context.Background(), 0, 100)
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
