package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_underwriting/pkg/models"
)

type fakeRow struct {
	data []byte
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*[]byte)) = r.data
	return nil
}

// fakeDB keeps deal_json blobs by id and mimics the two statements the repo issues.
type fakeDB struct {
	rows    map[string][]byte
	execErr error
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	id := args[0].(string)
	if strings.HasPrefix(strings.TrimSpace(sql), "DELETE") {
		if _, ok := f.rows[id]; !ok {
			return pgconn.NewCommandTag("DELETE 0"), nil
		}
		delete(f.rows, id)
		return pgconn.NewCommandTag("DELETE 1"), nil
	}
	f.rows[id] = args[2].([]byte)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakeDB) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	data, ok := f.rows[args[0].(string)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{data: data}
}

func repos() map[string]DealRepository {
	return map[string]DealRepository{
		"postgres": NewPgDealRepo(&fakeDB{rows: map[string][]byte{}}),
		"memory":   NewMemoryDealRepo(),
	}
}

func TestDealRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, repo := range repos() {
		t.Run(name, func(t *testing.T) {
			deal := models.SampleDeal()
			deal.ID = ""

			saved, err := repo.Save(ctx, deal)
			require.NoError(t, err)
			_, err = uuid.Parse(saved.ID)
			assert.NoError(t, err, "generated id should be a uuid")
			assert.Empty(t, deal.ID, "argument must not be modified")
			assert.False(t, saved.UpdatedAt.IsZero())

			loaded, err := repo.Get(ctx, saved.ID)
			require.NoError(t, err)
			assert.Equal(t, saved.Name, loaded.Name)
			assert.Equal(t, saved.Assumptions.Financing, loaded.Assumptions.Financing)
			assert.InDelta(t, 2_400_000, loaded.ProjectCost(), 1e-9)

			// Upsert keeps the id
			loaded.Name = "Renamed"
			again, err := repo.Save(ctx, loaded)
			require.NoError(t, err)
			assert.Equal(t, saved.ID, again.ID)
			reloaded, err := repo.Get(ctx, saved.ID)
			require.NoError(t, err)
			assert.Equal(t, "Renamed", reloaded.Name)

			require.NoError(t, repo.Delete(ctx, saved.ID))
			_, err = repo.Get(ctx, saved.ID)
			assert.ErrorIs(t, err, ErrDealNotFound)
			assert.ErrorIs(t, repo.Delete(ctx, saved.ID), ErrDealNotFound)
		})
	}
}

func TestPgDealRepo_WrapsDriverErrors(t *testing.T) {
	boom := errors.New("connection reset")
	repo := NewPgDealRepo(&fakeDB{rows: map[string][]byte{}, execErr: boom})

	_, err := repo.Save(context.Background(), models.SampleDeal())
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrDealNotFound)

	var zero PgDealRepo
	_, err = zero.Get(context.Background(), "x")
	assert.Error(t, err)
}

func TestStamp(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	d := stamp(&models.Deal{ID: "keep"}, now)
	assert.Equal(t, "keep", d.ID)
	assert.Equal(t, time.UTC, d.UpdatedAt.Location())

	assert.NotEmpty(t, stamp(nil, now).ID)
}
