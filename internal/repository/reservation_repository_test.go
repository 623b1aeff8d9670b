package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/lunchly/internal/database"
	"github.com/iliyamo/lunchly/internal/database/dbtest"
	"github.com/iliyamo/lunchly/internal/model"
)

func TestReservationRepo_SaveRoundTrip(t *testing.T) {
	db, _, reservations := newRepos(t)
	ctx := context.Background()
	cid := dbtest.InsertCustomer(t, db, "Amy", "Lee")

	start := time.Date(2026, time.October, 19, 19, 30, 0, 0, time.UTC)
	r, err := model.NewReservation(cid, 4, start, model.OptionalString("birthday"))
	require.NoError(t, err)
	require.NoError(t, reservations.Save(ctx, r))
	require.NotZero(t, r.ID)

	got, err := reservations.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
	assert.Equal(t, cid, got.CustomerID)
	assert.Equal(t, 4, got.NumGuests())
	assert.True(t, start.Equal(got.StartAt))
	require.NotNil(t, got.Notes)
	assert.Equal(t, "birthday", *got.Notes)

	require.NoError(t, got.SetNumGuests(6))
	got.Notes = nil
	require.NoError(t, reservations.Save(ctx, got))

	again, err := reservations.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, again.NumGuests())
	assert.Nil(t, again.Notes)
}

func TestReservationRepo_GetByIDNotFound(t *testing.T) {
	_, _, reservations := newRepos(t)

	_, err := reservations.GetByID(context.Background(), 7)
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "reservation", nf.Entity)
	assert.Equal(t, uint64(7), nf.ID)
}

func TestReservationRepo_SaveRejectsUnsetGuests(t *testing.T) {
	rec := &dbtest.Recorder{}
	reservations := NewReservationRepo(rec)

	err := reservations.Save(context.Background(), &model.Reservation{CustomerID: 1, StartAt: time.Now()})
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
	assert.Empty(t, rec.Calls)
}

func TestReservationRepo_SaveUpdateUnknownID(t *testing.T) {
	db, _, reservations := newRepos(t)
	cid := dbtest.InsertCustomer(t, db, "Amy", "Lee")

	r, err := model.NewReservation(cid, 2, time.Now(), nil)
	require.NoError(t, err)
	r.ID = 555

	assert.ErrorIs(t, reservations.Save(context.Background(), r), ErrNotFound)
}

func TestReservationRepo_ListByCustomerOrdersByStart(t *testing.T) {
	db, _, reservations := newRepos(t)
	ctx := context.Background()
	cid := dbtest.InsertCustomer(t, db, "Amy", "Lee")
	base := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

	third := dbtest.InsertReservation(t, db, cid, 2, base.Add(48*time.Hour))
	first := dbtest.InsertReservation(t, db, cid, 2, base)
	second := dbtest.InsertReservation(t, db, cid, 2, base.Add(2*time.Hour))

	got, err := reservations.ListByCustomer(ctx, cid)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []uint64{first, second, third}, []uint64{got[0].ID, got[1].ID, got[2].ID})

	none, err := reservations.ListByCustomer(ctx, cid+100)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestReservationRepo_StoredInvalidGuestsNeverLoad(t *testing.T) {
	db, _, reservations := newRepos(t)
	ctx := context.Background()
	cid := dbtest.InsertCustomer(t, db, "Amy", "Lee")
	id := dbtest.InsertReservation(t, db, cid, 0, time.Now())

	_, err := reservations.GetByID(ctx, id)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	_, err = reservations.ListByCustomer(ctx, cid)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestReservationFromRow(t *testing.T) {
	start := time.Date(2026, time.October, 19, 19, 30, 0, 0, time.UTC)
	row := database.Row{
		"id":         []byte("3"),
		"customerId": int64(9),
		"numGuests":  int64(5),
		"startAt":    start,
		"notes":      []byte("patio"),
	}

	r, err := reservationFromRow(row)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), r.ID)
	assert.Equal(t, uint64(9), r.CustomerID)
	assert.Equal(t, 5, r.NumGuests())
	assert.Equal(t, "patio", *r.Notes)

	row["numGuests"] = int64(-2)
	_, err = reservationFromRow(row)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}
