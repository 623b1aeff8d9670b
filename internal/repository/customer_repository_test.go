package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/lunchly/internal/database"
	"github.com/iliyamo/lunchly/internal/database/dbtest"
	"github.com/iliyamo/lunchly/internal/model"
)

func newRepos(t *testing.T) (*sql.DB, *CustomerRepo, *ReservationRepo) {
	t.Helper()
	db := dbtest.NewSQLite(t)
	ex := database.NewExecutor(db, nil)
	res := NewReservationRepo(ex)
	return db, NewCustomerRepo(ex, res), res
}

func fullNames(cs []model.Customer) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.FullName())
	}
	return out
}

func TestCustomerRepo_ListOrdersByLastThenFirstName(t *testing.T) {
	db, customers, _ := newRepos(t)
	dbtest.InsertCustomer(t, db, "Bob", "Lee")
	dbtest.InsertCustomer(t, db, "Zed", "Adams")
	dbtest.InsertCustomer(t, db, "Amy", "Lee")
	dbtest.InsertCustomer(t, db, "Carl", "Baker")

	got, err := customers.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Zed Adams", "Carl Baker", "Amy Lee", "Bob Lee"}, fullNames(got))
}

func TestCustomerRepo_ListEmpty(t *testing.T) {
	_, customers, _ := newRepos(t)

	got, err := customers.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCustomerRepo_GetByIDNotFound(t *testing.T) {
	db, customers, _ := newRepos(t)
	ctx := context.Background()

	_, err := customers.GetByID(ctx, 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	dbtest.InsertCustomer(t, db, "Amy", "Lee")
	_, err = customers.GetByID(ctx, 42)

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, uint64(42), nf.ID)
	assert.Equal(t, "customer", nf.Entity)
	assert.Equal(t, "No such customer: 42", err.Error())
}

func TestCustomerRepo_SaveRoundTrip(t *testing.T) {
	_, customers, _ := newRepos(t)
	ctx := context.Background()

	c := model.NewCustomer("Amy", "Lee", "555-0100", "")
	require.NoError(t, customers.Save(ctx, c))
	require.NotZero(t, c.ID)

	got, err := customers.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, *c, *got)

	notes := "allergic to peanuts"
	got.LastName = "Lee-Park"
	got.Notes = &notes
	got.Phone = nil
	require.NoError(t, customers.Save(ctx, got))

	again, err := customers.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, *got, *again)
	assert.Equal(t, c.ID, again.ID)
}

func TestCustomerRepo_SaveUnchangedRowSucceeds(t *testing.T) {
	_, customers, _ := newRepos(t)
	ctx := context.Background()

	c := model.NewCustomer("Amy", "Lee", "", "")
	require.NoError(t, customers.Save(ctx, c))
	assert.NoError(t, customers.Save(ctx, c))
}

func TestCustomerRepo_SaveUpdateUnknownID(t *testing.T) {
	_, customers, _ := newRepos(t)

	c := &model.Customer{ID: 99, FirstName: "Ghost", LastName: "Row"}
	err := customers.Save(context.Background(), c)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomerRepo_SaveRejectsMissingNames(t *testing.T) {
	rec := &dbtest.Recorder{}
	customers := NewCustomerRepo(rec, NewReservationRepo(rec))

	err := customers.Save(context.Background(), &model.Customer{FirstName: "Amy"})
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
	assert.Empty(t, rec.Calls)
}

func TestCustomerRepo_SearchByName(t *testing.T) {
	db, customers, _ := newRepos(t)
	ctx := context.Background()
	dbtest.InsertCustomer(t, db, "John", "Smith")
	dbtest.InsertCustomer(t, db, "Smithy", "Jones")
	dbtest.InsertCustomer(t, db, "Jane", "Smith")
	dbtest.InsertCustomer(t, db, "John", "Doe")
	dbtest.InsertCustomer(t, db, "Amy", "Blacksmith")

	t.Run("single token matches first or last name", func(t *testing.T) {
		got, err := customers.SearchByName(ctx, "smith")
		require.NoError(t, err)
		assert.Equal(t, []string{"Amy Blacksmith", "Smithy Jones", "Jane Smith", "John Smith"}, fullNames(got))
	})

	t.Run("two tokens match first AND last name", func(t *testing.T) {
		got, err := customers.SearchByName(ctx, "John Smith")
		require.NoError(t, err)
		assert.Equal(t, []string{"John Smith"}, fullNames(got))
	})

	t.Run("tokens past the second are ignored", func(t *testing.T) {
		got, err := customers.SearchByName(ctx, "  JOHN   doe  extra words")
		require.NoError(t, err)
		assert.Equal(t, []string{"John Doe"}, fullNames(got))
	})

	t.Run("empty query matches none", func(t *testing.T) {
		got, err := customers.SearchByName(ctx, "   ")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("like metacharacters are literal", func(t *testing.T) {
		got, err := customers.SearchByName(ctx, "%")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestCustomerRepo_SearchByNameStatements(t *testing.T) {
	rec := &dbtest.Recorder{}
	customers := NewCustomerRepo(rec, NewReservationRepo(rec))
	ctx := context.Background()

	_, err := customers.SearchByName(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, rec.Calls, "empty query must not reach the database")

	_, err = customers.SearchByName(ctx, "Smith")
	require.NoError(t, err)
	require.Len(t, rec.Calls, 1)
	assert.Contains(t, rec.Calls[0].Query, " OR ")
	assert.Equal(t, []any{"%smith%", "%smith%"}, rec.Calls[0].Args)

	_, err = customers.SearchByName(ctx, "John Smith Jr")
	require.NoError(t, err)
	require.Len(t, rec.Calls, 2)
	assert.Contains(t, rec.Calls[1].Query, " AND ")
	assert.Equal(t, []any{"%john%", "%smith%"}, rec.Calls[1].Args)

	_, err = customers.SearchByName(ctx, "50%_off")
	require.NoError(t, err)
	assert.Equal(t, []any{"%50!%!_off%", "%50!%!_off%"}, rec.Calls[2].Args)
}

func TestCustomerRepo_TopByReservationCount(t *testing.T) {
	db, customers, _ := newRepos(t)
	ctx := context.Background()
	start := time.Date(2026, time.October, 19, 19, 0, 0, 0, time.UTC)

	a := dbtest.InsertCustomer(t, db, "Ann", "A")
	c := dbtest.InsertCustomer(t, db, "Cat", "C")
	b := dbtest.InsertCustomer(t, db, "Ben", "B")
	dbtest.InsertCustomer(t, db, "Dan", "D")

	book := func(id uint64, n int) {
		for i := 0; i < n; i++ {
			dbtest.InsertReservation(t, db, id, 2, start.Add(time.Duration(i)*time.Hour))
		}
	}
	book(c, 3)
	book(a, 5)
	book(b, 3)

	got, err := customers.TopByReservationCount(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	// C was inserted before B, so it has the lower id and wins the tie.
	assert.Equal(t, []uint64{a, c, b}, []uint64{got[0].ID, got[1].ID, got[2].ID})

	two, err := customers.TopByReservationCount(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann A", "Cat C"}, fullNames(two))

	all, err := customers.TopByReservationCount(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3, "customers without reservations are never ranked")
}

func TestCustomerRepo_TopByReservationCountLimits(t *testing.T) {
	rec := &dbtest.Recorder{}
	customers := NewCustomerRepo(rec, NewReservationRepo(rec))
	ctx := context.Background()

	for _, tc := range []struct{ in, want int }{{0, DefaultTopLimit}, {-5, DefaultTopLimit}, {3, 3}, {1000, MaxTopLimit}} {
		_, err := customers.TopByReservationCount(ctx, tc.in)
		require.NoError(t, err)
		last := rec.Calls[len(rec.Calls)-1]
		assert.Equal(t, []any{tc.want}, last.Args, "limit %d", tc.in)
	}
}

func TestCustomerRepo_ReservationsDelegates(t *testing.T) {
	db, customers, _ := newRepos(t)
	ctx := context.Background()
	id := dbtest.InsertCustomer(t, db, "Amy", "Lee")
	other := dbtest.InsertCustomer(t, db, "Bob", "Lee")
	late := time.Date(2026, time.October, 20, 20, 0, 0, 0, time.UTC)
	early := time.Date(2026, time.October, 19, 18, 0, 0, 0, time.UTC)

	r1 := dbtest.InsertReservation(t, db, id, 4, late)
	r2 := dbtest.InsertReservation(t, db, id, 2, early)
	dbtest.InsertReservation(t, db, other, 6, early)

	c, err := customers.GetByID(ctx, id)
	require.NoError(t, err)

	got, err := customers.Reservations(ctx, *c)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, r2, got[0].ID)
	assert.Equal(t, r1, got[1].ID)
}

func TestCustomerRepo_StorageErrorsPropagate(t *testing.T) {
	boom := errors.New("connection reset")
	rec := &dbtest.Recorder{Err: boom}
	customers := NewCustomerRepo(rec, NewReservationRepo(rec))
	ctx := context.Background()

	_, err := customers.List(ctx)
	assert.ErrorIs(t, err, boom)
	_, err = customers.GetByID(ctx, 1)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)
	_, err = customers.TopByReservationCount(ctx, 5)
	assert.ErrorIs(t, err, boom)
	err = customers.Save(ctx, model.NewCustomer("Amy", "Lee", "", ""))
	assert.ErrorIs(t, err, boom)
}
