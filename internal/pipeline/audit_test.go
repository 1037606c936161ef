package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPGAuditStoreRecord(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	unitID := uuid.New()
	mock.ExpectExec("INSERT INTO submission_audit").
		WithArgs(unitID, "person", "created", "rec-1", "", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	store := NewPGAuditStore(mock)
	err = store.Record(context.Background(), AuditEntry{
		UnitID:     unitID,
		ObjectType: "person",
		Outcome:    "created",
		RecordID:   "rec-1",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGAuditStoreGeneratesUnitID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO submission_audit").
		WithArgs(pgxmock.AnyArg(), "company", "duplicate", "rec-2", "already exists", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	store := NewPGAuditStore(mock)
	err = store.Record(context.Background(), AuditEntry{
		ObjectType: "company",
		Outcome:    "duplicate",
		RecordID:   "rec-2",
		Detail:     "already exists",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGAuditStoreExecError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO submission_audit").
		WithArgs(pgxmock.AnyArg(), "person", "rejected", "", "dependency failed", pgxmock.AnyArg()).
		WillReturnError(errors.New("connection lost"))

	store := NewPGAuditStore(mock)
	err = store.Record(context.Background(), AuditEntry{
		ObjectType: "person",
		Outcome:    "rejected",
		Detail:     "dependency failed",
	})
	require.Error(t, err)
}

func TestNewPGAuditStoreNilPool(t *testing.T) {
	assert.Nil(t, NewPGAuditStore(nil))
}
