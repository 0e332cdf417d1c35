package service

import (
	"testing"

	"github.com/meusuper/crm-backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionStartsEmpty(t *testing.T) {
	st, _, _ := newBoardFixture(t)
	svc := NewSelectionService(st)

	detail, err := svc.Current("user-1")
	require.NoError(t, err)
	assert.Nil(t, detail)
}

func TestSelectDeal(t *testing.T) {
	st, pipeline, contact := newBoardFixture(t)
	deal := addDeal(t, st, pipeline, contact, "Annual plan", 0, 1000, 10)

	svc := NewSelectionService(st)

	detail, err := svc.Select("user-1", SelectionDeal, deal.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Deal)
	assert.Equal(t, SelectionDeal, detail.Kind)
	assert.Equal(t, deal.ID, detail.Deal.ID)
	assert.Nil(t, detail.Contact)

	current, err := svc.Current("user-1")
	require.NoError(t, err)
	require.NotNil(t, current.Deal)
	assert.Equal(t, deal.ID, current.Deal.ID)
}

func TestSelectContact(t *testing.T) {
	st, _, contact := newBoardFixture(t)
	svc := NewSelectionService(st)

	detail, err := svc.Select("user-1", SelectionContact, contact.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Contact)
	assert.Equal(t, contact.ID, detail.Contact.ID)
	assert.Nil(t, detail.Deal)
}

func TestSelectReplacesPreviousSelection(t *testing.T) {
	st, pipeline, contact := newBoardFixture(t)
	deal := addDeal(t, st, pipeline, contact, "Annual plan", 0, 1000, 10)

	svc := NewSelectionService(st)

	_, err := svc.Select("user-1", SelectionContact, contact.ID)
	require.NoError(t, err)
	_, err = svc.Select("user-1", SelectionDeal, deal.ID)
	require.NoError(t, err)

	current, err := svc.Current("user-1")
	require.NoError(t, err)
	assert.Equal(t, SelectionDeal, current.Kind)
}

func TestSelectUnknownEntity(t *testing.T) {
	st, _, _ := newBoardFixture(t)
	svc := NewSelectionService(st)

	_, err := svc.Select("user-1", SelectionDeal, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// A failed select must not leave a selection behind.
	detail, err := svc.Current("user-1")
	require.NoError(t, err)
	assert.Nil(t, detail)
}

func TestSelectInvalidKind(t *testing.T) {
	st, _, contact := newBoardFixture(t)
	svc := NewSelectionService(st)

	_, err := svc.Select("user-1", "pipeline", contact.ID)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestClearSelection(t *testing.T) {
	st, _, contact := newBoardFixture(t)
	svc := NewSelectionService(st)

	_, err := svc.Select("user-1", SelectionContact, contact.ID)
	require.NoError(t, err)

	svc.Clear("user-1")

	detail, err := svc.Current("user-1")
	require.NoError(t, err)
	assert.Nil(t, detail)
}

func TestSelectionsAreIndependentPerUser(t *testing.T) {
	st, pipeline, contact := newBoardFixture(t)
	deal := addDeal(t, st, pipeline, contact, "Annual plan", 0, 1000, 10)

	svc := NewSelectionService(st)

	_, err := svc.Select("user-1", SelectionDeal, deal.ID)
	require.NoError(t, err)
	_, err = svc.Select("user-2", SelectionContact, contact.ID)
	require.NoError(t, err)

	svc.Clear("user-1")

	current, err := svc.Current("user-2")
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, SelectionContact, current.Kind)
}
