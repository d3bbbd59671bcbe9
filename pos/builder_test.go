package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skva/kasse/models"
)

var cola = models.Product{ID: 1, Name: "Cola", Price: 150, Unit: "0.33", CategoryID: 2, IsActive: 1}
var bier = models.Product{ID: 2, Name: "Bier", Price: 450, Unit: "0.5", CategoryID: 2, IsActive: 1}

func TestAddLineMergesSameProduct(t *testing.T) {
	b := NewBuilder()
	b.AddLine(cola, 1)
	b.AddLine(cola, 1)

	lines := b.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, int64(300), b.Total())
}

func TestAdjustQuantityRemovesAtZero(t *testing.T) {
	b := NewBuilder()
	b.AddLine(cola, 2)
	b.AdjustQuantity(cola.ID, -1)
	assert.Equal(t, 1, b.Lines()[0].Quantity)

	b.AdjustQuantity(cola.ID, -1)
	assert.Empty(t, b.Lines())

	// dropping below zero must also remove, never keep a negative line
	b.AddLine(bier, 1)
	b.AdjustQuantity(bier.ID, -5)
	assert.Empty(t, b.Lines())
}

func TestRemoveLine(t *testing.T) {
	b := NewBuilder()
	b.AddLine(cola, 1)
	b.AddLine(bier, 1)
	b.RemoveLine(cola.ID)

	lines := b.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, bier.ID, lines[0].ProductID)
}

func TestPartySelectionIsExclusive(t *testing.T) {
	b := NewBuilder()

	b.SetMember(7)
	assert.Equal(t, PartyMember, b.Party().Kind)

	b.SetTable(5)
	assert.Equal(t, PartyTable, b.Party().Kind)
	assert.Equal(t, 5, b.Party().Table)
	assert.Zero(t, b.Party().MemberID)

	b.SetMember(7)
	assert.Equal(t, PartyMember, b.Party().Kind)
	assert.Zero(t, b.Party().Table)

	b.SetGuest("Walk-in")
	assert.Equal(t, PartyGuest, b.Party().Kind)
	assert.Zero(t, b.Party().MemberID)
	assert.Zero(t, b.Party().Table)

	b.ClearParty()
	assert.False(t, b.Party().IsSet())
}

func TestTotalIsRecomputed(t *testing.T) {
	b := NewBuilder()
	assert.Zero(t, b.Total())

	b.AddLine(cola, 3)
	b.AddLine(bier, 2)
	assert.Equal(t, int64(3*150+2*450), b.Total())

	b.AdjustQuantity(bier.ID, -1)
	assert.Equal(t, int64(3*150+450), b.Total())
}

func TestReset(t *testing.T) {
	b := NewBuilder()
	b.AddLine(cola, 1)
	b.SetTable(3)
	b.Reset()

	assert.Empty(t, b.Lines())
	assert.False(t, b.Party().IsSet())
	assert.Zero(t, b.Total())
}

func TestLoadTransactionUsesStoredPrices(t *testing.T) {
	table := 3
	txn := models.Transaction{ID: 9, TableNumber: &table, Status: models.TxStatusOpen}
	items := []models.TransactionItem{
		// stored at an older price than the current catalog price
		{TransactionID: 9, ProductID: cola.ID, Quantity: 2, Price: 120, Subtotal: 240},
		{TransactionID: 9, ProductID: bier.ID, Quantity: 1, Price: 450, Subtotal: 450},
	}

	b := NewBuilder()
	b.AddLine(cola, 5) // pre-existing state must be discarded
	b.LoadTransaction(txn, items)

	lines := b.Lines()
	assert.Len(t, lines, 2)
	assert.Equal(t, int64(120), lines[0].UnitPrice)
	assert.Equal(t, int64(2*120+450), b.Total())
	assert.Equal(t, PartyTable, b.Party().Kind)
	assert.Equal(t, 3, b.Party().Table)
}

func TestPayload(t *testing.T) {
	b := NewBuilder()
	b.AddLine(cola, 2)
	b.SetGuest("Vereinsgast")

	req := b.Payload("cash")
	assert.Nil(t, req.MemberID)
	assert.Nil(t, req.TableNumber)
	if assert.NotNil(t, req.GuestName) {
		assert.Equal(t, "Vereinsgast", *req.GuestName)
	}
	assert.Equal(t, "cash", req.PaymentMethod)
	assert.Equal(t, int64(300), req.TotalAmount)
	assert.Len(t, req.Items, 1)
	assert.Equal(t, int64(150), req.Items[0].Price)
	assert.Equal(t, 2, req.Items[0].Quantity)
}
