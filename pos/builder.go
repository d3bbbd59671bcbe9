package pos

import (
	"github.com/skva/kasse/models"
	"github.com/skva/kasse/services"
)

// Line is one not-yet-persisted order position. UnitPrice is captured in
// minor units when the line is added and never re-read from the catalog.
type Line struct {
	ProductID uint
	Name      string
	Quantity  int
	UnitPrice int64
}

// Builder accumulates an in-progress sale before anything is written. It
// performs no I/O and cannot fail; an invalid submission state (no lines, no
// party) is only rejected by the transaction engine on submit.
type Builder struct {
	lines []Line
	party Party
}

func NewBuilder() *Builder {
	return &Builder{}
}

// AddLine adds qty of the product. An existing line for the same product is
// incremented instead of appending a second line.
func (b *Builder) AddLine(p models.Product, qty int) {
	for i := range b.lines {
		if b.lines[i].ProductID == p.ID {
			b.lines[i].Quantity += qty
			return
		}
	}
	b.lines = append(b.lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Quantity:  qty,
		UnitPrice: p.Price,
	})
}

// AdjustQuantity changes an existing line's quantity by delta. A line whose
// quantity drops to zero or below is removed, never kept at zero.
func (b *Builder) AdjustQuantity(productID uint, delta int) {
	for i := range b.lines {
		if b.lines[i].ProductID == productID {
			b.lines[i].Quantity += delta
			if b.lines[i].Quantity <= 0 {
				b.lines = append(b.lines[:i], b.lines[i+1:]...)
			}
			return
		}
	}
}

func (b *Builder) RemoveLine(productID uint) {
	for i := range b.lines {
		if b.lines[i].ProductID == productID {
			b.lines = append(b.lines[:i], b.lines[i+1:]...)
			return
		}
	}
}

func (b *Builder) SetMember(memberID uint) {
	b.party = Party{Kind: PartyMember, MemberID: memberID}
}

func (b *Builder) SetGuest(name string) {
	b.party = Party{Kind: PartyGuest, GuestName: name}
}

func (b *Builder) SetTable(tableNumber int) {
	b.party = Party{Kind: PartyTable, Table: tableNumber}
}

func (b *Builder) ClearParty() {
	b.party = Party{}
}

func (b *Builder) Party() Party {
	return b.party
}

// Lines returns a copy of the current lines.
func (b *Builder) Lines() []Line {
	out := make([]Line, len(b.lines))
	copy(out, b.lines)
	return out
}

// Total is recomputed on every read, in minor units.
func (b *Builder) Total() int64 {
	var total int64
	for _, l := range b.lines {
		total += l.UnitPrice * int64(l.Quantity)
	}
	return total
}

// Reset clears lines and party, used after a successful submit.
func (b *Builder) Reset() {
	b.lines = nil
	b.party = Party{}
}

// LoadTransaction repopulates the builder from a still-open persisted sale
// so it can be edited further. Lines are keyed by product id and use the
// stored item price, not the product's current price.
func (b *Builder) LoadTransaction(txn models.Transaction, items []models.TransactionItem) {
	b.Reset()
	for _, item := range items {
		merged := false
		for i := range b.lines {
			if b.lines[i].ProductID == item.ProductID {
				b.lines[i].Quantity += item.Quantity
				merged = true
				break
			}
		}
		if !merged {
			b.lines = append(b.lines, Line{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.Price,
			})
		}
	}

	switch {
	case txn.MemberID != nil:
		b.SetMember(*txn.MemberID)
	case txn.GuestName != nil:
		b.SetGuest(*txn.GuestName)
	case txn.TableNumber != nil:
		b.SetTable(*txn.TableNumber)
	}
}

// Payload builds the submit request for the transaction engine.
func (b *Builder) Payload(paymentMethod string) services.SubmitRequest {
	req := services.SubmitRequest{
		PaymentMethod: paymentMethod,
		TotalAmount:   b.Total(),
	}

	switch b.party.Kind {
	case PartyMember:
		id := b.party.MemberID
		req.MemberID = &id
	case PartyGuest:
		name := b.party.GuestName
		req.GuestName = &name
	case PartyTable:
		table := b.party.Table
		req.TableNumber = &table
	}

	for _, l := range b.lines {
		req.Items = append(req.Items, services.SubmitItem{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Price:     l.UnitPrice,
		})
	}
	return req
}
