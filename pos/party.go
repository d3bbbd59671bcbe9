package pos

// PartyKind tags who a sale is attributed to. The three concrete kinds are
// mutually exclusive: setting one clears the others.
type PartyKind int

const (
	PartyNone PartyKind = iota
	PartyMember
	PartyGuest
	PartyTable
)

// Party is the member/guest/table attribution of an in-progress sale. Only
// the field matching Kind carries a value.
type Party struct {
	Kind      PartyKind
	MemberID  uint
	GuestName string
	Table     int
}

func (p Party) IsSet() bool {
	return p.Kind != PartyNone
}
