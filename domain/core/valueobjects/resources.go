package valueobjects

// ResourceLedger tracks a player's spendable resources. The wild joker is a
// one-time token that covers the entire shortfall of a single resource.
type ResourceLedger struct {
	Insight       int  `json:"insight"`
	Restraint     int  `json:"restraint"`
	WildAvailable bool `json:"wildAvailable"`
}

// Cost is the price of a move
type Cost struct {
	Insight   int
	Restraint int
}

// Free reports a zero cost
func (c Cost) Free() bool {
	return c.Insight == 0 && c.Restraint == 0
}

// Settle computes the ledger after paying cost. The wild joker is applied to
// at most one short resource, insight first, zeroing that balance. The two
// flags report resources that remain unpayable; when either is true the
// returned ledger must be discarded.
func (l ResourceLedger) Settle(c Cost) (ResourceLedger, bool, bool) {
	out := l
	shortInsight := false
	shortRestraint := false

	if out.Insight < c.Insight {
		if out.WildAvailable {
			out.Insight = 0
			out.WildAvailable = false
		} else {
			shortInsight = true
		}
	} else {
		out.Insight -= c.Insight
	}

	if out.Restraint < c.Restraint {
		if out.WildAvailable {
			out.Restraint = 0
			out.WildAvailable = false
		} else {
			shortRestraint = true
		}
	} else {
		out.Restraint -= c.Restraint
	}

	return out, shortInsight, shortRestraint
}

// CanAfford reports whether cost is payable, counting the wild joker
func (l ResourceLedger) CanAfford(c Cost) bool {
	_, shortInsight, shortRestraint := l.Settle(c)
	return !shortInsight && !shortRestraint
}
