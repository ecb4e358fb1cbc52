package domain

// NoBonus is the label recorded when no offer matched a transaction.
const NoBonus = "No"

// Participation is the evaluator's verdict for a single transaction.
// Derived, never persisted; recomputed from Transaction + BonusOffer
// on every run.
type Participation struct {
	TransactionID string
	Player        string
	Participated  bool
	BonusLabel    string
	Community     Community
}
