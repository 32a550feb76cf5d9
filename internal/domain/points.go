package domain

// Points is a non-negative score amount.
type Points int

// NewPoints rejects negative amounts.
func NewPoints(n int) (Points, error) {
	if n < 0 {
		return 0, invalidValue("invalid points: expected non-negative value, got %d", n)
	}
	return Points(n), nil
}

func (p Points) IsPositive() bool { return p > 0 }
func (p Points) IsZero() bool { return p == 0 }
func (p Points) Int() int { return int(p) }
