package deck

// Hand represents a collection of cards owned by one seat
type Hand []*Card

func (h Hand) Len() int {
	return len(h)
}

func (h Hand) Less(i, j int) bool {
	if h[i].Strength != h[j].Strength {
		return h[i].Strength < h[j].Strength
	}

	return h[i].Color < h[j].Color
}

func (h Hand) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

// AddCard adds a card to the hand
func (h *Hand) AddCard(card *Card) {
	*h = append(*h, card)
}

// HasCard returns true if the hand contains the specified card
func (h Hand) HasCard(card *Card) bool {
	for _, c := range h {
		if c.Equal(card) {
			return true
		}
	}

	return false
}

// CardByID returns the card with the given ID, or nil
func (h Hand) CardByID(id string) *Card {
	for _, c := range h {
		if c.ID == id {
			return c
		}
	}

	return nil
}

// Remove will remove the specified card from the hand
// Returns false if the card was not found.
func (h *Hand) Remove(card *Card) bool {
	for i, c := range *h {
		if c.Equal(card) {
			*h = append((*h)[:i], (*h)[i+1:]...)
			return true
		}
	}

	return false
}

// IsDead returns true if the hand fails the structural legality precondition:
// a hand holding neither an Er nor a Xiang forces a redeal
func (h Hand) IsDead() bool {
	for _, c := range h {
		if c.Rank == Er || c.Rank == Xiang {
			return false
		}
	}

	return true
}

func (h Hand) String() string {
	return CardsToString(h)
}

// Clone returns a shallow clone of the hand
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}
