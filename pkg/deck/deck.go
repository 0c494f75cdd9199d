package deck

import (
	"errors"
	"math/rand"
	"time"
)

// Size is the number of cards in a Xuanwei deck
const Size = 24

// ErrEndOfDeck is an error when Draw() is attempted and there are no more cards
var ErrEndOfDeck = errors.New("end of deck reached")

// Deck represents the 24-card Xuanwei deck
type Deck struct {
	Cards []*Card `json:"cards"`
	seed  int64
	rng   *rand.Rand
}

// New returns a new deck of cards.
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func New() *Deck {
	d := &Deck{
		seed: -1,
	}

	d.buildDeck()
	return d
}

// SetSeed will set the seed
// This should only be used by tests. Setting the seed is normally handled when you call Shuffle()
func (d *Deck) SetSeed(seed int64) {
	d.seed = seed
	d.rng = rand.New(rand.NewSource(seed))
}

// buildDeck creates the fixed 24-card composition:
// Zu, Ma, Xiang, and Er twice per color, Qu three times per color, and one of
// each joker. Qu appears three deep so same-color triples can exist.
func (d *Deck) buildDeck() {
	cards := make([]*Card, 0, Size)
	for _, color := range []Color{Red, Black} {
		for _, rank := range []Rank{Zu, Ma, Xiang, Er} {
			cards = append(cards, NewCard(rank, color), NewCard(rank, color))
		}

		cards = append(cards, NewCard(Qu, color), NewCard(Qu, color), NewCard(Qu, color))
	}

	cards = append(cards, NewCard(XiaoWang, NoColor), NewCard(DaWang, NoColor))

	d.Cards = cards
}

// Shuffle will shuffle the deck of cards
// You can manually specify the seed, or you can leave it as 0 for a time-based seed.
func (d *Deck) Shuffle(seed int64) {
	if seed < 0 {
		panic("seed cannot be < 0")
	}

	// we always want to shuffle from an unshuffled deck.
	// this check here is to make sure we aren't double building the deck
	if len(d.Cards) != Size || d.seed != -1 {
		d.buildDeck()
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	d.SetSeed(seed)

	for j := len(d.Cards) - 1; j > 0; j-- {
		i := d.rng.Intn(j + 1)

		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// GetSeed returns the seed used to shuffle the deck
func (d *Deck) GetSeed() int64 {
	return d.seed
}

// Draw will draw the next card
// If there are no more cards, an ErrEndOfDeck is returned along with a nil card.
func (d *Deck) Draw() (*Card, error) {
	if len(d.Cards) <= 0 {
		return nil, ErrEndOfDeck
	}

	card := d.Cards[0]
	d.Cards = d.Cards[1:]

	return card, nil
}

// CanDraw returns true if there are {want} cards left in the deck
func (d *Deck) CanDraw(want int) bool {
	return len(d.Cards) >= want
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}
