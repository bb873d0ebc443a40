package card

import (
	"fmt"
	"math/rand/v2"
	"strconv"
)

// Suit is one of the four French suits. Trix has no jokers and no trump.
type Suit int

// Rank is the card face value, ordered 2..Ace.
type Rank int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// suitSymbols maps suits to display symbols.
var suitSymbols = map[Suit]string{
	Hearts:   "♥",
	Diamonds: "♦",
	Clubs:    "♣",
	Spades:   "♠",
}

// suitLetters maps suits to their wire identity letter.
var suitLetters = map[Suit]string{
	Hearts:   "H",
	Diamonds: "D",
	Clubs:    "C",
	Spades:   "S",
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return "?"
}

// Letter returns the single-letter wire form of the suit.
func (s Suit) Letter() string {
	if l, ok := suitLetters[s]; ok {
		return l
	}
	return "?"
}

const (
	Rank2 Rank = iota + 2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJ
	RankQ
	RankK
	RankA
)

// rankNames maps ranks to their wire/display form. 10 is "T" on the wire.
var rankNames = map[Rank]string{
	Rank2:  "2",
	Rank3:  "3",
	Rank4:  "4",
	Rank5:  "5",
	Rank6:  "6",
	Rank7:  "7",
	Rank8:  "8",
	Rank9:  "9",
	Rank10: "T",
	RankJ:  "J",
	RankQ:  "Q",
	RankK:  "K",
	RankA:  "A",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return strconv.Itoa(int(r))
}

// Card is an immutable playing card. Compare cards by value.
type Card struct {
	Suit Suit
	Rank Rank
}

// ID is the stable short identity used across the wire boundary, e.g. "HK"
// for the king of hearts, "DT" for the ten of diamonds.
func (c Card) ID() string {
	return c.Suit.Letter() + c.Rank.String()
}

func (c Card) String() string {
	return c.Suit.String() + c.Rank.String()
}

// KingOfHearts is the card the king-of-hearts contract penalizes.
var KingOfHearts = Card{Suit: Hearts, Rank: RankK}

var letterToSuit = map[byte]Suit{
	'H': Hearts,
	'D': Diamonds,
	'C': Clubs,
	'S': Spades,
}

var charToRank = map[byte]Rank{
	'2': Rank2,
	'3': Rank3,
	'4': Rank4,
	'5': Rank5,
	'6': Rank6,
	'7': Rank7,
	'8': Rank8,
	'9': Rank9,
	'T': Rank10,
	'J': RankJ,
	'Q': RankQ,
	'K': RankK,
	'A': RankA,
}

// FromID parses a wire identity back into a Card.
func FromID(id string) (Card, error) {
	if len(id) != 2 {
		return Card{}, fmt.Errorf("invalid card id %q", id)
	}
	suit, ok := letterToSuit[id[0]]
	if !ok {
		return Card{}, fmt.Errorf("invalid suit in card id %q", id)
	}
	rank, ok := charToRank[id[1]]
	if !ok {
		return Card{}, fmt.Errorf("invalid rank in card id %q", id)
	}
	return Card{Suit: suit, Rank: rank}, nil
}

// Deck is a full set of 52 cards.
type Deck []Card

// NewDeck builds an unshuffled 52-card deck.
func NewDeck() Deck {
	deck := make(Deck, 0, 52)
	for s := Hearts; s <= Spades; s++ {
		for r := Rank2; r <= RankA; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// Shuffle permutes the deck in place.
func (d Deck) Shuffle() {
	rand.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}
