package game

import (
	"math/rand/v2"
	"strconv"
)

const deckSize = 15

func round1Composition() []CardType {
	return []CardType{
		CardLuck, CardLuck, CardLuck, CardLuck,
		CardTask, CardTask, CardTask, CardTask, CardTask, CardTask,
		CardPunishment, CardPunishment, CardPunishment, CardPunishment, CardPunishment,
	}
}

func round2Composition() []CardType {
	return []CardType{
		CardLuck, CardLuck, CardLuck,
		CardTask, CardTask, CardTask, CardTask, CardTask, CardTask, CardTask,
		CardPunishment, CardPunishment, CardPunishment, CardPunishment, CardPunishment,
	}
}

var round2Palette = []string{
	"Kırmızı", "Mavi", "Yeşil", "Mor", "Altın",
	"Pembe", "Turuncu", "Turkuaz", "Lacivert", "Gül",
	"Camgöbeği", "Limon", "Kehribar", "Gümüş", "Zümrüt",
}

func shuffleDeck(types []CardType) []CardType {
	shuffled := make([]CardType, len(types))
	copy(shuffled, types)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// buildRound1Deck returns the visible cards plus the secret id->type map.
// Visible cards carry EMPTY types so the true type stays hidden until opened.
func buildRound1Deck() ([]Card, map[int]CardType) {
	shuffled := shuffleDeck(round1Composition())
	cards := make([]Card, 0, deckSize)
	deckMap := make(map[int]CardType, deckSize)
	for i := 1; i <= deckSize; i++ {
		deckMap[i] = shuffled[i-1]
		cards = append(cards, Card{
			ID:      i,
			Label:   strconv.Itoa(i),
			Type:    CardEmpty,
			Content: "?",
		})
	}
	return cards, deckMap
}

func buildRound2Deck() ([]Card, map[int]CardType) {
	shuffled := shuffleDeck(round2Composition())
	cards := make([]Card, 0, deckSize)
	deckMap := make(map[int]CardType, deckSize)
	for i := 0; i < deckSize; i++ {
		id := i + 200
		deckMap[id] = shuffled[i]
		cards = append(cards, Card{
			ID:        id,
			ColorName: round2Palette[i%len(round2Palette)],
			Type:      CardEmpty,
			Content:   "?",
		})
	}
	return cards, deckMap
}
