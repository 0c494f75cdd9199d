package util

import (
	"fmt"
	"math/rand"
	"time"
)

var random = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint:gosec

var adjectives = []string{
	"Swift", "Steady", "Clever", "Lucky", "Bold", "Quiet", "Patient", "Cunning", "Brave", "Calm",
	"Jade", "Crimson", "Golden", "Silver", "Azure", "Iron", "Stone", "Cloud", "River", "Mountain",
	"Wandering", "Laughing", "Dancing", "Soaring", "Prowling", "Watchful", "Humble", "Grand",
}

var animals = []string{
	"Crane", "Tiger", "Dragon", "Phoenix", "Tortoise", "Monkey", "Rooster", "Ox", "Horse", "Goat",
	"Rabbit", "Serpent", "Rat", "Pig", "Carp", "Magpie", "Sparrow", "Heron", "Panda", "Leopard",
	"Mandarin", "Crow", "Swallow", "Pheasant",
}

// GetRandomName returns a random table name for an AI seat
func GetRandomName() string {
	adjective := adjectives[random.Intn(len(adjectives))]
	animal := animals[random.Intn(len(animals))]

	return fmt.Sprintf("%s %s", adjective, animal)
}
