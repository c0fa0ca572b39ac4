package syntax

import "math/rand"

// RandomConfig tunes RandomPattern. Chances are probabilities in [0, 1).
type RandomConfig struct {
	Length      int     // number of literal occurrences, must be >= 1
	Alphabet    string  // symbols to draw from
	StarChance  float64
	AltChance   float64
	GroupChance float64
}

// RandomPattern produces a random well-formed pattern with exactly
// cfg.Length literal occurrences. It exists for the cross-engine
// property tests: any pattern it returns must parse.
func RandomPattern(rng *rand.Rand, cfg RandomConfig) string {
	alphabet := []rune(cfg.Alphabet)
	if len(alphabet) == 0 {
		alphabet = []rune("ab")
	}

	var maker func(length int) string
	maker = func(length int) string {
		star := rng.Float64() < cfg.StarChance

		if length <= 1 {
			s := string(alphabet[rng.Intn(len(alphabet))])
			if star {
				return s + "*"
			}
			return s
		}

		lenLeft := 1
		if length > 2 {
			lenLeft = 1 + rng.Intn(length-2)
		}
		left := maker(lenLeft)
		right := maker(length - lenLeft)

		alt := rng.Float64() < cfg.AltChance
		grouped := rng.Float64() < cfg.GroupChance

		binary := left + right
		if alt {
			binary = left + "|" + right
			if grouped && !star {
				binary = "(" + binary + ")"
			}
		}
		if star {
			return "(" + binary + ")*"
		}
		return binary
	}

	return maker(cfg.Length)
}
