package models

import "fmt"

// Pairing is an unordered pair of participants.
type Pairing struct {
	A string `json:"a"`
	B string `json:"b"`
}

func (p Pairing) key() [2]string {
	if p.A > p.B {
		return [2]string{p.B, p.A}
	}
	return [2]string{p.A, p.B}
}

// PairingSet is the generator output: an ordered sequence of unordered pairs.
type PairingSet []Pairing

func (ps PairingSet) Counts() map[string]int {
	counts := make(map[string]int)
	for _, p := range ps {
		counts[p.A]++
		counts[p.B]++
	}
	return counts
}

// Validate checks that every participant appears in exactly k pairs, that no
// pair repeats and that only known participants are used.
func (ps PairingSet) Validate(participants []string, k int) error {
	known := make(map[string]int, len(participants))
	for _, name := range participants {
		known[name] = 0
	}
	seen := make(map[[2]string]bool, len(ps))
	for _, p := range ps {
		if p.A == p.B {
			return fmt.Errorf("pair %s vs %s repeats a participant", p.A, p.B)
		}
		if seen[p.key()] {
			return fmt.Errorf("pair %s vs %s appears twice", p.A, p.B)
		}
		seen[p.key()] = true
		for _, name := range []string{p.A, p.B} {
			if _, ok := known[name]; !ok {
				return fmt.Errorf("unknown participant %q", name)
			}
			known[name]++
		}
	}
	for name, n := range known {
		if n != k {
			return fmt.Errorf("participant %q plays %d games, want %d", name, n, k)
		}
	}
	return nil
}
