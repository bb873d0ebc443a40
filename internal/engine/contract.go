package engine

import "fmt"

// Contract is the penalty/scoring rule active for one round. Each king must
// play every contract exactly once over their five rounds.
type Contract int

const (
	ContractKingOfHearts Contract = iota
	ContractQueens
	ContractDiamonds
	ContractCollections
	ContractTrex
)

// NumContracts matches the five rounds each king plays.
const NumContracts = 5

var contractNames = map[Contract]string{
	ContractKingOfHearts: "king_of_hearts",
	ContractQueens:       "queens",
	ContractDiamonds:     "diamonds",
	ContractCollections:  "collections",
	ContractTrex:         "trex",
}

func (c Contract) String() string {
	if name, ok := contractNames[c]; ok {
		return name
	}
	return fmt.Sprintf("contract(%d)", int(c))
}

// Valid reports whether c is a known contract.
func (c Contract) Valid() bool {
	return c >= ContractKingOfHearts && c <= ContractTrex
}

// TrickBased reports whether the contract is played out in tricks. Trex is
// the one layout contract; everything else follows suit and resolves tricks.
func (c Contract) TrickBased() bool {
	return c != ContractTrex
}

// ContractFromString parses a contract name.
func ContractFromString(s string) (Contract, error) {
	for c, name := range contractNames {
		if name == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown contract %q", s)
}

// Contracts returns all contracts in their canonical order.
func Contracts() [NumContracts]Contract {
	return [NumContracts]Contract{
		ContractKingOfHearts,
		ContractQueens,
		ContractDiamonds,
		ContractCollections,
		ContractTrex,
	}
}
