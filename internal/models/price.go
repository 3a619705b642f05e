package models

// PricePair is a price and the deposit due up front, both in whole currency
// units. Payments are signed integers, negative meaning refund.
type PricePair struct {
	Price   int `json:"price"`
	Deposit int `json:"deposit"`
}

func Price(price, deposit int) PricePair {
	return PricePair{Price: price, Deposit: deposit}
}

func floorZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
