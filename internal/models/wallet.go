package models

type VaultSummary struct {
	ID         uint64  `json:"id"`
	Amount     float64 `json:"amount"`
	UnlockDays int     `json:"unlock_days"`
	Status     string  `json:"status"`
}

type WalletData struct {
	Address   string         `json:"address"`
	Balance   float64        `json:"balance"`
	Protected float64        `json:"protected"`
	Vaults    []VaultSummary `json:"vaults"`
}

type MockWallet struct {
	Connected bool   `json:"connected"`
	Address   string `json:"address"`
	Network   string `json:"network"`
	Balance   string `json:"balance"`
}
