package models

// StorageVersion identifies the snapshot format.
const StorageVersion = 1

// Storage is the persisted snapshot envelope: both contract singletons under
// an explicit version field so future format changes can migrate old files.
type Storage struct {
	Version  int            `json:"version"`
	Contract *ContractState `json:"contract_state"`
	Vesting  *VestingState  `json:"vesting_state"`
}

// MigrationEntry is one row of the one-time balance migration input: a wallet
// name, the ledger account the balance goes to, and the balance recorded on
// the source ledger. Names other than the four vested wallets are allowed and
// only receive a transfer.
type MigrationEntry struct {
	WalletName string `json:"wallet"`
	Account    string `json:"account"`
	Balance    uint64 `json:"balance"`
}
