package models

// WalletState is the per-wallet slice of the vesting ledger: the balance
// snapshot taken at migration, the ledger account the wallet is bound to,
// and the running withdrawn counter.
type WalletState struct {
	Account        string `json:"account"`
	InitialBalance uint64 `json:"initial_balance"`
	Withdrawn      uint64 `json:"withdrawn"`
}

// VestingState is the vesting singleton. Created zeroed at Initialize,
// seeded once at migration, then mutated only by withdrawals.
type VestingState struct {
	StartTimestamp int64                   `json:"start_timestamp"`
	Wallets        map[Wallet]*WalletState `json:"wallets"`
}

func NewVestingState() *VestingState {
	vs := &VestingState{Wallets: make(map[Wallet]*WalletState, len(Wallets()))}
	for _, w := range Wallets() {
		vs.Wallets[w] = &WalletState{}
	}
	return vs
}

// Unlocked returns the wallet's unlock ceiling at the given time.
func (vs *VestingState) Unlocked(w Wallet, now int64) (uint64, error) {
	months, err := MonthDifference(vs.StartTimestamp, now)
	if err != nil {
		return 0, err
	}
	return UnlockedAmount(w, vs.Wallets[w].InitialBalance, months)
}

// Available resolves how many tokens of the currently-unlocked amount have
// not yet been withdrawn: the withdrawn counter is subtracted from the unlock
// ceiling first, then the result is capped by the wallet's live balance.
// A withdrawn counter ahead of the ceiling is a state-corruption error, not
// an underflow.
func (vs *VestingState) Available(w Wallet, now int64, liveBalance uint64) (uint64, error) {
	unlocked, err := vs.Unlocked(w, now)
	if err != nil {
		return 0, err
	}
	ws := vs.Wallets[w]
	if ws.Withdrawn > unlocked {
		return 0, ErrWithdrawnExceedsUnlocked
	}
	available := unlocked - ws.Withdrawn
	if liveBalance < available {
		available = liveBalance
	}
	return available, nil
}

func (vs *VestingState) Clone() *VestingState {
	if vs == nil {
		return nil
	}
	clone := &VestingState{
		StartTimestamp: vs.StartTimestamp,
		Wallets:        make(map[Wallet]*WalletState, len(vs.Wallets)),
	}
	for w, ws := range vs.Wallets {
		c := *ws
		clone.Wallets[w] = &c
	}
	return clone
}
