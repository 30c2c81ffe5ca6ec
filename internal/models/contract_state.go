package models

// ContractState is the contract-wide singleton: owner identity, migration
// flag and the month of the last successful reserve burn. It is created by
// Initialize and mutated only by Migrate, Burn and ChangeOwner.
type ContractState struct {
	Owner              string `json:"owner"`
	MigrationPerformed bool   `json:"migration_performed"`
	// 0/0 is the "never burned" sentinel.
	LastBurnYear  int64 `json:"last_burn_year"`
	LastBurnMonth uint8 `json:"last_burn_month"`
}

func NewContractState(owner string) *ContractState {
	return &ContractState{Owner: owner}
}

// ValidOwner checks that the call was authorized by the recorded owner.
func (cs *ContractState) ValidOwner(caller string) error {
	if caller == "" || caller != cs.Owner {
		return ErrUnauthorized
	}
	return nil
}

// MigrationNotPerformedYet guards the one-time balance migration.
func (cs *ContractState) MigrationNotPerformedYet() error {
	if cs.MigrationPerformed {
		return ErrMigrationAlreadyPerformed
	}
	return nil
}

// burnWindowLastDay is the last day of the month on which a burn may run.
const burnWindowLastDay = 5

// BurnAllowed checks the burn window (days 1..5) and the once-per-calendar-
// month rule against the given decomposed current time.
func (cs *ContractState) BurnAllowed(now DateTime) error {
	if now.Day > burnWindowLastDay {
		return ErrTooLateToBurn
	}
	if cs.LastBurnMonth == now.Month && cs.LastBurnYear == now.Year {
		return ErrAlreadyBurned
	}
	return nil
}

// RecordBurn marks the given month as burned.
func (cs *ContractState) RecordBurn(now DateTime) {
	cs.LastBurnYear = now.Year
	cs.LastBurnMonth = now.Month
}

func (cs *ContractState) Clone() *ContractState {
	if cs == nil {
		return nil
	}
	clone := *cs
	return &clone
}
