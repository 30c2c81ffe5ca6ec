package models

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Wallet identifies one of the four pools subject to a vesting schedule.
type Wallet uint8

const (
	WalletCommunity Wallet = iota
	WalletPartnership
	WalletMarketing
	WalletLiquidity

	walletCount
)

var walletNames = [walletCount]string{"community", "partnership", "marketing", "liquidity"}

// Wallets returns every vested wallet in declaration order.
func Wallets() []Wallet {
	return []Wallet{WalletCommunity, WalletPartnership, WalletMarketing, WalletLiquidity}
}

func (w Wallet) String() string {
	if w >= walletCount {
		return fmt.Sprintf("wallet(%d)", uint8(w))
	}
	return walletNames[w]
}

// ParseWallet maps a wallet name to its Wallet value.
func ParseWallet(name string) (Wallet, error) {
	for i, n := range walletNames {
		if n == name {
			return Wallet(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWallet, name)
}

// MarshalText lets Wallet act as a JSON object key in snapshots.
func (w Wallet) MarshalText() ([]byte, error) {
	if w >= walletCount {
		return nil, fmt.Errorf("%w: %d", ErrUnknownWallet, uint8(w))
	}
	return []byte(walletNames[w]), nil
}

func (w *Wallet) UnmarshalText(text []byte) error {
	parsed, err := ParseWallet(string(text))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// UnlockedAmount returns how many tokens of initialBalance are unlocked after
// monthsElapsed whole months, according to the wallet's schedule. Every curve
// is a closed-form function of monthsElapsed, monotonically non-decreasing and
// saturating at initialBalance. Intermediate products use 256-bit arithmetic
// so no initialBalance/percentage combination can overflow.
func UnlockedAmount(w Wallet, initialBalance, monthsElapsed uint64) (uint64, error) {
	switch w {
	case WalletCommunity:
		return unlockedCommunity(initialBalance, monthsElapsed), nil
	case WalletPartnership:
		return unlockedPartnership(initialBalance, monthsElapsed), nil
	case WalletMarketing:
		return unlockedMarketing(initialBalance, monthsElapsed), nil
	case WalletLiquidity:
		return unlockedLiquidity(initialBalance, monthsElapsed), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownWallet, uint8(w))
	}
}

// unlockedPartnership: nothing at month 0, half after one month, everything
// from the second month on.
func unlockedPartnership(balance, months uint64) uint64 {
	switch months {
	case 0:
		return 0
	case 1:
		return balance / 2
	default:
		return balance
	}
}

// unlockedMarketing: locked for the first year, then 40% plus 5% per
// additional month, reaching 100% at month 24.
func unlockedMarketing(balance, months uint64) uint64 {
	if months < 12 {
		return 0
	}
	b := uint256.NewInt(balance)
	afterYear := new(uint256.Int).Div(new(uint256.Int).Mul(b, uint256.NewInt(40)), uint256.NewInt(100))
	perMonth := new(uint256.Int).Div(new(uint256.Int).Mul(b, uint256.NewInt(5)), uint256.NewInt(100))
	unlocked := new(uint256.Int).Add(afterYear, new(uint256.Int).Mul(uint256.NewInt(months-12), perMonth))
	return floorOneCapBalance(unlocked, balance)
}

// unlockedCommunity: 2.5% immediately plus 2.5% per elapsed month,
// i.e. floor(balance*(months+1)/40).
func unlockedCommunity(balance, months uint64) uint64 {
	factor := new(uint256.Int).AddUint64(uint256.NewInt(months), 1)
	unlocked := new(uint256.Int).Div(
		new(uint256.Int).Mul(uint256.NewInt(balance), factor),
		uint256.NewInt(40),
	)
	return floorOneCapBalance(unlocked, balance)
}

// unlockedLiquidity: half immediately, the rest after one year.
func unlockedLiquidity(balance, months uint64) uint64 {
	if months >= 12 {
		return balance
	}
	return balance / 2
}

// floorOneCapBalance applies the reference max(1).min(balance) clamp: once a
// schedule has started paying out, at least one token unit is withdrawable,
// but never more than the initial balance. A zero balance stays zero.
func floorOneCapBalance(v *uint256.Int, balance uint64) uint64 {
	if v.IsZero() {
		if balance == 0 {
			return 0
		}
		return 1
	}
	if v.GtUint64(balance) {
		return balance
	}
	return v.Uint64()
}
