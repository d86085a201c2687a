package domain

// DefaultAddress is the placeholder stored on accounts that never set
// a shipping address. Checkout refuses to proceed while it is in place.
const DefaultAddress = "ADDRESS_NOT_SET"

// UserAccount is the slice of the account record the cart core needs:
// the owner key, the wallet balance checkout debits, and the shipping
// address it validates.
type UserAccount struct {
	ID          string  `bson:"_id,omitempty" json:"-"`
	Email       string  `bson:"email" json:"email"`
	Name        string  `bson:"name" json:"name"`
	WalletMoney float64 `bson:"walletMoney" json:"walletMoney"`
	Address     string  `bson:"address" json:"address"`
}

// HasNonDefaultAddress reports whether the user replaced the
// placeholder address with a real one.
func (u *UserAccount) HasNonDefaultAddress() bool {
	return u.Address != "" && u.Address != DefaultAddress
}
